package logging

import (
	"context"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	rootModule     = "blog"
	postsModule    = "blog.posts"
	imagesModule   = "blog.images"
	exporterModule = "blog.exporter"
	serverModule   = "blog.server"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// PostsLogger returns the logger namespace reserved for the post resolver.
func PostsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, postsModule)
}

// ImagesLogger returns the logger namespace reserved for image resolution.
func ImagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, imagesModule)
}

// ExporterLogger returns the logger namespace reserved for static export runs.
func ExporterLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, exporterModule)
}

// ServerLogger returns the logger namespace reserved for the HTTP server.
func ServerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, serverModule)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
