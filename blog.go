// Package blog assembles the markdown ingestion pipeline, image resolution,
// static export, and HTTP surface behind a single runtime façade.
package blog

import (
	"io/fs"
	"strings"
	"time"

	"github.com/goliatone/go-blog/images"
	"github.com/goliatone/go-blog/internal/exporter"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/console"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/server"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/goliatone/go-blog/posts"
)

// PostService exports the post resolver contract for consumers of the blog
// package.
type PostService = posts.Service

// ImageService exports the image resolution service.
type ImageService = images.Service

// ExportService exports the static export contract.
type ExportService = exporter.Service

// Post exports the resolved article type.
type Post = posts.Post

// Category exports the closed article category set.
type Category = posts.Category

// Engine is the top level blog runtime façade.
type Engine struct {
	cfg      Config
	provider interfaces.LoggerProvider
	fsys     fs.FS

	posts    posts.Service
	images   *images.Service
	exporter exporter.Service
	server   *server.Server
}

// Option overrides Engine wiring during construction.
type Option func(*Engine)

// WithLoggerProvider replaces the logging provider built from the runtime
// configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(e *Engine) {
		if provider != nil {
			e.provider = provider
		}
	}
}

// WithContentFS serves article sources from the given filesystem instead of
// the configured content directory.
func WithContentFS(fsys fs.FS) Option {
	return func(e *Engine) {
		e.fsys = fsys
	}
}

// New constructs a blog engine using the provided configuration and optional
// overrides.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}

	if e.provider == nil && cfg.Features.Logger {
		switch strings.ToLower(strings.TrimSpace(cfg.Logging.Provider)) {
		case "console":
			level := console.ParseLevel(cfg.Logging.Level)
			e.provider = console.NewProvider(console.Options{MinLevel: &level})
		default:
			provider, err := gologger.NewProvider(gologger.Config{
				Level:     cfg.Logging.Level,
				Format:    cfg.Logging.Format,
				AddSource: cfg.Logging.AddSource,
			})
			if err != nil {
				return nil, err
			}
			e.provider = provider
		}
	}

	postOpts := []posts.Option{
		posts.WithLogger(logging.PostsLogger(e.provider)),
	}
	if e.fsys != nil {
		postOpts = append(postOpts, posts.WithFS(e.fsys))
	}
	postsSvc, err := posts.NewService(posts.Config{
		ContentDir: cfg.Content.Dir,
		Renderer: markdown.RenderOptions{
			Extensions:     cfg.Renderer.Extensions,
			HardWraps:      cfg.Renderer.HardWraps,
			SafeMode:       cfg.Renderer.SafeMode,
			HighlightStyle: cfg.Renderer.HighlightStyle,
			LineNumbers:    cfg.Renderer.LineNumbers,
		},
	}, postOpts...)
	if err != nil {
		return nil, err
	}
	e.posts = postsSvc

	if cfg.Features.Images {
		timeout := cfg.Images.RequestTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		e.images = images.NewService(images.Config{
			Unsplash: images.UnsplashConfig{AccessKey: cfg.Images.UnsplashAccessKey, Timeout: timeout},
			Giphy:    images.GiphyConfig{APIKey: cfg.Images.GiphyAPIKey, Timeout: timeout},
			Storyset: images.StorysetConfig{APIKey: cfg.Images.StorysetAPIKey, Timeout: timeout},
		}, images.WithLogger(logging.ImagesLogger(e.provider)))
	}

	if cfg.Features.Export {
		exportSvc, err := exporter.NewService(exporter.Config{
			ContentDir: cfg.Content.Dir,
			OutputDir:  cfg.Export.OutputDir,
			BaseURL:    cfg.BaseURL,
			SiteTitle:  cfg.SiteTitle,
			CleanBuild: cfg.Export.CleanBuild,
		}, exporter.Dependencies{
			Posts:  e.posts,
			Logger: logging.ExporterLogger(e.provider),
		})
		if err != nil {
			return nil, err
		}
		e.exporter = exportSvc
	}

	if cfg.Features.Server {
		srv, err := server.New(server.Config{
			Addr:      cfg.Server.Addr,
			StaticDir: cfg.Server.StaticDir,
			BaseURL:   cfg.BaseURL,
		}, server.Dependencies{
			Posts:  e.posts,
			Images: e.images,
			Logger: logging.ServerLogger(e.provider),
		})
		if err != nil {
			return nil, err
		}
		e.server = srv
	}

	return e, nil
}

// Posts returns the configured post resolver.
func (e *Engine) Posts() PostService {
	return e.posts
}

// Images returns the configured image service, nil when the feature is off.
func (e *Engine) Images() *ImageService {
	return e.images
}

// Exporter returns the static export service, nil when the feature is off.
func (e *Engine) Exporter() ExportService {
	return e.exporter
}

// Server returns the HTTP server, nil when the feature is off.
func (e *Engine) Server() *server.Server {
	return e.server
}

// LoggerProvider exposes the logging provider for host integrations.
func (e *Engine) LoggerProvider() interfaces.LoggerProvider {
	return e.provider
}
