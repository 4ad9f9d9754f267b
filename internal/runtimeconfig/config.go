package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrContentDirRequired indicates the markdown source directory is missing.
var ErrContentDirRequired = errors.New("blog config: content directory is required")

// ErrExportOutputDirRequired ensures export runs have somewhere to write.
var ErrExportOutputDirRequired = errors.New("blog config: export output directory is required when export is enabled")
var ErrImagesSourceUnknown = errors.New("blog config: preferred image source is invalid")
var ErrLoggingProviderRequired = errors.New("blog config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("blog config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("blog config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("blog config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the blog module.
// Fields intentionally use simple types so host applications can extend them
// later.
type Config struct {
	Enabled   bool
	SiteTitle string
	BaseURL   string
	Content   ContentConfig
	Renderer  RendererConfig
	Images    ImagesConfig
	Export    ExportConfig
	Server    ServerConfig
	Logging   LoggingConfig
	Features  Features
}

// ContentConfig captures configuration for the markdown content module.
type ContentConfig struct {
	Dir string
}

// RendererConfig tunes goldmark rendering behaviour.
type RendererConfig struct {
	Extensions     []string
	HardWraps      bool
	SafeMode       bool
	HighlightStyle string
	LineNumbers    bool
}

// ImagesConfig carries provider credentials and the default resolution
// source. Credentials stay optional: adapters degrade to placeholders.
type ImagesConfig struct {
	PreferredSource   string
	UnsplashAccessKey string
	GiphyAPIKey       string
	StorysetAPIKey    string
	RequestTimeout    time.Duration
}

// ExportConfig captures static export behaviour toggles.
type ExportConfig struct {
	OutputDir  string
	CleanBuild bool
}

// ServerConfig captures the HTTP listener settings.
type ServerConfig struct {
	Addr      string
	StaticDir string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
}

// Features toggles module functionality.
type Features struct {
	Images bool
	Export bool
	Server bool
	Logger bool
}

// DefaultConfig returns the baseline blog runtime configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		SiteTitle: "Blog",
		Content: ContentConfig{
			Dir: "content",
		},
		Renderer: RendererConfig{
			HighlightStyle: "github",
		},
		Images: ImagesConfig{
			PreferredSource: "unsplash",
			RequestTimeout:  10 * time.Second,
		},
		Export: ExportConfig{
			OutputDir:  "public",
			CleanBuild: true,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "console",
		},
		Features: Features{
			Images: true,
			Export: true,
			Server: true,
			Logger: true,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if cfg.Features.Export {
		if strings.TrimSpace(cfg.Export.OutputDir) == "" {
			return ErrExportOutputDirRequired
		}
	}
	if cfg.Features.Images {
		if source := normalizeToken(cfg.Images.PreferredSource); source != "" && !isSupportedSource(source) {
			return fmt.Errorf("%w: %s", ErrImagesSourceUnknown, source)
		}
	}
	if cfg.Features.Logger {
		provider := normalizeToken(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeToken(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}

func isSupportedSource(source string) bool {
	switch source {
	case "unsplash", "giphy", "storyset", "placeholder":
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
