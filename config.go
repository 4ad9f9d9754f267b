package blog

import "github.com/goliatone/go-blog/internal/runtimeconfig"

var (
	ErrContentDirRequired      = runtimeconfig.ErrContentDirRequired
	ErrExportOutputDirRequired = runtimeconfig.ErrExportOutputDirRequired
	ErrImagesSourceUnknown     = runtimeconfig.ErrImagesSourceUnknown
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	ContentConfig  = runtimeconfig.ContentConfig
	RendererConfig = runtimeconfig.RendererConfig
	ImagesConfig   = runtimeconfig.ImagesConfig
	ExportConfig   = runtimeconfig.ExportConfig
	ServerConfig   = runtimeconfig.ServerConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	Features       = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
