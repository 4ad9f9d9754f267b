package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	blog "github.com/goliatone/go-blog"
)

var (
	flagContentDir string
	flagOutputDir  string
	flagBaseURL    string
	flagSiteTitle  string
	flagLogLevel   string
	flagLogFormat  string
	flagEnvFile    string
)

var rootCmd = &cobra.Command{
	Use:           "blog",
	Short:         "Markdown blog toolchain: serve, export, and content maintenance",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagContentDir, "content", "content", "directory holding markdown sources")
	pf.StringVar(&flagOutputDir, "output", "public", "directory receiving exported output")
	pf.StringVar(&flagBaseURL, "base-url", "", "absolute site URL used in generated links")
	pf.StringVar(&flagSiteTitle, "title", "Blog", "site title used in generated pages")
	pf.StringVar(&flagLogLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	pf.StringVar(&flagLogFormat, "log-format", "console", "log format (json, console, pretty)")
	pf.StringVar(&flagEnvFile, "env-file", ".env", "dotenv file with provider credentials")
}

// loadConfig builds the runtime configuration from defaults, the dotenv
// file, environment variables, and flags, in that order.
func loadConfig() blog.Config {
	// A missing dotenv file is fine; credentials stay optional throughout.
	_ = godotenv.Load(flagEnvFile)

	cfg := blog.DefaultConfig()
	cfg.SiteTitle = flagSiteTitle
	cfg.BaseURL = flagBaseURL
	cfg.Content.Dir = flagContentDir
	cfg.Export.OutputDir = flagOutputDir
	cfg.Logging.Level = flagLogLevel
	cfg.Logging.Format = flagLogFormat

	cfg.Images.UnsplashAccessKey = os.Getenv("UNSPLASH_ACCESS_KEY")
	cfg.Images.GiphyAPIKey = os.Getenv("GIPHY_API_KEY")
	cfg.Images.StorysetAPIKey = os.Getenv("STORYSET_API_KEY")

	if source := os.Getenv("BLOG_IMAGE_SOURCE"); source != "" {
		cfg.Images.PreferredSource = source
	}
	return cfg
}
