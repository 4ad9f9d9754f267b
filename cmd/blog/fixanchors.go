package main

import (
	"github.com/spf13/cobra"

	exportcmd "github.com/goliatone/go-blog/internal/commands/export"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/gologger"
)

var flagAnchorsDryRun bool

var fixAnchorsCmd = &cobra.Command{
	Use:   "fix-anchors",
	Short: "Normalize heading anchors and TOC links across markdown sources",
	RunE: func(cmd *cobra.Command, _ []string) error {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:  flagLogLevel,
			Format: flagLogFormat,
		})
		if err != nil {
			return err
		}
		logger := logging.ModuleLogger(provider, "blog.cli")

		handler := exportcmd.NewFixAnchorsHandler(logger)
		return handler.Execute(cmd.Context(), exportcmd.FixAnchorsCommand{
			Directory: flagContentDir,
			DryRun:    flagAnchorsDryRun,
		})
	},
}

func init() {
	fixAnchorsCmd.Flags().BoolVar(&flagAnchorsDryRun, "dry-run", false, "report files that would change without rewriting them")
	rootCmd.AddCommand(fixAnchorsCmd)
}
