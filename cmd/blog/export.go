package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	blog "github.com/goliatone/go-blog"
	exportcmd "github.com/goliatone/go-blog/internal/commands/export"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

var (
	flagExportSlugs  []string
	flagExportDryRun bool
	flagExportWatch  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render every post into a static site tree",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := loadConfig()
		cfg.Features.Server = false

		engine, err := blog.New(cfg)
		if err != nil {
			return err
		}
		logger := logging.ModuleLogger(engine.LoggerProvider(), "blog.cli")
		handler := exportcmd.NewBuildSiteHandler(engine.Exporter(), logger)

		msg := exportcmd.BuildSiteCommand{Slugs: flagExportSlugs, DryRun: flagExportDryRun}
		if err := handler.Execute(cmd.Context(), msg); err != nil {
			return err
		}
		if !flagExportWatch {
			return nil
		}
		return watchAndRebuild(cmd.Context(), cfg.Content.Dir, logger, func(ctx context.Context) error {
			return handler.Execute(ctx, msg)
		})
	},
}

func init() {
	exportCmd.Flags().StringSliceVar(&flagExportSlugs, "slug", nil, "limit the export to the named posts")
	exportCmd.Flags().BoolVar(&flagExportDryRun, "dry-run", false, "report work without writing output")
	exportCmd.Flags().BoolVar(&flagExportWatch, "watch", false, "re-export when markdown sources change")
	rootCmd.AddCommand(exportCmd)
}

// watchAndRebuild re-runs the rebuild callback whenever a markdown file under
// dir changes. Events are debounced so editors that write in bursts trigger a
// single rebuild.
func watchAndRebuild(ctx context.Context, dir string, logger interfaces.Logger, rebuild func(context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if err == nil {
		for _, entry := range entries {
			if entry.IsDir() {
				// Asset folders: new images should trigger a mirror pass too.
				_ = watcher.Add(filepath.Join(dir, entry.Name()))
			}
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("cli.export.watching", "dir", dir)

	var timer *time.Timer
	debounced := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("cli.export.watch_error", "error", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if strings.HasSuffix(event.Name, "~") || filepath.Ext(event.Name) == ".tmp" {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(250*time.Millisecond, func() {
				select {
				case debounced <- struct{}{}:
				default:
				}
			})
		case <-debounced:
			if err := rebuild(ctx); err != nil {
				logger.Error("cli.export.rebuild_failed", "error", err)
			}
		}
	}
}
