package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/internal/logging"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the blog JSON API and exported static files",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := loadConfig()
		cfg.Server.Addr = flagAddr
		cfg.Server.StaticDir = flagOutputDir
		cfg.Features.Export = false

		engine, err := blog.New(cfg)
		if err != nil {
			return err
		}
		logger := logging.ModuleLogger(engine.LoggerProvider(), "blog.cli")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- engine.Server().Start()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info("cli.serve.shutdown")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return engine.Server().Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}
