package exportcmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/exporter"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/goliatone/go-blog/posts"
	command "github.com/goliatone/go-command"
)

const (
	buildSiteOperation    = "export.build_site"
	mirrorAssetsOperation = "export.mirror_assets"
	fixAnchorsOperation   = "content.fix_anchors"
)

var (
	_ command.Commander[BuildSiteCommand]    = (*BuildSiteHandler)(nil)
	_ command.Commander[MirrorAssetsCommand] = (*MirrorAssetsHandler)(nil)
	_ command.Commander[FixAnchorsCommand]   = (*FixAnchorsHandler)(nil)
)

// BuildSiteHandler orchestrates static exports via the shared command
// handler foundation.
type BuildSiteHandler struct {
	inner *commands.Handler[BuildSiteCommand]
}

// NewBuildSiteHandler creates a handler bound to the supplied exporter.
func NewBuildSiteHandler(service exporter.Service, logger interfaces.Logger, opts ...commands.HandlerOption[BuildSiteCommand]) *BuildSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg BuildSiteCommand) error {
		result, err := service.Build(ctx, exporter.BuildOptions{Slugs: msg.Slugs, DryRun: msg.DryRun})
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"pages_built":   result.PagesBuilt,
			"pages_skipped": result.PagesSkipped,
			"assets_copied": result.AssetsCopied,
			"error_count":   len(result.Errors),
			"dry_run":       msg.DryRun,
		}).Info("export.command.build_site.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[BuildSiteCommand]{
		commands.WithLogger[BuildSiteCommand](baseLogger),
		commands.WithOperation[BuildSiteCommand](buildSiteOperation),
		commands.WithMessageFields(func(msg BuildSiteCommand) map[string]any {
			fields := map[string]any{}
			if len(msg.Slugs) > 0 {
				fields["slugs"] = strings.Join(msg.Slugs, ",")
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BuildSiteHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *BuildSiteHandler) Execute(ctx context.Context, msg BuildSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// MirrorAssetsHandler copies article assets without a page rebuild.
type MirrorAssetsHandler struct {
	inner *commands.Handler[MirrorAssetsCommand]
}

// NewMirrorAssetsHandler creates a handler bound to the supplied exporter.
func NewMirrorAssetsHandler(service exporter.Service, logger interfaces.Logger, opts ...commands.HandlerOption[MirrorAssetsCommand]) *MirrorAssetsHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg MirrorAssetsCommand) error {
		result, err := service.MirrorAssets(ctx)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"files_copied":  result.FilesCopied,
			"files_skipped": result.FilesSkipped,
		}).Info("export.command.mirror_assets.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[MirrorAssetsCommand]{
		commands.WithLogger[MirrorAssetsCommand](baseLogger),
		commands.WithOperation[MirrorAssetsCommand](mirrorAssetsOperation),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &MirrorAssetsHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *MirrorAssetsHandler) Execute(ctx context.Context, msg MirrorAssetsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// FixAnchorsHandler normalizes heading anchors across Markdown sources.
type FixAnchorsHandler struct {
	inner *commands.Handler[FixAnchorsCommand]
}

// NewFixAnchorsHandler creates a handler that rewrites Markdown files in
// place.
func NewFixAnchorsHandler(logger interfaces.Logger, opts ...commands.HandlerOption[FixAnchorsCommand]) *FixAnchorsHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg FixAnchorsCommand) error {
		changed, err := fixAnchorsInDirectory(ctx, msg.Directory, msg.DryRun)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"files_changed": len(changed),
			"dry_run":       msg.DryRun,
		}).Info("content.command.fix_anchors.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[FixAnchorsCommand]{
		commands.WithLogger[FixAnchorsCommand](baseLogger),
		commands.WithOperation[FixAnchorsCommand](fixAnchorsOperation),
		commands.WithMessageFields(func(msg FixAnchorsCommand) map[string]any {
			return map[string]any{"directory": msg.Directory}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &FixAnchorsHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *FixAnchorsHandler) Execute(ctx context.Context, msg FixAnchorsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// fixAnchorsInDirectory rewrites every top-level Markdown file whose anchor
// normalization produces a different body. Files inside article asset
// folders are not Markdown sources and stay untouched.
func fixAnchorsInDirectory(ctx context.Context, dir string, dryRun bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("fix anchors: read %s: %w", dir, err)
	}

	var changed []string
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		target := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(target)
		if err != nil {
			return nil, fmt.Errorf("fix anchors: read %s: %w", target, err)
		}
		fixed := posts.FixAnchors(string(data))
		if fixed == string(data) {
			continue
		}
		if !dryRun {
			if err := os.WriteFile(target, []byte(fixed), 0o644); err != nil {
				return nil, fmt.Errorf("fix anchors: write %s: %w", target, err)
			}
		}
		changed = append(changed, entry.Name())
	}
	return changed, nil
}
