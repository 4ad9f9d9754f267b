package exporter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/goliatone/go-blog/posts"
)

var (
	errPostsRequired     = errors.New("exporter: posts service is required")
	errOutputDirRequired = errors.New("exporter: output directory is required")
)

// Service describes the static export contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	MirrorAssets(ctx context.Context) (*MirrorResult, error)
	Clean(ctx context.Context) error
}

// Config captures export behaviour toggles.
type Config struct {
	ContentDir string
	OutputDir  string
	BaseURL    string
	SiteTitle  string
	CleanBuild bool
}

// BuildOptions narrows the scope of an export run.
type BuildOptions struct {
	Slugs  []string
	DryRun bool
}

// BuildResult reports aggregated export metadata.
type BuildResult struct {
	PagesBuilt   int
	PagesSkipped int
	AssetsCopied int
	Duration     time.Duration
	Errors       []error
	DryRun       bool
}

// MirrorResult reports how many article assets landed in the output tree.
type MirrorResult struct {
	FilesCopied  int
	FilesSkipped int
	Duration     time.Duration
}

// Dependencies lists the services required by the exporter.
type Dependencies struct {
	Posts  posts.Service
	Logger interfaces.Logger
}

// NewService wires an exporter with the provided configuration and
// dependencies.
func NewService(cfg Config, deps Dependencies) (Service, error) {
	if deps.Posts == nil {
		return nil, errPostsRequired
	}
	if cfg.OutputDir == "" {
		return nil, errOutputDirRequired
	}
	if cfg.SiteTitle == "" {
		cfg.SiteTitle = "Blog"
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &service{
		cfg:    cfg,
		posts:  deps.Posts,
		logger: logger,
		now:    time.Now,
	}, nil
}

type service struct {
	cfg    Config
	posts  posts.Service
	logger interfaces.Logger
	now    func() time.Time
}

// Build renders every post (or the selected slugs) into the output tree,
// mirrors article assets under articles/, and writes the JSON index the
// front end consumes. DryRun counts work without touching the filesystem.
func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	started := s.now()
	result := &BuildResult{DryRun: opts.DryRun}

	if s.cfg.CleanBuild && !opts.DryRun {
		if err := s.Clean(ctx); err != nil {
			return nil, err
		}
	}

	all, err := s.posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporter: list posts: %w", err)
	}

	selected := all
	if len(opts.Slugs) > 0 {
		want := make(map[string]struct{}, len(opts.Slugs))
		for _, slug := range opts.Slugs {
			want[slug] = struct{}{}
		}
		selected = selected[:0:0]
		for _, post := range all {
			if _, ok := want[post.Slug]; ok {
				selected = append(selected, post)
			}
		}
	}

	for _, summary := range selected {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		post, err := s.posts.Get(ctx, summary.Slug)
		if err != nil {
			s.logger.Warn("exporter.build.post_skipped", "slug", summary.Slug, "error", err)
			result.PagesSkipped++
			result.Errors = append(result.Errors, fmt.Errorf("exporter: render %s: %w", summary.Slug, err))
			continue
		}
		if opts.DryRun {
			result.PagesBuilt++
			continue
		}
		if err := s.writePostPage(post); err != nil {
			result.PagesSkipped++
			result.Errors = append(result.Errors, err)
			continue
		}
		result.PagesBuilt++
	}

	if !opts.DryRun {
		if err := s.writeIndexPage(selected); err != nil {
			result.Errors = append(result.Errors, err)
		}
		if err := s.writePostsIndex(selected); err != nil {
			result.Errors = append(result.Errors, err)
		}
		mirror, err := s.MirrorAssets(ctx)
		if err != nil {
			result.Errors = append(result.Errors, err)
		} else {
			result.AssetsCopied = mirror.FilesCopied
		}
	}

	result.Duration = s.now().Sub(started)
	s.logger.Info("exporter.build.done",
		"pages", result.PagesBuilt,
		"skipped", result.PagesSkipped,
		"assets", result.AssetsCopied,
		"duration", result.Duration.String(),
	)
	return result, nil
}

// Clean removes the generated articles tree and index files. The output
// directory itself survives so unrelated static files stay in place.
func (s *service) Clean(_ context.Context) error {
	if err := os.RemoveAll(filepath.Join(s.cfg.OutputDir, "articles")); err != nil {
		return fmt.Errorf("exporter: clean articles: %w", err)
	}
	for _, name := range []string{"index.html", "posts.json"} {
		if err := os.Remove(filepath.Join(s.cfg.OutputDir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("exporter: clean %s: %w", name, err)
		}
	}
	return nil
}

func (s *service) writePostPage(post *posts.Post) error {
	var buf bytes.Buffer
	if err := postTemplate.Execute(&buf, postPage{
		SiteTitle: s.cfg.SiteTitle,
		BaseURL:   s.cfg.BaseURL,
		Post:      post,
	}); err != nil {
		return fmt.Errorf("exporter: render %s: %w", post.Slug, err)
	}
	target := filepath.Join(s.cfg.OutputDir, "articles", post.Slug, "index.html")
	return s.writeFile(target, buf.Bytes())
}

func (s *service) writeIndexPage(list []posts.Post) error {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, indexPage{
		SiteTitle: s.cfg.SiteTitle,
		BaseURL:   s.cfg.BaseURL,
		Posts:     list,
	}); err != nil {
		return fmt.Errorf("exporter: render index: %w", err)
	}
	return s.writeFile(filepath.Join(s.cfg.OutputDir, "index.html"), buf.Bytes())
}

func (s *service) writePostsIndex(list []posts.Post) error {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("exporter: marshal posts index: %w", err)
	}
	return s.writeFile(filepath.Join(s.cfg.OutputDir, "posts.json"), data)
}

func (s *service) writeFile(target string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("exporter: ensure dir: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("exporter: write %s: %w", target, err)
	}
	return nil
}
