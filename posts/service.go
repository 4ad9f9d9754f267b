package posts

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Config controls how the post service discovers and renders articles.
type Config struct {
	// ContentDir is the directory holding {slug}.md files plus their asset
	// folders. Ignored when a filesystem is injected via WithFS.
	ContentDir string
	// Renderer carries the default markdown rendering options.
	Renderer markdown.RenderOptions
}

// Service exposes the canonical article resolution contracts. Every call is
// stateless and re-reads the filesystem; no caching happens at this layer.
type Service interface {
	List(ctx context.Context) ([]Post, error)
	Get(ctx context.Context, slug string) (*Post, error)
	Latest(ctx context.Context, n int) ([]Post, error)
	ListByTag(ctx context.Context, tag string) ([]Post, error)
	ListByCategory(ctx context.Context, category string) ([]Post, error)
	Tags(ctx context.Context) ([]string, error)
	Categories() []Category
	Slugs(ctx context.Context) ([]string, error)
}

// Option customises the service.
type Option func(*service)

// WithLogger injects the logger used for degraded-article warnings.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFS overrides the content filesystem, mainly for tests.
func WithFS(fsys fs.FS) Option {
	return func(s *service) {
		s.fsys = fsys
	}
}

// WithRenderer overrides the markdown renderer.
func WithRenderer(renderer *markdown.GoldmarkRenderer) Option {
	return func(s *service) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

type service struct {
	cfg      Config
	fsys     fs.FS
	renderer *markdown.GoldmarkRenderer
	rewriter *Rewriter
	logger   interfaces.Logger
	now      func() time.Time
}

// NewService constructs a filesystem-backed post service.
func NewService(cfg Config, opts ...Option) (Service, error) {
	s := &service{
		cfg:    cfg,
		logger: logging.NoOp(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.fsys == nil {
		if strings.TrimSpace(cfg.ContentDir) == "" {
			return nil, ErrContentDirRequired
		}
		if _, err := os.Stat(cfg.ContentDir); err != nil {
			return nil, fmt.Errorf("posts: stat content dir %s: %w", cfg.ContentDir, err)
		}
		s.fsys = os.DirFS(cfg.ContentDir)
	}

	if s.renderer == nil {
		s.renderer = markdown.NewGoldmarkRenderer(cfg.Renderer)
	}
	s.rewriter = NewRewriter(s.fsys)

	return s, nil
}

// List returns article summaries sorted by date descending. Content is never
// populated here; cover images are derived from the raw body without a full
// render. Articles that fail to read or parse are logged and skipped so one
// bad file never empties the listing. Posts sharing a date keep directory
// enumeration order, which is implementation-defined.
func (s *service) List(ctx context.Context) ([]Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("posts: read content dir: %w", err)
	}

	var result []Post
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		post, err := s.summarize(entry.Name())
		if err != nil {
			s.logger.Warn("posts.list.skip_article", "file", entry.Name(), "error", err)
			continue
		}
		result = append(result, post)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return parseDate(result[i].Date).After(parseDate(result[j].Date))
	})

	return result, nil
}

// Get performs the full resolution for one article. A missing file, or any
// I/O, parse, or render failure for that file, is logged and surfaced as
// ErrPostNotFound rather than propagated.
func (s *service) Get(ctx context.Context, slug string) (*Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(s.fsys, slug+".md")
	if err != nil {
		s.logger.Debug("posts.get.read_failed", "slug", slug, "error", err)
		return nil, ErrPostNotFound
	}

	fm, body, err := markdown.ParseFrontMatter(data)
	if err != nil {
		s.logger.Error("posts.get.parse_failed", "slug", slug, "error", err)
		return nil, ErrPostNotFound
	}

	rewritten := s.rewriter.RewriteBody(string(body), slug)

	html, err := s.renderer.Render([]byte(rewritten))
	if err != nil {
		s.logger.Error("posts.get.render_failed", "slug", slug, "error", err)
		return nil, ErrPostNotFound
	}

	cover, content := extractCover(string(html))

	excerpt := fm.Excerpt
	if excerpt == "" {
		excerpt = deriveExcerpt(string(body))
	}

	post := s.fromFrontMatter(slug, fm)
	post.Content = content
	post.Excerpt = excerpt
	post.CoverImage = cover
	post.ReadingTime = deriveReadingTime(string(body))

	return &post, nil
}

// Latest returns the n most recent posts; n <= 0 defaults to 5.
func (s *service) Latest(ctx context.Context, n int) ([]Post, error) {
	if n <= 0 {
		n = 5
	}
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

// ListByTag filters posts on a case-insensitive exact tag match.
func (s *service) ListByTag(ctx context.Context, tag string) ([]Post, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var result []Post
	for _, post := range all {
		for _, candidate := range post.Tags {
			if strings.EqualFold(candidate, tag) {
				result = append(result, post)
				break
			}
		}
	}
	return result, nil
}

// ListByCategory filters posts on category identity. The empty category
// returns the full unfiltered set; a value outside the closed set simply
// matches nothing.
func (s *service) ListByCategory(ctx context.Context, category string) ([]Post, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return all, nil
	}

	var result []Post
	for _, post := range all {
		if post.Category == Category(category) {
			result = append(result, post)
		}
	}
	return result, nil
}

// Tags returns the union of tags across all posts, sorted ascending.
func (s *service) Tags(ctx context.Context) ([]string, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	set := map[string]struct{}{}
	for _, post := range all {
		for _, tag := range post.Tags {
			set[tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags, nil
}

// Categories returns the closed category set, independent of content.
func (s *service) Categories() []Category {
	return AllCategories()
}

// Slugs enumerates the slugs of every article file in the content directory.
func (s *service) Slugs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("posts: read content dir: %w", err)
	}

	var slugs []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		slugs = append(slugs, strings.TrimSuffix(entry.Name(), ".md"))
	}
	return slugs, nil
}

func (s *service) summarize(fileName string) (Post, error) {
	slug := strings.TrimSuffix(fileName, ".md")

	data, err := fs.ReadFile(s.fsys, fileName)
	if err != nil {
		return Post{}, fmt.Errorf("read %s: %w", fileName, err)
	}

	fm, body, err := markdown.ParseFrontMatter(data)
	if err != nil {
		return Post{}, fmt.Errorf("parse %s: %w", fileName, err)
	}

	post := s.fromFrontMatter(slug, fm)
	if ref, ok := firstImageRef(string(body)); ok {
		post.CoverImage = s.rewriter.RewriteCover(ref, slug)
	}
	return post, nil
}

// fromFrontMatter narrows parsed metadata into a Post, applying the documented
// defaults for absent fields.
func (s *service) fromFrontMatter(slug string, fm markdown.FrontMatter) Post {
	post := Post{
		Slug:        slug,
		Title:       fm.Title,
		Date:        fm.Date,
		Description: fm.Description,
		Author:      fm.Author,
		Tags:        fm.Tags,
	}
	if post.Title == "" {
		post.Title = DefaultTitle
	}
	if post.Date == "" {
		post.Date = s.now().Format("2006-01-02")
	}
	if post.Author == "" {
		post.Author = DefaultAuthor
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if category, ok := ParseCategory(fm.Category); ok {
		post.Category = category
	}
	return post
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

func parseDate(value string) time.Time {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}
