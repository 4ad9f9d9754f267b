package images

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// PhotoSource resolves photos for tags. Implementations must not fail:
// degraded conditions resolve to placeholder content.
type PhotoSource interface {
	PhotoForTags(ctx context.Context, tags []string) *Photo
	SearchPhotos(ctx context.Context, query string, page int, orientation string) []Photo
	RandomPhoto(ctx context.Context, query, orientation string) *Photo
	OptimizedURL(photo *Photo, width, height int, format string) string
}

// GifSource resolves animated GIFs for tags.
type GifSource interface {
	GifForTags(ctx context.Context, tags []string) *Gif
	SearchGifs(ctx context.Context, query string, limit, offset int) []Gif
	RandomGif(ctx context.Context, tag string) *Gif
	OptimizedURL(gif *Gif, width, height int) string
	EmbedCode(gif *Gif, width, height int) string
}

// IllustrationSource resolves vector illustrations for tags.
type IllustrationSource interface {
	IllustrationForTags(tags []string, opts Options) *Illustration
	IllustrationURL(id string, opts Options) string
	EmbedCode(ill *Illustration, width, height int) string
}

// Config carries per-provider configuration for the default adapters.
type Config struct {
	Unsplash UnsplashConfig
	Giphy    GiphyConfig
	Storyset StorysetConfig
}

// Service dispatches article image resolution across the configured
// providers and memoizes results per article.
type Service struct {
	photos        PhotoSource
	gifs          GifSource
	illustrations IllustrationSource
	cache         Cache
	logger        interfaces.Logger
}

// ServiceOption customizes Service construction.
type ServiceOption func(*Service)

// WithCache replaces the default in-memory cache.
func WithCache(cache Cache) ServiceOption {
	return func(s *Service) {
		if cache != nil {
			s.cache = cache
		}
	}
}

// WithLogger attaches a logger to the service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPhotoSource overrides the photo adapter.
func WithPhotoSource(src PhotoSource) ServiceOption {
	return func(s *Service) {
		if src != nil {
			s.photos = src
		}
	}
}

// WithGifSource overrides the GIF adapter.
func WithGifSource(src GifSource) ServiceOption {
	return func(s *Service) {
		if src != nil {
			s.gifs = src
		}
	}
}

// WithIllustrationSource overrides the illustration adapter.
func WithIllustrationSource(src IllustrationSource) ServiceOption {
	return func(s *Service) {
		if src != nil {
			s.illustrations = src
		}
	}
}

// NewService wires the default adapters from cfg; options may swap any of
// them out, which is how tests inject stubs.
func NewService(cfg Config, opts ...ServiceOption) *Service {
	svc := &Service{
		cache:  NewMemoryCache(),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.photos == nil {
		ucfg := cfg.Unsplash
		if ucfg.Logger == nil {
			ucfg.Logger = svc.logger
		}
		svc.photos = NewUnsplashClient(ucfg)
	}
	if svc.gifs == nil {
		gcfg := cfg.Giphy
		if gcfg.Logger == nil {
			gcfg.Logger = svc.logger
		}
		svc.gifs = NewGiphyClient(gcfg)
	}
	if svc.illustrations == nil {
		scfg := cfg.Storyset
		if scfg.Logger == nil {
			scfg.Logger = svc.logger
		}
		svc.illustrations = NewStorysetClient(scfg)
	}
	return svc
}

// ResolveArticleImage picks an asset for the article identified by its tags
// and title from the preferred source. Results are memoized so repeat
// resolutions of the same article return the identical asset; the cache
// grows until ClearCache. An unrecognized source yields nil.
func (s *Service) ResolveArticleImage(ctx context.Context, tags []string, title string, preferred Source, opts Options) *Asset {
	key := strings.Join(tags, ",") + "-" + title + "-" + string(preferred)
	if asset, ok := s.cache.Get(key); ok {
		return asset
	}

	var asset *Asset
	switch preferred {
	case SourceUnsplash:
		asset = s.photoAsset(s.photos.PhotoForTags(ctx, tags), title, opts)
	case SourceGiphy:
		asset = s.gifAsset(s.gifs.GifForTags(ctx, tags), title, opts)
	case SourceStoryset:
		asset = s.illustrationAsset(s.illustrations.IllustrationForTags(tags, opts), opts)
	case SourcePlaceholder:
		asset = PlaceholderAsset(title, opts)
	default:
		s.logger.Warn("images.resolve.unknown_source", "source", string(preferred))
		return nil
	}

	if asset != nil {
		s.cache.Set(key, asset)
	}
	return asset
}

// SearchImages proxies a free-text search to the adapter for the given type.
func (s *Service) SearchImages(ctx context.Context, query string, imageType Type, limit int) []Asset {
	switch imageType {
	case TypeGif:
		gifs := s.gifs.SearchGifs(ctx, query, limit, 0)
		assets := make([]Asset, 0, len(gifs))
		for i := range gifs {
			assets = append(assets, *s.gifAsset(&gifs[i], query, Options{}))
		}
		return assets
	case TypeIllustration:
		ill := s.illustrations.IllustrationForTags(strings.Fields(query), Options{})
		asset := s.illustrationAsset(ill, Options{})
		if asset == nil || limit == 0 {
			return nil
		}
		return []Asset{*asset}
	default:
		photos := s.photos.SearchPhotos(ctx, query, 1, "")
		if limit > 0 && len(photos) > limit {
			photos = photos[:limit]
		}
		assets := make([]Asset, 0, len(photos))
		for i := range photos {
			assets = append(assets, *s.photoAsset(&photos[i], query, Options{}))
		}
		return assets
	}
}

// RandomImage returns a single random asset of the given type for a query.
// Sizing and style options carry through to the chosen adapter.
func (s *Service) RandomImage(ctx context.Context, query string, imageType Type, opts Options) *Asset {
	switch imageType {
	case TypeGif:
		return s.gifAsset(s.gifs.RandomGif(ctx, query), query, opts)
	case TypeIllustration:
		return s.illustrationAsset(s.illustrations.IllustrationForTags(strings.Fields(query), opts), opts)
	default:
		return s.photoAsset(s.photos.RandomPhoto(ctx, query, ""), query, opts)
	}
}

// ClearCache drops every memoized asset.
func (s *Service) ClearCache() {
	s.cache.Clear()
}

func (s *Service) photoAsset(photo *Photo, title string, opts Options) *Asset {
	if photo == nil {
		return PlaceholderAsset(title, opts)
	}
	alt := photo.AltDescription
	if alt == "" {
		alt = photo.Description
	}
	if alt == "" {
		alt = title
	}
	author := &Author{
		Name: photo.User.Name,
		URL:  "https://unsplash.com/@" + photo.User.Username,
	}
	return NewPhotoAsset(
		SourceUnsplash,
		s.photos.OptimizedURL(photo, opts.Width, opts.Height, opts.Format),
		alt,
		title,
		author,
	)
}

func (s *Service) gifAsset(gif *Gif, title string, opts Options) *Asset {
	if gif == nil {
		return PlaceholderAsset(title, opts)
	}
	alt := gif.Title
	if alt == "" {
		alt = title
	}
	return NewGifAsset(
		SourceGiphy,
		s.gifs.OptimizedURL(gif, opts.Width, opts.Height),
		alt,
		title,
		s.gifs.EmbedCode(gif, opts.Width, opts.Height),
	)
}

func (s *Service) illustrationAsset(ill *Illustration, opts Options) *Asset {
	if ill == nil {
		return nil
	}
	return NewIllustrationAsset(
		SourceStoryset,
		ill.URL,
		ill.Title,
		ill.Title,
		s.illustrations.EmbedCode(ill, opts.Width, opts.Height),
	)
}

// PlaceholderURL builds a via.placeholder.com URL. Zero dimensions default
// to an 800x400 banner, an empty label to "Image".
func PlaceholderURL(width, height int, text string) string {
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 400
	}
	if text == "" {
		text = "Image"
	}
	return fmt.Sprintf(
		"https://via.placeholder.com/%dx%d/f3f4f6/6b7280?text=%s",
		width, height, url.QueryEscape(text),
	)
}

// PlaceholderAsset builds a neutral placeholder asset for a title.
func PlaceholderAsset(title string, opts Options) *Asset {
	alt := title
	if alt == "" {
		alt = "Image"
	}
	return &Asset{
		Type:   TypePhoto,
		Source: SourcePlaceholder,
		URL:    PlaceholderURL(opts.Width, opts.Height, title),
		Alt:    alt,
		Title:  title,
	}
}
