package images

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// GiphyConfig configures the gif adapter.
type GiphyConfig struct {
	APIKey  string
	BaseURL string
	Limit   int
	Rating  string
	Timeout time.Duration
	Logger  interfaces.Logger
}

// GiphyClient wraps the GIPHY API. Like the other adapters it never surfaces
// an error: fetch failures and a missing credential both degrade to a fixed
// local placeholder pool.
type GiphyClient struct {
	cfg    GiphyConfig
	http   *http.Client
	logger interfaces.Logger
}

// GifRendition is one sizing variant of a gif.
type GifRendition struct {
	URL    string `json:"url"`
	Width  string `json:"width"`
	Height string `json:"height"`
	Size   string `json:"size"`
}

// Gif is the subset of the GIPHY payload the blog consumes.
type Gif struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Images struct {
		Original        GifRendition `json:"original"`
		DownsizedMedium GifRendition `json:"downsized_medium"`
		FixedHeight     GifRendition `json:"fixed_height"`
	} `json:"images"`
	EmbedURL string `json:"embed_url"`
	URL      string `json:"url"`
}

// NewGiphyClient constructs the gif adapter with bounded request timeouts.
// The rating defaults to "g" so only work-safe content comes back.
func NewGiphyClient(cfg GiphyConfig) *GiphyClient {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://api.giphy.com/v1/gifs"
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 25
	}
	if cfg.Rating == "" {
		cfg.Rating = "g"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &GiphyClient{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// SearchGifs returns gifs matching the query.
func (c *GiphyClient) SearchGifs(ctx context.Context, query string, limit, offset int) []Gif {
	if c.cfg.APIKey == "" {
		return placeholderGifs(query)
	}
	if limit <= 0 || limit > c.cfg.Limit {
		limit = c.cfg.Limit
	}

	params := url.Values{
		"api_key": {c.cfg.APIKey},
		"q":       {query},
		"limit":   {strconv.Itoa(limit)},
		"offset":  {strconv.Itoa(offset)},
		"rating":  {c.cfg.Rating},
		"lang":    {"en"},
	}

	var payload struct {
		Data []Gif `json:"data"`
	}
	if err := c.get(ctx, "/search", params, &payload); err != nil {
		c.logger.Warn("images.giphy.search_failed", "query", query, "error", err)
		return placeholderGifs(query)
	}
	return payload.Data
}

// RandomGif returns one gif for the tag.
func (c *GiphyClient) RandomGif(ctx context.Context, tag string) *Gif {
	if tag == "" {
		tag = "programming"
	}
	if c.cfg.APIKey == "" {
		pool := placeholderGifs(tag)
		return &pool[0]
	}

	params := url.Values{
		"api_key": {c.cfg.APIKey},
		"tag":     {tag},
		"rating":  {c.cfg.Rating},
	}

	var payload struct {
		Data Gif `json:"data"`
	}
	if err := c.get(ctx, "/random", params, &payload); err != nil {
		c.logger.Warn("images.giphy.random_failed", "tag", tag, "error", err)
		pool := placeholderGifs(tag)
		return &pool[0]
	}
	return &payload.Data
}

// TrendingGifs returns the current trending gifs.
func (c *GiphyClient) TrendingGifs(ctx context.Context, limit int) []Gif {
	if c.cfg.APIKey == "" {
		return placeholderGifs("trending")
	}
	if limit <= 0 || limit > c.cfg.Limit {
		limit = c.cfg.Limit
	}

	params := url.Values{
		"api_key": {c.cfg.APIKey},
		"limit":   {strconv.Itoa(limit)},
		"rating":  {c.cfg.Rating},
	}

	var payload struct {
		Data []Gif `json:"data"`
	}
	if err := c.get(ctx, "/trending", params, &payload); err != nil {
		c.logger.Warn("images.giphy.trending_failed", "error", err)
		return placeholderGifs("trending")
	}
	return payload.Data
}

var giphyTagQueries = map[string]string{
	"react":       "react programming",
	"javascript":  "javascript coding",
	"typescript":  "typescript",
	"go":          "golang",
	"web":         "web development",
	"frontend":    "frontend developer",
	"backend":     "backend programming",
	"database":    "database",
	"api":         "api",
	"security":    "cybersecurity",
	"performance": "performance",
	"design":      "web design",
	"tutorial":    "programming tutorial",
	"success":     "success celebration",
	"error":       "error bug",
	"loading":     "loading wait",
}

// GifForTags resolves the first tag that yields a gif, defaulting to a
// programming query when no tag produces one.
func (c *GiphyClient) GifForTags(ctx context.Context, tags []string) *Gif {
	for _, tag := range tags {
		query := tag
		if mapped, ok := giphyTagQueries[strings.ToLower(tag)]; ok {
			query = mapped
		}
		if gif := c.RandomGif(ctx, query); gif != nil {
			return gif
		}
	}
	return c.RandomGif(ctx, "programming")
}

// OptimizedURL picks the rendition best suited to the requested size. The
// fixed-height variant is already optimized upstream.
func (c *GiphyClient) OptimizedURL(gif *Gif, width, height int) string {
	if gif == nil {
		return ""
	}
	switch {
	case width > 0 && height > 0:
		return gif.Images.FixedHeight.URL
	case width > 0 && width <= 400:
		return gif.Images.DownsizedMedium.URL
	default:
		return gif.Images.Original.URL
	}
}

// EmbedCode renders the iframe snippet for a gif.
func (c *GiphyClient) EmbedCode(gif *Gif, width, height int) string {
	if gif == nil {
		return ""
	}
	if width <= 0 {
		width = 400
	}
	heightAttr := ""
	if height > 0 {
		heightAttr = fmt.Sprintf(` height="%d"`, height)
	}
	return fmt.Sprintf(
		`<iframe src="%s" width="%d"%s frameBorder="0" class="giphy-embed" allowFullScreen></iframe>`,
		gif.EmbedURL, width, heightAttr,
	)
}

func (c *GiphyClient) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("giphy request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("giphy api status %d", res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode giphy response: %w", err)
	}
	return nil
}

func placeholderGifs(query string) []Gif {
	build := func(id, title, media, embedSlug, pageURL string) Gif {
		var gif Gif
		gif.ID = id
		gif.Title = title
		gif.Images.Original = GifRendition{URL: media + "/giphy.gif", Width: "480", Height: "270"}
		gif.Images.DownsizedMedium = GifRendition{URL: media + "/giphy.gif", Width: "400", Height: "225"}
		gif.Images.FixedHeight = GifRendition{URL: media + "/200.gif", Width: "358", Height: "200"}
		gif.EmbedURL = "https://giphy.com/embed/" + embedSlug
		gif.URL = pageURL
		return gif
	}

	return []Gif{
		build(
			"placeholder-1",
			query+" related GIF",
			"https://media.giphy.com/media/3oKIPnAiaMCws8nOsE",
			"3oKIPnAiaMCws8nOsE",
			"https://giphy.com/gifs/computer-code-3oKIPnAiaMCws8nOsE",
		),
		build(
			"placeholder-2",
			"Programming GIF",
			"https://media.giphy.com/media/L1R1tvI9svkIWwpVYr",
			"L1R1tvI9svkIWwpVYr",
			"https://giphy.com/gifs/react-javascript-programming-L1R1tvI9svkIWwpVYr",
		),
	}
}
