package images

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// UnsplashConfig configures the photo adapter. A missing access key is not an
// error: the client degrades to its local placeholder pool.
type UnsplashConfig struct {
	AccessKey string
	BaseURL   string
	PerPage   int
	Timeout   time.Duration
	Logger    interfaces.Logger
}

// UnsplashClient wraps the Unsplash photo API. Every lookup degrades to a
// fixed local placeholder pool on failure; callers never observe an error.
type UnsplashClient struct {
	cfg    UnsplashConfig
	http   *http.Client
	logger interfaces.Logger
	pick   func(n int) int
}

// Photo is the subset of the Unsplash photo payload the blog consumes.
type Photo struct {
	ID   string `json:"id"`
	URLs struct {
		Regular string `json:"regular"`
		Small   string `json:"small"`
		Thumb   string `json:"thumb"`
	} `json:"urls"`
	Description    string `json:"description"`
	AltDescription string `json:"alt_description"`
	User           struct {
		Name     string `json:"name"`
		Username string `json:"username"`
	} `json:"user"`
}

// NewUnsplashClient constructs the photo adapter with bounded request
// timeouts.
func NewUnsplashClient(cfg UnsplashConfig) *UnsplashClient {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://api.unsplash.com"
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = 30
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &UnsplashClient{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
		pick:   rand.Intn,
	}
}

// SearchPhotos returns photos matching the query. Failures and a missing
// credential both yield the placeholder pool.
func (c *UnsplashClient) SearchPhotos(ctx context.Context, query string, page int, orientation string) []Photo {
	if c.cfg.AccessKey == "" {
		return c.placeholderPhotos(query)
	}
	if page <= 0 {
		page = 1
	}
	if orientation == "" {
		orientation = "landscape"
	}

	params := url.Values{
		"query":          {query},
		"page":           {strconv.Itoa(page)},
		"per_page":       {strconv.Itoa(c.cfg.PerPage)},
		"orientation":    {orientation},
		"content_filter": {"high"},
	}

	var payload struct {
		Results []Photo `json:"results"`
	}
	if err := c.get(ctx, "/search/photos", params, &payload); err != nil {
		c.logger.Warn("images.unsplash.search_failed", "query", query, "error", err)
		return c.placeholderPhotos(query)
	}
	return payload.Results
}

// RandomPhoto returns one photo for the query, falling back to a random
// member of the placeholder pool.
func (c *UnsplashClient) RandomPhoto(ctx context.Context, query, orientation string) *Photo {
	if query == "" {
		query = "technology"
	}
	if orientation == "" {
		orientation = "landscape"
	}
	if c.cfg.AccessKey == "" {
		return c.randomPlaceholder(query)
	}

	params := url.Values{
		"query":          {query},
		"orientation":    {orientation},
		"content_filter": {"high"},
	}

	var photo Photo
	if err := c.get(ctx, "/photos/random", params, &photo); err != nil {
		c.logger.Warn("images.unsplash.random_failed", "query", query, "error", err)
		return c.randomPlaceholder(query)
	}
	return &photo
}

// unsplashTagQueries maps article tags onto richer search queries. Unmapped
// tags pass through verbatim.
var unsplashTagQueries = map[string]string{
	"react":       "react programming",
	"javascript":  "javascript code",
	"typescript":  "typescript programming",
	"go":          "golang programming",
	"web":         "web development",
	"frontend":    "frontend development",
	"backend":     "backend programming",
	"database":    "database server",
	"api":         "api development",
	"security":    "cybersecurity",
	"performance": "performance optimization",
	"design":      "web design",
	"tutorial":    "programming tutorial",
	"css":         "css styling",
	"html":        "html development",
}

// PhotoForTags resolves the first tag that yields a photo, defaulting to a
// technology query when no tag produces one.
func (c *UnsplashClient) PhotoForTags(ctx context.Context, tags []string) *Photo {
	for _, tag := range tags {
		query := tag
		if mapped, ok := unsplashTagQueries[strings.ToLower(tag)]; ok {
			query = mapped
		}
		if photo := c.RandomPhoto(ctx, query, ""); photo != nil {
			return photo
		}
	}
	return c.RandomPhoto(ctx, "technology", "")
}

// OptimizedURL rebuilds a photo URL with sizing and format parameters.
func (c *UnsplashClient) OptimizedURL(photo *Photo, width, height int, format string) string {
	if photo == nil {
		return ""
	}
	if width <= 0 {
		width = 1080
	}
	if format == "" {
		format = "webp"
	}

	base := photo.URLs.Regular
	if i := strings.Index(base, "?"); i >= 0 {
		base = base[:i]
	}

	params := url.Values{
		"w":    {strconv.Itoa(width)},
		"fm":   {format},
		"q":    {"80"},
		"auto": {"format"},
	}
	if height > 0 {
		params.Set("h", strconv.Itoa(height))
		params.Set("fit", "crop")
	}
	return base + "?" + params.Encode()
}

func (c *UnsplashClient) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.cfg.AccessKey)

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("unsplash request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unsplash api status %d", res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode unsplash response: %w", err)
	}
	return nil
}

// placeholderBaseImages keys a small pool of known-good Unsplash URLs per
// topic. Queries not covering a known topic use the default pool.
var placeholderBaseImages = map[string][]string{
	"technology": {
		"https://images.unsplash.com/photo-1518770660439-4636190af475",
		"https://images.unsplash.com/photo-1555066931-4365d14bab8c",
		"https://images.unsplash.com/photo-1551288049-bebda4e38f71",
	},
	"programming": {
		"https://images.unsplash.com/photo-1461749280684-dccba630e2f6",
		"https://images.unsplash.com/photo-1526379095098-d400fd0bf935",
		"https://images.unsplash.com/photo-1555949963-ff9fe0c870eb",
	},
	"web": {
		"https://images.unsplash.com/photo-1507238691748-69788ddc46f5",
		"https://images.unsplash.com/photo-1558618666-fcd25c85cd64",
		"https://images.unsplash.com/photo-1551650975-87deedd944c3",
	},
	"default": {
		"https://images.unsplash.com/photo-1620712943543-bcc4688e7485",
		"https://images.unsplash.com/photo-1618477248223-acd07c46a640",
		"https://images.unsplash.com/photo-1593720213428-dea7ef758074",
	},
}

func (c *UnsplashClient) placeholderPhotos(query string) []Photo {
	pool := placeholderBaseImages["default"]
	lower := strings.ToLower(query)
	for topic, urls := range placeholderBaseImages {
		if topic != "default" && strings.Contains(lower, topic) {
			pool = urls
			break
		}
	}

	photos := make([]Photo, 0, len(pool))
	for i, base := range pool {
		var photo Photo
		photo.ID = fmt.Sprintf("placeholder-%d", i)
		photo.URLs.Regular = base + "?w=1080&fit=crop"
		photo.URLs.Small = base + "?w=400&fit=crop"
		photo.URLs.Thumb = base + "?w=200&fit=crop"
		photo.Description = fmt.Sprintf("%s related image %d", query, i+1)
		photo.AltDescription = query + " image from Unsplash"
		photo.User.Name = "Unsplash Photographer"
		photo.User.Username = "unsplash"
		photos = append(photos, photo)
	}
	return photos
}

func (c *UnsplashClient) randomPlaceholder(query string) *Photo {
	pool := c.placeholderPhotos(query)
	return &pool[c.pick(len(pool))]
}
