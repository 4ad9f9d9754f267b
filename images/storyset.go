package images

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// StorysetConfig configures the illustration adapter. Unlike the other two
// providers, illustrations resolve through parameterized URL construction;
// only SVG downloads hit the network.
type StorysetConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Logger  interfaces.Logger
}

// StorysetClient maps tags onto curated illustration identifiers.
type StorysetClient struct {
	cfg    StorysetConfig
	http   *http.Client
	logger interfaces.Logger
	pick   func(n int) int
}

// Illustration is a resolved Storyset illustration reference.
type Illustration struct {
	ID          string
	Title       string
	URL         string
	DownloadURL string
	Category    string
	Tags        []string
	ColorMode   string
}

const (
	defaultIllustrationColor = "#0D47A1"
	defaultIllustrationMode  = "colored"
)

// NewStorysetClient constructs the illustration adapter.
func NewStorysetClient(cfg StorysetConfig) *StorysetClient {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://storyset.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &StorysetClient{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
		pick:   rand.Intn,
	}
}

// illustrationIDs is the curated catalogue, keyed by topic.
var illustrationIDs = map[string][]string{
	"web":         {"web-setup", "programming", "web-design", "responsive", "dashboard"},
	"development": {"coding", "pair-programming", "code-review", "debugging", "testing"},
	"data":        {"data-analytics", "database", "big-data", "cloud-storage", "api"},
	"security":    {"cybersecurity", "firewall", "encryption", "authentication", "privacy"},
	"team":        {"teamwork", "collaboration", "meeting", "presentation", "communication"},
	"education":   {"learning", "tutorial", "online-education", "certification", "study"},
	"business":    {"startup", "innovation", "strategy", "growth", "success"},
	"mobile":      {"app-development", "responsive-design", "mobile-app", "user-interface"},
	"performance": {"optimization", "speed", "loading", "efficiency", "analysis"},
	"error":       {"404-error", "bug", "system-failure", "maintenance", "warning"},
	"success":     {"success", "completion", "achievement", "goal", "celebration"},
}

// IllustrationURL builds the parameterized public URL for an illustration.
func (c *StorysetClient) IllustrationURL(id string, opts Options) string {
	color, mode := illustrationStyle(opts)
	params := url.Values{
		"color": {strings.TrimPrefix(color, "#")},
		"mode":  {mode},
	}
	return c.cfg.BaseURL + "/illustration/" + id + "?" + params.Encode()
}

// IllustrationForTags recommends an illustration for the article's tags. A
// tag matches a topic on substring in either direction; no match falls back
// to the web catalogue, so the result is never nil.
func (c *StorysetClient) IllustrationForTags(tags []string, opts Options) *Illustration {
	for _, tag := range tags {
		lower := strings.ToLower(tag)
		for category, ids := range illustrationIDs {
			if strings.Contains(lower, category) || strings.Contains(category, lower) {
				id := ids[c.pick(len(ids))]
				return c.illustration(id, tag, category, opts)
			}
		}
	}

	defaults := illustrationIDs["web"]
	id := defaults[c.pick(len(defaults))]
	return c.illustration(id, "default", "web", opts)
}

// EmbedCode renders the lazy-loading embed snippet with attribution.
func (c *StorysetClient) EmbedCode(ill *Illustration, width, height int) string {
	if ill == nil {
		return ""
	}
	if width <= 0 {
		width = 400
	}
	if height <= 0 {
		height = 300
	}
	return fmt.Sprintf(
		`<div class="storyset-illustration" style="width: %dpx; height: %dpx;">`+
			`<img src="%s" alt="%s" style="width: 100%%; height: 100%%; object-fit: contain;" loading="lazy">`+
			`<p class="attribution">Illustration by <a href="https://storyset.com" target="_blank" rel="noopener noreferrer">Storyset</a></p>`+
			`</div>`,
		width, height, ill.URL, ill.Title,
	)
}

// SVG fetches the illustration's SVG markup. Fetch failures and a missing
// credential both yield a locally generated placeholder SVG, never an error.
func (c *StorysetClient) SVG(ctx context.Context, id string, opts Options) string {
	color, mode := illustrationStyle(opts)

	if c.cfg.APIKey == "" {
		return placeholderSVG(id, color)
	}

	endpoint := fmt.Sprintf(
		"https://api.storyset.com/v1/illustration/%s/svg?color=%s&mode=%s",
		id, strings.TrimPrefix(color, "#"), mode,
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return placeholderSVG(id, color)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("images.storyset.svg_failed", "id", id, "error", err)
		return placeholderSVG(id, color)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		c.logger.Warn("images.storyset.svg_failed", "id", id, "status", res.StatusCode)
		return placeholderSVG(id, color)
	}
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return placeholderSVG(id, color)
	}
	return string(data)
}

func (c *StorysetClient) illustration(id, title, category string, opts Options) *Illustration {
	color, mode := illustrationStyle(opts)
	return &Illustration{
		ID:    id,
		Title: title + " illustration",
		URL:   c.IllustrationURL(id, opts),
		DownloadURL: fmt.Sprintf(
			"https://api.storyset.com/v1/illustration/%s/download?color=%s&mode=%s",
			id, strings.TrimPrefix(color, "#"), mode,
		),
		Category:  category,
		Tags:      []string{title, category},
		ColorMode: mode,
	}
}

func illustrationStyle(opts Options) (color, mode string) {
	color = opts.Color
	if color == "" {
		color = defaultIllustrationColor
	}
	mode = opts.Mode
	if mode == "" {
		mode = defaultIllustrationMode
	}
	return color, mode
}

func placeholderSVG(id, color string) string {
	label := strings.ToUpper(strings.ReplaceAll(id, "-", " "))
	return fmt.Sprintf(
		`<svg viewBox="0 0 400 300" xmlns="http://www.w3.org/2000/svg">`+
			`<rect width="400" height="300" fill="#f5f5f5"/>`+
			`<rect x="100" y="75" width="200" height="150" fill="%s" rx="10" opacity="0.1"/>`+
			`<circle cx="200" cy="150" r="40" fill="%s" opacity="0.3"/>`+
			`<text x="200" y="250" text-anchor="middle" fill="%s" font-size="14">%s</text>`+
			`<text x="200" y="280" text-anchor="middle" fill="#999" font-size="12">Storyset Illustration</text>`+
			`</svg>`,
		color, color, color, label,
	)
}
