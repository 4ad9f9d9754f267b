package markdown

import (
	"bytes"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

// RenderOptions control how the goldmark engine is assembled per invocation.
type RenderOptions struct {
	Extensions     []string
	HardWraps      bool
	SafeMode       bool
	HighlightStyle string
	LineNumbers    bool
}

// GoldmarkRenderer converts article Markdown into HTML using the goldmark
// engine. The renderer is intentionally stateless so callers can reuse a
// single instance across requests without additional locking.
type GoldmarkRenderer struct {
	defaults RenderOptions
}

// NewGoldmarkRenderer constructs a renderer with blog defaults: GFM
// extensions, raw-HTML passthrough, auto heading IDs, and chroma-backed code
// highlighting with line numbers. Unknown code-block languages fall back to a
// plain lexer rather than failing the render.
func NewGoldmarkRenderer(defaults RenderOptions) *GoldmarkRenderer {
	if strings.TrimSpace(defaults.HighlightStyle) == "" {
		defaults.HighlightStyle = "github"
	}
	return &GoldmarkRenderer{defaults: defaults}
}

// Render converts Markdown into HTML using the renderer's default options.
func (r *GoldmarkRenderer) Render(markdown []byte) ([]byte, error) {
	return r.RenderWithOptions(markdown, r.defaults)
}

// RenderWithOptions converts Markdown into HTML using the supplied options.
func (r *GoldmarkRenderer) RenderWithOptions(markdown []byte, opts RenderOptions) ([]byte, error) {
	if strings.TrimSpace(opts.HighlightStyle) == "" {
		opts.HighlightStyle = r.defaults.HighlightStyle
	}
	engine := newGoldmarkEngine(opts)
	var buf bytes.Buffer
	if err := engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}

// newGoldmarkEngine builds a goldmark.Markdown configured from the supplied
// options. Unsupported extension names are ignored.
func newGoldmarkEngine(opts RenderOptions) goldmark.Markdown {
	exts := collectExtensions(opts.Extensions)
	exts = append(exts, highlighting.NewHighlighting(
		highlighting.WithStyle(opts.HighlightStyle),
		highlighting.WithFormatOptions(
			chromahtml.WithLineNumbers(opts.LineNumbers),
		),
	))

	parserOptions := []parser.Option{
		parser.WithAutoHeadingID(),
		// Heading attributes keep the {#anchor} ids emitted by the anchor fixer.
		parser.WithAttribute(),
	}

	rendererOptions := []renderer.Option{}

	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	if !opts.SafeMode {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parserOptions...),
		goldmark.WithExtensions(exts...),
	}

	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}

	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}

		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}
