package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// FrontMatter is the structured metadata extracted from the top of an article
// file. Every field is optional in the source document; consumers apply
// defaults when narrowing into domain types. The loose key/value bag is kept
// in Custom and must not travel past this package's callers.
type FrontMatter struct {
	Title       string
	Date        string
	Description string
	Author      string
	Tags        []string
	Category    string
	Excerpt     string
	Custom      map[string]any
}

// ParseFrontMatter extracts metadata and the Markdown body from the provided
// source bytes. It fails only when the delimiter block itself is malformed;
// unexpected or junk metadata fields are tolerated and surface through Custom.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

type frontMatterEnvelope struct {
	Title       string         `yaml:"title"`
	Date        string         `yaml:"date"`
	Description string         `yaml:"description"`
	Author      string         `yaml:"author"`
	Tags        []string       `yaml:"tags"`
	Category    any            `yaml:"category"`
	Excerpt     string         `yaml:"excerpt"`
	Custom      map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) FrontMatter {
	return FrontMatter{
		Title:       env.Title,
		Date:        env.Date,
		Description: env.Description,
		Author:      env.Author,
		Tags:        append([]string(nil), env.Tags...),
		Category:    narrowCategory(env.Category),
		Excerpt:     env.Excerpt,
		Custom:      cloneMap(env.Custom),
	}
}

// narrowCategory accepts the two shapes content authors actually use: a plain
// scalar or a singleton list. Anything else collapses to the empty string.
func narrowCategory(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []any:
		if len(v) == 0 {
			return ""
		}
		if s, ok := v[0].(string); ok {
			return s
		}
		return ""
	case []string:
		if len(v) == 0 {
			return ""
		}
		return v[0]
	default:
		return ""
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
