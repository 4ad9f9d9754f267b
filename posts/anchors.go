package posts

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/goliatone/go-slug"
)

var (
	headingPattern       = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+?)(?:\s+\{#([^}]+)\})?\s*$`)
	numberPrefixPattern  = regexp.MustCompile(`^[\d.]+\s+|^\d+[、.]\s*`)
	tocLinkPattern       = regexp.MustCompile(`\[([^\]]+)\]\(#([^)]+)\)`)
	anchorDisallowedRune = func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ' && r != '-'
	}
)

// FixAnchors assigns every heading in the markdown body a stable, unique
// anchor id and rewrites in-document table-of-contents links to match. The
// heading-to-id map is scoped to a single document. Numeric prefixes such as
// "1.2 " or "3、" are stripped before slugging so TOC entries written without
// them still resolve.
func FixAnchors(body string) string {
	seen := map[string]struct{}{}
	titleToID := map[string]string{}

	fixed := headingPattern.ReplaceAllStringFunc(body, func(match string) string {
		parts := headingPattern.FindStringSubmatch(match)
		level, title := parts[1], parts[2]

		id := anchorID(title)
		finalID := id
		for counter := 1; ; counter++ {
			if _, dup := seen[finalID]; !dup {
				break
			}
			finalID = fmt.Sprintf("%s-%d", id, counter)
		}
		seen[finalID] = struct{}{}

		titleToID[numberPrefixPattern.ReplaceAllString(title, "")] = finalID

		return level + " " + title + " {#" + finalID + "}"
	})

	return tocLinkPattern.ReplaceAllStringFunc(fixed, func(match string) string {
		parts := tocLinkPattern.FindStringSubmatch(match)
		text := numberPrefixPattern.ReplaceAllString(parts[1], "")
		if id, ok := titleToID[text]; ok {
			return "[" + parts[1] + "](#" + id + ")"
		}
		return match
	})
}

// anchorID normalizes heading text into an anchor id. ASCII headings run
// through go-slug; headings that normalize to nothing (e.g. CJK text, which
// go-slug transliterates away) fall back to a unicode-preserving slug so the
// anchor still carries the heading.
func anchorID(title string) string {
	text := numberPrefixPattern.ReplaceAllString(title, "")

	if normalized, err := slug.Normalize(text); err == nil && normalized != "" {
		return normalized
	}
	return unicodeSlug(text)
}

func unicodeSlug(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	var b strings.Builder
	for _, r := range text {
		if anchorDisallowedRune(r) {
			continue
		}
		b.WriteRune(r)
	}
	out := strings.Join(strings.Fields(b.String()), "-")
	return strings.Trim(out, "-")
}
