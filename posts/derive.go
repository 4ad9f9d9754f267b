package posts

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// ExcerptLength is the maximum rune count of a derived excerpt.
	ExcerptLength = 200
	// readingCharsPerMinute approximates reading speed in characters.
	readingCharsPerMinute = 200
)

var (
	atxHeaderPattern = regexp.MustCompile(`(?m)^#{1,6}\s+.*$`)
	blankRunPattern  = regexp.MustCompile(`\n\n+`)
)

// deriveExcerpt produces a listing excerpt from the raw markdown body: ATX
// header lines are stripped, paragraph breaks collapse to a single space, and
// the text is truncated to ExcerptLength runes. The ellipsis is appended
// whether or not truncation occurred, matching the site's observed output.
func deriveExcerpt(body string) string {
	text := atxHeaderPattern.ReplaceAllString(body, "")
	text = blankRunPattern.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	return truncateRunes(text, ExcerptLength) + "..."
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}

// deriveReadingTime estimates reading time in whole minutes from the raw
// body, rounding up.
func deriveReadingTime(body string) int {
	n := utf8.RuneCountInString(body)
	return (n + readingCharsPerMinute - 1) / readingCharsPerMinute
}

// extractCover pulls the first embedded image out of rendered HTML and
// returns the remaining HTML with that tag removed. Hoisting the image into
// a dedicated cover field while stripping it from the body avoids showing the
// same image twice on the article page.
func extractCover(html string) (cover, remaining string) {
	tag := htmlFirstImagePattern.FindStringIndex(html)
	if tag == nil {
		return "", html
	}
	if src := htmlImageSrcPattern.FindStringSubmatch(html[tag[0]:tag[1]]); src != nil {
		cover = src[1]
	}
	return cover, html[:tag[0]] + html[tag[1]:]
}
