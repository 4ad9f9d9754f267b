package posts

import (
	"io/fs"
	"net/url"
	"path"
	"regexp"
	"strings"
)

// Rewriter rewrites relative image references so they resolve against the
// public static-export layout. An image referenced as img/<name> lives either
// in the article's own asset folder ({slug}/img/) or the shared fallback
// folder (img/) under the content root; at publish time both are mirrored
// beneath /articles/ on the public root.
type Rewriter struct {
	fsys fs.FS
}

// NewRewriter constructs a Rewriter that checks asset existence against the
// supplied filesystem, rooted at the content directory.
func NewRewriter(fsys fs.FS) *Rewriter {
	return &Rewriter{fsys: fsys}
}

var (
	mdImagePattern         = regexp.MustCompile(`!\[([^\]]*)\]\(img/([^)\s]+)\)`)
	htmlImageDoublePattern = regexp.MustCompile(`<img([^>]*?)src="img/([^"]+)"([^>]*?)>`)
	htmlImageSinglePattern = regexp.MustCompile(`<img([^>]*?)src='img/([^']+)'([^>]*?)>`)
	htmlFirstImagePattern  = regexp.MustCompile(`<img[^>]*>`)
	htmlImageSrcPattern    = regexp.MustCompile(`<img[^>]*?src=["']([^"']+)["'][^>]*>`)
	mdFirstImagePattern    = regexp.MustCompile(`!\[[^\]]*\]\(([^)\s]+)\)`)
)

// RewriteBody rewrites every relative image reference in a markdown body,
// covering markdown image syntax and raw HTML img tags in both quote styles.
// HTML attributes are normalized to double quotes. References that do not
// start with img/ (absolute paths, full URLs, other relative paths) pass
// through untouched even when broken.
func (r *Rewriter) RewriteBody(body, slug string) string {
	out := mdImagePattern.ReplaceAllStringFunc(body, func(match string) string {
		parts := mdImagePattern.FindStringSubmatch(match)
		return "![" + parts[1] + "](" + r.resolve(slug, parts[2]) + ")"
	})

	rewriteTag := func(pattern *regexp.Regexp) {
		out = pattern.ReplaceAllStringFunc(out, func(match string) string {
			parts := pattern.FindStringSubmatch(match)
			return "<img" + parts[1] + `src="` + r.resolve(slug, parts[2]) + `"` + parts[3] + ">"
		})
	}
	rewriteTag(htmlImageDoublePattern)
	rewriteTag(htmlImageSinglePattern)

	return out
}

// RewriteCover applies the per-article-first, shared-second resolution rule
// to a single extracted image path. Absolute paths and full URLs are returned
// unchanged.
func (r *Rewriter) RewriteCover(src, slug string) string {
	if src == "" {
		return ""
	}
	if strings.HasPrefix(src, "/") {
		return src
	}
	if u, err := url.Parse(src); err == nil && u.Scheme != "" {
		return src
	}
	return r.resolve(slug, strings.TrimPrefix(src, "img/"))
}

// resolve maps a bare image reference onto the mirrored public layout,
// preferring the article's own asset folder when the file exists on disk.
func (r *Rewriter) resolve(slug, ref string) string {
	name := path.Base(ref)
	if r.exists(path.Join(slug, "img", name)) {
		return "/articles/" + slug + "/img/" + name
	}
	return "/articles/img/" + name
}

func (r *Rewriter) exists(p string) bool {
	if r.fsys == nil {
		return false
	}
	info, err := fs.Stat(r.fsys, p)
	return err == nil && !info.IsDir()
}

// firstImageRef returns the first image reference in a raw markdown body.
// Both markdown syntax and raw HTML img tags are considered; the one that
// appears earliest in the source wins.
func firstImageRef(body string) (string, bool) {
	mdLoc := mdFirstImagePattern.FindStringSubmatchIndex(body)
	htmlLoc := htmlImageSrcPattern.FindStringSubmatchIndex(body)

	switch {
	case mdLoc == nil && htmlLoc == nil:
		return "", false
	case htmlLoc == nil || (mdLoc != nil && mdLoc[0] < htmlLoc[0]):
		return body[mdLoc[2]:mdLoc[3]], true
	default:
		return body[htmlLoc[2]:htmlLoc[3]], true
	}
}
