package posts

import (
	"testing"
	"testing/fstest"
)

func newTestRewriter() *Rewriter {
	return NewRewriter(fstest.MapFS{
		"abc/img/photo.png": {Data: []byte("png")},
		"img/shared.png":    {Data: []byte("png")},
	})
}

func TestRewriteBodyPrefersArticleFolder(t *testing.T) {
	r := newTestRewriter()

	got := r.RewriteBody("![x](img/photo.png)", "abc")
	want := "![x](/articles/abc/img/photo.png)"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRewriteBodyFallsBackToSharedFolder(t *testing.T) {
	r := newTestRewriter()

	got := r.RewriteBody("![x](img/shared.png)", "abc")
	want := "![x](/articles/img/shared.png)"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRewriteBodyMissingFileStillUsesSharedPath(t *testing.T) {
	r := newTestRewriter()

	got := r.RewriteBody("![x](img/nowhere.png)", "abc")
	want := "![x](/articles/img/nowhere.png)"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRewriteBodyHTMLQuoteStyles(t *testing.T) {
	r := newTestRewriter()

	cases := []struct{ in, want string }{
		{
			`<img src="img/photo.png">`,
			`<img src="/articles/abc/img/photo.png">`,
		},
		{
			`<img src='img/photo.png'>`,
			`<img src="/articles/abc/img/photo.png">`,
		},
		{
			`<img class="wide" src='img/shared.png' width="10">`,
			`<img class="wide" src="/articles/img/shared.png" width="10">`,
		},
	}

	for _, tc := range cases {
		if got := r.RewriteBody(tc.in, "abc"); got != tc.want {
			t.Fatalf("RewriteBody(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRewriteBodyLeavesOtherReferencesAlone(t *testing.T) {
	r := newTestRewriter()

	cases := []string{
		"![x](/articles/img/photo.png)",
		"![x](https://example.com/photo.png)",
		"![x](pics/photo.png)",
		`<img src="/static/photo.png">`,
		`<img src="https://example.com/a.png">`,
	}

	for _, in := range cases {
		if got := r.RewriteBody(in, "abc"); got != in {
			t.Fatalf("RewriteBody(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestRewriteCover(t *testing.T) {
	r := newTestRewriter()

	cases := []struct{ in, want string }{
		{"img/photo.png", "/articles/abc/img/photo.png"},
		{"img/shared.png", "/articles/img/shared.png"},
		{"/already/absolute.png", "/already/absolute.png"},
		{"https://example.com/a.png", "https://example.com/a.png"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := r.RewriteCover(tc.in, "abc"); got != tc.want {
			t.Fatalf("RewriteCover(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFirstImageRef(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
		ok   bool
	}{
		{"markdown", "text ![a](img/a.png) more", "img/a.png", true},
		{"html", `text <img src="img/b.png"> more`, "img/b.png", true},
		{"markdown before html", "![a](img/a.png)\n<img src='img/b.png'>", "img/a.png", true},
		{"html before markdown", "<img src='img/b.png'>\n![a](img/a.png)", "img/b.png", true},
		{"none", "plain text only", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := firstImageRef(tc.body)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("firstImageRef(%q) = %q,%v want %q,%v", tc.body, got, ok, tc.want, tc.ok)
			}
		})
	}
}
