package posts_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-blog/posts"
)

func newTestService(t *testing.T) posts.Service {
	t.Helper()

	fsys := fstest.MapFS{
		"first.md": {Data: []byte(`---
title: First Article
date: "2024-03-01"
description: the first one
author: Jane
tags:
  - Go
  - Testing
category: tech-notes
---

# First Article

![cover](img/one.png)

Body of the first article with enough text to read.
`)},
		"first/img/one.png": {Data: []byte("png")},
		"second.md":         {Data: []byte("No frontmatter at all, just body text.\n")},
		"third.md": {Data: []byte(`---
title: Third Article
date: "2024-05-10"
category:
  - reading-notes
excerpt: custom excerpt
tags:
  - go
---

Plain body without images.
`)},
		"tie-a.md": {Data: []byte("---\ntitle: Tie A\ndate: \"2024-01-01\"\n---\nbody a\n")},
		"tie-b.md": {Data: []byte("---\ntitle: Tie B\ndate: \"2024-01-01\"\n---\nbody b\n")},
		"broken.md": {Data: []byte(`---
title: [unterminated
---
body
`)},
		"notes.txt": {Data: []byte("not markdown")},
	}

	svc, err := posts.NewService(posts.Config{}, posts.WithFS(fsys))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestListAppliesDefaultsAndSkipsBadFiles(t *testing.T) {
	svc := newTestService(t)

	all, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 posts (broken one skipped), got %d", len(all))
	}

	var second *posts.Post
	for i := range all {
		if all[i].Slug == "second" {
			second = &all[i]
		}
		if all[i].Content != "" {
			t.Fatalf("listing must not carry content: %s", all[i].Slug)
		}
	}
	if second == nil {
		t.Fatalf("second.md missing from listing")
	}
	if second.Title != posts.DefaultTitle {
		t.Fatalf("Title = %q, want %q", second.Title, posts.DefaultTitle)
	}
	if second.Author != posts.DefaultAuthor {
		t.Fatalf("Author = %q, want %q", second.Author, posts.DefaultAuthor)
	}
	if second.Tags == nil || len(second.Tags) != 0 {
		t.Fatalf("Tags should default to empty slice: %#v", second.Tags)
	}
	if second.Date == "" {
		t.Fatalf("Date should default to ingestion time")
	}
}

func TestListSortsByDateDescending(t *testing.T) {
	svc := newTestService(t)

	all, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	// second.md defaults to today's date and therefore sorts first.
	wantOrder := []string{"second", "third", "first", "tie-a", "tie-b"}
	for i, want := range wantOrder {
		if all[i].Slug != want {
			t.Fatalf("position %d = %s, want %s (full order %v)", i, all[i].Slug, want, slugsOf(all))
		}
	}
}

func TestListTieOrderStable(t *testing.T) {
	svc := newTestService(t)

	for range 3 {
		all, err := svc.List(context.Background())
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		order := slugsOf(all)
		a, b := indexOf(order, "tie-a"), indexOf(order, "tie-b")
		if a < 0 || b < 0 || a > b {
			t.Fatalf("tie order changed: %v", order)
		}
	}
}

func TestListDerivesSummaryFields(t *testing.T) {
	svc := newTestService(t)

	all, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	var first posts.Post
	for _, p := range all {
		if p.Slug == "first" {
			first = p
		}
	}
	if first.CoverImage != "/articles/first/img/one.png" {
		t.Fatalf("CoverImage = %q", first.CoverImage)
	}
	if first.Category != posts.CategoryTechNotes {
		t.Fatalf("Category = %q", first.Category)
	}
}

func TestGetFullResolution(t *testing.T) {
	svc := newTestService(t)

	post, err := svc.Get(context.Background(), "first")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if post.CoverImage != "/articles/first/img/one.png" {
		t.Fatalf("CoverImage = %q", post.CoverImage)
	}
	if strings.Contains(post.Content, "one.png") {
		t.Fatalf("cover image must be stripped from content: %q", post.Content)
	}
	if !strings.Contains(post.Content, "Body of the first article") {
		t.Fatalf("body text missing from content: %q", post.Content)
	}
	if !strings.HasSuffix(post.Excerpt, "...") {
		t.Fatalf("derived excerpt should end with ellipsis: %q", post.Excerpt)
	}
	if strings.Contains(post.Excerpt, "# First Article") {
		t.Fatalf("headers must be stripped from excerpt: %q", post.Excerpt)
	}
	if post.ReadingTime < 1 {
		t.Fatalf("ReadingTime = %d", post.ReadingTime)
	}
}

func TestGetExcerptOverride(t *testing.T) {
	svc := newTestService(t)

	post, err := svc.Get(context.Background(), "third")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if post.Excerpt != "custom excerpt" {
		t.Fatalf("frontmatter excerpt must win: %q", post.Excerpt)
	}
	if post.Category != posts.CategoryReadingNotes {
		t.Fatalf("Category = %q", post.Category)
	}
}

func TestGetNoImagesLeavesContentAlone(t *testing.T) {
	svc := newTestService(t)

	post, err := svc.Get(context.Background(), "third")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if post.CoverImage != "" {
		t.Fatalf("CoverImage = %q, want empty", post.CoverImage)
	}
	if !strings.Contains(post.Content, "Plain body without images.") {
		t.Fatalf("content should be untouched by stripping: %q", post.Content)
	}
}

func TestGetIdempotent(t *testing.T) {
	svc := newTestService(t)

	a, err := svc.Get(context.Background(), "first")
	if err != nil {
		t.Fatalf("first Get: %v", err)
	}
	b, err := svc.Get(context.Background(), "first")
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("repeated Get must be field-for-field identical:\n%#v\n%#v", a, b)
	}
}

func TestGetNotFound(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, posts.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestGetDegradesBrokenFileToNotFound(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Get(context.Background(), "broken"); !errors.Is(err, posts.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound for broken article, got %v", err)
	}
}

func TestListByTagCaseInsensitive(t *testing.T) {
	svc := newTestService(t)

	matched, err := svc.ListByTag(context.Background(), "GO")
	if err != nil {
		t.Fatalf("ListByTag: %v", err)
	}
	if got := slugsOf(matched); len(got) != 2 {
		t.Fatalf("expected first and third to match, got %v", got)
	}
}

func TestTagsSortedUnion(t *testing.T) {
	svc := newTestService(t)

	tags, err := svc.Tags(context.Background())
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	want := []string{"Go", "Testing", "go"}
	if !reflect.DeepEqual(tags, want) {
		t.Fatalf("Tags = %v, want %v", tags, want)
	}
}

func TestListByCategory(t *testing.T) {
	svc := newTestService(t)

	all, err := svc.ListByCategory(context.Background(), "")
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("empty category must return everything, got %d", len(all))
	}

	tech, err := svc.ListByCategory(context.Background(), string(posts.CategoryTechNotes))
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if got := slugsOf(tech); len(got) != 1 || got[0] != "first" {
		t.Fatalf("tech-notes = %v", got)
	}

	none, err := svc.ListByCategory(context.Background(), "nonexistent-category")
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("unknown category must match nothing, got %v", slugsOf(none))
	}
}

func TestCategoriesClosedSet(t *testing.T) {
	svc := newTestService(t)

	got := svc.Categories()
	if !reflect.DeepEqual(got, posts.AllCategories()) {
		t.Fatalf("Categories = %v", got)
	}
}

func TestLatest(t *testing.T) {
	svc := newTestService(t)

	latest, err := svc.Latest(context.Background(), 2)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if got := slugsOf(latest); len(got) != 2 || got[0] != "second" {
		t.Fatalf("Latest = %v", got)
	}
}

func TestSlugs(t *testing.T) {
	svc := newTestService(t)

	slugs, err := svc.Slugs(context.Background())
	if err != nil {
		t.Fatalf("Slugs: %v", err)
	}
	if len(slugs) != 6 {
		t.Fatalf("Slugs should include every .md stem (even broken ones): %v", slugs)
	}
}

func slugsOf(list []posts.Post) []string {
	out := make([]string, len(list))
	for i, p := range list {
		out[i] = p.Slug
	}
	return out
}

func indexOf(list []string, value string) int {
	for i, v := range list {
		if v == value {
			return i
		}
	}
	return -1
}
