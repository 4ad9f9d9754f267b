package exporter

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-blog/posts"
)

func writeFixture(t *testing.T, root, rel, content string) {
	t.Helper()
	target := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func mustPostsService(t *testing.T, contentDir string) posts.Service {
	t.Helper()
	svc, err := posts.NewService(posts.Config{ContentDir: contentDir})
	if err != nil {
		t.Fatal(err)
	}
	return svc
}

func newFixtureService(t *testing.T) (Service, string, string) {
	t.Helper()
	contentDir := t.TempDir()
	outputDir := t.TempDir()

	writeFixture(t, contentDir, "hello.md", `---
title: Hello
date: "2025-03-01"
tags: [go]
---

# Hello

![diagram](img/diagram.png)

Body text.
`)
	writeFixture(t, contentDir, "hello/img/diagram.png", "png-bytes")
	writeFixture(t, contentDir, "plain.md", "Just a body with no front matter.\n")
	writeFixture(t, contentDir, "img/shared.png", "shared-bytes")

	postsSvc, err := posts.NewService(posts.Config{ContentDir: contentDir})
	if err != nil {
		t.Fatal(err)
	}

	svc, err := NewService(
		Config{ContentDir: contentDir, OutputDir: outputDir, SiteTitle: "Test Blog"},
		Dependencies{Posts: postsSvc},
	)
	if err != nil {
		t.Fatal(err)
	}
	return svc, contentDir, outputDir
}

func TestNewServiceValidation(t *testing.T) {
	if _, err := NewService(Config{OutputDir: "out"}, Dependencies{}); err != errPostsRequired {
		t.Fatalf("expected errPostsRequired, got %v", err)
	}

	postsSvc, err := posts.NewService(posts.Config{ContentDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewService(Config{}, Dependencies{Posts: postsSvc}); err != errOutputDirRequired {
		t.Fatalf("expected errOutputDirRequired, got %v", err)
	}
}

func TestBuildWritesPagesAndIndex(t *testing.T) {
	svc, _, outputDir := newFixtureService(t)

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if result.PagesBuilt != 2 {
		t.Fatalf("expected 2 pages, got %d", result.PagesBuilt)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors %v", result.Errors)
	}

	page, err := os.ReadFile(filepath.Join(outputDir, "articles", "hello", "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	html := string(page)
	if !strings.Contains(html, "<title>Hello | Test Blog</title>") {
		t.Fatalf("missing title in page:\n%s", html)
	}
	if !strings.Contains(html, `src="/articles/hello/img/diagram.png"`) {
		t.Fatalf("expected rewritten image reference in page:\n%s", html)
	}

	index, err := os.ReadFile(filepath.Join(outputDir, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(index), `href="/articles/hello/"`) {
		t.Fatalf("expected post link in index:\n%s", index)
	}

	data, err := os.ReadFile(filepath.Join(outputDir, "posts.json"))
	if err != nil {
		t.Fatal(err)
	}
	var list []posts.Post
	if err := json.Unmarshal(data, &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 posts in json index, got %d", len(list))
	}
}

func TestBuildSelectedSlugs(t *testing.T) {
	svc, _, outputDir := newFixtureService(t)

	result, err := svc.Build(context.Background(), BuildOptions{Slugs: []string{"plain"}})
	if err != nil {
		t.Fatal(err)
	}
	if result.PagesBuilt != 1 {
		t.Fatalf("expected 1 page, got %d", result.PagesBuilt)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "articles", "hello", "index.html")); !os.IsNotExist(err) {
		t.Fatal("unselected post must not be rendered")
	}
}

func TestBuildDryRun(t *testing.T) {
	svc, _, outputDir := newFixtureService(t)

	result, err := svc.Build(context.Background(), BuildOptions{DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if !result.DryRun || result.PagesBuilt != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "index.html")); !os.IsNotExist(err) {
		t.Fatal("dry run must not write files")
	}
}

func TestClean(t *testing.T) {
	svc, _, outputDir := newFixtureService(t)

	if _, err := svc.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatal(err)
	}
	writeFixture(t, outputDir, "keep.txt", "keep")

	if err := svc.Clean(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "articles")); !os.IsNotExist(err) {
		t.Fatal("articles tree must be removed")
	}
	if _, err := os.Stat(filepath.Join(outputDir, "index.html")); !os.IsNotExist(err) {
		t.Fatal("index.html must be removed")
	}
	if _, err := os.Stat(filepath.Join(outputDir, "keep.txt")); err != nil {
		t.Fatal("unrelated files must survive Clean")
	}
}
