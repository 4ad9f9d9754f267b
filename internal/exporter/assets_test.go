package exporter

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestMirrorAssets(t *testing.T) {
	svc, _, outputDir := newFixtureService(t)

	result, err := svc.MirrorAssets(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.FilesCopied != 2 {
		t.Fatalf("expected 2 files copied, got %d", result.FilesCopied)
	}

	perArticle := filepath.Join(outputDir, "articles", "hello", "img", "diagram.png")
	data, err := os.ReadFile(perArticle)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("unexpected file content %q", data)
	}

	shared := filepath.Join(outputDir, "articles", "img", "shared.png")
	if _, err := os.Stat(shared); err != nil {
		t.Fatalf("expected shared asset mirrored: %v", err)
	}
}

func TestMirrorAssetsMissingContentDir(t *testing.T) {
	postsDir := t.TempDir()
	svc, err := NewService(
		Config{ContentDir: filepath.Join(postsDir, "does-not-exist"), OutputDir: t.TempDir()},
		Dependencies{Posts: mustPostsService(t, postsDir)},
	)
	if err != nil {
		t.Fatal(err)
	}

	result, err := svc.MirrorAssets(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.FilesCopied != 0 {
		t.Fatalf("expected no copies, got %d", result.FilesCopied)
	}
}

func TestMirrorAssetsIdempotent(t *testing.T) {
	svc, _, _ := newFixtureService(t)

	if _, err := svc.MirrorAssets(context.Background()); err != nil {
		t.Fatal(err)
	}
	second, err := svc.MirrorAssets(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if second.FilesCopied != 2 {
		t.Fatalf("expected overwrite on second run, got %d copies", second.FilesCopied)
	}
}
