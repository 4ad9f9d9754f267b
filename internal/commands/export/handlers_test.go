package exportcmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-blog/internal/exporter"
	goerrors "github.com/goliatone/go-errors"
)

type stubExporter struct {
	buildCalls  int
	buildOpts   exporter.BuildOptions
	buildErr    error
	mirrorCalls int
	mirrorErr   error
}

func (s *stubExporter) Build(ctx context.Context, opts exporter.BuildOptions) (*exporter.BuildResult, error) {
	s.buildCalls++
	s.buildOpts = opts
	if s.buildErr != nil {
		return nil, s.buildErr
	}
	return &exporter.BuildResult{PagesBuilt: 3}, nil
}

func (s *stubExporter) MirrorAssets(ctx context.Context) (*exporter.MirrorResult, error) {
	s.mirrorCalls++
	if s.mirrorErr != nil {
		return nil, s.mirrorErr
	}
	return &exporter.MirrorResult{FilesCopied: 2}, nil
}

func (s *stubExporter) Clean(ctx context.Context) error { return nil }

func TestBuildSiteHandler(t *testing.T) {
	stub := &stubExporter{}
	h := NewBuildSiteHandler(stub, nil)

	msg := BuildSiteCommand{Slugs: []string{"hello"}, DryRun: true}
	if err := h.Execute(context.Background(), msg); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if stub.buildCalls != 1 {
		t.Fatalf("expected 1 build call, got %d", stub.buildCalls)
	}
	if !stub.buildOpts.DryRun || len(stub.buildOpts.Slugs) != 1 {
		t.Fatalf("options not forwarded: %+v", stub.buildOpts)
	}
}

func TestBuildSiteHandlerRejectsBlankSlug(t *testing.T) {
	stub := &stubExporter{}
	h := NewBuildSiteHandler(stub, nil)

	err := h.Execute(context.Background(), BuildSiteCommand{Slugs: []string{" "}})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if stub.buildCalls != 0 {
		t.Fatal("expected build not to run when validation fails")
	}
}

func TestBuildSiteHandlerWrapsExportFailure(t *testing.T) {
	stub := &stubExporter{buildErr: errors.New("disk full")}
	h := NewBuildSiteHandler(stub, nil)

	err := h.Execute(context.Background(), BuildSiteCommand{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestMirrorAssetsHandler(t *testing.T) {
	stub := &stubExporter{}
	h := NewMirrorAssetsHandler(stub, nil)

	if err := h.Execute(context.Background(), MirrorAssetsCommand{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if stub.mirrorCalls != 1 {
		t.Fatalf("expected 1 mirror call, got %d", stub.mirrorCalls)
	}
}

func TestFixAnchorsHandlerRewritesFiles(t *testing.T) {
	dir := t.TempDir()
	source := "# 1. Getting Started\n\nBody.\n"
	if err := os.WriteFile(filepath.Join(dir, "guide.md"), []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not markdown"), 0o644); err != nil {
		t.Fatal(err)
	}

	h := NewFixAnchorsHandler(nil)
	if err := h.Execute(context.Background(), FixAnchorsCommand{Directory: dir}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "guide.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "{#") {
		t.Fatalf("expected explicit anchor in rewritten file:\n%s", data)
	}

	untouched, err := os.ReadFile(filepath.Join(dir, "notes.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(untouched) != "not markdown" {
		t.Fatal("non-markdown files must stay untouched")
	}
}

func TestFixAnchorsHandlerDryRun(t *testing.T) {
	dir := t.TempDir()
	source := "# 1. Getting Started\n\nBody.\n"
	target := filepath.Join(dir, "guide.md")
	if err := os.WriteFile(target, []byte(source), 0o644); err != nil {
		t.Fatal(err)
	}

	h := NewFixAnchorsHandler(nil)
	if err := h.Execute(context.Background(), FixAnchorsCommand{Directory: dir, DryRun: true}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != source {
		t.Fatal("dry run must not rewrite files")
	}
}

func TestFixAnchorsHandlerRequiresDirectory(t *testing.T) {
	h := NewFixAnchorsHandler(nil)

	err := h.Execute(context.Background(), FixAnchorsCommand{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}
