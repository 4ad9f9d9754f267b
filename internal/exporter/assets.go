package exporter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// MirrorAssets copies article image folders into the output tree so rewritten
// references resolve. Per-article folders land under articles/<slug>/img, the
// shared folder under articles/img. Content directories without images are
// not an error.
func (s *service) MirrorAssets(ctx context.Context) (*MirrorResult, error) {
	started := s.now()
	result := &MirrorResult{}

	entries, err := os.ReadDir(s.cfg.ContentDir)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, fmt.Errorf("exporter: read content dir: %w", err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() {
			continue
		}

		var src, dst string
		if entry.Name() == "img" {
			src = filepath.Join(s.cfg.ContentDir, "img")
			dst = filepath.Join(s.cfg.OutputDir, "articles", "img")
		} else {
			src = filepath.Join(s.cfg.ContentDir, entry.Name(), "img")
			dst = filepath.Join(s.cfg.OutputDir, "articles", entry.Name(), "img")
			if _, err := os.Stat(src); err != nil {
				continue
			}
		}

		copied, skipped, err := copyDir(src, dst)
		if err != nil {
			return nil, err
		}
		result.FilesCopied += copied
		result.FilesSkipped += skipped
	}

	result.Duration = s.now().Sub(started)
	s.logger.Debug("exporter.mirror.done",
		"copied", result.FilesCopied,
		"skipped", result.FilesSkipped,
	)
	return result, nil
}

func copyDir(src, dst string) (copied, skipped int, err error) {
	entries, err := os.ReadDir(src)
	if err != nil {
		return 0, 0, fmt.Errorf("exporter: read %s: %w", src, err)
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return 0, 0, fmt.Errorf("exporter: ensure dir %s: %w", dst, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			skipped++
			continue
		}
		if err := copyFile(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
			return copied, skipped, err
		}
		copied++
	}
	return copied, skipped, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("exporter: open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("exporter: create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("exporter: copy %s: %w", src, err)
	}
	return out.Close()
}
