package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"divicli/internal/dividend"
)

// Loader reads dividend export files into raw rows.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a Loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// LoadFile reads a single export file, dispatching on extension.
func (l *Loader) LoadFile(ctx context.Context, path string) ([]dividend.RawRow, error) {
	l.logger.InfoContext(ctx, "loading dividend export", slog.String("path", path))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ParseExcel(path)
	case ".csv", ".tsv", ".txt":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		return ParseTSV(f)
	default:
		return nil, fmt.Errorf("unsupported export format: %s", path)
	}
}

// LoadDir reads every supported export in a directory. Files parse
// concurrently, but the combined result is ordered by file name so repeated
// loads of the same directory are deterministic.
func (l *Loader) LoadDir(ctx context.Context, dir string) ([]dividend.RawRow, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".xlsx", ".csv", ".tsv", ".txt":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, fmt.Errorf("no dividend exports found in %s", dir)
	}

	perFile := make([][]dividend.RawRow, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, path := range paths {
		g.Go(func() error {
			rows, err := l.LoadFile(gctx, path)
			if err != nil {
				return err
			}
			perFile[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var combined []dividend.RawRow
	for _, rows := range perFile {
		combined = append(combined, rows...)
	}

	l.logger.InfoContext(ctx, "loaded dividend exports",
		slog.Int("files", len(paths)),
		slog.Int("rows", len(combined)))

	return combined, nil
}
