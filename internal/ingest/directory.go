package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/blueparser/constants"
)

// DefaultExts are the extensions discovered when none are configured.
var DefaultExts = []string{"json"}

type FileResult struct {
	Path string
	Err  string
}

type DirStats struct {
	Scanned   uint32
	Matched   uint32
	Succeeded uint32
	Failed    uint32
}

// VisitFunc handles one discovered document.
type VisitFunc func(ctx context.Context, path string) error

// WalkDirectory walks root, filters by includeExts (or DefaultExts), skips hidden entries if requested,
// and calls visit for each match. Returns per-file results + aggregate stats.
// Walking stops early when ctx is done.
func WalkDirectory(ctx context.Context, root string, includeExts []string, skipHidden bool, visit VisitFunc) ([]FileResult, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root_path is required")
	}
	exts := extSet(includeExts)

	var results []FileResult
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats.Scanned++
		if walkErr != nil {
			results = append(results, FileResult{Path: path, Err: walkErr.Error()})
			stats.Failed++
			return nil
		}
		if skipHidden && path != root && isHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !allowed(path, exts) {
			return nil
		}
		stats.Matched++

		if err := visit(ctx, path); err != nil {
			results = append(results, FileResult{Path: path, Err: err.Error()})
			stats.Failed++
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return nil
		}
		results = append(results, FileResult{Path: path})
		stats.Succeeded++
		return nil
	})

	if err != nil {
		return results, stats, fmt.Errorf("walk: %w", err)
	}
	return results, stats, nil
}

func extSet(includeExts []string) map[string]struct{} {
	exts := map[string]struct{}{}
	if len(includeExts) == 0 {
		for e := range constants.AllowedExtensions {
			exts[e] = struct{}{}
		}
		return exts
	}
	for _, e := range includeExts {
		if e = constants.NormalizeExt(strings.TrimSpace(e)); e != "" {
			exts[e] = struct{}{}
		}
	}
	return exts
}

// allowed skips files the exporter wrote so in-place outputs are never re-ingested.
func allowed(path string, exts map[string]struct{}) bool {
	if constants.IsExportOutput(filepath.Base(path)) {
		return false
	}
	_, ok := exts[constants.NormalizeExt(filepath.Ext(path))]
	return ok
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".")
}
