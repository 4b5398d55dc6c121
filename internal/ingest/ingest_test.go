package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"text_items":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWalkDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.json"))
	writeFile(t, filepath.Join(root, "sub", "B.JSON"))
	writeFile(t, filepath.Join(root, "notes.txt"))
	writeFile(t, filepath.Join(root, ".hidden", "c.json"))
	writeFile(t, filepath.Join(root, "bad.json"))

	var visited []string
	results, stats, err := WalkDirectory(context.Background(), root, nil, true, func(_ context.Context, path string) error {
		visited = append(visited, filepath.Base(path))
		if filepath.Base(path) == "bad.json" {
			return errors.New("boom")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WalkDirectory: %v", err)
	}
	sort.Strings(visited)
	if want := []string{"B.JSON", "a.json", "bad.json"}; len(visited) != len(want) || visited[0] != want[0] || visited[1] != want[1] || visited[2] != want[2] {
		t.Errorf("visited = %v, want %v", visited, want)
	}
	if stats.Matched != 3 || stats.Succeeded != 2 || stats.Failed != 1 {
		t.Errorf("stats = %+v", stats)
	}
	var failed int
	for _, r := range results {
		if r.Err != "" {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("results with errors = %d, want 1", failed)
	}
}

func TestWalkDirectoryCustomExts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.ocr"))
	writeFile(t, filepath.Join(root, "b.json"))

	_, stats, err := WalkDirectory(context.Background(), root, []string{".OCR"}, false, func(context.Context, string) error { return nil })
	if err != nil {
		t.Fatalf("WalkDirectory: %v", err)
	}
	if stats.Matched != 1 {
		t.Errorf("Matched = %d, want 1", stats.Matched)
	}
}

func TestWalkDirectorySkipsExportOutputs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.json"))
	writeFile(t, filepath.Join(root, "a_parsed.json"))
	writeFile(t, filepath.Join(root, "sub", "B_PARSED.JSON"))

	var visited []string
	_, stats, err := WalkDirectory(context.Background(), root, nil, false, func(_ context.Context, path string) error {
		visited = append(visited, filepath.Base(path))
		return nil
	})
	if err != nil {
		t.Fatalf("WalkDirectory: %v", err)
	}
	if stats.Matched != 1 || len(visited) != 1 || visited[0] != "a.json" {
		t.Errorf("visited = %v, stats = %+v", visited, stats)
	}
}

func TestWalkDirectoryRequiresRoot(t *testing.T) {
	if _, _, err := WalkDirectory(context.Background(), " ", nil, false, nil); err == nil {
		t.Fatal("expected error for empty root")
	}
}

func TestWalkDirectoryCanceled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.json"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := WalkDirectory(ctx, root, nil, false, func(context.Context, string) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestStartWatcher(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "existing.json"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{root}, InitialScan: true, Debounce: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("StartWatcher: %v", err)
	}

	next := func() string {
		t.Helper()
		select {
		case p := <-events:
			return filepath.Base(p)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for watcher event")
			return ""
		}
	}
	if got := next(); got != "existing.json" {
		t.Fatalf("initial event = %q", got)
	}

	writeFile(t, filepath.Join(root, "ignored.txt"))
	writeFile(t, filepath.Join(root, "existing_parsed.json"))
	writeFile(t, filepath.Join(root, "new.json"))
	if got := next(); got != "new.json" {
		t.Fatalf("event = %q, want new.json", got)
	}

	cancel()
	for range events {
	}
}

func TestStartWatcherNoRoots(t *testing.T) {
	if _, _, err := StartWatcher(context.Background(), WatchConfig{}); err == nil {
		t.Fatal("expected error without roots")
	}
}
