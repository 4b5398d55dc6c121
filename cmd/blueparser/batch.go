package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/blueparser/internal/core/async"
	"github.com/joseph-ayodele/blueparser/internal/ingest"
)

var (
	batchOutDir     string
	batchFormats    []string
	batchExts       []string
	batchSkipHidden bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Parse every OCR document under a directory",
	Long: `Walk a directory for OCR documents and parse them on a worker pool
($BATCH_WORKERS, $BATCH_QUEUE_SIZE, $BATCH_TIMEOUT). Each document gets
<name>_parsed.json, <name>_specs.csv and <name>_parsed.xlsx. With --out the
input tree's subdirectories are mirrored under it. Existing outputs are never
picked up as inputs.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchOutDir, "out", "", "output directory (default: each input file's directory)")
	batchCmd.Flags().StringSliceVarP(&batchFormats, "format", "f", []string{"json", "csv", "xlsx"}, "export formats: json, csv, xlsx")
	batchCmd.Flags().StringSliceVar(&batchExts, "ext", ingest.DefaultExts, "file extensions to pick up")
	batchCmd.Flags().BoolVar(&batchSkipHidden, "skip-hidden", true, "skip hidden files and directories")
}

func runBatch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	fmts, err := toFormats(batchFormats)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	root := args[0]

	repo, closeRepo, err := a.openRepository(ctx)
	if err != nil {
		return err
	}
	defer closeRepo()

	start := time.Now()
	q := newQueue(a, a.resultSink(batchOutDir, []string{root}, fmts, repo))

	a.logger.Info("starting batch", "dir", root, "workers", a.cfg.Batch.Workers)
	_, stats, walkErr := ingest.WalkDirectory(ctx, root, batchExts, batchSkipHidden, func(ctx context.Context, path string) error {
		return q.Enqueue(ctx, async.NewJob(path))
	})

	// Queued jobs are drained even when the walk stopped early.
	q.Shutdown(context.Background())
	s := q.Stats()

	a.logger.Info("batch complete",
		"dir", root,
		"matched", stats.Matched,
		"enqueue_failed", stats.Failed,
		"done", s.Done,
		"invalid", s.Invalid,
		"failed", s.Failed,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Processed %d documents from %s: %d valid, %d invalid, %d failed\n",
		s.Total(), filepath.Clean(root), s.Done, s.Invalid, s.Failed)
	a.writeMetrics()

	if walkErr != nil {
		return walkErr
	}
	if s.Failed > 0 {
		return fmt.Errorf("%d of %d documents failed", s.Failed, s.Total())
	}
	return nil
}
