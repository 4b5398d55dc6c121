package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/blueparser/internal/core/async"
	"github.com/joseph-ayodele/blueparser/internal/ingest"
)

var (
	watchOutDir      string
	watchFormats     []string
	watchInitialScan bool
	watchDebounce    time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir> [dir...]",
	Short: "Parse OCR documents as they appear in watched directories",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchOutDir, "out", "", "output directory (default: each input file's directory)")
	watchCmd.Flags().StringSliceVarP(&watchFormats, "format", "f", []string{"json", "csv", "xlsx"}, "export formats: json, csv, xlsx")
	watchCmd.Flags().BoolVar(&watchInitialScan, "initial-scan", false, "also parse documents already present")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "coalesce bursts of file events")
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	fmts, err := toFormats(watchFormats)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	repo, closeRepo, err := a.openRepository(ctx)
	if err != nil {
		return err
	}
	defer closeRepo()

	events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       args,
		InitialScan: watchInitialScan,
		Debounce:    watchDebounce,
		Logger:      a.logger,
	})
	if err != nil {
		return err
	}

	q := newQueue(a, a.resultSink(watchOutDir, args, fmts, repo))
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Batch.Timeout)
		defer cancel()
		q.Shutdown(shutdownCtx)
		a.writeMetrics()
	}()

	a.logger.Info("watching for documents", "roots", args)
	for {
		select {
		case path, ok := <-events:
			if !ok {
				return nil
			}
			if err := q.Enqueue(ctx, async.NewJob(path)); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				a.logger.Error("failed to enqueue document", "path", path, "error", err)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			a.logger.Warn("watcher reported error", "error", err)
		case <-ctx.Done():
			return nil
		}
	}
}
