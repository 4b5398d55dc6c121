package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/blueparser/internal/common"
	"github.com/joseph-ayodele/blueparser/internal/core"
	"github.com/joseph-ayodele/blueparser/internal/core/async"
	"github.com/joseph-ayodele/blueparser/internal/metrics"
	"github.com/joseph-ayodele/blueparser/internal/ocr"
	"github.com/joseph-ayodele/blueparser/internal/repository"
	"github.com/joseph-ayodele/blueparser/internal/services/export"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	logLevel string
	rawOCR   bool
	save     bool
)

var rootCmd = &cobra.Command{
	Use:   "blueparser",
	Short: "Structured data extraction from OCR'd engineering drawings",
	Long: `blueparser turns OCR output of engineering drawings into structured records.

Each document is classified by drawing type and discipline, then run through:
  - title block, notes, specification, reference and table extraction
  - a drawing-type specific parser (pump station, standards detail)
  - a validation pass that flags missing or malformed fields`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "", "log level: debug, info, warn or error (default: $LOG_LEVEL or info)",
	)
	rootCmd.PersistentFlags().BoolVar(
		&rawOCR, "raw-ocr", false, "echo the input document under raw_ocr (default: $INCLUDE_RAW_OCR)",
	)
	rootCmd.PersistentFlags().BoolVar(
		&save, "save", false, "persist results to the configured database ($DB_DRIVER, $DB_URL)",
	)

	rootCmd.AddCommand(parseCmd, batchCmd, watchCmd, versionCmd)
}

// app is the wiring shared by every command.
type app struct {
	cfg       *common.Config
	logger    *slog.Logger
	processor *core.Processor
	exporter  *export.Service
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg := common.LoadConfig()
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if cmd.Flags().Changed("raw-ocr") {
		cfg.Pipeline.IncludeRawOCR = rawOCR
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)
	metrics.RegisterPipelineMetrics()

	loader, err := ocr.NewLoader(logger)
	if err != nil {
		return nil, fmt.Errorf("init loader: %w", err)
	}
	proc := core.NewProcessor(logger,
		core.WithSource(loader),
		core.WithRowTolerance(cfg.Pipeline.TableRowTolerance),
		core.WithRawOCR(cfg.Pipeline.IncludeRawOCR),
	)
	return &app{
		cfg:       cfg,
		logger:    logger,
		processor: proc,
		exporter:  export.NewService(logger),
	}, nil
}

// openRepository connects when --save is set; otherwise it returns a nil repository.
func (a *app) openRepository(ctx context.Context) (repository.DrawingRepository, func(), error) {
	if !save {
		return nil, func() {}, nil
	}
	db, err := repository.Open(ctx, repository.ConfigFrom(a.cfg.Database), a.logger)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := db.Close(); err != nil {
			a.logger.Error("failed to close database", "error", err)
		}
	}
	return repository.NewDrawingRepository(db, a.logger), closeFn, nil
}

// writeMetrics dumps the pipeline counters when METRICS_FILE is set.
func (a *app) writeMetrics() {
	path := a.cfg.Metrics.TextfilePath
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		a.logger.Error("failed to write metrics textfile", "path", path, "error", err)
		return
	}
	a.logger.Info("wrote metrics textfile", "path", path)
}

func toFormats(values []string) ([]export.Format, error) {
	var out []export.Format
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part == "" {
				continue
			}
			f, err := export.ParseFormat(part)
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		}
	}
	return out, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// resultSink writes exports for every processed job and optionally persists it.
// With an output dir, each document's directory relative to its input root is
// mirrored under dir.
func (a *app) resultSink(dir string, roots []string, fmts []export.Format, repo repository.DrawingRepository) async.Sink {
	return async.SinkFunc(func(ctx context.Context, o async.Outcome) error {
		if o.Result == nil {
			return nil
		}
		if _, err := a.exporter.Write(o.Result, outputDir(dir, roots, o.Job.Path), stem(o.Job.Path), fmts...); err != nil {
			return fmt.Errorf("export %s: %w", o.Job.Path, err)
		}
		if repo != nil {
			if _, err := repo.Save(ctx, o.Job.Path, o.Result); err != nil {
				return fmt.Errorf("save %s: %w", o.Job.Path, err)
			}
		}
		return nil
	})
}

// outputDir returns where exports for path go. Paths outside every root land
// directly in dir.
func outputDir(dir string, roots []string, path string) string {
	if dir == "" {
		return filepath.Dir(path)
	}
	for _, root := range roots {
		rel, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		return filepath.Join(dir, rel)
	}
	return dir
}

func newQueue(a *app, sink async.Sink) *async.ProcessorQueue {
	return async.NewProcessorQueue(a.processor, a.logger,
		async.WithWorkers(a.cfg.Batch.Workers),
		async.WithQueueSize(a.cfg.Batch.QueueSize),
		async.WithProcessTimeout(a.cfg.Batch.Timeout),
		async.WithSink(sink),
	)
}
