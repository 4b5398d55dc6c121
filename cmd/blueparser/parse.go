package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/blueparser/internal/entity"
)

var (
	parseOutDir  string
	parseFormats []string
)

var parseCmd = &cobra.Command{
	Use:   "parse <ocr.json>",
	Short: "Parse one OCR document and print a summary",
	Long: `Parse one OCR document, write the requested exports next to it (or to --out)
and print a summary of the classification, title block and validation result.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseOutDir, "out", "", "output directory (default: the input file's directory)")
	parseCmd.Flags().StringSliceVarP(&parseFormats, "format", "f", []string{"json"}, "export formats: json, csv, xlsx")
}

func runParse(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	fmts, err := toFormats(parseFormats)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	path := args[0]

	repo, closeRepo, err := a.openRepository(ctx)
	if err != nil {
		return err
	}
	defer closeRepo()

	start := time.Now()
	res, err := a.processor.ProcessFile(ctx, path)
	if err != nil {
		return err
	}

	dir := parseOutDir
	if dir == "" {
		dir = filepath.Dir(path)
	}
	written, err := a.exporter.Write(res, dir, stem(path), fmts...)
	if err != nil {
		return err
	}
	if repo != nil {
		d, err := repo.Save(ctx, path, res)
		if err != nil {
			return err
		}
		a.logger.Info("saved drawing", "drawing_id", d.ID, "path", path)
	}

	printSummary(cmd.OutOrStdout(), path, res)
	for _, w := range written {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote: %s\n", w)
	}
	a.logger.Debug("parse.done", "path", path, "elapsed_ms", time.Since(start).Milliseconds())
	a.writeMetrics()
	return nil
}

func printSummary(w io.Writer, path string, r *entity.ParseResult) {
	c := r.Classification
	fmt.Fprintf(w, "Document: %s\n", path)
	fmt.Fprintf(w, "Type: %s\n", c.DrawingType)
	fmt.Fprintf(w, "Discipline: %s\n", c.Discipline)
	fmt.Fprintf(w, "Confidence: %.2f\n", c.Confidence)

	if tb := r.UniversalData.TitleBlock; tb != nil {
		fmt.Fprintf(w, "Drawing Number: %s\n", orNA(tb.DrawingNumber))
		fmt.Fprintf(w, "Title: %s\n", orNA(tb.DrawingTitle))
	}
	fmt.Fprintf(w, "Specifications: %d\n", len(r.UniversalData.Specification))
	fmt.Fprintf(w, "Notes: %d\n", len(r.UniversalData.Notes))

	if v := r.Validation; v != nil {
		fmt.Fprintf(w, "Valid: %t\n", v.IsValid)
		for _, e := range v.Errors {
			fmt.Fprintf(w, "  error: %s\n", e)
		}
		for _, warn := range v.Warnings {
			fmt.Fprintf(w, "  warning: %s\n", warn)
		}
	}
}

func orNA(s *string) string {
	if s == nil {
		return "N/A"
	}
	return *s
}
