package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/blueparser/constants"
	"github.com/joseph-ayodele/blueparser/internal/common"
	"github.com/joseph-ayodele/blueparser/internal/entity"
)

// Format names an output file kind.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// AllFormats is every format Write understands, in write order.
var AllFormats = []Format{FormatJSON, FormatCSV, FormatXLSX}

// csvContextLen bounds the Context column of the specification CSV in runes.
const csvContextLen = 100

// FileName returns the output file name for stem in format f.
func FileName(stem string, f Format) string {
	switch f {
	case FormatCSV:
		return stem + constants.SpecsCSVSuffix
	case FormatXLSX:
		return stem + constants.ParsedXLSXSuffix
	default:
		return stem + constants.ParsedJSONSuffix
	}
}

// ParseFormat maps a flag value onto a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q: %w", s, common.ErrInvalidInput)
}

// Service renders ParseResults as JSON, specification CSV and XLSX workbooks.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// JSON pretty prints the result with two-space indentation.
func (s *Service) JSON(r *entity.ParseResult) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("export json: %w", common.ErrInvalidInput)
	}
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export json: %w", err)
	}
	return append(b, '\n'), nil
}

// SpecificationsCSV flattens the universal specifications into CSV rows.
// A result without specifications yields nil.
func (s *Service) SpecificationsCSV(r *entity.ParseResult) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("export csv: %w", common.ErrInvalidInput)
	}
	specs := r.UniversalData.Specification
	if len(specs) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Category", "Type", "Value", "Unit", "Context"})
	for _, sp := range specs {
		_ = w.Write([]string{"Specification", sp.Type, sp.Value, sp.Unit, truncate(sp.Context, csvContextLen)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Write renders r in each format into dir using stem as the base name and returns the written paths.
// A CSV with no rows is skipped.
func (s *Service) Write(r *entity.ParseResult, dir, stem string, formats ...Format) ([]string, error) {
	start := time.Now()
	if len(formats) == 0 {
		formats = AllFormats
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var written []string
	for _, f := range formats {
		var (
			data []byte
			err  error
		)
		switch f {
		case FormatJSON:
			data, err = s.JSON(r)
		case FormatCSV:
			data, err = s.SpecificationsCSV(r)
		case FormatXLSX:
			data, err = s.XLSX(r)
		default:
			err = fmt.Errorf("unknown format %q: %w", f, common.ErrInvalidInput)
		}
		if err != nil {
			return written, err
		}
		if data == nil {
			continue
		}
		path := filepath.Join(dir, FileName(stem, f))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	s.logger.Debug("export.write.ok",
		"stem", stem,
		"files", len(written),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return written, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n])
}
