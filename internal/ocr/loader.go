// Package ocr adapts OCR collaborator output into the pipeline's Document model.
package ocr

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/blueparser/internal/common"
	"github.com/joseph-ayodele/blueparser/internal/entity"
)

// Loader reads OCR documents from JSON.
type Loader struct {
	logger *slog.Logger
	schema *jsonschema.Schema
}

func NewLoader(logger *slog.Logger) (*Loader, error) {
	if logger == nil {
		logger = slog.Default()
	}
	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}
	return &Loader{logger: logger, schema: schema}, nil
}

// Load reads and decodes the OCR document at path.
func (l *Loader) Load(ctx context.Context, path string) (entity.Document, error) {
	if err := ctx.Err(); err != nil {
		return entity.Document{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return entity.Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := l.Decode(data)
	if err != nil {
		l.logger.Warn("ocr.load.rejected", "path", path, "err", err)
		return entity.Document{}, fmt.Errorf("decode %s: %w", path, err)
	}
	l.logger.Debug("ocr document loaded", "path", path, "items", len(doc.Items), "tables", len(doc.Tables))
	return doc, nil
}

// Decode validates data against the document schema and normalizes the items.
func (l *Loader) Decode(data []byte) (entity.Document, error) {
	if err := validateDocument(l.schema, data); err != nil {
		return entity.Document{}, err
	}
	var doc entity.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return entity.Document{}, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	doc.Items = NormalizeItems(doc.Items)
	return doc, nil
}
