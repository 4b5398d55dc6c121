package ocr

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/blueparser/internal/common"
)

//go:embed schema.json
var documentSchema []byte

const schemaURL = "ocr_document.json"

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(documentSchema)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// validateDocument checks raw OCR JSON against the document schema.
func validateDocument(schema *jsonschema.Schema, data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: unmarshal document: %v", common.ErrInvalidInput, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: document does not match schema: %v", common.ErrInvalidInput, err)
	}
	return nil
}
