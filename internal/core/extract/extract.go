// Package extract holds the universal extraction passes. Each pass is independent
// of the others and reads only the immutable Page it is given.
package extract

import (
	"unicode/utf8"

	"github.com/joseph-ayodele/blueparser/internal/core/zones"
	"github.com/joseph-ayodele/blueparser/internal/entity"
)

// Universal pass names; they double as the universal_data keys.
const (
	NameTitleBlock    = "titleblock"
	NameNotes         = "notes"
	NameSpecification = "specification"
	NameReference     = "reference"
	NameTable         = "table"
)

// Page is the read-only input shared by every pass.
type Page struct {
	Items []entity.TextItem
	Text  string
	Zones *zones.Zones
}

// NewPage joins item text and applies the default zone scheme.
func NewPage(items []entity.TextItem) (Page, error) {
	z, err := zones.Segment(items)
	if err != nil {
		return Page{}, err
	}
	return Page{Items: items, Text: entity.JoinText(items), Zones: z}, nil
}

// Extractor is one universal pass. Extract returns the value stored under Name()
// in universal_data.
type Extractor interface {
	Name() string
	Extract(page Page) (any, error)
}

// Universal returns the five universal passes in output order.
func Universal(rowTolerance float64) []Extractor {
	return []Extractor{
		TitleBlockExtractor{},
		NotesExtractor{},
		SpecificationExtractor{},
		ReferenceExtractor{},
		TableExtractor{RowTolerance: rowTolerance},
	}
}

// Context returns the text within window bytes either side of the first occurrence
// of term, trimmed. It is empty when term does not occur.
func Context(text, term string, window int) string {
	idx := indexOf(text, term)
	if idx < 0 {
		return ""
	}
	start := idx - window
	if start < 0 {
		start = 0
	}
	end := idx + len(term) + window
	if end > len(text) {
		end = len(text)
	}
	for start < idx && !utf8.RuneStart(text[start]) {
		start++
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}
	return trimSpace(text[start:end])
}
