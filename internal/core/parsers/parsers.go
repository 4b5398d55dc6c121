// Package parsers holds the drawing-type specific parsers. Each one re-segments the
// page with its own zone scheme and layers domain fields over the universal passes.
package parsers

import (
	"github.com/joseph-ayodele/blueparser/constants"
	"github.com/joseph-ayodele/blueparser/internal/core/extract"
	"github.com/joseph-ayodele/blueparser/internal/entity"
)

// Parser turns a page's items into drawing-type specific data.
type Parser interface {
	Parse(items []entity.TextItem) (entity.SpecializedData, error)
}

// Registry dispatches a classified drawing type to its parser.
type Registry map[constants.DrawingType]Parser

// DefaultRegistry returns the pump station and standards detail parsers.
func DefaultRegistry() Registry {
	return Registry{
		constants.PumpStation:     NewPumpStationParser(),
		constants.StandardsDetail: NewStandardsDetailParser(),
	}
}

// Lookup returns the parser for t, if one is registered.
func (r Registry) Lookup(t constants.DrawingType) (Parser, bool) {
	p, ok := r[t]
	return p, ok && p != nil
}

// fullPage builds a zone-less page; the title block pass then filters the bottom band itself.
func fullPage(items []entity.TextItem) extract.Page {
	return extract.Page{Items: items, Text: entity.JoinText(items)}
}
