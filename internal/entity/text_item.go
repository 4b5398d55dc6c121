package entity

import "strings"

// BBox is a bounding box in page-normalized coordinates; every field is a fraction in [0,1].
type BBox struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the right edge of the box.
func (b BBox) Right() float64 { return b.Left + b.Width }

// Bottom returns the bottom edge of the box.
func (b BBox) Bottom() float64 { return b.Top + b.Height }

// TextItem is one recognized text span as supplied by the OCR collaborator.
type TextItem struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	BBox       BBox    `json:"bbox"`
	Page       int     `json:"page"`
}

// OCRTable is a table block pre-parsed by the OCR collaborator.
type OCRTable struct {
	Headers     []string   `json:"headers"`
	Rows        [][]string `json:"rows"`
	RowCount    int        `json:"row_count"`
	ColumnCount int        `json:"column_count"`
}

// KeyValue is a form field pre-parsed by the OCR collaborator.
type KeyValue struct {
	Key        string  `json:"key"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Document is the normalized OCR output for one drawing.
type Document struct {
	Items     []TextItem `json:"text_items"`
	Tables    []OCRTable `json:"tables,omitempty"`
	KeyValues []KeyValue `json:"key_values,omitempty"`
}

// JoinText concatenates item texts with single spaces, in input order.
func JoinText(items []TextItem) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.Text
	}
	return strings.Join(parts, " ")
}
