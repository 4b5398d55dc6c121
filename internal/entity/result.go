package entity

import "encoding/json"

// UniversalData holds the five universal passes. A nil field means that pass failed;
// a pass that ran and found nothing yields an empty, non-nil value.
type UniversalData struct {
	TitleBlock    *TitleBlock     `json:"titleblock"`
	Notes         []Note          `json:"notes"`
	Specification []Specification `json:"specification"`
	Reference     []Reference     `json:"reference"`
	Table         []Table         `json:"table"`
}

// Validation is the lint record attached to a ParseResult.
type Validation struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ParseResult is the merged pipeline output for one document. It is assembled once;
// only Validation is attached afterwards.
type ParseResult struct {
	Classification    Classification  `json:"classification"`
	UniversalData     UniversalData   `json:"universal_data"`
	SpecializedData   SpecializedData `json:"specialized_data"`
	ExtractorFailures []string        `json:"extractor_failures,omitempty"`
	RawOCR            *Document       `json:"raw_ocr,omitempty"`
	Validation        *Validation     `json:"validation,omitempty"`
}

// MarshalJSON renders a missing specialized parser result as {} rather than null.
func (r ParseResult) MarshalJSON() ([]byte, error) {
	type alias ParseResult
	out := struct {
		alias
		SpecializedData any `json:"specialized_data"`
	}{alias: alias(r), SpecializedData: r.SpecializedData}
	if r.SpecializedData == nil {
		out.SpecializedData = struct{}{}
	}
	return json.Marshal(out)
}
