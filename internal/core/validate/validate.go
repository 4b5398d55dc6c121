// Package validate lints a merged ParseResult. It annotates and never edits the result.
package validate

import (
	"fmt"
	"strconv"

	"github.com/joseph-ayodele/blueparser/internal/common"
	"github.com/joseph-ayodele/blueparser/internal/entity"
)

// Messages emitted by Validate.
const (
	MsgNoTitleBlock     = "No title block information found"
	MsgNoDrawingNumber  = "Missing drawing number"
	MsgNoScale          = "No scale information found"
	msgBadMeasurement   = "Invalid measurement value: %s"
	msgExtractorFailure = "Extractor failure: %s"
)

// Validate checks title block completeness and measurement values, and turns
// recorded extractor failures into warnings.
func Validate(r *entity.ParseResult) entity.Validation {
	res := entity.Validation{IsValid: true, Errors: []string{}, Warnings: []string{}}
	addError := func(msg string) {
		res.Errors = append(res.Errors, msg)
		res.IsValid = false
	}
	addWarning := func(msg string) { res.Warnings = append(res.Warnings, msg) }

	if r == nil {
		addError(MsgNoDrawingNumber)
		return res
	}

	tb := r.UniversalData.TitleBlock
	if tb.Empty() {
		addWarning(MsgNoTitleBlock)
	}
	var number, scale *string
	if tb != nil {
		number, scale = tb.DrawingNumber, tb.Scale
	}
	fields := common.NewValidator().Field("drawing_number", number, common.Required)
	if fields.HasErrors() {
		addError(MsgNoDrawingNumber)
	}
	if common.NewValidator().Field("scale", scale, common.Required).HasErrors() {
		addWarning(MsgNoScale)
	}

	for _, s := range r.UniversalData.Specification {
		if s.Type != entity.SpecMeasurement {
			continue
		}
		if _, err := strconv.ParseFloat(s.Value, 64); err != nil {
			addError(fmt.Sprintf(msgBadMeasurement, s.Value))
		}
	}

	for _, f := range r.ExtractorFailures {
		addWarning(fmt.Sprintf(msgExtractorFailure, f))
	}
	return res
}
