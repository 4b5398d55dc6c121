package extract

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/blueparser/internal/entity"
)

// RegulationFAC is the regulation_type recorded for F.A.C. citations.
const RegulationFAC = "Florida Administrative Code"

var (
	drawingRefPattern    = regexp.MustCompile(`(?i)\bSEE\s+(DRAWING|DWG|SHEET|DETAIL)\s+([A-Z0-9-]+)`)
	regulationRefPattern = regexp.MustCompile(`(?i)(F\.A\.C\.|\bFAC\b)\s+(?:RULE\s+)?(\d+-[\d.]+)`)
	accordancePattern    = regexp.MustCompile(`(?i)\bIN ACCORDANCE WITH\s+([^\n.]+)`)
)

// ReferenceExtractor finds cross-drawing, regulation and standards references.
type ReferenceExtractor struct{}

func (ReferenceExtractor) Name() string { return NameReference }

func (ReferenceExtractor) Extract(page Page) (any, error) {
	return ParseReferences(page.Text), nil
}

// ParseReferences returns drawing references, then regulations, then
// "in accordance with" citations.
func ParseReferences(text string) []entity.Reference {
	refs := []entity.Reference{}
	for _, m := range drawingRefPattern.FindAllStringSubmatch(text, -1) {
		refs = append(refs, entity.Reference{
			Type:          entity.RefDrawing,
			ReferenceType: strings.ToUpper(m[1]),
			ReferenceID:   m[2],
		})
	}
	for _, m := range regulationRefPattern.FindAllStringSubmatch(text, -1) {
		code := strings.TrimRight(m[2], ".")
		if code == "" {
			continue
		}
		refs = append(refs, entity.Reference{
			Type:           entity.RefRegulation,
			RegulationType: RegulationFAC,
			Code:           code,
		})
	}
	for _, m := range accordancePattern.FindAllStringSubmatch(text, -1) {
		desc := strings.TrimSpace(m[1])
		if desc == "" {
			continue
		}
		refs = append(refs, entity.Reference{Type: entity.RefStandard, Description: desc})
	}
	return refs
}
