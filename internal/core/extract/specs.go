package extract

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/blueparser/internal/entity"
)

const specContextWindow = 50

var (
	// Units are listed longest first so "inches" never stops at "in".
	measurementPattern = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(?:(feet|inches|inch|ft|in|mm|cm|minimum|maximum|min|max|m)\b|(["']))`)
	materialPattern    = regexp.MustCompile(`\b(PVC|SS|DI|HDPE|PE|FG|316L?|STEEL|IRON|ALUMINUM|BRASS|COPPER)\b`)
	standardPattern    = regexp.MustCompile(`(?i)\b(ASTM|ANSI|API|ASME|AWS|IEEE|NFPA|IBC|UBC|ACI|PVC|AWWA)\s*[A-Z]?[-\s]?\d+[.\d]*`)
)

// SpecificationExtractor finds measurements, material codes and standards citations.
type SpecificationExtractor struct{}

func (SpecificationExtractor) Name() string { return NameSpecification }

func (SpecificationExtractor) Extract(page Page) (any, error) {
	return ParseSpecifications(page.Text), nil
}

// ParseSpecifications returns measurements, then distinct materials in first
// occurrence order, then standards.
func ParseSpecifications(text string) []entity.Specification {
	specs := []entity.Specification{}

	for _, m := range measurementPattern.FindAllStringSubmatch(text, -1) {
		unit := m[2]
		if unit == "" {
			unit = m[3]
		}
		specs = append(specs, entity.Specification{
			Type:    entity.SpecMeasurement,
			Value:   m[1],
			Unit:    unit,
			Context: Context(text, m[0], specContextWindow),
		})
	}

	seen := map[string]bool{}
	for _, m := range materialPattern.FindAllString(text, -1) {
		if seen[m] {
			continue
		}
		seen[m] = true
		specs = append(specs, entity.Specification{
			Type:    entity.SpecMaterial,
			Value:   m,
			Context: Context(text, m, specContextWindow),
		})
	}

	for _, m := range standardPattern.FindAllString(text, -1) {
		v := strings.TrimSpace(m)
		specs = append(specs, entity.Specification{
			Type:    entity.SpecStandard,
			Value:   v,
			Context: Context(text, v, specContextWindow),
		})
	}
	return specs
}
