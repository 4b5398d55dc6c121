package parsers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/blueparser/constants"
	"github.com/joseph-ayodele/blueparser/internal/core/extract"
	"github.com/joseph-ayodele/blueparser/internal/core/zones"
	"github.com/joseph-ayodele/blueparser/internal/entity"
)

// Standards detail zone labels.
const (
	ZoneTitle   = "title"
	ZoneTable   = "table_area"
	ZoneNotes   = "notes_area"
	ZoneDiagram = "diagram_area"
)

const (
	requirementWindow = 100
	// UnitUnspecified is the unit of a requirement stated without one.
	UnitUnspecified = "unspecified"
)

var (
	notesPrefix        = regexp.MustCompile(`^\(\d+\)`)
	minimumRequirement = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(inches|inch|feet|ft|in)?\s*(?:is\s+the\s+)?minimum`)
	preferredRequired  = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(inch|feet|ft|in)?\s*preferred`)
)

// StandardsDetailScheme splits a standards detail sheet.
var StandardsDetailScheme = zones.Scheme{
	Labels: []string{ZoneTitle, ZoneTable, ZoneNotes, ZoneDiagram},
	Rules: []zones.Rule{
		func(it entity.TextItem) string {
			if zones.IsBottom(it) {
				return ZoneTitle
			}
			return ""
		},
		func(it entity.TextItem) string {
			low := strings.ToLower(it.Text)
			if strings.Contains(low, "minimum") || strings.Contains(low, "ft") {
				return ZoneTable
			}
			return ""
		},
		func(it entity.TextItem) string {
			if notesPrefix.MatchString(it.Text) {
				return ZoneNotes
			}
			return ""
		},
	},
	Fallback: ZoneDiagram,
}

// StandardsDetailParser adds minimum and preferred requirements to the universal passes.
type StandardsDetailParser struct {
	RowTolerance float64
}

func NewStandardsDetailParser() *StandardsDetailParser {
	return &StandardsDetailParser{RowTolerance: extract.DefaultRowTolerance}
}

// Segment partitions items with StandardsDetailScheme.
func (p *StandardsDetailParser) Segment(items []entity.TextItem) (*zones.Zones, error) {
	z, err := StandardsDetailScheme.Apply(items)
	if err != nil {
		return nil, fmt.Errorf("standards detail: %w", err)
	}
	return z, nil
}

func (p *StandardsDetailParser) Parse(items []entity.TextItem) (entity.SpecializedData, error) {
	z, err := p.Segment(items)
	if err != nil {
		return nil, err
	}
	page := fullPage(items)
	return &entity.StandardsDetailData{
		DocumentType:   constants.StandardsDetail,
		TitleBlock:     extract.ParseTitleBlock(entity.JoinText(z.Get(ZoneTitle))),
		Tables:         extract.DetectTables(items, p.RowTolerance),
		Notes:          extract.ParseNotes(page.Text),
		Specifications: extract.ParseSpecifications(page.Text),
		References:     extract.ParseReferences(page.Text),
		Requirements:   ParseRequirements(page.Text),
	}, nil
}

// ParseRequirements returns minimum clauses, then preferred clauses.
func ParseRequirements(text string) []entity.Requirement {
	out := []entity.Requirement{}
	out = appendRequirements(out, text, minimumRequirement, entity.RequirementMinimum)
	out = appendRequirements(out, text, preferredRequired, entity.RequirementPreferred)
	return out
}

func appendRequirements(out []entity.Requirement, text string, re *regexp.Regexp, kind string) []entity.Requirement {
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		unit := m[2]
		if unit == "" {
			unit = UnitUnspecified
		}
		out = append(out, entity.Requirement{
			Type:    kind,
			Value:   m[1],
			Unit:    unit,
			Context: extract.Context(text, m[0], requirementWindow),
		})
	}
	return out
}
