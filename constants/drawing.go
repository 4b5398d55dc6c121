package constants

import (
	"strings"
)

// DrawingType is the closed vocabulary of drawing kinds the classifier can emit.
type DrawingType string

const (
	PumpStation        DrawingType = "pump_station"
	StandardsDetail    DrawingType = "standards_detail"
	PipingDiagram      DrawingType = "piping_diagram"
	FloorPlan          DrawingType = "floor_plan"
	SitePlan           DrawingType = "site_plan"
	SpecificationTable DrawingType = "specification_table"
	UnknownType        DrawingType = "unknown"
)

// Declaration order matters: classifier ties resolve to the earliest entry.
var allDrawingTypes = []DrawingType{
	PumpStation,
	StandardsDetail,
	PipingDiagram,
	FloorPlan,
	SitePlan,
	SpecificationTable,
	UnknownType,
}

// Discipline is the closed vocabulary of engineering disciplines.
type Discipline string

const (
	Mechanical        Discipline = "mechanical"
	Civil             Discipline = "civil"
	Electrical        Discipline = "electrical"
	Structural        Discipline = "structural"
	Plumbing          Discipline = "plumbing"
	UnknownDiscipline Discipline = "unknown"
)

var allDisciplines = []Discipline{
	Mechanical,
	Civil,
	Electrical,
	Structural,
	Plumbing,
	UnknownDiscipline,
}

// DrawingTypes returns every drawing type in declaration order.
func DrawingTypes() []DrawingType {
	out := make([]DrawingType, len(allDrawingTypes))
	copy(out, allDrawingTypes)
	return out
}

// Disciplines returns every discipline in declaration order.
func Disciplines() []Discipline {
	out := make([]Discipline, len(allDisciplines))
	copy(out, allDisciplines)
	return out
}

// ParseDrawingType maps a label onto the vocabulary. Unknown labels map to UnknownType.
func ParseDrawingType(input string) (DrawingType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	for _, t := range allDrawingTypes {
		if normalized == string(t) {
			return t, true
		}
	}
	return UnknownType, false
}

// ParseDiscipline maps a label onto the vocabulary. Unknown labels map to UnknownDiscipline.
func ParseDiscipline(input string) (Discipline, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	for _, d := range allDisciplines {
		if normalized == string(d) {
			return d, true
		}
	}
	return UnknownDiscipline, false
}
