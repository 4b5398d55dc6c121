package entity

import "github.com/joseph-ayodele/blueparser/constants"

// Classification is derived per document and never persisted on its own.
// Confidence is keyword hits divided by 10 and may exceed 1.0.
type Classification struct {
	DrawingType       constants.DrawingType `json:"drawing_type"`
	Discipline        constants.Discipline  `json:"discipline"`
	HasTable          bool                  `json:"has_table"`
	HasNotes          bool                  `json:"has_notes"`
	HasLegend         bool                  `json:"has_legend"`
	HasSpecifications bool                  `json:"has_specifications"`
	Confidence        float64               `json:"confidence"`
}
