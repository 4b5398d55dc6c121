package parsers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/blueparser/constants"
	"github.com/joseph-ayodele/blueparser/internal/common"
	"github.com/joseph-ayodele/blueparser/internal/core/extract"
	"github.com/joseph-ayodele/blueparser/internal/core/zones"
	"github.com/joseph-ayodele/blueparser/internal/entity"
)

// Pump station zone labels.
const (
	ZoneKeySection      = "key_section"
	ZonePumpDataBox     = "pump_data_box"
	ZoneElevationLabels = "elevation_labels"
	ZoneTitleBlock      = "title_block"
	ZoneGeneral         = "general"
)

const (
	pumpBoxLeftFraction = 0.65
	titleTopFraction    = 0.85
)

var (
	keyLinePattern = regexp.MustCompile(`^\d+\.\s+`)

	pumpBoxKeywords   = []string{"PUMP", "GPM", "HP", "TDH", "VOLTS", "AMPS", "RPM", "MODEL", "SERIAL", "DESIGN", "STATIC HEAD"}
	elevationKeywords = []string{"ALARM", "LAG", "LEAD", "OVERRIDE", "BOTTOM", "TOP", "INVERT", "LWL"}
)

// PumpStationParser reads pump nameplate data, the KEY bill of materials and
// wet well control elevations.
type PumpStationParser struct{}

func NewPumpStationParser() *PumpStationParser { return &PumpStationParser{} }

// Scheme builds the pump station zone scheme for a page whose far edges are maxX, maxY.
func (p *PumpStationParser) Scheme(maxX, maxY float64) zones.Scheme {
	return zones.Scheme{
		Labels: []string{ZoneKeySection, ZonePumpDataBox, ZoneElevationLabels, ZoneTitleBlock, ZoneGeneral},
		Rules: []zones.Rule{
			func(it entity.TextItem) string {
				t := strings.TrimSpace(it.Text)
				if keyLinePattern.MatchString(t) || t == "KEY:" {
					return ZoneKeySection
				}
				return ""
			},
			func(it entity.TextItem) string {
				if it.BBox.Left <= maxX*pumpBoxLeftFraction {
					return ""
				}
				if containsAny(strings.ToUpper(it.Text), pumpBoxKeywords) {
					return ZonePumpDataBox
				}
				return ZoneGeneral
			},
			func(it entity.TextItem) string {
				up := strings.ToUpper(it.Text)
				if !strings.Contains(up, "EL") {
					return ""
				}
				if containsAny(up, elevationKeywords) {
					return ZoneElevationLabels
				}
				return ZoneGeneral
			},
			func(it entity.TextItem) string {
				if it.BBox.Top > maxY*titleTopFraction {
					return ZoneTitleBlock
				}
				return ""
			},
		},
		Fallback: ZoneGeneral,
	}
}

// Segment partitions items with the pump station scheme.
func (p *PumpStationParser) Segment(items []entity.TextItem) (*zones.Zones, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("pump station: %w", common.ErrEmptyDocument)
	}
	maxX, maxY := zones.PageExtent(items)
	return p.Scheme(maxX, maxY).Apply(items)
}

func (p *PumpStationParser) Parse(items []entity.TextItem) (entity.SpecializedData, error) {
	z, err := p.Segment(items)
	if err != nil {
		return nil, err
	}
	page := fullPage(items)
	return &entity.PumpStationData{
		DocumentType:   constants.PumpStation,
		TitleBlock:     extract.TitleBlockExtractor{}.TitleBlock(page),
		PumpData:       ParsePumpData(zoneText(z, ZonePumpDataBox, items)),
		Components:     p.components(z),
		Elevations:     ParseElevations(zoneText(z, ZoneElevationLabels, items)),
		Notes:          extract.ParseNotes(page.Text),
		Specifications: extract.ParseSpecifications(page.Text),
		References:     extract.ParseReferences(page.Text),
	}, nil
}

// components assembles the KEY list. Unnumbered general-zone items lying under
// the key column are candidates for continuation lines.
func (p *PumpStationParser) components(z *zones.Zones) []entity.Component {
	key := z.Get(ZoneKeySection)
	if len(key) == 0 {
		return []entity.Component{}
	}
	minLeft, maxRight := key[0].BBox.Left, key[0].BBox.Right()
	for _, it := range key[1:] {
		if it.BBox.Left < minLeft {
			minLeft = it.BBox.Left
		}
		if it.BBox.Right() > maxRight {
			maxRight = it.BBox.Right()
		}
	}
	lines := append([]entity.TextItem{}, key...)
	for _, it := range z.Get(ZoneGeneral) {
		if it.BBox.Left >= minLeft-columnSlack && it.BBox.Left <= maxRight {
			lines = append(lines, it)
		}
	}
	return AssembleComponents(lines)
}

func zoneText(z *zones.Zones, label string, all []entity.TextItem) string {
	if items := z.Get(label); len(items) > 0 {
		return entity.JoinText(items)
	}
	return entity.JoinText(all)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
