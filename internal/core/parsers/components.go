package parsers

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/joseph-ayodele/blueparser/internal/entity"
)

const (
	// continuationGap is the largest vertical step from the previous line that
	// still continues a component description.
	continuationGap = 0.02
	// columnSlack lets continuation lines start slightly left of the key column.
	columnSlack = 0.01
)

// SizeVariable is the size recorded for a blank "__"" placeholder.
const SizeVariable = "Variable"

var (
	numberedLine = regexp.MustCompile(`^(\d+)\.\s+(.+)`)
	fixedSize    = regexp.MustCompile(`(\d+\.?\d*(?:/\d+)?)["']`)

	quantityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\((\d+)\s*REQ\.?\)`),
		regexp.MustCompile(`(?i)\((\d+)\s*REQUIRED\)`),
		regexp.MustCompile(`(?i)(\d+)\s*REQ\.?`),
		regexp.MustCompile(`(?i)QTY[:\s]+(\d+)`),
	}
	manufacturerHint = regexp.MustCompile(`(?i)HYDROMATIC|MANUFACTURER|MFR`)
	manufacturerName = regexp.MustCompile(`([A-Z][A-Z\s]+)(?:OR|,|\()`)
)

type codeName struct {
	pattern *regexp.Regexp
	name    string
}

func wordTable(pairs ...string) []codeName {
	out := make([]codeName, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, codeName{
			pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(pairs[i]) + `\b`),
			name:    pairs[i+1],
		})
	}
	return out
}

// Material abbreviations; every match is reported, joined in table order.
var materials = wordTable(
	"FG", "Flanged",
	"DI", "Ductile Iron",
	"SS", "Stainless Steel",
	"316L SS", "316L Stainless Steel",
	"316 SS", "316 Stainless Steel",
	"PVC", "PVC",
	"HDPE", "HDPE",
	"PE", "Polyethylene",
	"PVCC", "PVCC",
	"MJ", "Mechanical Joint",
	"BRASS", "Brass",
	"ALUMINUM", "Aluminum",
	"GALV", "Galvanized",
)

// componentTypes is ordered specific before generic; the first substring hit wins.
var componentTypes = []struct{ keyword, name string }{
	{"GATE VALVE", "Gate Valve"},
	{"BALL VALVE", "Ball Valve"},
	{"CHECK VALVE", "Check Valve"},
	{"PLUG VALVE", "Plug Valve"},
	{"FLOAT SWITCH", "Float Switch"},
	{"PUMP", "Pump"},
	{"VALVE", "Valve"},
	{"BEND", "Bend/Elbow"},
	{"ELBOW", "Elbow"},
	{"TEE", "Tee"},
	{"REDUCER", "Reducer"},
	{"FLANGE", "Flange"},
	{"NIPPLE", "Nipple"},
	{"COUPLING", "Coupling"},
	{"BUSHING", "Bushing"},
	{"PIPE", "Pipe"},
	{"GAUGE", "Gauge"},
	{"TRANSMITTER", "Transmitter"},
	{"TRANSDUCER", "Transducer"},
	{"HATCH", "Hatch"},
	{"SUPPORT", "Support"},
	{"BOLT", "Bolt"},
	{"CABLE", "Cable"},
	{"RAIL", "Rail"},
}

// AssembleComponents walks lines top to bottom. A numbered line opens a component;
// an unnumbered line within continuationGap of the previous line extends it.
func AssembleComponents(lines []entity.TextItem) []entity.Component {
	sorted := make([]entity.TextItem, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].BBox.Top < sorted[j].BBox.Top })

	out := []entity.Component{}
	var (
		number string
		parts  []string
		lastY  float64
	)
	flush := func() {
		if number != "" && len(parts) > 0 {
			out = append(out, ParseComponent(number, strings.Join(parts, " ")))
		}
	}
	for _, it := range sorted {
		text := strings.TrimSpace(it.Text)
		if m := numberedLine.FindStringSubmatch(text); m != nil {
			flush()
			number, parts, lastY = m[1], []string{m[2]}, it.BBox.Top
			continue
		}
		if number == "" || text == "" || strings.Contains(strings.ToUpper(text), "KEY") {
			continue
		}
		if math.Abs(it.BBox.Top-lastY) < continuationGap {
			parts = append(parts, text)
			lastY = it.BBox.Top
		}
	}
	flush()
	return out
}

// ParseComponent reads size, material, type, quantity and manufacturer from a description.
func ParseComponent(number, description string) entity.Component {
	c := entity.Component{ItemNumber: number, Description: description, Quantity: "1"}
	up := strings.ToUpper(description)

	if strings.Contains(description, `__"`) || strings.Contains(description, `_ _"`) {
		c.SizeVariable = true
		c.Size = ptr(SizeVariable)
	} else if m := fixedSize.FindStringSubmatch(description); m != nil {
		c.Size = ptr(m[1] + `"`)
	}

	var found []string
	for _, mat := range materials {
		if mat.pattern.MatchString(up) {
			found = append(found, mat.name)
		}
	}
	if len(found) > 0 {
		c.Material = ptr(strings.Join(found, ", "))
	}

	for _, t := range componentTypes {
		if strings.Contains(up, t.keyword) {
			c.Type = ptr(t.name)
			break
		}
	}

	for _, re := range quantityPatterns {
		if m := re.FindStringSubmatch(description); m != nil {
			c.Quantity = m[1]
			break
		}
	}

	if manufacturerHint.MatchString(description) {
		if m := manufacturerName.FindStringSubmatch(description); m != nil {
			if name := strings.TrimSpace(m[1]); name != "" {
				c.Manufacturer = ptr(name)
			}
		}
	}
	return c
}

func ptr(s string) *string { return &s }
