// Package classify decides drawing type and discipline from keyword hits.
package classify

import (
	"math"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/blueparser/constants"
	"github.com/joseph-ayodele/blueparser/internal/entity"
)

// ConfidenceScale divides the winning keyword count. The ratio is not clamped.
const ConfidenceScale = 10.0

// columnThreshold is how many items may share a rounded left edge before it reads as a column.
const columnThreshold = 3

var reSpecs = regexp.MustCompile(`SPEC|SPECIFICATION|REQUIREMENT`)

// Classifier scores page text against a keyword table.
type Classifier struct {
	rules *Rules
}

// New returns a Classifier over rules; nil selects the embedded tables.
func New(rules *Rules) *Classifier {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Classify scores text (matched upper-cased) and inspects item geometry for table structure.
func (c *Classifier) Classify(text string, items []entity.TextItem) entity.Classification {
	up := strings.ToUpper(text)

	drawingType, best := constants.UnknownType, 0
	for _, r := range c.rules.types {
		if n := countHits(up, r.Keywords); n > best {
			drawingType, best = r.Type, n
		}
	}

	discipline, bestDisc := constants.UnknownDiscipline, 0
	for _, r := range c.rules.disciplines {
		if n := countHits(up, r.Keywords); n > bestDisc {
			discipline, bestDisc = r.Discipline, n
		}
	}

	return entity.Classification{
		DrawingType:       drawingType,
		Discipline:        discipline,
		HasTable:          strings.Contains(up, "TABLE") || HasTableStructure(items),
		HasNotes:          strings.Contains(up, "NOTE"),
		HasLegend:         strings.Contains(up, "LEGEND") || strings.Contains(up, "KEY:"),
		HasSpecifications: reSpecs.MatchString(up),
		Confidence:        float64(best) / ConfidenceScale,
	}
}

func countHits(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

// HasTableStructure reports whether more than three items share a left edge rounded to 0.1.
func HasTableStructure(items []entity.TextItem) bool {
	counts := make(map[int]int, len(items))
	for _, it := range items {
		k := int(math.RoundToEven(it.BBox.Left * 10))
		counts[k]++
		if counts[k] > columnThreshold {
			return true
		}
	}
	return false
}
