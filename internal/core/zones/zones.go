// Package zones partitions a page's text items into named regions.
//
// Every scheme is a partition: each input item lands in exactly one zone and
// items no rule claims fall into the scheme's default zone.
package zones

import (
	"fmt"

	"github.com/joseph-ayodele/blueparser/internal/common"
	"github.com/joseph-ayodele/blueparser/internal/entity"
)

// Default scheme labels.
const (
	Top    = "top"
	Middle = "middle"
	Bottom = "bottom"
)

// Default scheme thresholds, as fractions of page height.
const (
	TopThreshold    = 0.15
	BottomThreshold = 0.85
)

// Zones maps a zone label to its items, in input order.
type Zones struct {
	order []string
	items map[string][]entity.TextItem
}

// New returns an empty scheme with the given labels declared in order.
func New(labels ...string) *Zones {
	z := &Zones{items: make(map[string][]entity.TextItem, len(labels))}
	for _, l := range labels {
		z.declare(l)
	}
	return z
}

func (z *Zones) declare(label string) {
	if _, ok := z.items[label]; ok {
		return
	}
	z.order = append(z.order, label)
	z.items[label] = []entity.TextItem{}
}

// Add appends item to label, declaring the label if needed.
func (z *Zones) Add(label string, item entity.TextItem) {
	z.declare(label)
	z.items[label] = append(z.items[label], item)
}

// Get returns the items of a zone; unknown labels yield nil.
func (z *Zones) Get(label string) []entity.TextItem {
	return z.items[label]
}

// Labels returns zone labels in declaration order.
func (z *Zones) Labels() []string {
	out := make([]string, len(z.order))
	copy(out, z.order)
	return out
}

// Len returns the total number of items across all zones.
func (z *Zones) Len() int {
	n := 0
	for _, items := range z.items {
		n += len(items)
	}
	return n
}

// Rule assigns an item to a zone label, or returns "" to pass.
type Rule func(item entity.TextItem) string

// Scheme is an ordered rule list with a fallback zone.
type Scheme struct {
	Labels   []string
	Rules    []Rule
	Fallback string
}

// Apply partitions items. The first rule that claims an item wins.
func (s Scheme) Apply(items []entity.TextItem) (*Zones, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("segment: %w", common.ErrEmptyDocument)
	}
	z := New(s.Labels...)
	z.declare(s.Fallback)
	for _, it := range items {
		label := s.Fallback
		for _, rule := range s.Rules {
			if l := rule(it); l != "" {
				label = l
				break
			}
		}
		z.Add(label, it)
	}
	return z, nil
}

// DefaultScheme is the coarse top/middle/bottom split used by the universal extractors.
var DefaultScheme = Scheme{
	Labels: []string{Top, Middle, Bottom},
	Rules: []Rule{
		func(it entity.TextItem) string {
			if it.BBox.Top < TopThreshold {
				return Top
			}
			return ""
		},
		func(it entity.TextItem) string {
			if IsBottom(it) {
				return Bottom
			}
			return ""
		},
	},
	Fallback: Middle,
}

// Segment applies DefaultScheme.
func Segment(items []entity.TextItem) (*Zones, error) {
	return DefaultScheme.Apply(items)
}

// IsBottom reports whether an item sits in the bottom 15% of the page.
func IsBottom(it entity.TextItem) bool {
	return it.BBox.Top > BottomThreshold
}

// PageExtent returns the furthest right and bottom edges across items.
// Callers must not pass an empty slice.
func PageExtent(items []entity.TextItem) (maxX, maxY float64) {
	for i, it := range items {
		r, b := it.BBox.Right(), it.BBox.Bottom()
		if i == 0 || r > maxX {
			maxX = r
		}
		if i == 0 || b > maxY {
			maxY = b
		}
	}
	return maxX, maxY
}
