package ocr

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/blueparser/internal/entity"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reTabs       = regexp.MustCompile(`\t+`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
)

// Normalize collapses noisy whitespace in one recognized span.
// Line breaks survive; runs of blank lines shrink to one.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reTabs.ReplaceAllString(s, " ")
	s = reMultiSpace.ReplaceAllString(s, " ")
	s = reMultiBlank.ReplaceAllString(s, "\n\n")
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// NormalizeItems cleans item text and defaults missing page numbers to 1.
// The input slice is not modified.
func NormalizeItems(items []entity.TextItem) []entity.TextItem {
	out := make([]entity.TextItem, len(items))
	for i, it := range items {
		it.Text = Normalize(it.Text)
		if it.Page < 1 {
			it.Page = 1
		}
		out[i] = it
	}
	return out
}
