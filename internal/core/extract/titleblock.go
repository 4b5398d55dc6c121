package extract

import (
	"strings"
	"unicode"

	"github.com/joseph-ayodele/blueparser/internal/core/zones"
	"github.com/joseph-ayodele/blueparser/internal/entity"
)

// Pattern lists are ordered most specific first; the first capture wins.
var (
	drawingNumberPatterns = MustCompileAll(
		`(?i)\bDWG\.?\s*(?:NO\.?|#)?\s*[:#-]?\s*([A-Z]{0,3}-?\d+[A-Z0-9.-]*)`,
		`(?i)\bDRAWING\s*(?:NO\.?|NUMBER|#)\s*[:#-]?\s*([A-Z0-9][A-Z0-9.-]*)`,
		`(?i)\bSHEET\s*(?:NO\.?|#)\s*[:-]?\s*([A-Z0-9][A-Z0-9-]*)`,
		`\b([A-Z]{1,2}-\d+(?:\.\d+)?)\b`,
	)
	titlePatterns = MustCompileAll(
		`(?i)\bTITLE\s*[:\s]\s*([^\n]+)`,
		`(?im)^([A-Z\s]+DETAILS?)`,
		`(?im)^([A-Z\s]+PLAN)`,
		`(?im)^([A-Z\s]+DIAGRAM)`,
	)
	datePatterns = MustCompileAll(
		`\b(\d{4}[/-]\d{1,2}[/-]\d{1,2})\b`,
		`\b(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\b`,
		`(?i)\bDATE\s*[:\s]\s*(\S+(?:\s\S+){0,2})`,
	)
	scalePatterns = MustCompileAll(
		`(?i)\bSCALE\s*[:=]?\s*(\d+(?:/\d+)?"?\s*=\s*\d+(?:'|")?(?:-?\d+"?)?)`,
		`(?i)\bSCALE\s*[:=]?\s*(N\.?T\.?S\.?|NONE|AS SHOWN|\d+\s*:\s*\d+)`,
		`\b(\d+:\d+)\b`,
		`(?i)\b(NTS|N\.T\.S\.?)`,
		`(\d+/\d+"?\s*=\s*\d+'?-?\d*"?)`,
		`(?i)\bSCALE\s*[:\s]\s*([^\n,]+)`,
	)
	revisionPatterns = MustCompileAll(
		`(?i)\bREVISION\s*[:\s]\s*([A-Z0-9]+)\b`,
		`(?i)\bREV\.?\s*[:.\s]\s*([A-Z0-9]+)\b`,
		`(?i)\bREV\s+([A-Z0-9])\b`,
	)
	sheetPatterns = MustCompileAll(
		`(?i)\bSHEET\s*[:\s]\s*(\d+)\s+OF\s+(\d+)`,
		`(?i)\b(\d+)\s+OF\s+(\d+)\b`,
	)
)

// TitleBlockExtractor reads drawing metadata from the bottom zone only. An
// empty bottom zone yields a block with every field nil.
type TitleBlockExtractor struct{}

func (TitleBlockExtractor) Name() string { return NameTitleBlock }

func (e TitleBlockExtractor) Extract(page Page) (any, error) {
	return e.TitleBlock(page), nil
}

// TitleBlock is the typed form of Extract.
func (TitleBlockExtractor) TitleBlock(page Page) *entity.TitleBlock {
	var bottom []entity.TextItem
	if page.Zones != nil {
		bottom = page.Zones.Get(zones.Bottom)
	} else {
		for _, it := range page.Items {
			if zones.IsBottom(it) {
				bottom = append(bottom, it)
			}
		}
	}
	return ParseTitleBlock(entity.JoinText(bottom))
}

// ParseTitleBlock resolves every title block field against text.
func ParseTitleBlock(text string) *entity.TitleBlock {
	return &entity.TitleBlock{
		DrawingNumber: firstGroup(text, drawingNumberPatterns),
		DrawingTitle:  drawingTitle(text),
		Date:          firstGroup(text, datePatterns),
		Scale:         firstGroup(text, scalePatterns),
		Revision:      firstGroup(text, revisionPatterns),
		SheetNumber:   sheetNumber(text),
	}
}

func drawingTitle(text string) *string {
	if v := firstGroup(text, titlePatterns); v != nil {
		return v
	}
	// Longest all-uppercase line over ten characters; the earliest wins ties.
	best := ""
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 10 && isUpper(line) && len(line) > len(best) {
			best = line
		}
	}
	if best == "" {
		return nil
	}
	return ptr(best)
}

// isUpper reports whether s has at least one cased rune and no lowercase ones.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

func sheetNumber(text string) *string {
	for _, re := range sheetPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return ptr(m[1] + " of " + m[2])
		}
	}
	return nil
}
