package extract

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/blueparser/internal/entity"
)

var (
	numberedMarker   = regexp.MustCompile(`\((\d+)\)\s+`)
	numberedBoundary = regexp.MustCompile(`\(\d+\)`)
	notesHeader      = regexp.MustCompile(`(?i)\bNOTES?(?:\s*:\s*|\s+)`)
	disclaimerHeader = regexp.MustCompile(`(?i)\bDISCLAIMER\b[:\s-]+`)
)

// NotesExtractor finds numbered notes, general note blocks and the disclaimer.
// Overlapping results are kept as found.
type NotesExtractor struct{}

func (NotesExtractor) Name() string { return NameNotes }

func (NotesExtractor) Extract(page Page) (any, error) {
	return ParseNotes(page.Text), nil
}

// ParseNotes returns numbered notes, then general notes, then the disclaimer.
func ParseNotes(text string) []entity.Note {
	notes := []entity.Note{}
	notes = append(notes, numberedNotes(text)...)
	notes = append(notes, generalNotes(text)...)
	if d, ok := disclaimer(text); ok {
		notes = append(notes, d)
	}
	return notes
}

// numberedNotes runs each "(n) " marker up to the next "(m)" or end of text.
func numberedNotes(text string) []entity.Note {
	var out []entity.Note
	bounds := numberedBoundary.FindAllStringIndex(text, -1)
	for _, m := range numberedMarker.FindAllStringSubmatchIndex(text, -1) {
		end := len(text)
		for _, b := range bounds {
			if b[0] >= m[1] {
				end = b[0]
				break
			}
		}
		content := strings.TrimSpace(text[m[1]:end])
		if content == "" {
			continue
		}
		out = append(out, entity.Note{
			Type:    entity.NoteNumbered,
			Number:  text[m[2]:m[3]],
			Content: content,
		})
	}
	return out
}

// generalNotes takes the text after each NOTE/NOTES header up to the next header.
func generalNotes(text string) []entity.Note {
	var out []entity.Note
	headers := notesHeader.FindAllStringIndex(text, -1)
	for i, h := range headers {
		end := len(text)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		content := strings.TrimSpace(text[h[1]:end])
		if content == "" {
			continue
		}
		out = append(out, entity.Note{Type: entity.NoteGeneral, Content: content})
	}
	return out
}

// disclaimer returns the first disclaimer, running to a blank line or end of text.
func disclaimer(text string) (entity.Note, bool) {
	loc := disclaimerHeader.FindStringIndex(text)
	if loc == nil {
		return entity.Note{}, false
	}
	body := text[loc[1]:]
	if i := strings.Index(body, "\n\n"); i >= 0 {
		body = body[:i]
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return entity.Note{}, false
	}
	return entity.Note{Type: entity.NoteDisclaimer, Content: body}, true
}
