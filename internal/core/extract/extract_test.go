package extract

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/joseph-ayodele/blueparser/internal/common"
	"github.com/joseph-ayodele/blueparser/internal/entity"
)

func item(text string, left, top float64) entity.TextItem {
	return entity.TextItem{Text: text, Confidence: 99, BBox: entity.BBox{Left: left, Top: top, Width: 0.05, Height: 0.01}, Page: 1}
}

func mustPage(t *testing.T, items ...entity.TextItem) Page {
	t.Helper()
	p, err := NewPage(items)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	return p
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}

func TestNewPageEmpty(t *testing.T) {
	if _, err := NewPage(nil); !errors.Is(err, common.ErrEmptyDocument) {
		t.Fatalf("want ErrEmptyDocument, got %v", err)
	}
}

func TestTitleBlockFromBottomZone(t *testing.T) {
	page := mustPage(t,
		item("DWG NO. X-99 IN THE HEADER", 0.1, 0.05),
		item(`DWG NO. C-16 SCALE: 1"=20' REV A`, 0.6, 0.92),
	)
	tb := TitleBlockExtractor{}.TitleBlock(page)
	if got := deref(tb.DrawingNumber); got != "C-16" {
		t.Errorf("drawing_number = %q, want C-16", got)
	}
	if got := deref(tb.Scale); got != `1"=20'` {
		t.Errorf("scale = %q, want 1\"=20'", got)
	}
	if got := deref(tb.Revision); got != "A" {
		t.Errorf("revision = %q, want A", got)
	}
	if tb.Date != nil {
		t.Errorf("date = %q, want nil", *tb.Date)
	}
	if tb.SheetNumber != nil {
		t.Errorf("sheet = %q, want nil", *tb.SheetNumber)
	}
}

func TestTitleBlockEmptyBottomZone(t *testing.T) {
	page := mustPage(t,
		item("PIPING LAYOUT. SEE DWG M-2 FOR VALVE SCHEDULE", 0.1, 0.40),
		item(`SCALE: 1"=20'`, 0.1, 0.45),
	)
	tb := TitleBlockExtractor{}.TitleBlock(page)
	if !tb.Empty() {
		t.Fatalf("expected every field nil, got %+v", tb)
	}
}

func TestParseTitleBlockFields(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		field func(*entity.TitleBlock) *string
		want  string
	}{
		{"drawing number label", "DRAWING NO: M-101A", func(t *entity.TitleBlock) *string { return t.DrawingNumber }, "M-101A"},
		{"bare sheet code", "SEE THIS S-3 FOR DETAIL", func(t *entity.TitleBlock) *string { return t.DrawingNumber }, "S-3"},
		{"us date", "ISSUED 03/14/2023", func(t *entity.TitleBlock) *string { return t.Date }, "03/14/2023"},
		{"nts", "SCALE: NTS", func(t *entity.TitleBlock) *string { return t.Scale }, "NTS"},
		{"ratio", "PLOTTED 1:50", func(t *entity.TitleBlock) *string { return t.Scale }, "1:50"},
		{"revision word", "REVISION: 3", func(t *entity.TitleBlock) *string { return t.Revision }, "3"},
		{"title label", "TITLE: LIFT STATION NO 4", func(t *entity.TitleBlock) *string { return t.DrawingTitle }, "LIFT STATION NO 4"},
		{"uppercase fallback", "short\nLONG UPPERCASE LINE\nlowercase line here", func(t *entity.TitleBlock) *string { return t.DrawingTitle }, "LONG UPPERCASE LINE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deref(tt.field(ParseTitleBlock(tt.text))); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseTitleBlockNothing(t *testing.T) {
	if tb := ParseTitleBlock("lorem ipsum"); !tb.Empty() {
		t.Fatalf("expected empty title block, got %+v", tb)
	}
}

func TestParseNotes(t *testing.T) {
	text := "GENERAL NOTES: (1) ALL PIPE SHALL BE PVC (SDR 35). (2) CONTRACTOR TO VERIFY. DISCLAIMER: NOT FOR CONSTRUCTION"
	notes := ParseNotes(text)

	var numbered, general, disc []entity.Note
	for _, n := range notes {
		switch n.Type {
		case entity.NoteNumbered:
			numbered = append(numbered, n)
		case entity.NoteGeneral:
			general = append(general, n)
		case entity.NoteDisclaimer:
			disc = append(disc, n)
		}
	}
	if len(numbered) != 2 {
		t.Fatalf("numbered = %+v", numbered)
	}
	if numbered[0].Number != "1" || numbered[0].Content != "ALL PIPE SHALL BE PVC (SDR 35)." {
		t.Errorf("first numbered = %+v", numbered[0])
	}
	if numbered[1].Number != "2" || !strings.HasPrefix(numbered[1].Content, "CONTRACTOR TO VERIFY.") {
		t.Errorf("second numbered = %+v", numbered[1])
	}
	if len(general) != 1 || !strings.HasPrefix(general[0].Content, "(1) ALL PIPE") {
		t.Errorf("general = %+v", general)
	}
	if len(disc) != 1 || disc[0].Content != "NOT FOR CONSTRUCTION" {
		t.Errorf("disclaimer = %+v", disc)
	}
	if notes[0].Type != entity.NoteNumbered || notes[len(notes)-1].Type != entity.NoteDisclaimer {
		t.Errorf("unexpected ordering: %+v", notes)
	}
}

func TestParseNotesNone(t *testing.T) {
	notes := ParseNotes("NOTHING TO SEE")
	if notes == nil || len(notes) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", notes)
	}
}

func TestParseNotesDisclaimerStopsAtBlankLine(t *testing.T) {
	notes := ParseNotes("DISCLAIMER - FOR REVIEW ONLY\n\nOTHER TEXT")
	if len(notes) != 1 || notes[0].Content != "FOR REVIEW ONLY" {
		t.Fatalf("got %+v", notes)
	}
}

func TestParseSpecifications(t *testing.T) {
	text := "PIPE SHALL BE 6 IN PVC PER ASTM D3034"
	specs := ParseSpecifications(text)

	want := []entity.Specification{
		{Type: entity.SpecMeasurement, Value: "6", Unit: "IN"},
		{Type: entity.SpecMaterial, Value: "PVC"},
		{Type: entity.SpecStandard, Value: "ASTM D3034"},
	}
	if len(specs) != len(want) {
		t.Fatalf("got %+v", specs)
	}
	for i, w := range want {
		got := specs[i]
		if got.Type != w.Type || got.Value != w.Value || got.Unit != w.Unit {
			t.Errorf("spec[%d] = %+v, want %+v", i, got, w)
		}
		if !strings.Contains(text, got.Context) || got.Context == "" {
			t.Errorf("spec[%d] context %q is not a substring of the page", i, got.Context)
		}
	}
	if !strings.Contains(specs[2].Value, "ASTM") || !strings.Contains(specs[2].Value, "D3034") {
		t.Errorf("standard = %q", specs[2].Value)
	}
}

func TestParseSpecificationsUnits(t *testing.T) {
	specs := ParseSpecifications(`10 FEET 4" 2.5 inches 3 MGD 12' 8 mm`)
	var got []string
	for _, s := range specs {
		if s.Type == entity.SpecMeasurement {
			got = append(got, s.Value+"|"+s.Unit)
		}
	}
	want := []string{"10|FEET", `4|"`, "2.5|inches", "12|'", "8|mm"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseSpecificationsMaterialsDistinct(t *testing.T) {
	specs := ParseSpecifications("DI PIPE, PVC FITTING, DI VALVE, 316L BOLTS")
	var got []string
	for _, s := range specs {
		if s.Type == entity.SpecMaterial {
			got = append(got, s.Value)
		}
	}
	want := []string{"DI", "PVC", "316L"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestContextWindow(t *testing.T) {
	text := strings.Repeat("a", 80) + " TARGET " + strings.Repeat("b", 80)
	ctx := Context(text, "TARGET", 10)
	if !strings.Contains(ctx, "TARGET") || len(ctx) > len("TARGET")+20 {
		t.Fatalf("context = %q", ctx)
	}
	if Context(text, "MISSING", 10) != "" {
		t.Fatal("expected empty context for missing term")
	}
	if got := Context("é TARGET é", "TARGET", 2); !strings.Contains("é TARGET é", got) {
		t.Fatalf("context %q split a rune", got)
	}
}

func TestParseReferences(t *testing.T) {
	text := "SEE DETAIL D-4 FOR BEDDING. SEPARATION PER F.A.C. RULE 62-555.314. INSTALL IN ACCORDANCE WITH AWWA C600. SEE SHEET 12"
	refs := ParseReferences(text)
	want := []entity.Reference{
		{Type: entity.RefDrawing, ReferenceType: "DETAIL", ReferenceID: "D-4"},
		{Type: entity.RefDrawing, ReferenceType: "SHEET", ReferenceID: "12"},
		{Type: entity.RefRegulation, RegulationType: RegulationFAC, Code: "62-555.314"},
		{Type: entity.RefStandard, Description: "AWWA C600"},
	}
	if !reflect.DeepEqual(refs, want) {
		t.Fatalf("got %+v\nwant %+v", refs, want)
	}
}

func TestDetectTablesGrid(t *testing.T) {
	var items []entity.TextItem
	for r, top := range []float64{0.10, 0.12, 0.14} {
		for c, left := range []float64{0.1, 0.3, 0.5} {
			items = append(items, item(string(rune('A'+r))+string(rune('1'+c)), left, top))
		}
	}
	tables := DetectTables(items, 0.02)
	if len(tables) != 1 {
		t.Fatalf("want 1 table, got %+v", tables)
	}
	tb := tables[0]
	if tb.RowCount != 2 || tb.ColumnCount != 3 {
		t.Fatalf("row_count=%d column_count=%d", tb.RowCount, tb.ColumnCount)
	}
	if !reflect.DeepEqual(tb.Headers, []string{"A1", "A2", "A3"}) {
		t.Errorf("headers = %v", tb.Headers)
	}
	if !reflect.DeepEqual(tb.Rows[1], []string{"C1", "C2", "C3"}) {
		t.Errorf("last row = %v", tb.Rows[1])
	}
}

func TestDetectTablesOrdersCellsByLeft(t *testing.T) {
	items := []entity.TextItem{
		item("R", 0.5, 0.30), item("L", 0.1, 0.305),
		item("R2", 0.5, 0.40), item("L2", 0.1, 0.40),
	}
	tables := DetectTables(items, 0.02)
	if len(tables) != 1 || !reflect.DeepEqual(tables[0].Headers, []string{"L", "R"}) {
		t.Fatalf("got %+v", tables)
	}
}

func TestDetectTablesSingleCellRowsBreak(t *testing.T) {
	items := []entity.TextItem{
		item("H1", 0.1, 0.1), item("H2", 0.4, 0.1),
		item("lone", 0.1, 0.2),
		item("X1", 0.1, 0.3), item("X2", 0.4, 0.3),
	}
	tables := DetectTables(items, 0.02)
	if tables == nil || len(tables) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", tables)
	}
}

func TestUniversalNames(t *testing.T) {
	var names []string
	for _, e := range Universal(0) {
		names = append(names, e.Name())
	}
	want := []string{NameTitleBlock, NameNotes, NameSpecification, NameReference, NameTable}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("got %v", names)
	}
}
