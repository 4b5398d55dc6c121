package parsers

import (
	"errors"
	"strings"
	"testing"

	"github.com/joseph-ayodele/blueparser/constants"
	"github.com/joseph-ayodele/blueparser/internal/common"
	"github.com/joseph-ayodele/blueparser/internal/entity"
)

func at(text string, left, top, width float64) entity.TextItem {
	return entity.TextItem{Text: text, Confidence: 95, BBox: entity.BBox{Left: left, Top: top, Width: width, Height: 0.01}, Page: 1}
}

func str(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}

func pumpStationItems() []entity.TextItem {
	return []entity.TextItem{
		at("KEY:", 0.05, 0.10, 0.3),
		at(`1. 4" DI PLUG VALVE (2 REQ.)`, 0.05, 0.12, 0.3),
		at(`2. __" SS DISCHARGE PIPE`, 0.05, 0.14, 0.3),
		at("WITH 316L SS BOLTS", 0.06, 0.155, 0.3),
		at("3. SUBMERSIBLE PUMP HYDROMATIC OR EQUAL", 0.05, 0.17, 0.3),
		at("PUMP DATA: 3 PHASE 230 VOLTS", 0.75, 0.20, 0.2),
		at("250 GPM @ 45 TDH 5 HP 1750 RPM", 0.75, 0.22, 0.2),
		at("TOP EL. 105.50", 0.4, 0.40, 0.1),
		at("LAG ON EL: __", 0.4, 0.42, 0.1),
		at("LEAD ON EL 98.00", 0.4, 0.44, 0.1),
		at("DWG NO. M-3 SCALE: NTS", 0.1, 0.92, 0.3),
	}
}

func TestPumpStationSegment(t *testing.T) {
	items := pumpStationItems()
	z, err := NewPumpStationParser().Segment(items)
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	want := map[string]int{
		ZoneKeySection:      4,
		ZonePumpDataBox:     2,
		ZoneElevationLabels: 3,
		ZoneTitleBlock:      1,
		ZoneGeneral:         1,
	}
	for label, n := range want {
		if got := len(z.Get(label)); got != n {
			t.Errorf("%s: got %d items, want %d", label, got, n)
		}
	}
	if z.Len() != len(items) {
		t.Errorf("partition lost items: %d of %d", z.Len(), len(items))
	}
}

func TestPumpStationParse(t *testing.T) {
	data, err := NewPumpStationParser().Parse(pumpStationItems())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ps, ok := data.(*entity.PumpStationData)
	if !ok {
		t.Fatalf("got %T", data)
	}
	if ps.DocumentType != constants.PumpStation || ps.DrawingType() != constants.PumpStation {
		t.Errorf("document_type = %q", ps.DocumentType)
	}
	if got := str(ps.TitleBlock.DrawingNumber); got != "M-3" {
		t.Errorf("drawing_number = %q", got)
	}
	if got := str(ps.TitleBlock.Scale); got != "NTS" {
		t.Errorf("scale = %q", got)
	}

	pd := ps.PumpData
	checks := map[string]struct{ got, want string }{
		"capacity":   {str(pd.DesignCapacityGPM), "250"},
		"tdh":        {str(pd.DesignTDH), "45"},
		"horsepower": {str(pd.Horsepower), "5"},
		"phase":      {str(pd.Phase), "3"},
		"voltage":    {str(pd.Voltage), "230"},
		"rpm":        {str(pd.SpeedRPM), "1750"},
		"model":      {str(pd.Model), "<nil>"},
	}
	for name, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", name, c.got, c.want)
		}
	}

	if len(ps.Components) != 3 {
		t.Fatalf("components = %+v", ps.Components)
	}
	c1 := ps.Components[0]
	if c1.ItemNumber != "1" || str(c1.Size) != `4"` || str(c1.Material) != "Ductile Iron" ||
		str(c1.Type) != "Plug Valve" || c1.Quantity != "2" || c1.Manufacturer != nil {
		t.Errorf("component 1 = %+v", c1)
	}
	c2 := ps.Components[1]
	if !c2.SizeVariable || str(c2.Size) != SizeVariable {
		t.Errorf("component 2 size = %q variable=%v", str(c2.Size), c2.SizeVariable)
	}
	if !strings.HasSuffix(c2.Description, "WITH 316L SS BOLTS") {
		t.Errorf("continuation line not joined: %q", c2.Description)
	}
	if str(c2.Material) != "Stainless Steel, 316L Stainless Steel" || str(c2.Type) != "Pipe" || c2.Quantity != "1" {
		t.Errorf("component 2 = %+v", c2)
	}
	c3 := ps.Components[2]
	if str(c3.Type) != "Pump" || !strings.Contains(str(c3.Manufacturer), "HYDROMATIC") {
		t.Errorf("component 3 = %+v", c3)
	}

	el := ps.Elevations
	if str(el.TopEl) != "105.50" || str(el.LagOnEl) != ElevationTBD || str(el.LeadOnEl) != "98.00" {
		t.Errorf("elevations = top %q lag %q lead %q", str(el.TopEl), str(el.LagOnEl), str(el.LeadOnEl))
	}
	if el.BottomEl != nil || el.LowWaterLevel != nil {
		t.Errorf("unexpected elevations: %+v", el)
	}
	if ps.Notes == nil || ps.Specifications == nil || ps.References == nil {
		t.Error("universal sections must be non-nil")
	}
}

func TestPumpStationEmpty(t *testing.T) {
	if _, err := NewPumpStationParser().Parse(nil); !errors.Is(err, common.ErrEmptyDocument) {
		t.Fatalf("want ErrEmptyDocument, got %v", err)
	}
}

func TestParsePumpDataHorsepowerPhaseCollision(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"separate values", "3 PHASE 460 VOLTS 5 HP", "5"},
		{"phase only", "MOTOR 3 PHASE", "<nil>"},
		{"equal and genuine", "3 HP 3 PHASE", "3"},
		{"labelled", "PUMP H.P.: 7.5 3 PHASE", "7.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := str(ParsePumpData(tt.text).Horsepower); got != tt.want {
				t.Fatalf("horsepower = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParsePumpDataFields(t *testing.T) {
	d := ParsePumpData("SERIAL NO. AB-1234 IMP. NO: 455 WET WELL VOLUME: 1200 GALLONS 8 FT DIA STATIC HEAD: 22 12.5 AMPS")
	if str(d.SerialNumber) != "AB-1234" || str(d.ImpellerNumber) != "455" || str(d.WetwellVolumeGallons) != "1200" ||
		str(d.WetwellDiameter) != "8" || str(d.StaticHead) != "22" || str(d.Amperage) != "12.5" {
		t.Fatalf("pump data = %+v", d)
	}
}

func TestParseElevationsPlaceholder(t *testing.T) {
	e := ParseElevations("HIGH ALARM EL. __ ALL PUMPS OFF EL 91.2 LWL: 90.0")
	if str(e.HighAlarmEl) != ElevationTBD || str(e.AllPumpsOffEl) != "91.2" || str(e.LowWaterLevel) != "90.0" {
		t.Fatalf("elevations = %+v", e)
	}
}

func TestParseElevationsDropInvert(t *testing.T) {
	tests := []struct {
		text, invert, drop string
	}{
		{"DROP INVERT EL 8.0 INVERT EL 9.0", "9.0", "8.0"},
		{"INVERT EL 9.0 DROP INVERT EL 8.0", "9.0", "8.0"},
		{"DROP INV EL: 8.0", "<nil>", "8.0"},
		{"INV EL. __", ElevationTBD, "<nil>"},
	}
	for _, tt := range tests {
		e := ParseElevations(tt.text)
		if str(e.InvertEl) != tt.invert || str(e.DropInvertEl) != tt.drop {
			t.Errorf("%q: invert=%s drop=%s, want %s/%s", tt.text, str(e.InvertEl), str(e.DropInvertEl), tt.invert, tt.drop)
		}
	}
}

func TestParseComponent(t *testing.T) {
	tests := []struct {
		desc     string
		size     string
		material string
		typ      string
		qty      string
	}{
		{`1/2" BRASS BALL VALVE QTY: 3`, `1/2"`, "Brass", "Ball Valve", "3"},
		{"PVCC FLOAT SWITCH (4 REQUIRED)", "<nil>", "PVCC", "Float Switch", "4"},
		{"ALUMINUM ACCESS HATCH", "<nil>", "Aluminum", "Hatch", "1"},
		{`6" FG X MJ GATE VALVE`, `6"`, "Flanged, Mechanical Joint", "Gate Valve", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			c := ParseComponent("9", tt.desc)
			if str(c.Size) != tt.size || str(c.Material) != tt.material || str(c.Type) != tt.typ || c.Quantity != tt.qty {
				t.Fatalf("got size=%q material=%q type=%q qty=%q", str(c.Size), str(c.Material), str(c.Type), c.Quantity)
			}
		})
	}
}

func TestAssembleComponentsIgnoresDistantLines(t *testing.T) {
	comps := AssembleComponents([]entity.TextItem{
		at("1. PIPE SUPPORT", 0.05, 0.10, 0.2),
		at("FAR BELOW", 0.05, 0.30, 0.2),
		at("KEY NOTES", 0.05, 0.105, 0.2),
	})
	if len(comps) != 1 || comps[0].Description != "PIPE SUPPORT" {
		t.Fatalf("got %+v", comps)
	}
}

func standardsItems() []entity.TextItem {
	return []entity.TextItem{
		at("(1) SANITARY SEWER SHALL HAVE 10 FT MINIMUM SEPARATION", 0.1, 0.30, 0.5),
		at("(2) 18 INCHES IS THE MINIMUM VERTICAL CLEARANCE", 0.1, 0.35, 0.5),
		at("(3) 6 FT PREFERRED", 0.1, 0.40, 0.5),
		at("SEE DETAIL S-2", 0.1, 0.50, 0.5),
		at("(4) BEDDING PER ASTM D2321", 0.1, 0.60, 0.5),
		at("SEWER SEPARATION DETAIL", 0.1, 0.90, 0.5),
	}
}

func TestStandardsDetailSegment(t *testing.T) {
	z, err := NewStandardsDetailParser().Segment(standardsItems())
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	want := map[string]int{ZoneTitle: 1, ZoneTable: 3, ZoneNotes: 1, ZoneDiagram: 1}
	for label, n := range want {
		if got := len(z.Get(label)); got != n {
			t.Errorf("%s: got %d, want %d", label, got, n)
		}
	}
}

func TestStandardsDetailParse(t *testing.T) {
	data, err := NewStandardsDetailParser().Parse(standardsItems())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sd := data.(*entity.StandardsDetailData)
	if sd.DocumentType != constants.StandardsDetail {
		t.Errorf("document_type = %q", sd.DocumentType)
	}
	if got := str(sd.TitleBlock.DrawingTitle); got != "SEWER SEPARATION DETAIL" {
		t.Errorf("title = %q", got)
	}
	if sd.Tables == nil || len(sd.Tables) != 0 {
		t.Errorf("tables = %#v", sd.Tables)
	}

	want := []entity.Requirement{
		{Type: entity.RequirementMinimum, Value: "10", Unit: "FT"},
		{Type: entity.RequirementMinimum, Value: "18", Unit: "INCHES"},
		{Type: entity.RequirementPreferred, Value: "6", Unit: "FT"},
	}
	if len(sd.Requirements) != len(want) {
		t.Fatalf("requirements = %+v", sd.Requirements)
	}
	text := entity.JoinText(standardsItems())
	for i, w := range want {
		got := sd.Requirements[i]
		if got.Type != w.Type || got.Value != w.Value || got.Unit != w.Unit {
			t.Errorf("requirement[%d] = %+v, want %+v", i, got, w)
		}
		if got.Context == "" || !strings.Contains(text, got.Context) {
			t.Errorf("requirement[%d] context %q not verbatim", i, got.Context)
		}
	}

	var numbered int
	for _, n := range sd.Notes {
		if n.Type == entity.NoteNumbered {
			numbered++
		}
	}
	if numbered != 4 {
		t.Errorf("numbered notes = %d, want 4", numbered)
	}
	if len(sd.References) == 0 || sd.References[0].ReferenceID != "S-2" {
		t.Errorf("references = %+v", sd.References)
	}
}

func TestStandardsDetailTitleZoneOnly(t *testing.T) {
	data, err := NewStandardsDetailParser().Parse([]entity.TextItem{
		at("SEE DWG S-2 FOR BEDDING", 0.1, 0.30, 0.5),
		at("SEWER SEPARATION DETAIL", 0.1, 0.50, 0.5),
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tb := data.(*entity.StandardsDetailData).TitleBlock; !tb.Empty() {
		t.Fatalf("expected empty title block, got %+v", tb)
	}
}

func TestParseRequirementsUnspecifiedUnit(t *testing.T) {
	reqs := ParseRequirements("PROVIDE 5 MINIMUM")
	if len(reqs) != 1 || reqs[0].Unit != UnitUnspecified || reqs[0].Value != "5" {
		t.Fatalf("got %+v", reqs)
	}
}

func TestStandardsDetailEmpty(t *testing.T) {
	if _, err := NewStandardsDetailParser().Parse(nil); !errors.Is(err, common.ErrEmptyDocument) {
		t.Fatalf("want ErrEmptyDocument, got %v", err)
	}
}

func TestRegistryLookup(t *testing.T) {
	reg := DefaultRegistry()
	if _, ok := reg.Lookup(constants.PumpStation); !ok {
		t.Error("pump station parser missing")
	}
	if _, ok := reg.Lookup(constants.StandardsDetail); !ok {
		t.Error("standards detail parser missing")
	}
	if _, ok := reg.Lookup(constants.FloorPlan); ok {
		t.Error("floor plan has no specialized parser")
	}
}
