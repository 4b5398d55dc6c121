package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/blueparser/internal/common"
	"github.com/joseph-ayodele/blueparser/internal/entity"
)

// Sheet names of the exported workbook.
const (
	SheetTitleBlock     = "Title Block"
	SheetSpecifications = "Specifications"
	SheetNotes          = "Notes"
	SheetComponents     = "Components"
	SheetElevations     = "Elevations"
)

// XLSX builds a workbook with Title Block, Specifications and Notes sheets.
// Pump station results also get Components and Elevations sheets.
func (s *Service) XLSX(r *entity.ParseResult) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("export xlsx: %w", common.ErrInvalidInput)
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetTitleBlock); err != nil {
		return nil, err
	}
	u := r.UniversalData

	tb := sheetWriter{f: f, sheet: SheetTitleBlock}
	tb.row("drawing_number", "drawing_title", "date", "scale", "revision", "sheet_number")
	if t := u.TitleBlock; t != nil {
		tb.row(deref(t.DrawingNumber), deref(t.DrawingTitle), deref(t.Date), deref(t.Scale), deref(t.Revision), deref(t.SheetNumber))
	}
	_ = f.SetColWidth(SheetTitleBlock, "A", "F", 20)

	specs, err := newSheet(f, SheetSpecifications)
	if err != nil {
		return nil, err
	}
	specs.row("type", "value", "unit", "context")
	for _, sp := range u.Specification {
		specs.row(sp.Type, sp.Value, sp.Unit, sp.Context)
	}
	_ = f.SetColWidth(SheetSpecifications, "D", "D", 60)

	notes, err := newSheet(f, SheetNotes)
	if err != nil {
		return nil, err
	}
	notes.row("type", "number", "content")
	for _, n := range u.Notes {
		notes.row(n.Type, n.Number, n.Content)
	}
	_ = f.SetColWidth(SheetNotes, "C", "C", 80)

	if ps, ok := r.SpecializedData.(*entity.PumpStationData); ok && ps != nil {
		if err := writePumpStation(f, ps); err != nil {
			return nil, err
		}
	}

	if i, err := f.GetSheetIndex(SheetTitleBlock); err == nil {
		f.SetActiveSheet(i)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	s.logger.Debug("export.xlsx.ok",
		"sheets", len(f.GetSheetList()),
		"specifications", len(u.Specification),
	)
	return buf.Bytes(), nil
}

func writePumpStation(f *excelize.File, ps *entity.PumpStationData) error {
	comps, err := newSheet(f, SheetComponents)
	if err != nil {
		return err
	}
	comps.row("item_number", "description", "size", "size_variable", "material", "type", "quantity", "manufacturer")
	for _, c := range ps.Components {
		comps.row(c.ItemNumber, c.Description, deref(c.Size), c.SizeVariable, deref(c.Material), deref(c.Type), c.Quantity, deref(c.Manufacturer))
	}
	_ = f.SetColWidth(SheetComponents, "B", "B", 48)

	elev, err := newSheet(f, SheetElevations)
	if err != nil {
		return err
	}
	e := ps.Elevations
	elev.row("elevation", "value")
	for _, kv := range []struct {
		name  string
		value *string
	}{
		{"top_el", e.TopEl},
		{"high_high_alarm_el", e.HighHighAlarmEl},
		{"high_alarm_el", e.HighAlarmEl},
		{"override_on_el", e.OverrideOnEl},
		{"lag_on_el", e.LagOnEl},
		{"lead_on_el", e.LeadOnEl},
		{"override_off_el", e.OverrideOffEl},
		{"all_pumps_off_el", e.AllPumpsOffEl},
		{"bottom_el", e.BottomEl},
		{"invert_el", e.InvertEl},
		{"drop_invert_el", e.DropInvertEl},
		{"low_water_level", e.LowWaterLevel},
	} {
		elev.row(kv.name, deref(kv.value))
	}
	_ = f.SetColWidth(SheetElevations, "A", "A", 22)
	return nil
}

type sheetWriter struct {
	f     *excelize.File
	sheet string
	next  int
}

func newSheet(f *excelize.File, name string) (*sheetWriter, error) {
	if _, err := f.NewSheet(name); err != nil {
		return nil, fmt.Errorf("new sheet %s: %w", name, err)
	}
	return &sheetWriter{f: f, sheet: name}, nil
}

func (w *sheetWriter) row(values ...any) {
	w.next++
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, w.next)
		_ = w.f.SetCellValue(w.sheet, cell, v)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
