package extract

import (
	"math"
	"sort"

	"github.com/joseph-ayodele/blueparser/internal/entity"
)

// DefaultRowTolerance is the vertical distance within which items share a row.
const DefaultRowTolerance = 0.02

// rowEpsilon absorbs float error when a gap equals the tolerance exactly;
// a gap of 0.12-0.10 must not count as inside a 0.02 tolerance.
const rowEpsilon = 1e-9

// TableExtractor detects tables from item geometry alone.
type TableExtractor struct {
	RowTolerance float64
}

func (TableExtractor) Name() string { return NameTable }

func (e TableExtractor) Extract(page Page) (any, error) {
	return DetectTables(page.Items, e.RowTolerance), nil
}

// DetectTables clusters items into rows and groups consecutive rows of two or
// more cells into tables. A non-positive tolerance selects DefaultRowTolerance.
func DetectTables(items []entity.TextItem, tolerance float64) []entity.Table {
	if tolerance <= 0 {
		tolerance = DefaultRowTolerance
	}
	tables := []entity.Table{}
	if len(items) == 0 {
		return tables
	}

	var current [][]string
	flush := func() {
		if len(current) >= 2 {
			tables = append(tables, newTable(current))
		}
		current = nil
	}
	for _, row := range clusterRows(items, tolerance) {
		if len(row) >= 2 {
			current = append(current, row)
			continue
		}
		flush()
	}
	flush()
	return tables
}

// clusterRows sorts by top and starts a new row whenever an item lies at least
// tolerance below the row's first item. Cells are ordered left to right.
func clusterRows(items []entity.TextItem, tolerance float64) [][]string {
	sorted := make([]entity.TextItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].BBox.Top < sorted[j].BBox.Top })

	var rows [][]string
	var row []entity.TextItem
	anchor := 0.0
	emit := func() {
		if len(row) == 0 {
			return
		}
		sort.SliceStable(row, func(i, j int) bool { return row[i].BBox.Left < row[j].BBox.Left })
		cells := make([]string, len(row))
		for i, it := range row {
			cells[i] = it.Text
		}
		rows = append(rows, cells)
		row = nil
	}
	for _, it := range sorted {
		if len(row) > 0 && math.Abs(it.BBox.Top-anchor) < tolerance-rowEpsilon {
			row = append(row, it)
			continue
		}
		emit()
		row = []entity.TextItem{it}
		anchor = it.BBox.Top
	}
	emit()
	return rows
}

func newTable(rows [][]string) entity.Table {
	body := rows[1:]
	return entity.Table{
		Headers:     rows[0],
		Rows:        body,
		RowCount:    len(body),
		ColumnCount: len(rows[0]),
	}
}
