package entity

// TitleBlock holds the drawing metadata panel. Nil fields were not found.
type TitleBlock struct {
	DrawingNumber *string `json:"drawing_number"`
	DrawingTitle  *string `json:"drawing_title"`
	Date          *string `json:"date"`
	Scale         *string `json:"scale"`
	Revision      *string `json:"revision"`
	SheetNumber   *string `json:"sheet_number"`
}

// Empty reports whether no field was resolved.
func (t *TitleBlock) Empty() bool {
	if t == nil {
		return true
	}
	return t.DrawingNumber == nil && t.DrawingTitle == nil && t.Date == nil &&
		t.Scale == nil && t.Revision == nil && t.SheetNumber == nil
}

// Note kinds.
const (
	NoteNumbered   = "numbered"
	NoteGeneral    = "general"
	NoteDisclaimer = "disclaimer"
)

type Note struct {
	Type    string `json:"type"`
	Number  string `json:"number,omitempty"`
	Content string `json:"content"`
}

// Specification kinds.
const (
	SpecMeasurement = "measurement"
	SpecMaterial    = "material"
	SpecStandard    = "standard"
)

// Specification is one measurement, material code or standards citation.
// Context is a verbatim window of the page text around the first occurrence of Value.
type Specification struct {
	Type    string `json:"type"`
	Value   string `json:"value"`
	Unit    string `json:"unit,omitempty"`
	Context string `json:"context"`
}

// Reference kinds.
const (
	RefDrawing    = "drawing_reference"
	RefRegulation = "regulation"
	RefStandard   = "standard_reference"
)

type Reference struct {
	Type           string `json:"type"`
	ReferenceType  string `json:"reference_type,omitempty"`
	ReferenceID    string `json:"reference_id,omitempty"`
	RegulationType string `json:"regulation_type,omitempty"`
	Code           string `json:"code,omitempty"`
	Description    string `json:"description,omitempty"`
}

// Table is a spatially detected table; the first clustered row is the header.
type Table struct {
	Headers     []string   `json:"headers"`
	Rows        [][]string `json:"rows"`
	RowCount    int        `json:"row_count"`
	ColumnCount int        `json:"column_count"`
}
