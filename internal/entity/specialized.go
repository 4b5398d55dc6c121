package entity

import "github.com/joseph-ayodele/blueparser/constants"

// SpecializedData is the output of a drawing-type specific parser.
// Implementations: *PumpStationData, *StandardsDetailData.
type SpecializedData interface {
	DrawingType() constants.DrawingType
}

// PumpData is the pump nameplate / station data box.
type PumpData struct {
	Model                *string `json:"model"`
	SerialNumber         *string `json:"serial_number"`
	DesignCapacityGPM    *string `json:"design_capacity_gpm"`
	DesignTDH            *string `json:"design_tdh"`
	Horsepower           *string `json:"horsepower"`
	Phase                *string `json:"phase"`
	ImpellerNumber       *string `json:"impeller_number"`
	ImpellerDiameter     *string `json:"impeller_diameter"`
	Voltage              *string `json:"voltage"`
	Amperage             *string `json:"amperage"`
	ShutOffHead          *string `json:"shut_off_head"`
	SpeedRPM             *string `json:"speed_rpm"`
	StaticHead           *string `json:"static_head"`
	WetwellVolumeGallons *string `json:"wetwell_volume_gallons"`
	WetwellDiameter      *string `json:"wetwell_diameter"`
}

// Component is one numbered entry of a pump station KEY (bill of materials).
type Component struct {
	ItemNumber   string  `json:"item_number"`
	Description  string  `json:"description"`
	Size         *string `json:"size"`
	SizeVariable bool    `json:"size_variable"`
	Material     *string `json:"material"`
	Type         *string `json:"type"`
	Quantity     string  `json:"quantity"`
	Manufacturer *string `json:"manufacturer"`
}

// Elevations are the wet well control levels. "TBD" marks a blank placeholder on the drawing.
type Elevations struct {
	TopEl           *string `json:"top_el"`
	HighHighAlarmEl *string `json:"high_high_alarm_el"`
	HighAlarmEl     *string `json:"high_alarm_el"`
	OverrideOnEl    *string `json:"override_on_el"`
	LagOnEl         *string `json:"lag_on_el"`
	LeadOnEl        *string `json:"lead_on_el"`
	OverrideOffEl   *string `json:"override_off_el"`
	AllPumpsOffEl   *string `json:"all_pumps_off_el"`
	BottomEl        *string `json:"bottom_el"`
	InvertEl        *string `json:"invert_el"`
	DropInvertEl    *string `json:"drop_invert_el"`
	LowWaterLevel   *string `json:"low_water_level"`
}

type PumpStationData struct {
	DocumentType   constants.DrawingType `json:"document_type"`
	TitleBlock     *TitleBlock           `json:"title_block"`
	PumpData       PumpData              `json:"pump_data"`
	Components     []Component           `json:"components"`
	Elevations     Elevations            `json:"elevations"`
	Notes          []Note                `json:"notes"`
	Specifications []Specification       `json:"specifications"`
	References     []Reference           `json:"references"`
}

func (*PumpStationData) DrawingType() constants.DrawingType { return constants.PumpStation }

// Requirement kinds.
const (
	RequirementMinimum   = "minimum"
	RequirementPreferred = "preferred"
)

// Requirement is a "N [unit] minimum|preferred" clause from a standards detail.
type Requirement struct {
	Type    string `json:"type"`
	Value   string `json:"value"`
	Unit    string `json:"unit"`
	Context string `json:"context"`
}

type StandardsDetailData struct {
	DocumentType   constants.DrawingType `json:"document_type"`
	TitleBlock     *TitleBlock           `json:"title_block"`
	Tables         []Table               `json:"tables"`
	Notes          []Note                `json:"notes"`
	Specifications []Specification       `json:"specifications"`
	References     []Reference           `json:"references"`
	Requirements   []Requirement         `json:"requirements"`
}

func (*StandardsDetailData) DrawingType() constants.DrawingType { return constants.StandardsDetail }
