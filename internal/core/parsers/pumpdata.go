package parsers

import (
	"regexp"

	"github.com/joseph-ayodele/blueparser/internal/core/extract"
	"github.com/joseph-ayodele/blueparser/internal/entity"
)

type pumpField struct {
	set      func(*entity.PumpData, *string)
	patterns []*regexp.Regexp
}

// Nameplate fields, each with patterns in precedence order.
var pumpFields = []pumpField{
	{func(d *entity.PumpData, v *string) { d.Model = v }, extract.MustCompileAll(
		`(?im)PUMP MODEL[:\s]+([A-Z0-9\s-]+?)(?:\n|$)`,
		`(?im)MODEL[:\s]+([A-Z0-9\s-]+?)(?:\n|$)`,
	)},
	{func(d *entity.PumpData, v *string) { d.SerialNumber = v }, extract.MustCompileAll(
		`(?im)PUMP SERIAL NO[.:\s]+([A-Z0-9-]+)`,
		`(?im)SERIAL NO[.:\s]+([A-Z0-9-]+)`,
	)},
	{func(d *entity.PumpData, v *string) { d.DesignCapacityGPM = v }, extract.MustCompileAll(
		`(?im)DESIGN CAPACITY[:\s]+(\d+)\s*GPM`,
		`(?im)PUMP DESIGN POINT[:\s]+(\d+)\s*GPM`,
		`(?im)(\d+)\s*GPM\s*@`,
	)},
	{func(d *entity.PumpData, v *string) { d.DesignTDH = v }, extract.MustCompileAll(
		`(?im)(\d+)\s*TDH`,
		`(?im)@\s*(\d+)\s*TDH`,
		`(?im)GPM\s*@\s*(\d+)`,
	)},
	{func(d *entity.PumpData, v *string) { d.Horsepower = v }, extract.MustCompileAll(
		`(?im)PUMP H\.?P\.?[:\s]+(\d+\.?\d*)`,
		`(?im)(\d+\.?\d*)\s*HP`,
		`(?im)(\d+\.?\d*)\s*PHASE`,
	)},
	{func(d *entity.PumpData, v *string) { d.Phase = v }, extract.MustCompileAll(
		`(?im)(\d+)\s*PHASE`,
		`(?im)PHASE[:\s]+(\d+)`,
	)},
	{func(d *entity.PumpData, v *string) { d.ImpellerNumber = v }, extract.MustCompileAll(
		`(?im)PUMP IMP\.? NO[.:\s/]+([A-Z0-9-]+)`,
		`(?im)IMP\.?\s*NO[.:\s]+([A-Z0-9-]+)`,
	)},
	{func(d *entity.PumpData, v *string) { d.ImpellerDiameter = v }, extract.MustCompileAll(
		`(?im)IMP\.?[:\s/]+([0-9.]+)\s*(?:DIA|")`,
		`(?im)DIA[.:\s]+([0-9.]+)`,
	)},
	{func(d *entity.PumpData, v *string) { d.Voltage = v }, extract.MustCompileAll(
		`(?im)PUMP VOLTS[:\s]+(\d+)`,
		`(?im)(\d+)\s*VOLTS`,
		`(?im)(\d+)V`,
	)},
	{func(d *entity.PumpData, v *string) { d.Amperage = v }, extract.MustCompileAll(
		`(?im)(\d+\.?\d*)\s*AMPS`,
		`(?im)AMPS[:\s]+(\d+\.?\d*)`,
	)},
	{func(d *entity.PumpData, v *string) { d.ShutOffHead = v }, extract.MustCompileAll(
		`(?im)SHUT[- ]OFF HEAD[:\s]+(\d+)`,
		`(?im)SHUT[- ]OFF[:\s]+(\d+)\s*FT`,
	)},
	{func(d *entity.PumpData, v *string) { d.SpeedRPM = v }, extract.MustCompileAll(
		`(?im)PUMP SPEED[:\s]+(\d+)\s*RPM`,
		`(?im)(\d+)\s*RPM`,
	)},
	{func(d *entity.PumpData, v *string) { d.StaticHead = v }, extract.MustCompileAll(
		`(?im)STATIC HEAD[:\s]+(\d+)`,
		`(?im)STATIC[:\s]+(\d+)\s*FT`,
	)},
	{func(d *entity.PumpData, v *string) { d.WetwellVolumeGallons = v }, extract.MustCompileAll(
		`(?im)WET WELL VOLUME[:\s]+(\d+)\s*GALLONS`,
		`(?im)VOLUME[:\s]+(\d+)\s*GAL`,
	)},
	{func(d *entity.PumpData, v *string) { d.WetwellDiameter = v }, extract.MustCompileAll(
		`(?im)(\d+)\s*FT\.?\s*DIA`,
		`(?im)(\d+)['"]?\s*DIA\.?\s*WETWELL`,
		`(?im)DIA\.?\s*WETWELL[:\s]+(\d+)`,
	)},
}

var hpSuffixed = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*HP`)

// ParsePumpData resolves the nameplate fields against text.
func ParsePumpData(text string) entity.PumpData {
	var d entity.PumpData
	for _, f := range pumpFields {
		f.set(&d, extract.FirstMatch(text, f.patterns))
	}
	// "3 PHASE" also satisfies the last horsepower pattern. On a collision only an
	// HP-suffixed number is trusted.
	if d.Horsepower != nil && d.Phase != nil && *d.Horsepower == *d.Phase {
		d.Horsepower = nil
		if m := hpSuffixed.FindStringSubmatch(text); m != nil {
			hp := m[1]
			d.Horsepower = &hp
		}
	}
	return d
}

const elevationPlaceholder = "__"

// ElevationTBD replaces a blank "__" elevation on the drawing.
const ElevationTBD = "TBD"

var (
	invertElPatterns = extract.MustCompileAll(
		`(?im)INVERT EL\.?[:\s]+([\d.]+|__)`,
		`(?im)INV EL\.?[:\s]+([\d.]+|__)`,
		`(?im)INVERT ELEVATION[:\s]+([\d.]+|__)`,
	)
	// dropInvertLabel spans are blanked before resolving invert_el.
	dropInvertLabel = regexp.MustCompile(`(?im)DROP\s+INV(?:ERT)?\s+EL\.?[:\s]+(?:[\d.]+|__)`)
)

type elevationField struct {
	set      func(*entity.Elevations, *string)
	patterns []*regexp.Regexp
}

var elevationFields = []elevationField{
	{func(e *entity.Elevations, v *string) { e.TopEl = v }, extract.MustCompileAll(
		`(?im)TOP EL\.?[:\s]+([\d.]+)`,
		`(?im)TOP ELEVATION[:\s]+([\d.]+)`,
	)},
	{func(e *entity.Elevations, v *string) { e.HighHighAlarmEl = v }, extract.MustCompileAll(
		`(?im)HI[/\s]*HI ALARM EL\.?[:\s]+([\d.]+|__)`,
		`(?im)HIGH[/\s]*HIGH ALARM EL\.?[:\s]+([\d.]+|__)`,
		`(?im)H/?H ALARM[:\s]+([\d.]+|__)`,
	)},
	{func(e *entity.Elevations, v *string) { e.HighAlarmEl = v }, extract.MustCompileAll(
		`(?im)HIGH ALARM EL\.?[:\s]+([\d.]+|__)`,
		`(?im)HIGH ALARM[:\s]+([\d.]+|__)`,
		`(?im)HI ALARM[:\s]+([\d.]+|__)`,
	)},
	{func(e *entity.Elevations, v *string) { e.OverrideOnEl = v }, extract.MustCompileAll(
		`(?im)OVERRIDE ON EL\.?[:\s]+([\d.]+|__)`,
		`(?im)OVERRIDE ON[:\s]+([\d.]+|__)`,
	)},
	{func(e *entity.Elevations, v *string) { e.LagOnEl = v }, extract.MustCompileAll(
		`(?im)LAG ON EL\.?[:\s]+([\d.]+|__)`,
		`(?im)LAG ON[:\s]+([\d.]+|__)`,
	)},
	{func(e *entity.Elevations, v *string) { e.LeadOnEl = v }, extract.MustCompileAll(
		`(?im)LEAD ON EL\.?[:\s]+([\d.]+|__)`,
		`(?im)LEAD ON[:\s]+([\d.]+|__)`,
	)},
	{func(e *entity.Elevations, v *string) { e.OverrideOffEl = v }, extract.MustCompileAll(
		`(?im)OVERRIDE OFF EL\.?[:\s]+([\d.]+|__)`,
		`(?im)OVERRIDE OFF[:\s]+([\d.]+|__)`,
	)},
	{func(e *entity.Elevations, v *string) { e.AllPumpsOffEl = v }, extract.MustCompileAll(
		`(?im)ALL PUMPS OFF EL\.?[:\s]+([\d.]+|__)`,
		`(?im)PUMPS OFF EL\.?[:\s]+([\d.]+|__)`,
		`(?im)PUMPS OFF[:\s]+([\d.]+|__)`,
	)},
	{func(e *entity.Elevations, v *string) { e.BottomEl = v }, extract.MustCompileAll(
		`(?im)BOTTOM EL\.?[:\s]+([\d.]+|__)`,
		`(?im)BOTTOM ELEVATION[:\s]+([\d.]+|__)`,
	)},
	{func(e *entity.Elevations, v *string) { e.DropInvertEl = v }, extract.MustCompileAll(
		`(?im)DROP INVERT EL\.?[:\s]+([\d.]+|__)`,
		`(?im)DROP INV EL\.?[:\s]+([\d.]+|__)`,
	)},
	{func(e *entity.Elevations, v *string) { e.LowWaterLevel = v }, extract.MustCompileAll(
		`(?im)LWL[:\s]+([\d.]+)`,
		`(?im)LOW WATER LEVEL[:\s]+([\d.]+)`,
	)},
}

// ParseElevations resolves the control elevations against text.
func ParseElevations(text string) entity.Elevations {
	var e entity.Elevations
	for _, f := range elevationFields {
		f.set(&e, elevation(text, f.patterns))
	}
	e.InvertEl = elevation(dropInvertLabel.ReplaceAllString(text, " "), invertElPatterns)
	return e
}

func elevation(text string, patterns []*regexp.Regexp) *string {
	v := extract.FirstMatch(text, patterns)
	if v != nil && *v == elevationPlaceholder {
		tbd := ElevationTBD
		return &tbd
	}
	return v
}
