package classify

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/blueparser/constants"
)

//go:embed rules.yaml
var rulesYAML []byte

type keywordSet struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

type ruleFile struct {
	DrawingTypes []keywordSet `yaml:"drawing_types"`
	Disciplines  []keywordSet `yaml:"disciplines"`
}

type typeRule struct {
	Type     constants.DrawingType
	Keywords []string
}

type disciplineRule struct {
	Discipline constants.Discipline
	Keywords   []string
}

// Rules are the parsed keyword tables. They are read-only after load.
type Rules struct {
	types       []typeRule
	disciplines []disciplineRule
}

// ParseRules decodes a keyword table document.
func ParseRules(data []byte) (*Rules, error) {
	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	r := &Rules{}
	for _, ks := range f.DrawingTypes {
		t, ok := constants.ParseDrawingType(ks.Label)
		if !ok || t == constants.UnknownType {
			return nil, fmt.Errorf("rules: unknown drawing type %q", ks.Label)
		}
		r.types = append(r.types, typeRule{Type: t, Keywords: upper(ks.Keywords)})
	}
	for _, ks := range f.Disciplines {
		d, ok := constants.ParseDiscipline(ks.Label)
		if !ok || d == constants.UnknownDiscipline {
			return nil, fmt.Errorf("rules: unknown discipline %q", ks.Label)
		}
		r.disciplines = append(r.disciplines, disciplineRule{Discipline: d, Keywords: upper(ks.Keywords)})
	}
	if len(r.types) == 0 || len(r.disciplines) == 0 {
		return nil, fmt.Errorf("rules: empty keyword table")
	}
	return r, nil
}

func upper(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToUpper(s)
	}
	return out
}

var defaultRules = mustParseRules(rulesYAML)

func mustParseRules(data []byte) *Rules {
	r, err := ParseRules(data)
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultRules returns the embedded keyword tables.
func DefaultRules() *Rules { return defaultRules }
