package dignity

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"AstroEngine/internal/model"
)

// StandardVersion identifies the built-in table: Dorothean triplicity
// rulers, Egyptian terms, Chaldean faces.
const StandardVersion = "standard-1"

// NewStandardTable builds the built-in dignity table.
func NewStandardTable() *Table {
	t := &Table{
		version: StandardVersion,
		rulers: [12]model.Planet{
			model.Mars, model.Venus, model.Mercury, model.Moon,
			model.Sun, model.Mercury, model.Venus, model.Mars,
			model.Jupiter, model.Saturn, model.Saturn, model.Jupiter,
		},
		exaltations: map[model.Sign]model.Planet{
			model.Aries:     model.Sun,
			model.Taurus:    model.Moon,
			model.Cancer:    model.Jupiter,
			model.Virgo:     model.Mercury,
			model.Libra:     model.Saturn,
			model.Capricorn: model.Mars,
			model.Pisces:    model.Venus,
		},
		detriments: map[model.Sign]model.Planet{
			model.Aries:       model.Venus,
			model.Taurus:      model.Mars,
			model.Gemini:      model.Jupiter,
			model.Cancer:      model.Saturn,
			model.Leo:         model.Saturn,
			model.Virgo:       model.Jupiter,
			model.Libra:       model.Mars,
			model.Scorpio:     model.Venus,
			model.Sagittarius: model.Mercury,
			model.Capricorn:   model.Moon,
			model.Aquarius:    model.Sun,
			model.Pisces:      model.Mercury,
		},
		falls: map[model.Sign]model.Planet{
			model.Aries:     model.Saturn,
			model.Cancer:    model.Mars,
			model.Virgo:     model.Venus,
			model.Libra:     model.Sun,
			model.Capricorn: model.Moon,
			model.Pisces:    model.Mercury,
		},
		triplicity: [4]triplicityRulers{
			{Day: model.Sun, Night: model.Jupiter, Participating: model.Saturn},   // fire
			{Day: model.Venus, Night: model.Moon, Participating: model.Mars},      // earth
			{Day: model.Saturn, Night: model.Mercury, Participating: model.Jupiter}, // air
			{Day: model.Venus, Night: model.Mars, Participating: model.Moon},      // water
		},
	}
	t.terms = egyptianTerms
	t.faces = chaldeanFaces
	return t
}

// egyptianTerms are the Egyptian bounds per sign, [from, to) degrees.
var egyptianTerms = [12][]span{
	{{0, 6, model.Jupiter}, {6, 12, model.Venus}, {12, 20, model.Mercury}, {20, 25, model.Mars}, {25, 30, model.Saturn}},
	{{0, 8, model.Venus}, {8, 14, model.Mercury}, {14, 22, model.Jupiter}, {22, 27, model.Saturn}, {27, 30, model.Mars}},
	{{0, 6, model.Mercury}, {6, 12, model.Jupiter}, {12, 17, model.Venus}, {17, 24, model.Mars}, {24, 30, model.Saturn}},
	{{0, 7, model.Mars}, {7, 13, model.Venus}, {13, 19, model.Mercury}, {19, 26, model.Jupiter}, {26, 30, model.Saturn}},
	{{0, 6, model.Jupiter}, {6, 11, model.Venus}, {11, 18, model.Saturn}, {18, 24, model.Mercury}, {24, 30, model.Mars}},
	{{0, 7, model.Mercury}, {7, 17, model.Venus}, {17, 21, model.Jupiter}, {21, 28, model.Mars}, {28, 30, model.Saturn}},
	{{0, 6, model.Saturn}, {6, 14, model.Mercury}, {14, 21, model.Jupiter}, {21, 28, model.Venus}, {28, 30, model.Mars}},
	{{0, 7, model.Mars}, {7, 11, model.Venus}, {11, 19, model.Mercury}, {19, 24, model.Jupiter}, {24, 30, model.Saturn}},
	{{0, 12, model.Jupiter}, {12, 17, model.Venus}, {17, 21, model.Mercury}, {21, 26, model.Saturn}, {26, 30, model.Mars}},
	{{0, 7, model.Mercury}, {7, 14, model.Jupiter}, {14, 22, model.Venus}, {22, 26, model.Saturn}, {26, 30, model.Mars}},
	{{0, 6, model.Mercury}, {6, 12, model.Venus}, {12, 20, model.Jupiter}, {20, 25, model.Mars}, {25, 30, model.Saturn}},
	{{0, 12, model.Venus}, {12, 16, model.Jupiter}, {16, 19, model.Mercury}, {19, 28, model.Mars}, {28, 30, model.Saturn}},
}

// chaldeanFaces are the 10-degree decanic faces per sign.
var chaldeanFaces = [12][]span{
	{{0, 10, model.Mars}, {10, 20, model.Sun}, {20, 30, model.Venus}},
	{{0, 10, model.Mercury}, {10, 20, model.Moon}, {20, 30, model.Saturn}},
	{{0, 10, model.Jupiter}, {10, 20, model.Mars}, {20, 30, model.Sun}},
	{{0, 10, model.Venus}, {10, 20, model.Mercury}, {20, 30, model.Moon}},
	{{0, 10, model.Saturn}, {10, 20, model.Jupiter}, {20, 30, model.Mars}},
	{{0, 10, model.Sun}, {10, 20, model.Venus}, {20, 30, model.Mercury}},
	{{0, 10, model.Moon}, {10, 20, model.Saturn}, {20, 30, model.Jupiter}},
	{{0, 10, model.Mars}, {10, 20, model.Sun}, {20, 30, model.Venus}},
	{{0, 10, model.Mercury}, {10, 20, model.Moon}, {20, 30, model.Saturn}},
	{{0, 10, model.Jupiter}, {10, 20, model.Mars}, {20, 30, model.Sun}},
	{{0, 10, model.Venus}, {10, 20, model.Mercury}, {20, 30, model.Moon}},
	{{0, 10, model.Saturn}, {10, 20, model.Jupiter}, {20, 30, model.Mars}},
}

// LoadRegistry builds the version registry: the standard table is
// always registered, and an overlay file adds its version beside it, so
// a config may name either.
func LoadRegistry(overlayPath string) (*Registry, error) {
	tables := []*Table{NewStandardTable()}
	if overlayPath != "" {
		overlay, err := LoadFile(overlayPath)
		if err != nil {
			return nil, err
		}
		tables = append(tables, overlay)
	}
	return NewRegistry(tables...), nil
}

// tableFile is the YAML shape of a table overlay. Sections left empty
// inherit the standard assignments.
type tableFile struct {
	Version     string            `yaml:"version"`
	Rulers      map[string]string `yaml:"rulers"`
	Exaltations map[string]string `yaml:"exaltations"`
	Detriments  map[string]string `yaml:"detriments"`
	Falls       map[string]string `yaml:"falls"`
}

// LoadFile reads a YAML table overlay and builds a table with the given
// version. The overlay can reassign rulers, exaltations, detriments and
// falls; terms, faces and triplicities always follow the standard table.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dignity table: %w", err)
	}
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse dignity table: %w", err)
	}
	if f.Version == "" {
		return nil, fmt.Errorf("dignity table %s: version is required", path)
	}

	t := NewStandardTable()
	t.version = f.Version
	for signName, planet := range f.Rulers {
		s, err := model.ParseSign(signName)
		if err != nil {
			return nil, fmt.Errorf("dignity table %s: %w", path, err)
		}
		t.rulers[s] = model.Planet(planet)
	}
	for dst, src := range map[*map[model.Sign]model.Planet]map[string]string{
		&t.exaltations: f.Exaltations,
		&t.detriments:  f.Detriments,
		&t.falls:       f.Falls,
	} {
		for signName, planet := range src {
			s, err := model.ParseSign(signName)
			if err != nil {
				return nil, fmt.Errorf("dignity table %s: %w", path, err)
			}
			(*dst)[s] = model.Planet(planet)
		}
	}
	return t, nil
}
