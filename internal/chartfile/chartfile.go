// Package chartfile loads natal chart snapshots from YAML files. The
// file format mirrors what an ephemeris export produces: per-point sign
// names and in-sign degrees plus the sect flag and optional cusps.
package chartfile

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"AstroEngine/internal/model"
)

type pointFile struct {
	Sign       string  `yaml:"sign"`
	Degree     float64 `yaml:"degree"`
	Speed      float64 `yaml:"speed"`
	Retrograde bool    `yaml:"retrograde"`
}

type chartFile struct {
	Birth  time.Time            `yaml:"birth"`
	IsDay  bool                 `yaml:"is_day"`
	Points map[string]pointFile `yaml:"points"`
	Cusps  []float64            `yaml:"cusps"`
}

// Load reads and validates a chart file. The returned time is the birth
// moment the chart was cast for.
func Load(path string) (*model.Chart, time.Time, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("read chart file: %w", err)
	}
	var cf chartFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, time.Time{}, fmt.Errorf("parse chart file: %w", err)
	}
	if cf.Birth.IsZero() {
		return nil, time.Time{}, &model.InvalidChartError{Reason: "chart file has no birth timestamp"}
	}

	chart := &model.Chart{
		IsDay:  cf.IsDay,
		Points: make(map[string]model.Point, len(cf.Points)),
		Cusps:  cf.Cusps,
	}
	for name, p := range cf.Points {
		sign, err := model.ParseSign(p.Sign)
		if err != nil {
			return nil, time.Time{}, &model.InvalidChartError{Reason: fmt.Sprintf("point %s: %v", name, err)}
		}
		chart.Points[name] = model.Point{
			Name:       name,
			Sign:       sign,
			Degree:     p.Degree,
			Speed:      p.Speed,
			Retrograde: p.Retrograde,
		}
	}
	if err := chart.Validate(); err != nil {
		return nil, time.Time{}, err
	}
	return chart, cf.Birth, nil
}
