// Package engine orchestrates a full computation run: lot derivation,
// Almuten, the three time-lord techniques, antiscia scanning, scoring
// and conflict resolution, merged into one auditable output.
package engine

import (
	"fmt"
	"math"
	"time"

	"AstroEngine/internal/almuten"
	"AstroEngine/internal/antiscia"
	"AstroEngine/internal/conflict"
	"AstroEngine/internal/dignity"
	"AstroEngine/internal/firdaria"
	"AstroEngine/internal/fixedstars"
	"AstroEngine/internal/lots"
	"AstroEngine/internal/midpoints"
	"AstroEngine/internal/model"
	"AstroEngine/internal/profection"
	"AstroEngine/internal/scoring"
	"AstroEngine/internal/zr"
)

// Options configures one run.
type Options struct {
	Birth time.Time // chart moment; drives profection age and timelines
	At    time.Time // evaluation instant; defaults to Birth

	ZRHorizonYears float64 // defaults to 100
	ZRDepth        int     // defaults to 2
	AntisciaOrb    float64 // defaults to antiscia.DefaultOrb

	// Firdaria lord sequences per sect; both must be non-empty.
	Diurnal   firdaria.Sequence
	Nocturnal firdaria.Sequence
}

// Output is the merged run result: the surviving evidence plus the full
// audit trail of what was dropped or suppressed along the way.
type Output struct {
	Result       model.Result
	Almuten      model.Planet
	Profection   *model.ProfectionYear
	Dropped      []model.Evidence
	Suppressions []conflict.Suppression
}

// Engine binds a dignity table version to the calculators. Safe for
// concurrent use; each Run allocates its own output graph.
type Engine struct {
	table *dignity.Table
}

func New(table *dignity.Table) *Engine {
	return &Engine{table: table}
}

// Run executes the full pipeline against one chart. The chart is not
// mutated; derived lot positions are added to a private copy.
func (e *Engine) Run(chart *model.Chart, opts Options) (*Output, error) {
	if err := chart.Validate(); err != nil {
		return nil, err
	}
	if opts.At.IsZero() {
		opts.At = opts.Birth
	}
	if err := opts.Diurnal.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Nocturnal.Validate(); err != nil {
		return nil, err
	}

	spirit, err := lots.Spirit(chart)
	if err != nil {
		return nil, err
	}
	fortune, err := lots.Fortune(chart)
	if err != nil {
		return nil, err
	}

	work := withLots(chart, spirit, fortune)
	out := &Output{Result: model.Result{Diagnostics: map[string]any{
		"dignity_table": e.table.Version(),
		"evaluated_at":  opts.At.Format(time.RFC3339),
	}}}

	// Eros is optional: its absence degrades, never fails.
	if eros, err := lots.Eros(work); err == nil {
		work.Points[model.PointEros] = model.Point{Name: model.PointEros, Sign: eros}
	} else {
		out.Result.Diagnostics["eros_omitted"] = err.Error()
	}

	alm, err := almuten.Compute(work, e.table)
	if err != nil {
		return nil, err
	}
	out.Almuten = alm.Winner
	merge(&out.Result, alm.Result())

	age := profection.Age(opts.Birth, opts.At)
	py, err := profection.Compute(work, e.table, age)
	if err != nil {
		return nil, err
	}
	out.Profection = py
	merge(&out.Result, profection.Result(work, e.table, py, age))

	seq := opts.Nocturnal
	if work.IsDay {
		seq = opts.Diurnal
	}
	span := float64(age) + 1
	if span < seq.TotalYears() {
		span = seq.TotalYears()
	}
	fird, err := firdaria.Build(seq, opts.Birth, span)
	if err != nil {
		return nil, err
	}
	merge(&out.Result, fird.ResultAt(opts.At, work.IsDay))

	var firdMajor, firdMinor model.Planet
	if major, minor, ok := fird.ActiveAt(opts.At); ok {
		firdMajor, firdMinor = major.Lord, minor.MinorLord
	}

	timeline, err := zr.Build(zr.Options{
		Lot:          spirit,
		Fortune:      fortune,
		Start:        opts.Birth,
		HorizonYears: opts.ZRHorizonYears,
		Depth:        opts.ZRDepth,
	}, e.table)
	if err != nil {
		return nil, err
	}
	merge(&out.Result, timeline.ResultAt(opts.At, zr.ToneContext{
		Chart:          work,
		Table:          e.table,
		Almuten:        alm.Winner,
		ProfectionLord: py.YearLord,
		FirdariaMajor:  firdMajor,
		FirdariaMinor:  firdMinor,
	}))

	merge(&out.Result, antiscia.Result(work, opts.AntisciaOrb))
	merge(&out.Result, midpoints.Result(work, 0))
	merge(&out.Result, fixedstars.Result(work, 0))

	kept, dropped := scoring.Score(out.Result.Evidence)
	out.Dropped = dropped

	moon := moonApplies(work)
	if moon != "" {
		out.Result.Diagnostics["moon_applies_to"] = moon
	}
	resolution := conflict.Resolve(kept, conflict.Context{
		MoonFavors: moon,
		LotFavors:  lotFavors(e.table, spirit),
	})
	out.Result.Evidence = resolution.Evidence
	out.Suppressions = resolution.Suppressions
	out.Result.Diagnostics["dropped_count"] = len(dropped)
	out.Result.Diagnostics["suppressed_count"] = len(resolution.Suppressions)
	return out, nil
}

// withLots copies the chart and injects the derived lot positions at
// degree zero of their signs.
func withLots(chart *model.Chart, spirit, fortune model.Sign) *model.Chart {
	points := make(map[string]model.Point, len(chart.Points)+2)
	for k, v := range chart.Points {
		points[k] = v
	}
	points[model.PointSpirit] = model.Point{Name: model.PointSpirit, Sign: spirit}
	points[model.PointFortune] = model.Point{Name: model.PointFortune, Sign: fortune}
	return &model.Chart{Points: points, IsDay: chart.IsDay, Cusps: chart.Cusps}
}

// lotFavors names the final-tie-break subject: the ruler of the sign
// the releasing lot occupies.
func lotFavors(table *dignity.Table, lot model.Sign) string {
	ruler, err := table.RulerOf(lot)
	if err != nil {
		return ""
	}
	return string(ruler)
}

// moonApplies names the planet the Moon perfects its next Ptolemaic
// aspect to, judged from longitudes and daily speeds. Empty when the
// chart carries no speeds; the tie-break then stands down.
func moonApplies(chart *model.Chart) string {
	moon, ok := chart.Point(string(model.Moon))
	if !ok || moon.Speed == 0 {
		return ""
	}
	targets := []float64{0, 60, 90, 120, 180, 240, 270, 300}
	best := ""
	bestDays := math.MaxFloat64
	for _, p := range model.ClassicalPlanets {
		if p == model.Moon {
			continue
		}
		pt, ok := chart.Point(string(p))
		if !ok {
			continue
		}
		rel := moon.Speed - pt.Speed
		if rel <= 0 {
			continue
		}
		theta := math.Mod(math.Mod(moon.Longitude()-pt.Longitude(), 360)+360, 360)
		for _, target := range targets {
			delta := math.Mod(target-theta+360, 360)
			if delta == 0 {
				// Already exact: perfection lies a full cycle ahead.
				continue
			}
			if days := delta / rel; days < bestDays {
				bestDays = days
				best = string(p)
			}
		}
	}
	return best
}

// merge appends one calculator payload onto the accumulated result.
// Colliding diagnostic keys are suffixed rather than overwritten.
func merge(dst *model.Result, src model.Result) {
	dst.Features = append(dst.Features, src.Features...)
	dst.Evidence = append(dst.Evidence, src.Evidence...)
	for k, v := range src.Diagnostics {
		if _, exists := dst.Diagnostics[k]; exists {
			k = fmt.Sprintf("%s_%d", k, len(dst.Diagnostics))
		}
		dst.Diagnostics[k] = v
	}
}
