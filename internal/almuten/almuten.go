// Package almuten ranks the seven classical planets by weighted
// essential dignity across the chart's six key points and resolves ties
// through a strict, fully deterministic chain.
package almuten

import (
	"fmt"

	"AstroEngine/internal/dignity"
	"AstroEngine/internal/model"
)

// Dignity weights for the main accumulation pass.
const (
	weightRuler      = 5
	weightExaltation = 4
	weightTriplicity = 3
	weightTerm       = 2
	weightFace       = 1
)

// scoredPoints are the six points every almuten computation examines.
var scoredPoints = []string{
	string(model.Sun), string(model.Moon),
	model.PointASC, model.PointMC,
	model.PointFortune, model.PointSpirit,
}

// Outcome is the full almuten computation record, including everything
// needed to audit the ranking.
type Outcome struct {
	Winner            model.Planet
	Totals            map[model.Planet]int
	Subtotals         map[model.Planet]map[string]int // planet -> point -> score
	TieBreakPath      []string
	TieBreakExhausted bool
	TableVersion      string
}

// Compute scores all classical planets across the six chart points.
// The chart must already carry Fortune and Spirit (derive them with the
// lots package first).
func Compute(chart *model.Chart, table *dignity.Table) (*Outcome, error) {
	if err := chart.Validate(); err != nil {
		return nil, err
	}
	for _, name := range scoredPoints {
		if _, ok := chart.Point(name); !ok {
			return nil, &model.InvalidChartError{Reason: fmt.Sprintf("almuten requires point %s", name)}
		}
	}

	out := &Outcome{
		Totals:       make(map[model.Planet]int, len(model.ClassicalPlanets)),
		Subtotals:    make(map[model.Planet]map[string]int, len(model.ClassicalPlanets)),
		TableVersion: table.Version(),
	}
	for _, planet := range model.ClassicalPlanets {
		out.Subtotals[planet] = make(map[string]int, len(scoredPoints))
	}

	for _, name := range scoredPoints {
		pt := chart.Points[name]
		for _, planet := range model.ClassicalPlanets {
			score := pointScore(table, planet, pt, chart.IsDay)
			out.Subtotals[planet][name] = score
			out.Totals[planet] += score
		}
	}

	candidates := leaders(out.Totals, model.ClassicalPlanets)
	if len(candidates) > 1 {
		candidates = breakTies(candidates, chart, table, out)
	}
	out.Winner = candidates[0]
	return out, nil
}

// pointScore accumulates every dignity the planet holds at one point;
// multiple kinds at the same point add up.
func pointScore(table *dignity.Table, planet model.Planet, pt model.Point, isDay bool) int {
	score := 0
	if table.IsRuler(planet, pt.Sign) {
		score += weightRuler
	}
	if table.IsExalted(planet, pt.Sign) {
		score += weightExaltation
	}
	if table.InTriplicity(planet, pt.Sign, isDay) {
		score += weightTriplicity
	}
	if table.InTerm(planet, pt.Sign, pt.Degree) {
		score += weightTerm
	}
	if table.InFace(planet, pt.Sign, pt.Degree) {
		score += weightFace
	}
	return score
}

// leaders returns the planets sharing the maximum total, preserving the
// canonical planet order.
func leaders(totals map[model.Planet]int, order []model.Planet) []model.Planet {
	best := -1
	for _, p := range order {
		if totals[p] > best {
			best = totals[p]
		}
	}
	var out []model.Planet
	for _, p := range order {
		if totals[p] == best {
			out = append(out, p)
		}
	}
	return out
}

// breakTies applies the tie-break chain in strict order, each step
// narrowing the candidate set. Every step taken is recorded.
func breakTies(candidates []model.Planet, chart *model.Chart, table *dignity.Table, out *Outcome) []model.Planet {
	steps := []struct {
		name   string
		narrow func([]model.Planet, *model.Chart, *dignity.Table) []model.Planet
	}{
		{"rulership_exaltation_recount", byStrongDignities},
		{"proximity_to_lights", byLightProximity},
		{"proximity_to_angles", byAngleProximity},
		{"sect_match", bySect},
	}
	for _, step := range steps {
		next := step.narrow(candidates, chart, table)
		out.TieBreakPath = append(out.TieBreakPath,
			fmt.Sprintf("%s: %d -> %d candidates", step.name, len(candidates), len(next)))
		candidates = next
		if len(candidates) == 1 {
			return candidates
		}
	}

	// Chain exhausted: fall back to the fixed Chaldean order. Surfaced
	// as a diagnostic flag, never as a failure.
	out.TieBreakExhausted = true
	for _, p := range model.ChaldeanOrder {
		for _, c := range candidates {
			if c == p {
				out.TieBreakPath = append(out.TieBreakPath, "chaldean_order: "+string(p))
				return []model.Planet{p}
			}
		}
	}
	return candidates // unreachable: candidates are classical planets
}

// byStrongDignities recounts totals using only rulership and exaltation
// weights and keeps the leaders.
func byStrongDignities(candidates []model.Planet, chart *model.Chart, table *dignity.Table) []model.Planet {
	totals := make(map[model.Planet]int, len(candidates))
	for _, name := range scoredPoints {
		pt := chart.Points[name]
		for _, planet := range candidates {
			if table.IsRuler(planet, pt.Sign) {
				totals[planet] += weightRuler
			}
			if table.IsExalted(planet, pt.Sign) {
				totals[planet] += weightExaltation
			}
		}
	}
	return leaders(totals, candidates)
}

// byLightProximity keeps the candidates with the minimum ecliptic
// distance to the nearer of the Sun and the Moon. A planet without a
// charted position counts as maximally distant.
func byLightProximity(candidates []model.Planet, chart *model.Chart, _ *dignity.Table) []model.Planet {
	sun := chart.Points[string(model.Sun)]
	moon := chart.Points[string(model.Moon)]
	return nearest(candidates, chart, []float64{sun.Longitude(), moon.Longitude()})
}

// byAngleProximity keeps the candidates nearest to any of the four
// angles. Placidus cusps are used when the chart provides them; the
// ASC/MC points (and their opposites) otherwise.
func byAngleProximity(candidates []model.Planet, chart *model.Chart, _ *dignity.Table) []model.Planet {
	var angles []float64
	if len(chart.Cusps) == 12 {
		angles = []float64{chart.Cusps[0], chart.Cusps[3], chart.Cusps[6], chart.Cusps[9]}
	} else {
		asc := chart.Points[model.PointASC].Longitude()
		mc := chart.Points[model.PointMC].Longitude()
		angles = []float64{asc, asc + 180, mc, mc + 180}
	}
	return nearest(candidates, chart, angles)
}

func nearest(candidates []model.Planet, chart *model.Chart, targets []float64) []model.Planet {
	dist := make(map[model.Planet]float64, len(candidates))
	best := 360.0
	for _, planet := range candidates {
		d := 180.0
		if pt, ok := chart.Point(string(planet)); ok {
			for _, target := range targets {
				if ad := model.ArcDistance(pt.Longitude(), target); ad < d {
					d = ad
				}
			}
		}
		dist[planet] = d
		if d < best {
			best = d
		}
	}
	var out []model.Planet
	for _, planet := range candidates {
		if dist[planet] == best {
			out = append(out, planet)
		}
	}
	return out
}

// bySect keeps the candidates matching the chart's sect: diurnal
// planets in a day chart, nocturnal in a night chart.
func bySect(candidates []model.Planet, chart *model.Chart, _ *dignity.Table) []model.Planet {
	var out []model.Planet
	for _, planet := range candidates {
		if planet.InSect(chart.IsDay) {
			out = append(out, planet)
		}
	}
	if len(out) == 0 {
		return candidates
	}
	return out
}

// Result converts the outcome into the common calculator payload.
func (o *Outcome) Result() model.Result {
	winnerTotal := o.Totals[o.Winner]
	ev := model.Evidence{
		Kind:        model.FactorAlmuten,
		Subject:     string(o.Winner),
		Claim:       "dominant_ruler",
		Description: fmt.Sprintf("%s is the Almuten Figuris with %d dignity points", o.Winner, winnerTotal),
		Reasons:     []string{fmt.Sprintf("highest weighted dignity total (%d) across the six chart points", winnerTotal)},
	}
	diag := map[string]any{
		"totals":              o.Totals,
		"subtotals":           o.Subtotals,
		"dignity_table":       o.TableVersion,
		"tie_break_path":      o.TieBreakPath,
		"tie_break_exhausted": o.TieBreakExhausted,
	}
	return model.Result{
		Features:    []string{fmt.Sprintf("Almuten Figuris: %s (%d points)", o.Winner, winnerTotal)},
		Evidence:    []model.Evidence{ev},
		Diagnostics: diag,
	}
}
