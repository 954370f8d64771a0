package zr

import (
	"fmt"
	"time"

	"AstroEngine/internal/dignity"
	"AstroEngine/internal/model"
)

// ToneContext supplies the chart facts tone evaluation composes over.
type ToneContext struct {
	Chart          *model.Chart
	Table          *dignity.Table
	Almuten        model.Planet
	ProfectionLord model.Planet
	FirdariaMajor  model.Planet
	FirdariaMinor  model.Planet
}

// aspectual reports whether two signs are configured by a whole-sign
// aspect (conjunction, sextile, square, trine or opposition); signs in
// aversion are not.
func aspectual(a, b model.Sign) bool {
	d := a.DistanceFrom(b)
	if d > 6 {
		d = 12 - d
	}
	switch d {
	case 0, 2, 3, 4, 6:
		return true
	}
	return false
}

// receptionBetween classifies the reception link between two planets at
// their charted positions.
func receptionBetween(table *dignity.Table, a, b model.Planet, chart *model.Chart) model.ReceptionState {
	ptA, okA := chart.Point(string(a))
	ptB, okB := chart.Point(string(b))
	if !okA || !okB {
		return model.ReceptionNone
	}
	aReceived := table.Reception(b, ptA.Sign) != ""
	bReceived := table.Reception(a, ptB.Sign) != ""
	switch {
	case aReceived && bReceived:
		return model.ReceptionMutual
	case aReceived || bReceived:
		return model.ReceptionOneWay
	}
	return model.ReceptionNone
}

// EvaluateTone composes the qualitative tone of a period from the
// condition of its ruling planet: essential dignity at its own chart
// position, sect agreement, connection to the Almuten, and reception
// with the active profection and Firdaria lords. The returned tone
// always explains its score.
func EvaluateTone(p *model.Period, ctx ToneContext) *model.Tone {
	ruler := p.Ruler
	score := 0.5
	var reasons []string
	add := func(delta float64, reason string) {
		score += delta
		reasons = append(reasons, reason)
	}

	// Essential dignity of the ruler at its own natal position.
	if pt, ok := ctx.Chart.Point(string(ruler)); ok {
		kinds, err := ctx.Table.DignitiesAt(ruler, pt.Sign, pt.Degree, ctx.Chart.IsDay)
		if err == nil && len(kinds) > 0 {
			for _, k := range kinds {
				switch k {
				case dignity.Ruler:
					add(0.10, fmt.Sprintf("%s in its own sign %s", ruler, pt.Sign))
				case dignity.Exalted:
					add(0.08, fmt.Sprintf("%s exalted in %s", ruler, pt.Sign))
				case dignity.Triplicity:
					add(0.05, fmt.Sprintf("%s rules the %s triplicity", ruler, pt.Sign))
				case dignity.Term:
					add(0.03, fmt.Sprintf("%s in its own term", ruler))
				case dignity.Face:
					add(0.02, fmt.Sprintf("%s in its own face", ruler))
				case dignity.Detriment:
					add(-0.08, fmt.Sprintf("%s in detriment in %s", ruler, pt.Sign))
				case dignity.Fall:
					add(-0.10, fmt.Sprintf("%s in fall in %s", ruler, pt.Sign))
				}
			}
		} else {
			add(0, fmt.Sprintf("%s peregrine in %s", ruler, pt.Sign))
		}
	} else {
		add(0, fmt.Sprintf("%s has no charted position", ruler))
	}

	// Sect agreement.
	switch {
	case ruler.InSect(ctx.Chart.IsDay):
		add(0.15, fmt.Sprintf("%s agrees with the chart's sect", ruler))
	case ruler == model.Mercury:
		add(0, "Mercury adapts to either sect")
	default:
		add(-0.10, fmt.Sprintf("%s is contrary to the chart's sect", ruler))
	}

	// Connection to the Almuten.
	if ctx.Almuten != "" {
		switch {
		case ruler == ctx.Almuten:
			add(0.20, fmt.Sprintf("%s is itself the Almuten", ruler))
		default:
			if rec := receptionBetween(ctx.Table, ruler, ctx.Almuten, ctx.Chart); rec == model.ReceptionMutual {
				add(0.15, fmt.Sprintf("%s in mutual reception with Almuten %s", ruler, ctx.Almuten))
			} else if rec == model.ReceptionOneWay {
				add(0.10, fmt.Sprintf("%s in reception with Almuten %s", ruler, ctx.Almuten))
			} else if rp, ok := ctx.Chart.Point(string(ruler)); ok {
				if ap, ok := ctx.Chart.Point(string(ctx.Almuten)); ok && aspectual(rp.Sign, ap.Sign) {
					add(0.10, fmt.Sprintf("%s configured to Almuten %s by whole-sign aspect", ruler, ctx.Almuten))
				}
			}
		}
	}

	// Reception with the active time lords.
	for _, lord := range []struct {
		planet model.Planet
		label  string
	}{
		{ctx.ProfectionLord, "profection lord"},
		{ctx.FirdariaMajor, "Firdaria major lord"},
		{ctx.FirdariaMinor, "Firdaria minor lord"},
	} {
		if lord.planet == "" {
			continue
		}
		if ruler == lord.planet {
			add(0.15, fmt.Sprintf("%s is the active %s", ruler, lord.label))
			continue
		}
		switch receptionBetween(ctx.Table, ruler, lord.planet, ctx.Chart) {
		case model.ReceptionMutual:
			add(0.10, fmt.Sprintf("%s in mutual reception with %s %s", ruler, lord.label, lord.planet))
		case model.ReceptionOneWay:
			add(0.05, fmt.Sprintf("%s in reception with %s %s", ruler, lord.label, lord.planet))
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return &model.Tone{
		Intensity: intensityFor(score),
		Valence:   valenceFor(score),
		Score:     score,
		Reasons:   reasons,
	}
}

func intensityFor(score float64) model.Intensity {
	switch {
	case score >= 0.75 || score <= 0.25:
		return model.IntensityHigh
	case score >= 0.6 || score <= 0.4:
		return model.IntensityModerate
	}
	return model.IntensityLow
}

func valenceFor(score float64) model.Valence {
	switch {
	case score >= 0.6:
		return model.ValenceSupportive
	case score <= 0.4:
		return model.ValenceChallenging
	case score > 0.45 && score < 0.55:
		return model.ValenceNeutral
	}
	return model.ValenceMixed
}

// ResultAt evaluates the timeline at an instant and emits the common
// calculator payload: one evidence item per active period level, each
// toned and flagged for the scoring engine.
func (tl *Timeline) ResultAt(at time.Time, ctx ToneContext) model.Result {
	chain := tl.ActiveAt(at)
	res := model.Result{
		Diagnostics: map[string]any{
			"lot_sign":     tl.Lot.String(),
			"fortune_sign": tl.Fortune.String(),
			"l1_count":     len(tl.L1),
			"active_depth": len(chain),
		},
	}
	if ctx.Table != nil {
		res.Diagnostics["dignity_table"] = ctx.Table.Version()
	}

	for _, p := range chain {
		tone := EvaluateTone(p, ctx)
		p.Tone = tone

		feature := fmt.Sprintf("ZR L%d: %s period ruled by %s (%s, %s)",
			p.Level, p.Sign, p.Ruler, tone.Valence, tone.Intensity)
		if p.IsPeak {
			feature += fmt.Sprintf(", peak (%dth place from Fortune)", p.PeakPlace)
		}
		if p.IsLB {
			feature += ", loosing of the bond"
		}
		res.Features = append(res.Features, feature)

		var dig model.DignityState
		if pt, ok := ctx.Chart.Point(string(p.Ruler)); ok {
			switch {
			case ctx.Table.IsRuler(p.Ruler, pt.Sign):
				dig = model.DignityRulership
			case ctx.Table.IsExalted(p.Ruler, pt.Sign):
				dig = model.DignityExaltation
			case ctx.Table.IsDetriment(p.Ruler, pt.Sign):
				dig = model.DignityDetriment
			case ctx.Table.IsFall(p.Ruler, pt.Sign):
				dig = model.DignityFall
			}
		}

		res.Evidence = append(res.Evidence, model.Evidence{
			Kind:        model.FactorZR,
			Subject:     string(p.Ruler),
			Claim:       "active_time_lord",
			Description: fmt.Sprintf("%s rules the active ZR L%d period in %s", p.Ruler, p.Level, p.Sign),
			Conditions: model.Conditions{
				SectAgrees: p.Ruler.InSect(ctx.Chart.IsDay),
				Dignity:    dig,
				Personal:   p.Ruler.Personal(),
				Reception:  receptionBetween(ctx.Table, p.Ruler, ctx.Almuten, ctx.Chart),
				ZRLevel1:   p.Level == 1,
				ZRPeak:     p.IsPeak,
				ZRLB:       p.IsLB,
			},
			Reasons: tone.Reasons,
		})
	}
	return res
}
