// Package firdaria builds Firdaria time-lord timelines: a sect-selected
// sequence of major lords, each subdivided into minor periods weighted
// by every lord's own canonical years. The lord sequences and year
// values are reference data supplied by the caller (normally from
// configuration), never embedded here.
package firdaria

import (
	"fmt"
	"time"

	"AstroEngine/internal/model"
)

// Lord pairs a planet (or node) with its canonical major-period length.
type Lord struct {
	Planet model.Planet `yaml:"planet"`
	Years  float64      `yaml:"years"`
}

// Sequence is an ordered lord list for one sect.
type Sequence []Lord

// TotalYears sums the canonical years of all lords.
func (s Sequence) TotalYears() float64 {
	total := 0.0
	for _, l := range s {
		total += l.Years
	}
	return total
}

// Validate checks the sequence is usable.
func (s Sequence) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("firdaria sequence is empty")
	}
	for _, l := range s {
		if l.Years <= 0 {
			return fmt.Errorf("firdaria lord %s has non-positive years %.2f", l.Planet, l.Years)
		}
	}
	return nil
}

const yearHours = 365.25 * 24

func addYears(t time.Time, years float64) time.Time {
	return t.Add(time.Duration(years * yearHours * float64(time.Hour)))
}

// Major is one major Firdaria period.
type Major struct {
	Lord  model.Planet
	Start time.Time
	End   time.Time
}

// Timeline holds the generated major periods and their nested minors.
type Timeline struct {
	Majors []Major
	Minors []model.FirdariaPeriod
}

// Build emits major periods in sequence order, cycling the sequence
// until the requested span is covered, and subdivides each into minors.
// Minor duration for lord M inside a major of duration D is
// (M.Years / sequence total years) x D, so the minors of one major
// always sum exactly to D. An equal D/count slice would misweight every
// lord and is deliberately not used.
func Build(seq Sequence, start time.Time, spanYears float64) (*Timeline, error) {
	if err := seq.Validate(); err != nil {
		return nil, err
	}
	if spanYears <= 0 {
		spanYears = seq.TotalYears()
	}

	tl := &Timeline{}
	total := seq.TotalYears()
	majorStart := start
	elapsed := 0.0
	for i := 0; elapsed < spanYears; i++ {
		lord := seq[i%len(seq)]
		majorEnd := addYears(majorStart, lord.Years)
		tl.Majors = append(tl.Majors, Major{Lord: lord.Planet, Start: majorStart, End: majorEnd})
		tl.Minors = append(tl.Minors, minors(seq, i%len(seq), total, majorStart, majorEnd)...)
		majorStart = majorEnd
		elapsed += lord.Years
	}
	return tl, nil
}

// minors subdivides one major period. The minor sequence starts from
// the major lord itself and cycles through the full sequence; the last
// minor is pinned to the major's end to keep the sum exact.
func minors(seq Sequence, majorIdx int, totalYears float64, start, end time.Time) []model.FirdariaPeriod {
	major := seq[majorIdx].Planet
	durationYears := end.Sub(start).Hours() / yearHours
	out := make([]model.FirdariaPeriod, 0, len(seq))
	cursor := start
	for i := 0; i < len(seq); i++ {
		lord := seq[(majorIdx+i)%len(seq)]
		minorEnd := addYears(cursor, durationYears*lord.Years/totalYears)
		if i == len(seq)-1 {
			minorEnd = end
		}
		out = append(out, model.FirdariaPeriod{
			MajorLord: major,
			MinorLord: lord.Planet,
			Start:     cursor,
			End:       minorEnd,
		})
		cursor = minorEnd
	}
	return out
}

// ActiveAt returns the major and minor periods containing t. The bool
// is false when t falls outside the timeline.
func (tl *Timeline) ActiveAt(t time.Time) (Major, model.FirdariaPeriod, bool) {
	for _, m := range tl.Majors {
		if !t.Before(m.Start) && t.Before(m.End) {
			for _, minor := range tl.Minors {
				if minor.MajorLord == m.Lord && !t.Before(minor.Start) && t.Before(minor.End) &&
					!minor.Start.Before(m.Start) && !minor.End.After(m.End) {
					return m, minor, true
				}
			}
		}
	}
	return Major{}, model.FirdariaPeriod{}, false
}

// lordThemes carries the thematic keywords surfaced as features.
var lordThemes = map[model.Planet][]string{
	model.Sun:       {"authority", "recognition", "vitality"},
	model.Moon:      {"emotions", "public life", "changes"},
	model.Mercury:   {"communication", "learning", "commerce"},
	model.Venus:     {"relationships", "arts", "pleasure"},
	model.Mars:      {"action", "conflict", "competition"},
	model.Jupiter:   {"expansion", "wisdom", "fortune"},
	model.Saturn:    {"structure", "discipline", "limitation"},
	model.NorthNode: {"increase", "appetite", "worldly involvement"},
	model.SouthNode: {"release", "withdrawal", "letting go"},
}

// Themes returns the thematic keywords of a lord.
func Themes(lord model.Planet) []string { return lordThemes[lord] }

// ResultAt evaluates the timeline at an instant and emits the common
// calculator payload: one evidence item for the major lord and one for
// the minor lord.
func (tl *Timeline) ResultAt(at time.Time, isDay bool) model.Result {
	res := model.Result{
		Diagnostics: map[string]any{
			"sequence_type": map[bool]string{true: "diurnal", false: "nocturnal"}[isDay],
			"major_count":   len(tl.Majors),
			"minor_count":   len(tl.Minors),
		},
	}
	major, minor, ok := tl.ActiveAt(at)
	res.Diagnostics["active"] = ok
	if !ok {
		return res
	}

	res.Features = append(res.Features,
		fmt.Sprintf("Firdaria: %s major period (%s - %s)", major.Lord,
			major.Start.Format("2006-01-02"), major.End.Format("2006-01-02")),
		fmt.Sprintf("Firdaria: %s minor period under %s", minor.MinorLord, major.Lord),
	)

	res.Evidence = append(res.Evidence,
		model.Evidence{
			Kind:        model.FactorFirdaria,
			Subject:     string(major.Lord),
			Claim:       "active_time_lord",
			Description: fmt.Sprintf("%s is the active Firdaria major lord", major.Lord),
			Conditions: model.Conditions{
				SectAgrees:    major.Lord.InSect(isDay),
				Personal:      major.Lord.Personal(),
				FirdariaMajor: true,
			},
			Reasons: append([]string{fmt.Sprintf("%s major period active", major.Lord)},
				themeReason(major.Lord)...),
		},
		model.Evidence{
			Kind:        model.FactorFirdaria,
			Subject:     string(minor.MinorLord),
			Claim:       "active_time_lord",
			Description: fmt.Sprintf("%s rules the active Firdaria minor period under %s", minor.MinorLord, major.Lord),
			Conditions: model.Conditions{
				SectAgrees:    minor.MinorLord.InSect(isDay),
				Personal:      minor.MinorLord.Personal(),
				FirdariaMinor: true,
			},
			Reasons: append([]string{fmt.Sprintf("%s minor period active under %s", minor.MinorLord, major.Lord)},
				themeReason(minor.MinorLord)...),
		},
	)
	return res
}

func themeReason(lord model.Planet) []string {
	themes := Themes(lord)
	if len(themes) == 0 {
		return nil
	}
	return []string{fmt.Sprintf("%s themes: %s, %s, %s", lord, themes[0], themes[1], themes[2])}
}
