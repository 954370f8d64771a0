// Package antiscia finds antiscia and contra-antiscia contacts between
// chart points: reflections across the solstitial axis (0 Cancer to
// 0 Capricorn) and across the equinoctial axis (0 Aries to 0 Libra).
package antiscia

import (
	"fmt"
	"math"

	"AstroEngine/internal/model"
)

// DefaultOrb is the matching orb in degrees.
const DefaultOrb = 1.0

// Antiscia returns the longitude mirrored across the solstitial axis.
func Antiscia(lon float64) float64 {
	return math.Mod(math.Mod(180-lon, 360)+360, 360)
}

// ContraAntiscia returns the longitude mirrored across the equinoctial
// axis.
func ContraAntiscia(lon float64) float64 {
	return math.Mod(math.Mod(360-lon, 360)+360, 360)
}

// Contact is one antiscia or contra-antiscia hit between two points.
type Contact struct {
	From   string
	To     string
	Kind   string // "antiscia" or "contra_antiscia"
	Orb    float64
	Mirror float64 // mirrored longitude of From that To matched
}

func orbBetween(a, b float64) float64 {
	d := math.Abs(math.Mod(a-b, 360))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Find scans all point pairs for antiscia and contra-antiscia contacts
// within the orb. Each unordered pair is reported at most once per kind,
// with the pair ordered by canonical planet listing.
func Find(chart *model.Chart, orb float64) []Contact {
	if orb <= 0 {
		orb = DefaultOrb
	}
	names := pointNames(chart)
	var out []Contact
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			a := chart.Points[names[i]]
			b := chart.Points[names[j]]
			mirror := Antiscia(a.Longitude())
			if d := orbBetween(mirror, b.Longitude()); d <= orb {
				out = append(out, Contact{From: names[i], To: names[j], Kind: "antiscia", Orb: d, Mirror: mirror})
			}
			contra := ContraAntiscia(a.Longitude())
			if d := orbBetween(contra, b.Longitude()); d <= orb {
				out = append(out, Contact{From: names[i], To: names[j], Kind: "contra_antiscia", Orb: d, Mirror: contra})
			}
		}
	}
	return out
}

// pointNames lists chart points in a stable order: classical planets
// first, then the remaining points sorted as the chart stores them.
func pointNames(chart *model.Chart) []string {
	var names []string
	seen := map[string]bool{}
	for _, p := range model.ClassicalPlanets {
		if _, ok := chart.Points[string(p)]; ok {
			names = append(names, string(p))
			seen[string(p)] = true
		}
	}
	for _, extra := range []string{model.PointASC, model.PointMC, model.PointFortune, model.PointSpirit, model.PointEros} {
		if _, ok := chart.Points[extra]; ok && !seen[extra] {
			names = append(names, extra)
			seen[extra] = true
		}
	}
	return names
}

func orbBand(orb float64) model.OrbBand {
	switch {
	case orb <= 0.5:
		return model.OrbTight
	case orb <= 1.0:
		return model.OrbClose
	}
	return model.OrbNone
}

// Result emits evidence for every contact found. Antiscia contacts read
// as hidden conjunctions, contra-antiscia as hidden oppositions; both
// carry the same weight as their visible counterparts.
func Result(chart *model.Chart, orb float64) model.Result {
	if orb <= 0 {
		orb = DefaultOrb
	}
	contacts := Find(chart, orb)
	res := model.Result{
		Diagnostics: map[string]any{
			"orb":           orb,
			"contact_count": len(contacts),
		},
	}
	for _, c := range contacts {
		verb := "conjunction"
		if c.Kind == "contra_antiscia" {
			verb = "opposition"
		}
		res.Features = append(res.Features,
			fmt.Sprintf("%s %s of %s and %s (orb %.2f)", c.Kind, verb, c.From, c.To, c.Orb))
		res.Evidence = append(res.Evidence, model.Evidence{
			Kind:        model.FactorAntiscia,
			Subject:     c.From,
			Claim:       fmt.Sprintf("%s_%s", c.Kind, c.To),
			Description: fmt.Sprintf("%s forms a %s %s with %s", c.From, c.Kind, verb, c.To),
			Conditions: model.Conditions{
				Orb: orbBand(c.Orb),
			},
			Reasons: []string{
				fmt.Sprintf("mirror of %s falls at %.2f, within %.2f of %s", c.From, c.Mirror, c.Orb, c.To),
			},
		})
	}
	return res
}
