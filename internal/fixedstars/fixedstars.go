// Package fixedstars scans a chart for contacts to the major fixed
// stars: conjunctions and oppositions within a tight orb, with the four
// royal stars singled out.
package fixedstars

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"AstroEngine/internal/model"
)

// DefaultOrb is the maximum contact orb in degrees.
const DefaultOrb = 1.0

// Star is one catalog entry. Longitudes are epoch 2000.0 and drift with
// precession; refresh the catalog rather than computing it here.
type Star struct {
	Name      string
	Longitude float64
	Magnitude float64
	Nature    string
	Keywords  []string
	Royal     bool
}

// Catalog lists the major stars, royal stars first.
var Catalog = []Star{
	{"Aldebaran", 69.47, 0.85, "Mars", []string{"honor", "intelligence", "courage"}, true},
	{"Regulus", 149.59, 1.35, "Mars-Jupiter", []string{"royalty", "leadership", "success"}, true},
	{"Antares", 249.47, 1.09, "Mars-Jupiter", []string{"courage", "war", "danger"}, true},
	{"Fomalhaut", 333.52, 1.16, "Venus-Mercury", []string{"idealism", "inspiration", "fame"}, true},
	{"Sirius", 104.0, -1.46, "Jupiter-Mars", []string{"fame", "honor", "wealth"}, false},
	{"Capella", 71.53, 0.08, "Mars-Mercury", []string{"learning", "research", "wisdom"}, false},
	{"Vega", 285.17, 0.03, "Venus-Mercury", []string{"artistry", "music", "charisma"}, false},
	{"Spica", 203.50, 1.04, "Venus-Mars", []string{"success", "renown", "artistic gifts"}, false},
	{"Arcturus", 204.22, -0.05, "Mars-Jupiter", []string{"prosperity", "honors", "fame"}, false},
	{"Algol", 56.13, 2.12, "Saturn-Jupiter", []string{"violence", "losing one's head", "transformation"}, false},
	{"Procyon", 95.47, 0.34, "Mercury-Mars", []string{"activity", "sudden fame", "haste"}, false},
	{"Canopus", 74.22, -0.74, "Saturn-Jupiter", []string{"voyages", "education", "stability"}, false},
}

// Contact is one planet touching a star.
type Contact struct {
	Star   Star
	Planet string
	Kind   string // "conjunction" or "opposition"
	Orb    float64
}

func arc(a, b float64) float64 {
	d := math.Abs(math.Mod(a-b, 360))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Find scans all classical planets and angles against the catalog,
// sorted tightest first.
func Find(chart *model.Chart, orb float64) []Contact {
	if orb <= 0 {
		orb = DefaultOrb
	}
	names := make([]string, 0, len(model.ClassicalPlanets)+2)
	for _, p := range model.ClassicalPlanets {
		names = append(names, string(p))
	}
	names = append(names, model.PointASC, model.PointMC)

	var out []Contact
	for _, star := range Catalog {
		for _, name := range names {
			pt, ok := chart.Point(name)
			if !ok {
				continue
			}
			if d := arc(star.Longitude, pt.Longitude()); d <= orb {
				out = append(out, Contact{Star: star, Planet: name, Kind: "conjunction", Orb: d})
			}
			opposite := math.Mod(star.Longitude+180, 360)
			if d := arc(opposite, pt.Longitude()); d <= orb {
				out = append(out, Contact{Star: star, Planet: name, Kind: "opposition", Orb: d})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Orb < out[j].Orb })
	return out
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

// Result emits evidence for every star contact found. Royal-star
// contacts carry the star's standing in their description and are
// counted separately in the diagnostics.
func Result(chart *model.Chart, orb float64) model.Result {
	contacts := Find(chart, orb)
	royal := 0
	res := model.Result{}
	for _, c := range contacts {
		if c.Star.Royal {
			royal++
		}
		standing := "fixed star"
		if c.Star.Royal {
			standing = "royal star"
		}
		res.Features = append(res.Features,
			fmt.Sprintf("%s %s with the %s %s (orb %.2f)", c.Planet, c.Kind, standing, c.Star.Name, c.Orb))
		res.Evidence = append(res.Evidence, model.Evidence{
			Kind:        model.FactorFixedStar,
			Subject:     c.Planet,
			Claim:       fmt.Sprintf("fixed_star_%s_%s", c.Star.Name, c.Planet),
			Description: fmt.Sprintf("%s forms a %s with the %s %s", c.Planet, c.Kind, standing, c.Star.Name),
			Conditions: model.Conditions{
				Orb: orbBand(c.Orb),
			},
			Reasons: []string{
				fmt.Sprintf("%s at %.2f within %.2f of %s", c.Star.Name, c.Star.Longitude, c.Orb, c.Planet),
				fmt.Sprintf("%s nature: %s (%s)", c.Star.Name, c.Star.Nature, strings.Join(c.Star.Keywords, ", ")),
			},
		})
	}
	res.Diagnostics = map[string]any{
		"star_contact_count":  len(contacts),
		"royal_contact_count": royal,
	}
	return res
}
