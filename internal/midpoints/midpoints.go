// Package midpoints computes the major planetary midpoints and scans
// for planets contacting them by conjunction, opposition or square.
package midpoints

import (
	"fmt"
	"math"
	"sort"

	"AstroEngine/internal/model"
)

// majorPairs are the midpoint combinations worth reading, luminaries
// and angles first.
var majorPairs = [][2]string{
	{string(model.Sun), string(model.Moon)},
	{string(model.Sun), model.PointASC},
	{string(model.Sun), model.PointMC},
	{string(model.Moon), model.PointASC},
	{string(model.Moon), model.PointMC},
	{model.PointASC, model.PointMC},
	{string(model.Venus), string(model.Mars)},
	{string(model.Sun), string(model.Venus)},
	{string(model.Sun), string(model.Mars)},
	{string(model.Moon), string(model.Venus)},
	{string(model.Moon), string(model.Mars)},
	{string(model.Mercury), string(model.Venus)},
	{string(model.Mercury), string(model.Mars)},
}

// contactOrbs are the standard orbs per contact kind, scaled by the
// caller's orb factor.
var contactOrbs = map[string]float64{
	"conjunction": 2.0,
	"opposition":  2.0,
	"square":      1.5,
}

// Longitude returns the midpoint of two longitudes, choosing the point
// of the axis that lies nearer to both ends.
func Longitude(lon1, lon2 float64) float64 {
	mid := math.Mod((lon1+lon2)/2, 360)
	far := math.Mod(mid+180, 360)
	if arc(mid, lon1)+arc(mid, lon2) <= arc(far, lon1)+arc(far, lon2) {
		return mid
	}
	return far
}

func arc(a, b float64) float64 {
	d := math.Abs(math.Mod(a-b, 360))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Contact is one planet contacting a midpoint.
type Contact struct {
	Planet1   string
	Planet2   string
	Midpoint  float64
	Contacted string
	Kind      string // "conjunction", "opposition" or "square"
	Orb       float64
}

// Find scans the major midpoints for contacts from every charted point
// not forming the midpoint itself, sorted tightest first.
func Find(chart *model.Chart, orbFactor float64) []Contact {
	if orbFactor <= 0 {
		orbFactor = 1.0
	}
	var out []Contact
	for _, pair := range majorPairs {
		a, okA := chart.Point(pair[0])
		b, okB := chart.Point(pair[1])
		if !okA || !okB {
			continue
		}
		mid := Longitude(a.Longitude(), b.Longitude())

		for _, p := range model.ClassicalPlanets {
			name := string(p)
			if name == pair[0] || name == pair[1] {
				continue
			}
			pt, ok := chart.Point(name)
			if !ok {
				continue
			}
			for _, probe := range []struct {
				kind   string
				target float64
			}{
				{"conjunction", mid},
				{"opposition", math.Mod(mid+180, 360)},
			} {
				if d := arc(probe.target, pt.Longitude()); d <= contactOrbs[probe.kind]*orbFactor {
					out = append(out, Contact{
						Planet1: pair[0], Planet2: pair[1], Midpoint: mid,
						Contacted: name, Kind: probe.kind, Orb: d,
					})
				}
			}
			for _, sq := range []float64{math.Mod(mid+90, 360), math.Mod(mid+270, 360)} {
				if d := arc(sq, pt.Longitude()); d <= contactOrbs["square"]*orbFactor {
					out = append(out, Contact{
						Planet1: pair[0], Planet2: pair[1], Midpoint: mid,
						Contacted: name, Kind: "square", Orb: d,
					})
				}
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

// Result emits evidence for every midpoint contact found.
func Result(chart *model.Chart, orbFactor float64) model.Result {
	contacts := Find(chart, orbFactor)
	res := model.Result{
		Diagnostics: map[string]any{
			"midpoint_contact_count": len(contacts),
		},
	}
	for _, c := range contacts {
		axis := fmt.Sprintf("%s/%s", c.Planet1, c.Planet2)
		res.Features = append(res.Features,
			fmt.Sprintf("%s %s to the %s midpoint (orb %.2f)", c.Contacted, c.Kind, axis, c.Orb))
		res.Evidence = append(res.Evidence, model.Evidence{
			Kind:        model.FactorMidpoint,
			Subject:     c.Contacted,
			Claim:       fmt.Sprintf("midpoint_%s_%s_%s", c.Planet1, c.Planet2, c.Contacted),
			Description: fmt.Sprintf("%s forms a %s to the %s midpoint", c.Contacted, c.Kind, axis),
			Conditions: model.Conditions{
				Orb: orbBand(c.Orb),
			},
			Reasons: []string{
				fmt.Sprintf("%s midpoint falls at %.2f, %.2f from %s", axis, c.Midpoint, c.Orb, c.Contacted),
			},
		})
	}
	return res
}
