package model

import "fmt"

// Sign is a zodiac sign index in natural order, 0 = Aries .. 11 = Pisces.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

func (s Sign) String() string {
	if s < 0 || s > 11 {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signNames[s]
}

// Valid reports whether the sign index is in the 0-11 range.
func (s Sign) Valid() bool { return s >= 0 && s <= 11 }

// Next returns the natural zodiacal successor, wrapping Pisces to Aries.
func (s Sign) Next() Sign { return (s + 1) % 12 }

// DistanceFrom returns the whole-sign distance counted from the given
// sign, 0-indexed: 0 means the same sign (the 1st place), 9 the 10th.
func (s Sign) DistanceFrom(from Sign) int {
	return (int(s) - int(from) + 12) % 12
}

// ParseSign resolves a sign by name.
func ParseSign(name string) (Sign, error) {
	for i, n := range signNames {
		if n == name {
			return Sign(i), nil
		}
	}
	return 0, fmt.Errorf("unknown sign name %q", name)
}

// SignAt returns the sign containing an ecliptic longitude.
func SignAt(longitude float64) Sign {
	lon := normalize(longitude)
	return Sign(int(lon / 30))
}

func normalize(lon float64) float64 {
	lon -= 360 * float64(int(lon/360))
	if lon < 0 {
		lon += 360
	}
	return lon
}

// ArcDistance returns the shorter ecliptic arc between two longitudes,
// in the 0-180 range.
func ArcDistance(a, b float64) float64 {
	d := normalize(a) - normalize(b)
	if d < 0 {
		d = -d
	}
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Planet identifies a chart ruler. The lunar nodes participate only in
// Firdaria sequences.
type Planet string

const (
	Sun       Planet = "Sun"
	Moon      Planet = "Moon"
	Mercury   Planet = "Mercury"
	Venus     Planet = "Venus"
	Mars      Planet = "Mars"
	Jupiter   Planet = "Jupiter"
	Saturn    Planet = "Saturn"
	NorthNode Planet = "North Node"
	SouthNode Planet = "South Node"
)

// ClassicalPlanets are the seven visible planets, in luminary-first order.
var ClassicalPlanets = []Planet{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn}

// ChaldeanOrder is the traditional slowest-first planet ordering, used
// as the final deterministic fallback wherever every other tie-break
// is exhausted.
var ChaldeanOrder = []Planet{Saturn, Jupiter, Mars, Sun, Venus, Mercury, Moon}

// Diurnal reports whether the planet belongs to the day sect.
func (p Planet) Diurnal() bool { return p == Sun || p == Jupiter || p == Saturn }

// Nocturnal reports whether the planet belongs to the night sect.
func (p Planet) Nocturnal() bool { return p == Moon || p == Venus || p == Mars }

// InSect reports whether the planet agrees with the chart's sect.
// Mercury belongs to neither list and never matches.
func (p Planet) InSect(isDay bool) bool {
	if isDay {
		return p.Diurnal()
	}
	return p.Nocturnal()
}

// Personal reports whether the planet is a personal planet for the
// purpose of the retrograde penalty; social and generational bodies
// stay neutral.
func (p Planet) Personal() bool {
	switch p {
	case Moon, Mercury, Venus, Mars:
		return true
	}
	return false
}

// Well-known point names used in Chart.Points.
const (
	PointASC     = "ASC"
	PointMC      = "MC"
	PointFortune = "Fortune"
	PointSpirit  = "Spirit"
	PointEros    = "Eros"
)

// Point is a single positioned chart factor: a planet, an angle or a lot.
type Point struct {
	Name       string
	Sign       Sign
	Degree     float64 // degree within the sign, [0, 30)
	Speed      float64 // degrees per day; zero when unknown
	Retrograde bool
}

// Longitude returns the point's absolute ecliptic longitude.
func (p Point) Longitude() float64 {
	return float64(p.Sign)*30 + p.Degree
}

// Chart is an immutable natal fact sheet supplied by the ephemeris
// collaborator. The engine never mutates it, so one chart may be shared
// across any number of concurrent computations.
type Chart struct {
	Points map[string]Point
	IsDay  bool
	// Cusps holds the 12 Placidus house cusp longitudes when the caller
	// provides them; cusp 0 is the ascendant, cusp 9 the midheaven.
	// Optional: angle-proximity tie-breaks fall back to ASC/MC points.
	Cusps []float64
}

// Point looks up a named point.
func (c *Chart) Point(name string) (Point, bool) {
	p, ok := c.Points[name]
	return p, ok
}

// requiredPoints are the minimum fact sheet for any computation.
var requiredPoints = []string{string(Sun), string(Moon), PointASC, PointMC}

// Validate checks that the chart carries the required points with sane
// positions. Lots are not required; they can be derived.
func (c *Chart) Validate() error {
	if c == nil || len(c.Points) == 0 {
		return &InvalidChartError{Reason: "chart has no points"}
	}
	for _, name := range requiredPoints {
		p, ok := c.Points[name]
		if !ok {
			return &InvalidChartError{Reason: fmt.Sprintf("missing required point %s", name)}
		}
		if !p.Sign.Valid() {
			return &UnknownSignError{Index: int(p.Sign)}
		}
		if p.Degree < 0 || p.Degree >= 30 {
			return &InvalidChartError{Reason: fmt.Sprintf("%s degree %.4f outside [0,30)", name, p.Degree)}
		}
	}
	if len(c.Cusps) != 0 && len(c.Cusps) != 12 {
		return &InvalidChartError{Reason: fmt.Sprintf("expected 12 house cusps, got %d", len(c.Cusps))}
	}
	return nil
}
