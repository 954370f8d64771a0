// Package zr generates zodiacal releasing timelines: nested L1-L4
// period trees walked through the signs in natural order with the
// loosing-of-the-bond exception, peak marking against the natal Fortune
// sign, and qualitative tone evaluation of each ruling planet.
package zr

import (
	"fmt"
	"time"

	"AstroEngine/internal/dignity"
	"AstroEngine/internal/model"
)

// l1Years holds the fixed L1 duration of each sign, in years.
var l1Years = [12]float64{
	15, // Aries
	8,  // Taurus
	20, // Gemini
	25, // Cancer
	19, // Leo
	20, // Virgo
	8,  // Libra
	15, // Scorpio
	12, // Sagittarius
	27, // Capricorn
	30, // Aquarius
	12, // Pisces
}

// lbRedirect is the loosing-of-the-bond exception table, keyed by the
// natural next sign. Reaching Leo from Cancer redirects to Capricorn;
// reaching Aquarius from Capricorn redirects to Cancer. The rule is
// applied identically at every subdivision level.
var lbRedirect = map[model.Sign]model.Sign{
	model.Leo:      model.Capricorn,
	model.Aquarius: model.Cancer,
}

// advance returns the sign following s in the releasing sequence and
// whether the step was a loosing of the bond.
func advance(s model.Sign) (model.Sign, bool) {
	next := s.Next()
	if jump, ok := lbRedirect[next]; ok {
		return jump, true
	}
	return next, false
}

// peakPlaces are the whole-sign distances from Fortune that mark peaks:
// the 1st, 4th, 7th and 10th places.
var peakPlaces = map[int]int{0: 1, 3: 4, 6: 7, 9: 10}

const yearHours = 365.25 * 24

// MaxLevel is the deepest supported subdivision.
const MaxLevel = 4

// Options configures one timeline build.
type Options struct {
	Lot          model.Sign // starting sign, from the releasing lot
	Fortune      model.Sign // natal Fortune sign, for peak marking
	Start        time.Time
	HorizonYears float64 // timeline span; defaults to 100
	Depth        int     // deepest level to generate, 1-4; defaults to 2
}

// Timeline is a complete releasing timeline.
type Timeline struct {
	Lot     model.Sign
	Fortune model.Sign
	L1      []*model.Period
}

// Build generates the timeline. The sign sequence and LB exception are
// re-run independently at every level, scoped to each parent period.
func Build(opts Options, table *dignity.Table) (*Timeline, error) {
	if !opts.Lot.Valid() {
		return nil, &model.InvalidLotError{Lot: "releasing", Reason: fmt.Sprintf("sign index %d out of range", int(opts.Lot))}
	}
	if !opts.Fortune.Valid() {
		return nil, &model.InvalidLotError{Lot: model.PointFortune, Reason: fmt.Sprintf("sign index %d out of range", int(opts.Fortune))}
	}
	if opts.HorizonYears <= 0 {
		opts.HorizonYears = 100
	}
	if opts.Depth <= 0 {
		opts.Depth = 2
	}
	if opts.Depth > MaxLevel {
		opts.Depth = MaxLevel
	}

	tl := &Timeline{Lot: opts.Lot, Fortune: opts.Fortune}
	sign := opts.Lot
	start := opts.Start
	elapsed := 0.0
	for elapsed < opts.HorizonYears {
		years := l1Years[sign]
		end := start.Add(time.Duration(years * yearHours * float64(time.Hour)))
		next, lb := advance(sign)

		p, err := newPeriod(1, sign, start, end, lb, opts.Fortune, table)
		if err != nil {
			return nil, err
		}
		if opts.Depth > 1 {
			if err := subdivide(p, opts.Depth, opts.Fortune, table); err != nil {
				return nil, err
			}
		}
		tl.L1 = append(tl.L1, p)

		sign = next
		start = end
		elapsed += years
	}
	return tl, nil
}

func newPeriod(level int, sign model.Sign, start, end time.Time, lb bool, fortune model.Sign, table *dignity.Table) (*model.Period, error) {
	ruler, err := table.RulerOf(sign)
	if err != nil {
		return nil, err
	}
	place, isPeak := peakPlaces[sign.DistanceFrom(fortune)]
	return &model.Period{
		Level:     level,
		Sign:      sign,
		Ruler:     ruler,
		Start:     start,
		End:       end,
		IsPeak:    isPeak,
		PeakPlace: place,
		IsLB:      lb,
	}, nil
}

// subdivide splits a period into twelve equal children whose signs are
// walked from the parent's own sign with the same LB rule, recursing
// until the requested depth. The last child is pinned to the parent's
// end so child durations always sum exactly to the parent duration.
func subdivide(parent *model.Period, depth int, fortune model.Sign, table *dignity.Table) error {
	slice := parent.Duration() / 12
	sign := parent.Sign
	start := parent.Start
	for i := 0; i < 12; i++ {
		end := start.Add(slice)
		if i == 11 {
			end = parent.End
		}
		next, lb := advance(sign)

		child, err := newPeriod(parent.Level+1, sign, start, end, lb, fortune, table)
		if err != nil {
			return err
		}
		if child.Level < depth {
			if err := subdivide(child, depth, fortune, table); err != nil {
				return err
			}
		}
		parent.Children = append(parent.Children, child)

		sign = next
		start = end
	}
	return nil
}

// ActiveAt returns the chain of periods containing t, from L1 down to
// the deepest generated level. Nil when t is outside the timeline.
func (tl *Timeline) ActiveAt(t time.Time) []*model.Period {
	var chain []*model.Period
	periods := tl.L1
	for len(periods) > 0 {
		var found *model.Period
		for _, p := range periods {
			if p.Contains(t) {
				found = p
				break
			}
		}
		if found == nil {
			break
		}
		chain = append(chain, found)
		periods = found.Children
	}
	return chain
}

// Triad returns the build-up and carry-out siblings framing a peak
// period: the immediately preceding and following periods at the same
// level. Either may be nil at sequence edges.
func Triad(siblings []*model.Period, i int) (buildUp, carryOut *model.Period) {
	if i > 0 {
		buildUp = siblings[i-1]
	}
	if i+1 < len(siblings) {
		carryOut = siblings[i+1]
	}
	return buildUp, carryOut
}
