// Package conflict ranks competing evidence items that address the same
// interpretive claim and records every suppression it makes, so the
// survivors always carry an auditable trail of what they beat and why.
package conflict

import (
	"fmt"
	"sort"

	"AstroEngine/internal/model"
)

// Suppression records one resolver decision: the losing item, the
// subject it lost to, and the rule that decided it.
type Suppression struct {
	Claim  string
	Loser  model.Evidence
	WonBy  string // subject of the winning item
	Rule   string
	Detail string
}

// Context supplies the final tie-break inputs. MoonFavors names the
// subject of the Moon's next applying aspect; LotFavors names the
// subject tied to the currently activated Lot. Either may be empty when
// the fact is unavailable.
type Context struct {
	MoonFavors string
	LotFavors  string
}

// Resolution is the resolver output: surviving evidence in rank order
// plus the suppression trail.
type Resolution struct {
	Evidence     []model.Evidence
	Suppressions []Suppression
}

// rankClass buckets factor kinds for the primary priority ordering.
// Lower is stronger. Antiscia sits with the aspect-grade factors, never
// below them; support can never override anything above it.
func rankClass(k model.FactorKind) int {
	switch k {
	case model.FactorAlmuten, model.FactorLight, model.FactorAngle:
		return 0
	case model.FactorRuler:
		return 1
	case model.FactorSupport:
		return 3
	}
	return 2
}

// group collects the items of one claim.
type group struct {
	claim string
	items []model.Evidence
}

// timeLordSubjects counts, per subject, how many distinct time-lord
// techniques within the group back that subject.
func timeLordSubjects(items []model.Evidence) map[string]int {
	techniques := map[string]map[model.FactorKind]bool{}
	for _, e := range items {
		if !e.Kind.TimeLord() {
			continue
		}
		if techniques[e.Subject] == nil {
			techniques[e.Subject] = map[model.FactorKind]bool{}
		}
		techniques[e.Subject][e.Kind] = true
	}
	counts := map[string]int{}
	for subject, kinds := range techniques {
		counts[subject] = len(kinds)
	}
	return counts
}

// backingRank grades an item's essential backing: dignity with
// reception beats dignity alone, which beats reception alone, which
// beats an unbacked item.
func backingRank(e *model.Evidence) int {
	d, r := e.DignityBacked(), e.ReceptionBacked()
	switch {
	case d && r:
		return 3
	case d:
		return 2
	case r:
		return 1
	}
	return 0
}

// compare orders a before b when a outranks b. It returns the deciding
// rule name, or "" when the pair is equal under every rule.
func compare(a, b *model.Evidence, lords map[string]int, ctx Context) (aWins bool, rule string, decided bool) {
	ca, cb := rankClass(a.Kind), rankClass(b.Kind)
	if ca != cb {
		return ca < cb, "factor_class", true
	}

	ba, bb := backingRank(a), backingRank(b)
	if ba != bb {
		return ba > bb, "dignity_reception_backing", true
	}

	// Two or more agreeing time-lord techniques outrank a lone transit.
	la, lb := lords[a.Subject], lords[b.Subject]
	if a.Kind.TimeLord() && b.Kind == model.FactorTransit && la >= 2 {
		return true, "time_lord_agreement", true
	}
	if b.Kind.TimeLord() && a.Kind == model.FactorTransit && lb >= 2 {
		return false, "time_lord_agreement", true
	}

	if a.Conditions.TimeSensitive && b.Conditions.TimeSensitive &&
		a.Conditions.Applying != b.Conditions.Applying {
		return a.Conditions.Applying, "applying_over_separating", true
	}

	if a.FinalScore != b.FinalScore {
		return a.FinalScore > b.FinalScore, "final_score", true
	}

	if ctx.MoonFavors != "" && (a.Subject == ctx.MoonFavors) != (b.Subject == ctx.MoonFavors) {
		return a.Subject == ctx.MoonFavors, "moon_next_applying_aspect", true
	}
	if ctx.LotFavors != "" && (a.Subject == ctx.LotFavors) != (b.Subject == ctx.LotFavors) {
		return a.Subject == ctx.LotFavors, "activated_lot", true
	}
	return false, "", false
}

// Resolve ranks scored evidence. Items sharing a Claim compete: the
// strongest survives and the rest are suppressed with the deciding rule
// recorded. Items with unique claims pass through untouched. The
// surviving set is ordered by final score, strongest first.
func Resolve(evidence []model.Evidence, ctx Context) Resolution {
	var groups []group
	index := map[string]int{}
	for _, e := range evidence {
		i, ok := index[e.Claim]
		if !ok {
			i = len(groups)
			index[e.Claim] = i
			groups = append(groups, group{claim: e.Claim})
		}
		groups[i].items = append(groups[i].items, e)
	}

	var res Resolution
	for _, g := range groups {
		if len(g.items) == 1 {
			res.Evidence = append(res.Evidence, g.items[0])
			continue
		}
		winner, suppressed := resolveGroup(g, ctx)
		res.Evidence = append(res.Evidence, winner)
		res.Suppressions = append(res.Suppressions, suppressed...)
	}

	sort.SliceStable(res.Evidence, func(i, j int) bool {
		return res.Evidence[i].FinalScore > res.Evidence[j].FinalScore
	})
	return res
}

func resolveGroup(g group, ctx Context) (model.Evidence, []Suppression) {
	lords := timeLordSubjects(g.items)
	winIdx := 0
	winRule := ""
	for i := 1; i < len(g.items); i++ {
		eWins, rule, decided := compare(&g.items[i], &g.items[winIdx], lords, ctx)
		if !decided {
			// Fully tied: keep the earlier item, deterministically.
			continue
		}
		if eWins {
			winIdx = i
		}
		winRule = rule
	}

	winner := g.items[winIdx]
	var suppressed []Suppression
	for i, e := range g.items {
		if i == winIdx {
			continue
		}
		rule := winRule
		if _, r, decided := compare(&winner, &e, lords, ctx); decided {
			rule = r
		}
		if rule == "" {
			rule = "input_order"
		}
		suppressed = append(suppressed, Suppression{
			Claim:  g.claim,
			Loser:  e,
			WonBy:  winner.Subject,
			Rule:   rule,
			Detail: fmt.Sprintf("%s (%s) yielded to %s (%s)", e.Subject, e.Kind, winner.Subject, winner.Kind),
		})
	}
	return winner, suppressed
}
