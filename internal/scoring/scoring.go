// Package scoring turns raw evidence into tiered, explained scores: a
// base score per factor kind, a declarative multiplier table read off
// each item's conditions, and threshold tiers. Every applied multiplier
// is recorded on the item so a score can always be reproduced by hand.
package scoring

import "AstroEngine/internal/model"

// baseScores assigns the starting weight of each factor kind.
var baseScores = map[model.FactorKind]float64{
	model.FactorAlmuten:    6.0,
	model.FactorLight:      5.0,
	model.FactorAngle:      5.0,
	model.FactorRuler:      3.0,
	model.FactorDignity:    3.0,
	model.FactorReception:  3.0,
	model.FactorAntiscia:   3.0,
	model.FactorMidpoint:   3.0,
	model.FactorFixedStar:  3.0,
	model.FactorZR:         4.0,
	model.FactorProfection: 3.5,
	model.FactorFirdaria:   3.5,
	model.FactorTransit:    2.5,
	model.FactorSupport:    2.0,
}

// rule is one row of the multiplier table.
type rule struct {
	Name   string
	Factor float64
	When   func(c model.Conditions) bool
}

// rules is the full multiplier table, applied in order. Factors
// multiply, so application order never changes the score; the order
// only fixes how AppliedMultipliers reads.
var rules = []rule{
	{"sect_agreement", 1.2, func(c model.Conditions) bool { return c.SectAgrees }},

	{"dignity_rulership", 1.3, func(c model.Conditions) bool { return c.Dignity == model.DignityRulership }},
	{"dignity_exaltation", 1.15, func(c model.Conditions) bool { return c.Dignity == model.DignityExaltation }},
	{"dignity_detriment", 0.85, func(c model.Conditions) bool { return c.Dignity == model.DignityDetriment }},
	{"dignity_fall", 0.75, func(c model.Conditions) bool { return c.Dignity == model.DignityFall }},

	{"angular", 1.2, func(c model.Conditions) bool { return c.Angular }},
	{"swift", 1.1, func(c model.Conditions) bool { return c.Swift }},
	{"retrograde_personal", 0.85, func(c model.Conditions) bool { return c.Retrograde && c.Personal }},
	{"cazimi", 1.3, func(c model.Conditions) bool { return c.Cazimi }},
	{"under_the_beams", 0.8, func(c model.Conditions) bool { return c.UnderBeams && !c.Cazimi }},

	{"mutual_reception", 1.25, func(c model.Conditions) bool { return c.Reception == model.ReceptionMutual }},
	{"one_way_reception", 1.1, func(c model.Conditions) bool { return c.Reception == model.ReceptionOneWay }},

	{"tight_orb", 1.25, func(c model.Conditions) bool { return c.Orb == model.OrbTight }},
	{"close_orb", 1.1, func(c model.Conditions) bool { return c.Orb == model.OrbClose }},

	{"applying", 1.1, func(c model.Conditions) bool { return c.TimeSensitive && c.Applying }},
	{"separating", 0.9, func(c model.Conditions) bool { return c.TimeSensitive && !c.Applying }},

	{"profection_year_lord", 1.2, func(c model.Conditions) bool { return c.ProfectionYear }},
	{"firdaria_major_lord", 1.2, func(c model.Conditions) bool { return c.FirdariaMajor }},
	{"firdaria_minor_lord", 1.05, func(c model.Conditions) bool { return c.FirdariaMinor }},
	{"zr_level_1", 1.3, func(c model.Conditions) bool { return c.ZRLevel1 }},
	{"zr_peak", 1.15, func(c model.Conditions) bool { return c.ZRPeak }},
	{"zr_loosing_of_the_bond", 1.1, func(c model.Conditions) bool { return c.ZRLB }},
}

// tiers maps final scores to tiers, highest threshold first.
var tiers = []struct {
	MinScore float64
	Tier     model.Tier
}{
	{7.5, model.TierMain},
	{6.0, model.TierStrong},
	{4.5, model.TierBackground},
}

func mapTier(score float64) model.Tier {
	for _, t := range tiers {
		if score >= t.MinScore {
			return t.Tier
		}
	}
	return model.TierDropped
}

// ScoreOne fills in the base score, applied multipliers, final score
// and tier of a single evidence item.
func ScoreOne(e *model.Evidence) {
	base, ok := baseScores[e.Kind]
	if !ok {
		base = baseScores[model.FactorSupport]
	}
	e.BaseScore = base
	e.AppliedMultipliers = nil
	score := base
	for _, r := range rules {
		if r.When(e.Conditions) {
			score *= r.Factor
			e.AppliedMultipliers = append(e.AppliedMultipliers, model.AppliedMultiplier{Name: r.Name, Factor: r.Factor})
		}
	}
	e.FinalScore = score
	e.Tier = mapTier(score)
}

// Score scores every item and splits the kept items from the dropped
// ones. Dropped items never reach the interpretation output; they are
// returned separately for the audit trail.
func Score(evidence []model.Evidence) (kept, dropped []model.Evidence) {
	for i := range evidence {
		ScoreOne(&evidence[i])
		if evidence[i].Tier == model.TierDropped {
			dropped = append(dropped, evidence[i])
		} else {
			kept = append(kept, evidence[i])
		}
	}
	return kept, dropped
}
