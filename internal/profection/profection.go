// Package profection computes annual profections: the Ascendant sign
// advanced one whole sign per year of life, yielding a profected sign,
// a lord of the year, and the activated house topics.
package profection

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"AstroEngine/internal/dignity"
	"AstroEngine/internal/model"
)

// houseTopics maps the profected house (1-12) to its activated topics.
var houseTopics = map[int][]string{
	1:  {"self", "body", "vitality"},
	2:  {"finances", "possessions", "resources"},
	3:  {"siblings", "short journeys", "communication"},
	4:  {"home", "family", "foundations"},
	5:  {"children", "creativity", "pleasure"},
	6:  {"illness", "service", "subordinates"},
	7:  {"marriage", "partnership", "open rivals"},
	8:  {"death", "inheritance", "shared resources"},
	9:  {"travel", "religion", "higher learning"},
	10: {"career", "reputation", "authority"},
	11: {"friends", "alliances", "hopes"},
	12: {"hidden enemies", "isolation", "self-undoing"},
}

// Topics returns the activated topics of a profected house.
func Topics(house int) []string { return houseTopics[house] }

// Age returns completed years of life at the given instant. Negative
// when t precedes birth.
func Age(birth, t time.Time) int {
	years := t.Year() - birth.Year()
	anniversary := birth.AddDate(years, 0, 0)
	if t.Before(anniversary) {
		years--
	}
	return years
}

// Compute derives the profection for a given age. The profected sign is
// the Ascendant advanced age mod 12 signs; its ruler is the lord of the
// year.
func Compute(chart *model.Chart, table *dignity.Table, age int) (*model.ProfectionYear, error) {
	if age < 0 {
		return nil, &model.InvalidChartError{Reason: fmt.Sprintf("age %d precedes birth", age)}
	}
	asc, ok := chart.Point(model.PointASC)
	if !ok {
		return nil, &model.InvalidChartError{Reason: "chart has no Ascendant"}
	}

	idx := age % 12
	sign := model.SignAt(float64(int(asc.Sign)*30 + idx*30))
	lord, err := table.RulerOf(sign)
	if err != nil {
		return nil, err
	}
	return &model.ProfectionYear{
		AgeIndex:        idx,
		ProfectedSign:   sign,
		YearLord:        lord,
		ActivatedTopics: houseTopics[idx+1],
	}, nil
}

// Result emits the common calculator payload for a profection year: a
// time-lord evidence item for the lord of the year plus the activated
// topics as features.
func Result(chart *model.Chart, table *dignity.Table, py *model.ProfectionYear, age int) model.Result {
	res := model.Result{
		Features: []string{
			fmt.Sprintf("Profection: age %d activates the %s house (%s)", age, humanize.Ordinal(py.AgeIndex+1), py.ProfectedSign),
			fmt.Sprintf("Lord of the year: %s", py.YearLord),
		},
		Diagnostics: map[string]any{
			"age":            age,
			"year_index":     py.AgeIndex,
			"profected_sign": py.ProfectedSign.String(),
			"dignity_table":  table.Version(),
		},
	}
	for _, topic := range py.ActivatedTopics {
		res.Features = append(res.Features, fmt.Sprintf("Activated topic: %s", topic))
	}

	var dig model.DignityState
	if pt, ok := chart.Point(string(py.YearLord)); ok {
		switch {
		case table.IsRuler(py.YearLord, pt.Sign):
			dig = model.DignityRulership
		case table.IsExalted(py.YearLord, pt.Sign):
			dig = model.DignityExaltation
		case table.IsDetriment(py.YearLord, pt.Sign):
			dig = model.DignityDetriment
		case table.IsFall(py.YearLord, pt.Sign):
			dig = model.DignityFall
		}
	}

	res.Evidence = append(res.Evidence, model.Evidence{
		Kind:        model.FactorProfection,
		Subject:     string(py.YearLord),
		Claim:       "active_time_lord",
		Description: fmt.Sprintf("%s is lord of the year (%s profection)", py.YearLord, py.ProfectedSign),
		Conditions: model.Conditions{
			SectAgrees:     py.YearLord.InSect(chart.IsDay),
			Dignity:        dig,
			Personal:       py.YearLord.Personal(),
			ProfectionYear: true,
		},
		Reasons: []string{
			fmt.Sprintf("age %d profects to %s", age, py.ProfectedSign),
			fmt.Sprintf("%s rules the profected sign", py.YearLord),
		},
	})
	return res
}
