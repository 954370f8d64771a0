// Package lots computes the Hermetic lots used as zodiacal releasing
// starting points. Results are sign-only: the sign-based lot method
// discards degree precision by design.
package lots

import (
	"AstroEngine/internal/model"
)

func point(chart *model.Chart, lot, name string) (model.Point, error) {
	p, ok := chart.Point(name)
	if !ok {
		return model.Point{}, &model.InvalidLotError{Lot: lot, Reason: "missing point " + name}
	}
	return p, nil
}

// formula resolves (base + plus - minus) mod 360 and returns its sign.
func formula(base, plus, minus model.Point) model.Sign {
	return model.SignAt(base.Longitude() + plus.Longitude() - minus.Longitude())
}

// Spirit returns the sign of the Lot of Spirit:
// day ASC + Sun - Moon, night ASC + Moon - Sun.
func Spirit(chart *model.Chart) (model.Sign, error) {
	asc, err := point(chart, model.PointSpirit, model.PointASC)
	if err != nil {
		return 0, err
	}
	sun, err := point(chart, model.PointSpirit, string(model.Sun))
	if err != nil {
		return 0, err
	}
	moon, err := point(chart, model.PointSpirit, string(model.Moon))
	if err != nil {
		return 0, err
	}
	if chart.IsDay {
		return formula(asc, sun, moon), nil
	}
	return formula(asc, moon, sun), nil
}

// Fortune returns the sign of the Lot of Fortune:
// day ASC + Moon - Sun, night ASC + Sun - Moon.
func Fortune(chart *model.Chart) (model.Sign, error) {
	asc, err := point(chart, model.PointFortune, model.PointASC)
	if err != nil {
		return 0, err
	}
	sun, err := point(chart, model.PointFortune, string(model.Sun))
	if err != nil {
		return 0, err
	}
	moon, err := point(chart, model.PointFortune, string(model.Moon))
	if err != nil {
		return 0, err
	}
	if chart.IsDay {
		return formula(asc, moon, sun), nil
	}
	return formula(asc, sun, moon), nil
}

// Eros returns the sign of the Lot of Eros:
// day ASC + Venus - Spirit, night ASC + Spirit - Venus.
// Eros is optional for releasing; callers may proceed without it.
func Eros(chart *model.Chart) (model.Sign, error) {
	asc, err := point(chart, model.PointEros, model.PointASC)
	if err != nil {
		return 0, err
	}
	venus, err := point(chart, model.PointEros, string(model.Venus))
	if err != nil {
		return 0, err
	}
	spiritSign, err := Spirit(chart)
	if err != nil {
		return 0, &model.InvalidLotError{Lot: model.PointEros, Reason: err.Error()}
	}
	spirit := model.Point{Name: model.PointSpirit, Sign: spiritSign}
	if chart.IsDay {
		return formula(asc, venus, spirit), nil
	}
	return formula(asc, spirit, venus), nil
}
