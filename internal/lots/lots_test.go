package lots

import (
	"errors"
	"testing"

	"AstroEngine/internal/model"
)

func chartWith(isDay bool, points ...model.Point) *model.Chart {
	m := make(map[string]model.Point, len(points))
	for _, p := range points {
		m[p.Name] = p
	}
	return &model.Chart{Points: m, IsDay: isDay}
}

func TestSpirit_DayNightMirror(t *testing.T) {
	// ASC 10 Capricorn (280), Sun 15 Taurus (45), Moon 0 Virgo (150).
	day := chartWith(true,
		model.Point{Name: model.PointASC, Sign: model.Capricorn, Degree: 10},
		model.Point{Name: string(model.Sun), Sign: model.Taurus, Degree: 15},
		model.Point{Name: string(model.Moon), Sign: model.Virgo, Degree: 0},
	)
	// 280 + 45 - 150 = 175 -> Virgo
	got, err := Spirit(day)
	if err != nil {
		t.Fatalf("Spirit(day): %v", err)
	}
	if got != model.Virgo {
		t.Errorf("Spirit(day) = %s, want Virgo", got)
	}

	night := chartWith(false, day.Points[model.PointASC], day.Points[string(model.Sun)], day.Points[string(model.Moon)])
	// 280 + 150 - 45 = 385 -> 25 -> Aries
	got, err = Spirit(night)
	if err != nil {
		t.Fatalf("Spirit(night): %v", err)
	}
	if got != model.Aries {
		t.Errorf("Spirit(night) = %s, want Aries", got)
	}
}

func TestFortune_IsSpiritMirrored(t *testing.T) {
	points := []model.Point{
		{Name: model.PointASC, Sign: model.Leo, Degree: 5},
		{Name: string(model.Sun), Sign: model.Sagittarius, Degree: 20},
		{Name: string(model.Moon), Sign: model.Aquarius, Degree: 3},
	}
	day := chartWith(true, points...)
	night := chartWith(false, points...)

	daySpirit, err := Spirit(day)
	if err != nil {
		t.Fatal(err)
	}
	nightFortune, err := Fortune(night)
	if err != nil {
		t.Fatal(err)
	}
	if daySpirit != nightFortune {
		t.Errorf("day Spirit (%s) should equal night Fortune (%s)", daySpirit, nightFortune)
	}
}

func TestFortune_Wraps(t *testing.T) {
	// ASC 0 Aries, Moon 10 Aries, Sun 20 Pisces: 0 + 10 - 350 = -340 -> 20 -> Aries.
	c := chartWith(true,
		model.Point{Name: model.PointASC, Sign: model.Aries, Degree: 0},
		model.Point{Name: string(model.Sun), Sign: model.Pisces, Degree: 20},
		model.Point{Name: string(model.Moon), Sign: model.Aries, Degree: 10},
	)
	got, err := Fortune(c)
	if err != nil {
		t.Fatal(err)
	}
	if got != model.Aries {
		t.Errorf("Fortune = %s, want Aries", got)
	}
}

func TestEros_RequiresVenus(t *testing.T) {
	c := chartWith(true,
		model.Point{Name: model.PointASC, Sign: model.Aries, Degree: 0},
		model.Point{Name: string(model.Sun), Sign: model.Leo, Degree: 0},
		model.Point{Name: string(model.Moon), Sign: model.Libra, Degree: 0},
	)
	_, err := Eros(c)
	var lotErr *model.InvalidLotError
	if !errors.As(err, &lotErr) {
		t.Fatalf("expected InvalidLotError, got %v", err)
	}
	if lotErr.Lot != model.PointEros {
		t.Errorf("expected Eros lot in error, got %q", lotErr.Lot)
	}
}

func TestSpirit_MissingPoint(t *testing.T) {
	c := chartWith(true, model.Point{Name: model.PointASC, Sign: model.Aries, Degree: 0})
	_, err := Spirit(c)
	var lotErr *model.InvalidLotError
	if !errors.As(err, &lotErr) {
		t.Fatalf("expected InvalidLotError, got %v", err)
	}
}
