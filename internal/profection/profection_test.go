package profection

import (
	"testing"
	"time"

	"AstroEngine/internal/dignity"
	"AstroEngine/internal/model"
)

func chartWithASC(asc model.Sign, isDay bool) *model.Chart {
	return &model.Chart{
		IsDay: isDay,
		Points: map[string]model.Point{
			string(model.Sun):  {Name: string(model.Sun), Sign: model.Leo, Degree: 10},
			string(model.Moon): {Name: string(model.Moon), Sign: model.Cancer, Degree: 10},
			model.PointASC:     {Name: model.PointASC, Sign: asc, Degree: 5},
			model.PointMC:      {Name: model.PointMC, Sign: model.Libra, Degree: 0},
		},
	}
}

func TestCompute(t *testing.T) {
	table := dignity.NewStandardTable()
	cases := []struct {
		asc      model.Sign
		age      int
		wantIdx  int
		wantSign model.Sign
		wantLord model.Planet
	}{
		// Capricorn rising, age 27: 27 mod 12 = 3, the 4th house, Aries.
		{model.Capricorn, 27, 3, model.Aries, model.Mars},
		{model.Capricorn, 0, 0, model.Capricorn, model.Saturn},
		{model.Capricorn, 12, 0, model.Capricorn, model.Saturn},
		{model.Aries, 1, 1, model.Taurus, model.Venus},
		{model.Pisces, 11, 11, model.Aquarius, model.Saturn},
		{model.Leo, 35, 11, model.Cancer, model.Moon},
	}
	for _, c := range cases {
		py, err := Compute(chartWithASC(c.asc, true), table, c.age)
		if err != nil {
			t.Fatalf("Compute(%s, age %d): %v", c.asc, c.age, err)
		}
		if py.AgeIndex != c.wantIdx {
			t.Errorf("%s age %d: index = %d, want %d", c.asc, c.age, py.AgeIndex, c.wantIdx)
		}
		if py.ProfectedSign != c.wantSign {
			t.Errorf("%s age %d: sign = %s, want %s", c.asc, c.age, py.ProfectedSign, c.wantSign)
		}
		if py.YearLord != c.wantLord {
			t.Errorf("%s age %d: lord = %s, want %s", c.asc, c.age, py.YearLord, c.wantLord)
		}
	}
}

func TestCompute_Topics(t *testing.T) {
	table := dignity.NewStandardTable()
	// Age 9 activates the 10th house: career topics.
	py, err := Compute(chartWithASC(model.Aries, true), table, 9)
	if err != nil {
		t.Fatal(err)
	}
	if len(py.ActivatedTopics) == 0 || py.ActivatedTopics[0] != "career" {
		t.Errorf("10th house topics = %v, want career first", py.ActivatedTopics)
	}
}

func TestCompute_Errors(t *testing.T) {
	table := dignity.NewStandardTable()
	if _, err := Compute(chartWithASC(model.Aries, true), table, -1); err == nil {
		t.Error("negative age should be rejected")
	}
	chart := chartWithASC(model.Aries, true)
	delete(chart.Points, model.PointASC)
	if _, err := Compute(chart, table, 10); err == nil {
		t.Error("chart without an Ascendant should be rejected")
	}
}

func TestAge(t *testing.T) {
	birth := time.Date(1990, time.March, 15, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		at   time.Time
		want int
	}{
		{time.Date(1990, time.March, 15, 12, 0, 0, 0, time.UTC), 0},
		{time.Date(1991, time.March, 14, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(1991, time.March, 15, 12, 0, 0, 0, time.UTC), 1},
		{time.Date(2017, time.June, 1, 0, 0, 0, 0, time.UTC), 27},
		{time.Date(1989, time.March, 15, 0, 0, 0, 0, time.UTC), -1},
	}
	for _, c := range cases {
		if got := Age(birth, c.at); got != c.want {
			t.Errorf("Age at %s = %d, want %d", c.at.Format("2006-01-02"), got, c.want)
		}
	}
}

func TestResult(t *testing.T) {
	table := dignity.NewStandardTable()
	chart := chartWithASC(model.Capricorn, true)
	// Mars in its own sign so the evidence carries a dignity state.
	chart.Points[string(model.Mars)] = model.Point{Name: string(model.Mars), Sign: model.Scorpio, Degree: 12}

	py, err := Compute(chart, table, 27)
	if err != nil {
		t.Fatal(err)
	}
	res := Result(chart, table, py, 27)
	if len(res.Evidence) != 1 {
		t.Fatalf("expected one evidence item, got %d", len(res.Evidence))
	}
	ev := res.Evidence[0]
	if ev.Kind != model.FactorProfection || ev.Subject != string(model.Mars) {
		t.Errorf("evidence = %s/%s, want profection/Mars", ev.Kind, ev.Subject)
	}
	if ev.Claim != "active_time_lord" || !ev.Conditions.ProfectionYear {
		t.Errorf("evidence not flagged as the year lord: %+v", ev)
	}
	if ev.Conditions.Dignity != model.DignityRulership {
		t.Errorf("Mars in Scorpio should read as rulership, got %q", ev.Conditions.Dignity)
	}
	if res.Diagnostics["year_index"] != 3 {
		t.Errorf("diagnostics year_index = %v, want 3", res.Diagnostics["year_index"])
	}
	if len(res.Features) < 3 {
		t.Errorf("expected year, lord and topic features, got %v", res.Features)
	}
}
