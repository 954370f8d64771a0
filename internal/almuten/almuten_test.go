package almuten

import (
	"errors"
	"testing"

	"AstroEngine/internal/dignity"
	"AstroEngine/internal/model"
)

func chartFrom(isDay bool, points map[string]model.Point) *model.Chart {
	return &model.Chart{Points: points, IsDay: isDay}
}

func sixPoints(signs map[string]model.Sign, degrees map[string]float64) map[string]model.Point {
	points := make(map[string]model.Point)
	for _, name := range scoredPoints {
		points[name] = model.Point{Name: name, Sign: signs[name], Degree: degrees[name]}
	}
	return points
}

func allAt(sign model.Sign, degree float64) map[string]model.Point {
	points := make(map[string]model.Point)
	for _, name := range scoredPoints {
		points[name] = model.Point{Name: name, Sign: sign, Degree: degree}
	}
	return points
}

func TestCompute_ClearWinner(t *testing.T) {
	table := dignity.NewStandardTable()
	// All six points at 15 Aries, day chart. Per point: Sun collects
	// exaltation(4) + day fire triplicity(3) + second face(1) = 8;
	// Mars rulership(5); Saturn participating triplicity(3);
	// Mercury term 12-20(2).
	chart := chartFrom(true, allAt(model.Aries, 15))

	out, err := Compute(chart, table)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if out.Winner != model.Sun {
		t.Errorf("winner = %s, want Sun", out.Winner)
	}
	if out.Totals[model.Sun] != 48 {
		t.Errorf("Sun total = %d, want 48", out.Totals[model.Sun])
	}
	if out.Totals[model.Mars] != 30 {
		t.Errorf("Mars total = %d, want 30", out.Totals[model.Mars])
	}
	if len(out.TieBreakPath) != 0 {
		t.Errorf("no tie-break expected, got path %v", out.TieBreakPath)
	}
	if out.Subtotals[model.Sun][model.PointASC] != 8 {
		t.Errorf("Sun subtotal at ASC = %d, want 8", out.Subtotals[model.Sun][model.PointASC])
	}
	if out.TableVersion != dignity.StandardVersion {
		t.Errorf("table version = %q, want %q", out.TableVersion, dignity.StandardVersion)
	}
}

func TestCompute_EngineeredTie(t *testing.T) {
	table := dignity.NewStandardTable()
	// Four points at 0 Libra (Venus rulership 5; Saturn exaltation 4 +
	// day air triplicity 3 + first term 2 = 9) and two at 10 Taurus
	// (Venus rulership 5 + day earth triplicity 3 = 8). Venus and
	// Saturn both total 36. The first tie-break step recounts with
	// rulership+exaltation weights only: Venus 30 vs Saturn 16.
	points := sixPoints(
		map[string]model.Sign{
			string(model.Sun): model.Libra, string(model.Moon): model.Libra,
			model.PointASC: model.Libra, model.PointMC: model.Libra,
			model.PointFortune: model.Taurus, model.PointSpirit: model.Taurus,
		},
		map[string]float64{
			string(model.Sun): 0, string(model.Moon): 0,
			model.PointASC: 0, model.PointMC: 0,
			model.PointFortune: 10, model.PointSpirit: 10,
		},
	)
	chart := chartFrom(true, points)

	// Repeated runs must resolve identically.
	for run := 0; run < 5; run++ {
		out, err := Compute(chart, table)
		if err != nil {
			t.Fatalf("Compute: %v", err)
		}
		if out.Totals[model.Venus] != 36 || out.Totals[model.Saturn] != 36 {
			t.Fatalf("engineered tie broken: Venus=%d Saturn=%d",
				out.Totals[model.Venus], out.Totals[model.Saturn])
		}
		if out.Winner != model.Venus {
			t.Fatalf("run %d: winner = %s, want Venus", run, out.Winner)
		}
		if len(out.TieBreakPath) == 0 {
			t.Fatal("tie-break path should be recorded")
		}
		if out.TieBreakExhausted {
			t.Error("tie resolved at step 1, exhausted flag should be false")
		}
	}
}

func TestBreakTies_ExhaustedFallsBackToChaldeanOrder(t *testing.T) {
	table := dignity.NewStandardTable()
	// All points at 15 Aries: neither Jupiter nor Saturn holds rulership
	// or exaltation there, neither has a charted position (distance 180
	// to lights and angles), and both are diurnal in a day chart. Every
	// step ties; the Chaldean order prefers Saturn.
	chart := chartFrom(true, allAt(model.Aries, 15))
	out := &Outcome{}

	got := breakTies([]model.Planet{model.Jupiter, model.Saturn}, chart, table, out)
	if len(got) != 1 || got[0] != model.Saturn {
		t.Fatalf("expected Saturn by Chaldean order, got %v", got)
	}
	if !out.TieBreakExhausted {
		t.Error("exhausted flag should be set")
	}
	if len(out.TieBreakPath) != 5 {
		t.Errorf("expected 4 steps + fallback in path, got %v", out.TieBreakPath)
	}
}

func TestBreakTies_LightProximity(t *testing.T) {
	table := dignity.NewStandardTable()
	points := allAt(model.Aries, 15)
	// Mars 5 degrees from the Sun, Venus 40 degrees away.
	points[string(model.Mars)] = model.Point{Name: string(model.Mars), Sign: model.Aries, Degree: 20}
	points[string(model.Venus)] = model.Point{Name: string(model.Venus), Sign: model.Taurus, Degree: 25}
	chart := chartFrom(true, points)

	got := byLightProximity([]model.Planet{model.Venus, model.Mars}, chart, table)
	if len(got) != 1 || got[0] != model.Mars {
		t.Errorf("expected Mars closest to the lights, got %v", got)
	}
}

func TestBreakTies_SectMatch(t *testing.T) {
	chart := chartFrom(false, allAt(model.Aries, 15))
	got := bySect([]model.Planet{model.Saturn, model.Venus}, chart, nil)
	if len(got) != 1 || got[0] != model.Venus {
		t.Errorf("night chart should prefer nocturnal Venus, got %v", got)
	}

	// No candidate in sect: the step must not narrow.
	got = bySect([]model.Planet{model.Saturn, model.Jupiter}, chart, nil)
	if len(got) != 2 {
		t.Errorf("step should pass through when nothing matches, got %v", got)
	}
}

func TestCompute_MissingLot(t *testing.T) {
	table := dignity.NewStandardTable()
	points := allAt(model.Aries, 15)
	delete(points, model.PointSpirit)
	_, err := Compute(chartFrom(true, points), table)
	var chartErr *model.InvalidChartError
	if !errors.As(err, &chartErr) {
		t.Fatalf("expected InvalidChartError, got %v", err)
	}
}

func TestOutcome_ResultContract(t *testing.T) {
	table := dignity.NewStandardTable()
	out, err := Compute(chartFrom(true, allAt(model.Leo, 5)), table)
	if err != nil {
		t.Fatal(err)
	}
	res := out.Result()
	if len(res.Features) == 0 || len(res.Evidence) == 0 {
		t.Fatal("result must carry features and evidence")
	}
	if res.Evidence[0].Kind != model.FactorAlmuten {
		t.Errorf("evidence kind = %s, want almuten", res.Evidence[0].Kind)
	}
	if _, ok := res.Diagnostics["subtotals"]; !ok {
		t.Error("diagnostics must include per-point subtotals")
	}
	if res.Diagnostics["dignity_table"] != dignity.StandardVersion {
		t.Error("diagnostics must include the dignity table version")
	}
}
