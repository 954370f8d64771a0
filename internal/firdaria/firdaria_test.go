package firdaria

import (
	"testing"
	"time"

	"AstroEngine/internal/model"
)

var start = time.Date(1984, time.June, 1, 6, 30, 0, 0, time.UTC)

// threeLords is a reduced sequence with easy arithmetic: total 24 years.
var threeLords = Sequence{
	{Planet: "A", Years: 10},
	{Planet: "B", Years: 8},
	{Planet: "C", Years: 6},
}

func yearsBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours() / yearHours
}

func TestBuild_WeightedMinors(t *testing.T) {
	tl, err := Build(threeLords, start, 24)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(tl.Majors) != 3 {
		t.Fatalf("major count = %d, want 3", len(tl.Majors))
	}

	// Inside A's 10-year major, B's minor lasts (8/24) x 10 years.
	var bMinor *model.FirdariaPeriod
	for i := range tl.Minors {
		m := &tl.Minors[i]
		if m.MajorLord == "A" && m.MinorLord == "B" {
			bMinor = m
		}
	}
	if bMinor == nil {
		t.Fatal("no B minor found under A's major")
	}
	want := 8.0 / 24.0 * 10.0
	if got := bMinor.Years(); got-want > 1e-9 || want-got > 1e-9 {
		t.Errorf("B minor under A = %.12f years, want %.12f", got, want)
	}
}

func TestBuild_MinorsSumToMajor(t *testing.T) {
	tl, err := Build(threeLords, start, 24)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, major := range tl.Majors {
		var sum time.Duration
		var first, last *model.FirdariaPeriod
		for i := range tl.Minors {
			m := &tl.Minors[i]
			if m.MajorLord != major.Lord || m.Start.Before(major.Start) || m.End.After(major.End) {
				continue
			}
			sum += m.End.Sub(m.Start)
			if first == nil {
				first = m
			}
			last = m
		}
		if first == nil || !first.Start.Equal(major.Start) || !last.End.Equal(major.End) {
			t.Fatalf("%s major: minors do not span the major exactly", major.Lord)
		}
		if sum != major.End.Sub(major.Start) {
			t.Errorf("%s major: minors sum %v != major %v", major.Lord, sum, major.End.Sub(major.Start))
		}
	}
}

func TestBuild_AsymmetricWeights(t *testing.T) {
	// Total 24 years; inside A's 12-year major the minors must be
	// 6, 1.5 and 4.5 years, not three equal 4-year slices.
	seq := Sequence{
		{Planet: "A", Years: 12},
		{Planet: "B", Years: 3},
		{Planet: "C", Years: 9},
	}
	tl, err := Build(seq, start, 12)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := map[model.Planet]float64{"A": 6, "B": 1.5, "C": 4.5}
	seen := 0
	for _, m := range tl.Minors {
		if m.MajorLord != "A" {
			continue
		}
		seen++
		w := want[m.MinorLord]
		if got := m.Years(); got-w > 1e-9 || w-got > 1e-9 {
			t.Errorf("%s minor = %.12f years, want %.1f", m.MinorLord, got, w)
		}
	}
	if seen != 3 {
		t.Fatalf("expected 3 minors under A, got %d", seen)
	}
}

func TestBuild_MinorOrderStartsAtMajorLord(t *testing.T) {
	tl, err := Build(threeLords, start, 24)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	wantOrder := map[model.Planet][]model.Planet{
		"A": {"A", "B", "C"},
		"B": {"B", "C", "A"},
		"C": {"C", "A", "B"},
	}
	for _, major := range tl.Majors {
		var got []model.Planet
		for _, m := range tl.Minors {
			if m.MajorLord == major.Lord && !m.Start.Before(major.Start) && !m.End.After(major.End) {
				got = append(got, m.MinorLord)
			}
		}
		want := wantOrder[major.Lord]
		if len(got) != len(want) {
			t.Fatalf("%s major: %d minors, want %d", major.Lord, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s major minor[%d] = %s, want %s", major.Lord, i, got[i], want[i])
			}
		}
	}
}

func TestBuild_CyclesSequence(t *testing.T) {
	// A 50-year span over a 24-year sequence wraps back to the first lord.
	tl, err := Build(threeLords, start, 50)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	wantLords := []model.Planet{"A", "B", "C", "A", "B", "C"}
	if len(tl.Majors) != len(wantLords) {
		t.Fatalf("major count = %d, want %d", len(tl.Majors), len(wantLords))
	}
	for i, m := range tl.Majors {
		if m.Lord != wantLords[i] {
			t.Errorf("major[%d] = %s, want %s", i, m.Lord, wantLords[i])
		}
		if i > 0 && !m.Start.Equal(tl.Majors[i-1].End) {
			t.Errorf("major[%d] does not start where major[%d] ends", i, i-1)
		}
	}
}

func TestBuild_RejectsBadSequence(t *testing.T) {
	if _, err := Build(Sequence{}, start, 10); err == nil {
		t.Error("empty sequence should be rejected")
	}
	if _, err := Build(Sequence{{Planet: "A", Years: 0}}, start, 10); err == nil {
		t.Error("zero-year lord should be rejected")
	}
}

func TestActiveAt(t *testing.T) {
	tl, err := Build(threeLords, start, 24)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// 11 years in: B's major (years 10-18), and within it B's own first
	// minor runs (8/24) x 8 = 2.667 years, so year 11 is still under B/B.
	at := start.Add(time.Duration(11 * yearHours * float64(time.Hour)))
	major, minor, ok := tl.ActiveAt(at)
	if !ok {
		t.Fatal("expected an active period 11 years in")
	}
	if major.Lord != "B" {
		t.Errorf("major lord = %s, want B", major.Lord)
	}
	if minor.MinorLord != "B" {
		t.Errorf("minor lord = %s, want B", minor.MinorLord)
	}

	if _, _, ok := tl.ActiveAt(start.Add(-time.Hour)); ok {
		t.Error("time before the timeline should not be active")
	}
}

func TestResultAt_Payload(t *testing.T) {
	seq := Sequence{
		{Planet: model.Sun, Years: 10},
		{Planet: model.Venus, Years: 8},
		{Planet: model.Mercury, Years: 13},
	}
	tl, err := Build(seq, start, 31)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	res := tl.ResultAt(start.Add(365*24*time.Hour), true)
	if len(res.Evidence) != 2 {
		t.Fatalf("expected major and minor evidence, got %d", len(res.Evidence))
	}
	majorEv, minorEv := res.Evidence[0], res.Evidence[1]
	if majorEv.Kind != model.FactorFirdaria || majorEv.Subject != string(model.Sun) {
		t.Errorf("major evidence = %s/%s, want firdaria/Sun", majorEv.Kind, majorEv.Subject)
	}
	if !majorEv.Conditions.FirdariaMajor || majorEv.Conditions.FirdariaMinor {
		t.Errorf("major evidence conditions wrong: %+v", majorEv.Conditions)
	}
	if !minorEv.Conditions.FirdariaMinor {
		t.Errorf("minor evidence not flagged as minor: %+v", minorEv.Conditions)
	}
	if majorEv.Claim != "active_time_lord" {
		t.Errorf("claim = %q, want active_time_lord", majorEv.Claim)
	}
	if !majorEv.Conditions.SectAgrees {
		t.Error("Sun on a day chart should agree with sect")
	}
	if len(res.Features) != 2 {
		t.Errorf("expected 2 features, got %v", res.Features)
	}

	out := tl.ResultAt(start.Add(-time.Hour), true)
	if len(out.Evidence) != 0 || out.Diagnostics["active"] != false {
		t.Errorf("inactive instant should yield no evidence: %+v", out)
	}
}
