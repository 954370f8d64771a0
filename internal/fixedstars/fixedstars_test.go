package fixedstars

import (
	"math"
	"strings"
	"testing"

	"AstroEngine/internal/model"
)

func starChart(points map[string]model.Point) *model.Chart {
	base := map[string]model.Point{
		string(model.Sun):  {Name: string(model.Sun), Sign: model.Aries, Degree: 15},
		string(model.Moon): {Name: string(model.Moon), Sign: model.Cancer, Degree: 20},
		model.PointASC:     {Name: model.PointASC, Sign: model.Libra, Degree: 10},
		model.PointMC:      {Name: model.PointMC, Sign: model.Cancer, Degree: 10},
	}
	for k, v := range points {
		base[k] = v
	}
	return &model.Chart{Points: base, IsDay: true}
}

func TestFind_RoyalConjunction(t *testing.T) {
	// Regulus sits at 149.59; Venus at 29.89 Leo is 0.30 away.
	chart := starChart(map[string]model.Point{
		string(model.Venus): {Name: string(model.Venus), Sign: model.Leo, Degree: 29.89},
	})
	contacts := Find(chart, 0)

	var hit *Contact
	for i := range contacts {
		if contacts[i].Star.Name == "Regulus" && contacts[i].Planet == string(model.Venus) {
			hit = &contacts[i]
		}
	}
	if hit == nil {
		t.Fatalf("Venus conjunct Regulus not found in %v", contacts)
	}
	if hit.Kind != "conjunction" {
		t.Errorf("kind = %q, want conjunction", hit.Kind)
	}
	if math.Abs(hit.Orb-0.30) > 1e-6 {
		t.Errorf("orb = %.4f, want 0.30", hit.Orb)
	}
	if !hit.Star.Royal {
		t.Error("Regulus must carry the royal flag")
	}
}

func TestFind_Opposition(t *testing.T) {
	// Algol at 56.13 opposes 236.13; Mars at 26.5 Scorpio is 0.37 away.
	chart := starChart(map[string]model.Point{
		string(model.Mars): {Name: string(model.Mars), Sign: model.Scorpio, Degree: 26.5},
	})
	contacts := Find(chart, 0)
	if len(contacts) != 1 {
		t.Fatalf("got %d contacts, want exactly the Algol opposition: %v", len(contacts), contacts)
	}
	c := contacts[0]
	if c.Star.Name != "Algol" || c.Planet != string(model.Mars) || c.Kind != "opposition" {
		t.Fatalf("unexpected contact %+v", c)
	}
	if math.Abs(c.Orb-0.37) > 1e-6 {
		t.Errorf("orb = %.4f, want 0.37", c.Orb)
	}
}

func TestFind_OutsideOrbIgnored(t *testing.T) {
	// Venus at 28 Leo is 1.59 from Regulus, past the default orb.
	chart := starChart(map[string]model.Point{
		string(model.Venus): {Name: string(model.Venus), Sign: model.Leo, Degree: 28},
	})
	if contacts := Find(chart, 0); len(contacts) != 0 {
		t.Fatalf("contacts outside the orb reported: %v", contacts)
	}
}

func TestFind_SortedByOrb(t *testing.T) {
	chart := starChart(map[string]model.Point{
		string(model.Venus):   {Name: string(model.Venus), Sign: model.Leo, Degree: 28.79},
		string(model.Mercury): {Name: string(model.Mercury), Sign: model.Libra, Degree: 23.6},
	})
	contacts := Find(chart, 0)
	if len(contacts) < 2 {
		t.Fatalf("expected multiple contacts, got %v", contacts)
	}
	for i := 1; i < len(contacts); i++ {
		if contacts[i].Orb < contacts[i-1].Orb {
			t.Fatalf("contacts not sorted tightest first: %v", contacts)
		}
	}
}

func TestResult_RoyalPayload(t *testing.T) {
	chart := starChart(map[string]model.Point{
		string(model.Venus): {Name: string(model.Venus), Sign: model.Leo, Degree: 29.89},
	})
	res := Result(chart, 0)

	var ev *model.Evidence
	for i := range res.Evidence {
		e := &res.Evidence[i]
		if e.Kind == model.FactorFixedStar && e.Subject == string(model.Venus) &&
			e.Claim == "fixed_star_Regulus_Venus" {
			ev = e
		}
	}
	if ev == nil {
		t.Fatalf("no fixed-star evidence for Venus: %+v", res.Evidence)
	}
	if ev.Conditions.Orb != model.OrbTight {
		t.Errorf("orb band = %q, want tight", ev.Conditions.Orb)
	}
	if !strings.Contains(ev.Description, "royal star") {
		t.Errorf("description should name the royal standing: %q", ev.Description)
	}
	if res.Diagnostics["royal_contact_count"].(int) < 1 {
		t.Error("diagnostics should count royal contacts")
	}
}
