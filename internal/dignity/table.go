// Package dignity provides the immutable essential-dignity tables and a
// version-keyed registry. Tables are loaded once and passed by reference
// into every calculator call; they are never global mutable state, so
// concurrent requests may use different versions side by side.
package dignity

import (
	"AstroEngine/internal/model"
)

// Kind is one essential dignity or debility.
type Kind string

const (
	Ruler      Kind = "ruler"
	Exalted    Kind = "exalted"
	Triplicity Kind = "triplicity"
	Term       Kind = "term"
	Face       Kind = "face"
	Detriment  Kind = "detriment"
	Fall       Kind = "fall"
)

// span assigns a ruler to a [From, To) degree range within a sign.
type span struct {
	From  float64
	To    float64
	Ruler model.Planet
}

// triplicityRulers holds the day, night and participating rulers of one
// elemental triplicity.
type triplicityRulers struct {
	Day           model.Planet
	Night         model.Planet
	Participating model.Planet
}

// Table is one immutable dignity assignment scheme, identified by
// version. Safe for unlimited concurrent reads.
type Table struct {
	version     string
	rulers      [12]model.Planet
	exaltations map[model.Sign]model.Planet
	detriments  map[model.Sign]model.Planet
	falls       map[model.Sign]model.Planet
	triplicity  [4]triplicityRulers // indexed by element: fire, earth, air, water
	terms       [12][]span
	faces       [12][]span
}

// Version returns the table's version identifier.
func (t *Table) Version() string { return t.version }

// element maps a sign to its elemental triplicity index.
func element(s model.Sign) int { return int(s) % 4 }

func (t *Table) checkSign(s model.Sign) error {
	if !s.Valid() {
		return &model.UnknownSignError{Index: int(s)}
	}
	return nil
}

// RulerOf returns the domicile ruler of a sign.
func (t *Table) RulerOf(s model.Sign) (model.Planet, error) {
	if err := t.checkSign(s); err != nil {
		return "", err
	}
	return t.rulers[s], nil
}

// IsRuler reports whether the planet rules the sign.
func (t *Table) IsRuler(p model.Planet, s model.Sign) bool {
	return s.Valid() && t.rulers[s] == p
}

// IsExalted reports whether the planet is exalted in the sign.
func (t *Table) IsExalted(p model.Planet, s model.Sign) bool {
	return t.exaltations[s] == p
}

// IsDetriment reports whether the planet is in detriment in the sign.
func (t *Table) IsDetriment(p model.Planet, s model.Sign) bool {
	return t.detriments[s] == p
}

// IsFall reports whether the planet is in fall in the sign.
func (t *Table) IsFall(p model.Planet, s model.Sign) bool {
	return t.falls[s] == p
}

// InTriplicity reports whether the planet rules the sign's triplicity
// under the chart's sect. The participating ruler counts in either sect.
func (t *Table) InTriplicity(p model.Planet, s model.Sign, isDay bool) bool {
	if !s.Valid() {
		return false
	}
	tr := t.triplicity[element(s)]
	if p == tr.Participating {
		return true
	}
	if isDay {
		return p == tr.Day
	}
	return p == tr.Night
}

// InTerm reports whether the planet rules the Egyptian term containing
// the degree within the sign.
func (t *Table) InTerm(p model.Planet, s model.Sign, degree float64) bool {
	if !s.Valid() {
		return false
	}
	for _, sp := range t.terms[s] {
		if degree >= sp.From && degree < sp.To {
			return sp.Ruler == p
		}
	}
	return false
}

// InFace reports whether the planet rules the decanic face containing
// the degree within the sign.
func (t *Table) InFace(p model.Planet, s model.Sign, degree float64) bool {
	if !s.Valid() {
		return false
	}
	for _, sp := range t.faces[s] {
		if degree >= sp.From && degree < sp.To {
			return sp.Ruler == p
		}
	}
	return false
}

// DignitiesAt returns the set of dignities the planet holds at a chart
// position. Fails with UnknownSignError on an out-of-range sign.
func (t *Table) DignitiesAt(p model.Planet, s model.Sign, degree float64, isDay bool) ([]Kind, error) {
	if err := t.checkSign(s); err != nil {
		return nil, err
	}
	var kinds []Kind
	if t.IsRuler(p, s) {
		kinds = append(kinds, Ruler)
	}
	if t.IsExalted(p, s) {
		kinds = append(kinds, Exalted)
	}
	if t.InTriplicity(p, s, isDay) {
		kinds = append(kinds, Triplicity)
	}
	if t.InTerm(p, s, degree) {
		kinds = append(kinds, Term)
	}
	if t.InFace(p, s, degree) {
		kinds = append(kinds, Face)
	}
	if t.IsDetriment(p, s) {
		kinds = append(kinds, Detriment)
	}
	if t.IsFall(p, s) {
		kinds = append(kinds, Fall)
	}
	return kinds, nil
}

// Reception reports how receiver treats the planet standing at the given
// position: "ruler" when the position is the receiver's domicile,
// "exaltation" when it is the receiver's exaltation, "" otherwise.
func (t *Table) Reception(receiver model.Planet, at model.Sign) Kind {
	if t.IsRuler(receiver, at) {
		return Ruler
	}
	if t.IsExalted(receiver, at) {
		return Exalted
	}
	return ""
}

// Registry holds loaded tables keyed by version.
type Registry struct {
	tables map[string]*Table
}

// NewRegistry builds a registry from the given tables.
func NewRegistry(tables ...*Table) *Registry {
	r := &Registry{tables: make(map[string]*Table, len(tables))}
	for _, t := range tables {
		r.tables[t.version] = t
	}
	return r
}

// Get resolves a table by version, failing with DignityTableVersionError
// when it is absent.
func (r *Registry) Get(version string) (*Table, error) {
	t, ok := r.tables[version]
	if !ok {
		return nil, &model.DignityTableVersionError{Version: version}
	}
	return t, nil
}
