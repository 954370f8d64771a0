package model

// FactorKind is the closed enumeration of evidence sources. The
// conflict resolver pattern-matches all of these for its priority
// ordering, so new kinds must be added here and there together.
type FactorKind string

const (
	FactorAlmuten    FactorKind = "almuten"
	FactorLight      FactorKind = "light"
	FactorAngle      FactorKind = "angle"
	FactorRuler      FactorKind = "ruler"
	FactorDignity    FactorKind = "dignity"
	FactorReception  FactorKind = "reception"
	FactorAntiscia   FactorKind = "antiscia"
	FactorMidpoint   FactorKind = "midpoint"
	FactorFixedStar  FactorKind = "fixed_star"
	FactorProfection FactorKind = "time_lord_profection"
	FactorFirdaria   FactorKind = "time_lord_firdaria"
	FactorZR         FactorKind = "time_lord_zr"
	FactorTransit    FactorKind = "transit"
	FactorSupport    FactorKind = "support"
)

// FactorKinds lists every kind, in a stable order.
var FactorKinds = []FactorKind{
	FactorAlmuten, FactorLight, FactorAngle, FactorRuler, FactorDignity,
	FactorReception, FactorAntiscia, FactorMidpoint, FactorFixedStar,
	FactorProfection, FactorFirdaria, FactorZR, FactorTransit, FactorSupport,
}

// TimeLord reports whether the kind is one of the time-lord techniques.
func (k FactorKind) TimeLord() bool {
	return k == FactorProfection || k == FactorFirdaria || k == FactorZR
}

// Tier buckets a final score for the interpretation layer.
type Tier string

const (
	TierMain       Tier = "main"
	TierStrong     Tier = "strong"
	TierBackground Tier = "background"
	TierDropped    Tier = "dropped"
)

// DignityState is the essential-dignity condition of an evidence subject.
type DignityState string

const (
	DignityNone       DignityState = ""
	DignityRulership  DignityState = "rulership"
	DignityExaltation DignityState = "exaltation"
	DignityDetriment  DignityState = "detriment"
	DignityFall       DignityState = "fall"
)

// Favorable reports whether the state strengthens the subject.
func (d DignityState) Favorable() bool {
	return d == DignityRulership || d == DignityExaltation
}

// ReceptionState is the reception condition of an evidence subject.
type ReceptionState string

const (
	ReceptionNone   ReceptionState = ""
	ReceptionOneWay ReceptionState = "one_way"
	ReceptionMutual ReceptionState = "mutual"
)

// OrbBand classifies contact tightness.
type OrbBand string

const (
	OrbNone  OrbBand = ""
	OrbTight OrbBand = "tight"
	OrbClose OrbBand = "close"
)

// Conditions carries the independent condition axes of one evidence
// item. Calculators fill these in; the scoring engine's multiplier
// table reads them in a single declarative pass.
type Conditions struct {
	SectAgrees bool
	Dignity    DignityState
	Angular    bool
	Swift      bool
	Retrograde bool
	Personal   bool // retrograde penalty applies to personal planets only
	Cazimi     bool
	UnderBeams bool
	Reception  ReceptionState
	Orb        OrbBand

	// Direction of motion, meaningful for time-sensitive factors only.
	TimeSensitive bool
	Applying      bool

	// Time-lord specifics.
	ZRLevel1       bool
	ZRPeak         bool
	ZRLB           bool
	ProfectionYear bool
	FirdariaMajor  bool
	FirdariaMinor  bool
}

// AppliedMultiplier records one multiplier that contributed to a final
// score, in application order.
type AppliedMultiplier struct {
	Name   string
	Factor float64
}

// Evidence is one scored interpretive fact. Instances are owned by the
// scoring/conflict pipeline until handed to the caller.
type Evidence struct {
	Kind        FactorKind
	Subject     string // the planet or point the fact is about
	Claim       string // interpretive claim key; equal claims compete
	Description string
	Conditions  Conditions
	Reasons     []string

	// Filled in by the scoring engine.
	BaseScore          float64
	AppliedMultipliers []AppliedMultiplier
	FinalScore         float64
	Tier               Tier
}

// DignityBacked reports whether the item rests on a favorable essential
// dignity of its subject.
func (e *Evidence) DignityBacked() bool { return e.Conditions.Dignity.Favorable() }

// ReceptionBacked reports whether the item rests on a reception link.
func (e *Evidence) ReceptionBacked() bool { return e.Conditions.Reception != ReceptionNone }
