package model

import "time"

// Intensity grades how loudly a period tone speaks.
type Intensity string

const (
	IntensityLow      Intensity = "low"
	IntensityModerate Intensity = "moderate"
	IntensityHigh     Intensity = "high"
)

// Valence grades the direction of a period tone.
type Valence string

const (
	ValenceSupportive  Valence = "supportive"
	ValenceChallenging Valence = "challenging"
	ValenceMixed       Valence = "mixed"
	ValenceNeutral     Valence = "neutral"
)

// Tone is the qualitative evaluation of a time-lord period. Score is
// always accompanied by the reasons that produced it.
type Tone struct {
	Intensity Intensity
	Valence   Valence
	Score     float64
	Reasons   []string
}

// Period is one zodiacal releasing period at any of the four levels.
// Children subdivide the period at the next level; their durations sum
// exactly to the parent duration. Immutable after construction.
type Period struct {
	Level     int
	Sign      Sign
	Ruler     Planet
	Start     time.Time
	End       time.Time
	IsPeak    bool
	PeakPlace int // 1, 4, 7 or 10 when IsPeak; 10 is the strongest
	IsLB      bool
	Tone      *Tone
	Children  []*Period
}

// Duration returns the period length.
func (p *Period) Duration() time.Duration { return p.End.Sub(p.Start) }

// Contains reports whether t falls inside the period, start inclusive.
func (p *Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// FirdariaPeriod is one minor slice of a Firdaria timeline. MinorLord
// equals MajorLord for the opening slice of each major period.
type FirdariaPeriod struct {
	MajorLord Planet
	MinorLord Planet
	Start     time.Time
	End       time.Time
}

// Years returns the period length in Julian years.
func (f FirdariaPeriod) Years() float64 {
	return f.End.Sub(f.Start).Hours() / 24 / 365.25
}

// ProfectionYear is one step of the annual whole-sign rotation.
type ProfectionYear struct {
	AgeIndex        int // age mod 12
	ProfectedSign   Sign
	YearLord        Planet
	ActivatedTopics []string
}
