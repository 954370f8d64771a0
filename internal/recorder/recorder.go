package recorder

import (
	"time"

	"AstroEngine/internal/conflict"
	"AstroEngine/internal/model"
)

// RunRecord holds everything worth keeping from one engine run: the
// headline outcomes plus the full evidence and suppression trails.
type RunRecord struct {
	EvaluatedAt   time.Time
	Almuten       model.Planet
	ProfectedSign model.Sign
	YearLord      model.Planet
	Evidence      []model.Evidence
	Dropped       []model.Evidence
	Suppressions  []conflict.Suppression
}

// TransitionEvent records a time-lord handover detected by the watcher.
type TransitionEvent struct {
	Technique string // "zr_l1", "zr_l2", "profection", "firdaria_major", "firdaria_minor"
	From      string
	To        string
	At        time.Time
}

// Recorder persists run history for analysis.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	RecordTransition(evt *TransitionEvent) error
	Close() error
}
