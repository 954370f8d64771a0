package model

import "fmt"

// The error taxonomy below covers every failure the engine can surface.
// All of them are caller-recoverable input or configuration problems;
// the engine is deterministic and never retries internally.

// InvalidChartError reports a missing or malformed required chart point.
type InvalidChartError struct {
	Reason string
}

func (e *InvalidChartError) Error() string {
	return fmt.Sprintf("invalid chart: %s", e.Reason)
}

// UnknownSignError reports a sign index outside the 0-11 range.
type UnknownSignError struct {
	Index int
}

func (e *UnknownSignError) Error() string {
	return fmt.Sprintf("unknown sign index %d (want 0-11)", e.Index)
}

// DignityTableVersionError reports a referenced dignity table version
// that is not loaded.
type DignityTableVersionError struct {
	Version string
}

func (e *DignityTableVersionError) Error() string {
	return fmt.Sprintf("dignity table version %q not loaded", e.Version)
}

// InvalidLotError reports a lot formula that cannot resolve from the
// available chart points.
type InvalidLotError struct {
	Lot    string
	Reason string
}

func (e *InvalidLotError) Error() string {
	return fmt.Sprintf("lot of %s cannot be resolved: %s", e.Lot, e.Reason)
}
