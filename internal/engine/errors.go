package engine

import (
	"errors"
	"fmt"
)

// Phase names a stage of a run.
type Phase string

const (
	// PhaseConfig covers option validation before the run starts.
	PhaseConfig Phase = "config"

	// PhaseLoad covers opening the store and loading the document.
	PhaseLoad Phase = "load"

	// PhaseQuery covers the linkage, inputs and outputs queries.
	PhaseQuery Phase = "query"

	// PhaseExport covers rendering and writing the artifact.
	PhaseExport Phase = "export"
)

// PhaseError reports the phase in which a run failed.
type PhaseError struct {
	Phase Phase

	// RunID identifies the failed run.
	RunID string

	Err error
}

// Error implements the error interface.
func (e *PhaseError) Error() string {
	if e.RunID != "" {
		return fmt.Sprintf("%s phase failed (run=%s): %v", e.Phase, e.RunID, e.Err)
	}
	return fmt.Sprintf("%s phase failed: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// IsPhase returns true if err is a PhaseError for phase.
// Uses errors.As to handle wrapped errors.
func IsPhase(err error, phase Phase) bool {
	var pe *PhaseError
	if errors.As(err, &pe) {
		return pe.Phase == phase
	}
	return false
}

func phaseError(phase Phase, runID string, err error) *PhaseError {
	return &PhaseError{Phase: phase, RunID: runID, Err: err}
}
