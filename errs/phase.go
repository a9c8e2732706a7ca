package errs

import (
	"errors"
	"fmt"
)

// Phase identifies the pipeline stage a blit failure originated from.
type Phase uint8

const (
	PhaseInput     Phase = 0x1 // PhaseInput marks failures in the input adapter.
	PhaseOutput    Phase = 0x2 // PhaseOutput marks failures in the output adapter.
	PhaseParse     Phase = 0x3 // PhaseParse marks failures in the parse adapter.
	PhaseSerialize Phase = 0x4 // PhaseSerialize marks failures in the serialize adapter.
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhaseOutput:
		return "output"
	case PhaseParse:
		return "parse"
	case PhaseSerialize:
		return "serialize"
	default:
		return "unknown"
	}
}

// PhaseError tags a blit failure with the phase it originated from.
//
// The blit engine returns every mid-blit failure wrapped in a PhaseError.
// It unwraps to the underlying cause, so errors.Is against the sentinel
// kinds above keeps working:
//
//	err := blit.Region(...)
//	var perr *errs.PhaseError
//	if errors.As(err, &perr) {
//	    log.Printf("blit failed in %s phase: %v", perr.Phase, perr.Err)
//	}
//	if errors.Is(err, errs.ErrCorrupt) {
//	    // malformed source data
//	}
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s phase: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// NewPhaseError wraps err with the given phase. If err is already a
// PhaseError it is returned unchanged, preserving the original phase
// (an input failure surfacing through the parse phase stays an input
// failure).
func NewPhaseError(phase Phase, err error) *PhaseError {
	var perr *PhaseError
	if errors.As(err, &perr) {
		return perr
	}

	return &PhaseError{Phase: phase, Err: err}
}
