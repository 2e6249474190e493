package chart

import (
	"fmt"

	"github.com/mingli/ziwei/errors"
)

// StageError tags a pipeline failure with the stage that raised it. Every
// stage failure is fatal: a chart with a missing placement or an
// unnameable palace is unusable, so the engine stops at the first error.
type StageError struct {
	// Stage is the pipeline stage name, e.g. "bureau".
	Stage string

	// Err is the underlying failure. It carries the sentinel, so
	// errors.Is sees through the stage tag.
	Err error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

// Unwrap exposes the underlying chain for errors.Is and errors.As.
func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError wraps err with the stage that raised it.
func NewStageError(stage string, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}

// AsStageError extracts a StageError from an error chain, if present.
func AsStageError(err error) (*StageError, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
