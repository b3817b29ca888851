package pipeline

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is against the error returned by Driver.Run.
var (
	// ErrFatalSetup: a tool is missing or the source directory is unusable.
	// Nothing was produced.
	ErrFatalSetup = errors.New("setup failed")
	// ErrTerminal: no clip survived or the join failed. No new output was
	// written and any previous output is untouched.
	ErrTerminal = errors.New("compilation failed")
	// ErrNoClips is the cause when every day was skipped.
	ErrNoClips = errors.New("no clips survived extraction and validation")
)

// StageError ties a failure to the stage that produced it.
type StageError struct {
	Stage Stage
	Kind  error
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Stage, e.Err)
}

func (e *StageError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func fatal(stage Stage, err error) error {
	return &StageError{Stage: stage, Kind: ErrFatalSetup, Err: err}
}

func terminal(stage Stage, err error) error {
	return &StageError{Stage: stage, Kind: ErrTerminal, Err: err}
}
