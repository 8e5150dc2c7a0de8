package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCredentials = errors.New("missing platform credentials")
	ErrSchemaMismatch     = errors.New("required input column absent")
	ErrMappingResolution  = errors.New("account mapping resolution failed")
	ErrUnknownClient      = errors.New("unknown client")
	ErrEmptyAccountName   = errors.New("account name normalizes to empty")
)

// PipelineError carries the unit a failure belongs to.
type PipelineError struct {
	Stage    RunState
	Platform Platform
	Client   string
	Err      error
}

func (e *PipelineError) Error() string {
	if e.Platform != "" {
		return fmt.Sprintf("%s %s/%s: %v", e.Stage, e.Client, e.Platform, e.Err)
	}
	if e.Client != "" {
		return fmt.Sprintf("%s %s: %v", e.Stage, e.Client, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func NewPipelineError(stage RunState, client string, platform Platform, err error) *PipelineError {
	return &PipelineError{Stage: stage, Client: client, Platform: platform, Err: err}
}

// SchemaMismatchError lists the columns a transformer needed but did not find.
type SchemaMismatchError struct {
	Platform Platform
	Missing  []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s: missing required columns %v", e.Platform, e.Missing)
}

func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}
