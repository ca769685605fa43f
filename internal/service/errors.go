package service

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated means no verified requester email reached the orchestrator
	ErrUnauthenticated = errors.New("authentication required")
	// ErrEmptyContent means the fetched page had no usable text
	ErrEmptyContent = errors.New("no content loaded from the provided URL")
)

// Stage names an external collaborator call in the outreach pipeline
type Stage string

const (
	StageFetch   Stage = "fetch"
	StageExtract Stage = "extract"
	StageDraft   Stage = "draft"
)

// StageError wraps a collaborator failure (fetch, extraction or drafting).
// These are server-side failures and are not retried.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}
