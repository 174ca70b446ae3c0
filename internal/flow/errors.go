package flow

import (
	"context"
	"errors"
	"fmt"
)

// Reason classifies why a model invocation produced no usable output.
type Reason string

const (
	ReasonFailed    Reason = "failed"
	ReasonTimeout   Reason = "timeout"
	ReasonCancelled Reason = "cancelled"
)

// ExternalModelError reports that the model capability failed, timed out
// or was cancelled. No output accompanies it.
type ExternalModelError struct {
	Flow   string
	Reason Reason
	Err    error
}

func (e *ExternalModelError) Error() string {
	return fmt.Sprintf("%s: model invocation %s: %v", e.Flow, e.Reason, e.Err)
}

func (e *ExternalModelError) Unwrap() error { return e.Err }

// reasonFor maps a provider or context error to a Reason.
func reasonFor(err error) Reason {
	switch {
	case errors.Is(err, context.Canceled):
		return ReasonCancelled
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	default:
		return ReasonFailed
	}
}

// Stage tells which side of the model call a SchemaValidationError is on.
type Stage string

const (
	StageInput  Stage = "input"
	StageOutput Stage = "output"
)

// SchemaValidationError reports data that does not conform to a flow
// schema. Field is a JSON pointer to the offending value ("" when the data
// could not be parsed at all) and Constraint is the violated keyword.
type SchemaValidationError struct {
	Flow       string
	Stage      Stage
	Field      string
	Constraint string
	Message    string
	Err        error
}

func (e *SchemaValidationError) Error() string {
	field := e.Field
	if field == "" {
		field = "(document)"
	}
	return fmt.Sprintf("%s: %s %s violates %s: %s", e.Flow, e.Stage, field, e.Constraint, e.Message)
}

func (e *SchemaValidationError) Unwrap() error { return e.Err }
