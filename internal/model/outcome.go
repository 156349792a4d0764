package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Outcome is the result of a prediction attempt: either a class label or an
// error, never both.
type Outcome struct {
	err   error
	label int
}

// Predicted returns a successful outcome carrying label.
func Predicted(label int) Outcome {
	return Outcome{label: label}
}

// Failed returns an error outcome. A nil err is replaced with ErrInference so
// the outcome can never be empty.
func Failed(err error) Outcome {
	if err == nil {
		err = ErrInference
	}
	return Outcome{err: err}
}

// Label returns the predicted class and whether the outcome is a prediction.
func (o Outcome) Label() (int, bool) {
	if o.err != nil {
		return 0, false
	}
	return o.label, true
}

// Err returns the error arm, or nil for a prediction.
func (o Outcome) Err() error {
	return o.err
}

// IsError reports whether the outcome carries an error.
func (o Outcome) IsError() bool {
	return o.err != nil
}

// Message returns the user-facing error message, or "" for a prediction.
func (o Outcome) Message() string {
	if o.err == nil {
		return ""
	}

	var perr *PredictionError
	if errors.As(o.err, &perr) {
		return perr.Message
	}
	return o.err.Error()
}

// String implements fmt.Stringer.
func (o Outcome) String() string {
	if o.err != nil {
		return "error: " + o.Message()
	}
	return fmt.Sprintf("prediction: %d", o.label)
}

// MarshalJSON encodes the outcome as {"prediction": n} or {"error": "..."}.
func (o Outcome) MarshalJSON() ([]byte, error) {
	if o.err != nil {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{Error: o.Message()})
	}

	return json.Marshal(struct {
		Prediction int `json:"prediction"`
	}{Prediction: o.label})
}

// PredictionError is the error carried by a failed outcome. Kind is one of
// ErrNotFound or ErrInference.
type PredictionError struct {
	Kind    error
	Cause   error
	Message string
}

// Error implements the error interface.
func (e *PredictionError) Error() string {
	return e.Message
}

// Is matches the error kind.
func (e *PredictionError) Is(target error) bool {
	return target == e.Kind
}

// Unwrap returns the underlying cause.
func (e *PredictionError) Unwrap() error {
	return e.Cause
}

func notFound(key string) *PredictionError {
	return &PredictionError{
		Kind:    ErrNotFound,
		Message: fmt.Sprintf("Model '%s' not found.", key),
	}
}

func inferenceFailed(cause error) *PredictionError {
	return &PredictionError{
		Kind:    ErrInference,
		Cause:   cause,
		Message: fmt.Sprintf("Prediction failed: %v", cause),
	}
}
