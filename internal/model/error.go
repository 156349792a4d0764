package model

import "errors"

// Error definitions for the model package.
var (
	ErrNotFound        = errors.New("model not found in registry")
	ErrInference       = errors.New("prediction failed")
	ErrDecoderNotFound = errors.New("no decoder registered for model family")
)
