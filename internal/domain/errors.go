package domain

import "errors"

var (
	// ErrMissingParameter signals a missing required invocation parameter.
	ErrMissingParameter = errors.New("missing required parameter")
	// ErrModelNotFound signals that no local replica matches the configured model path.
	ErrModelNotFound = errors.New("model not found")
	// ErrWorkerInit signals a fatal worker initialization failure.
	ErrWorkerInit = errors.New("worker initialization failed")
	// ErrBadModel signals a malformed or inconsistent model artifact.
	ErrBadModel = errors.New("bad model artifact")
	// ErrProviderError signals a classifier provider failure during scoring.
	ErrProviderError = errors.New("classifier provider error")
)
