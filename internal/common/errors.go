// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Classifier pipeline errors. These are the only failure reasons the
// pipeline surfaces to callers; transient per-model failures are converted
// into fallback attempts and never escape on their own.
var (
	// ErrEmptyInput indicates no usable text or audio was supplied.
	ErrEmptyInput = errors.New("empty input")
	// ErrNoAmountFound indicates no positive amount could be extracted,
	// even after the remote model had its say.
	ErrNoAmountFound = errors.New("no positive amount found")
	// ErrMalformedResponse indicates a model response that is not valid
	// structured data after all parsing attempts.
	ErrMalformedResponse = errors.New("malformed model response")
	// ErrInferenceUnavailable indicates every model in the fallback list
	// failed. It wraps the last underlying error.
	ErrInferenceUnavailable = errors.New("inference unavailable")
)

// Application errors.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrRatesOffline   = errors.New("market rates unavailable")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password too weak")

	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimit) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
