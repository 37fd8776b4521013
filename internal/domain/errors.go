package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrCredentialMissing means no key is configured for a backend.
	ErrCredentialMissing = errors.New("credential missing")
	// ErrLocationNotFound means geocoding returned nothing usable.
	ErrLocationNotFound = errors.New("location not found")
	// ErrBackendUnavailable covers non-success responses and empty bodies.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrRetryExhausted is returned once every generative attempt failed.
	ErrRetryExhausted = errors.New("retry budget exhausted")
	// ErrQueryInFlight rejects a submission while another is pending.
	ErrQueryInFlight = errors.New("a query is already in flight")
	// ErrEmptyMessage rejects blank submissions.
	ErrEmptyMessage = errors.New("empty message")
)

// BackendError carries a failed upstream call.
type BackendError struct {
	Backend    Backend
	StatusCode int
	Err        error
}

func (e *BackendError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("%s: status %d: %v", e.Backend, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Backend, e.Err)
	default:
		return fmt.Sprintf("%s: status %d", e.Backend, e.StatusCode)
	}
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrBackendUnavailable) match any BackendError.
func (e *BackendError) Is(target error) bool {
	return target == ErrBackendUnavailable
}
