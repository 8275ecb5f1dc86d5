package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthenticated indicates the caller identity could not be resolved.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrIngestionInProgress indicates an ingestion pass is already running.
	ErrIngestionInProgress = errors.New("ingestion in progress")

	// Provider Errors.

	// ErrProviderTransport indicates the provider could not be reached
	// or answered with a non-success status.
	ErrProviderTransport = errors.New("provider transport failure")

	// ErrProviderTimeout indicates the provider did not answer in time.
	ErrProviderTimeout = errors.New("provider timeout")

	// ErrMalformedPayload indicates the provider answered with a payload
	// that could not be decoded or normalised.
	ErrMalformedPayload = errors.New("malformed provider payload")
)

// ProviderFetchError reports the failure of a single provider's batch.
type ProviderFetchError struct {
	Provider string
	Err      error
}

// Error implements the error interface.
func (e *ProviderFetchError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ProviderFetchError) Unwrap() error {
	return e.Err
}

// IngestionError is the terminal error of an ingestion pass in which at
// least one provider failed. Failures are kept in provider order.
type IngestionError struct {
	Failures []*ProviderFetchError
}

// Error names the first failing provider and its cause.
func (e *IngestionError) Error() string {
	if len(e.Failures) == 0 {
		return "ingestion failed"
	}
	first := e.Failures[0]
	msg := fmt.Sprintf("ingestion failed at provider %s: %v", first.Provider, first.Err)
	if n := len(e.Failures) - 1; n > 0 {
		msg += fmt.Sprintf(" (and %d more)", n)
	}
	return msg
}

// Unwrap exposes every provider failure to errors.Is and errors.As.
func (e *IngestionError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// FirstProvider returns the name of the first provider that failed.
func (e *IngestionError) FirstProvider() string {
	if len(e.Failures) == 0 {
		return ""
	}
	return e.Failures[0].Provider
}
