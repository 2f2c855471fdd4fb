package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownOperation is returned when a command classifies to an operation
	// no handler is registered for.
	ErrUnknownOperation = errors.New("unknown operation type")

	// ErrInvalidCity is returned when an update resolves to an empty city.
	ErrInvalidCity = errors.New("invalid city")

	// ErrNoRecords is returned when a question is asked against an empty store.
	ErrNoRecords = errors.New("no weather records available")
)

// ValidationError reports model output that does not fit the expected shape.
type ValidationError struct {
	Shape string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: incorrect format for %s", e.Shape)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ProviderError reports a failed round trip to the completion or embedding provider.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
