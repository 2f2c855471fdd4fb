package llm

import (
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
)

var (
	errCircuitOpen = errors.New("circuit breaker open")
	errEmptyOutput = errors.New("provider returned empty output")
)

// newCircuitBreaker returns the breaker guarding one provider operation.
func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}

// execute runs call through cb exactly once. Provider calls are never retried here;
// the breaker only stops us from hammering a provider that keeps failing.
func execute[T any](cb *gobreaker.CircuitBreaker, call func() (T, error)) (T, error) {
	var zero T

	result, err := cb.Execute(func() (interface{}, error) {
		return call()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		return zero, err
	}

	out, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return out, nil
}
