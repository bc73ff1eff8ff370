package courier

import (
	"errors"
	"fmt"
)

// CourierError represents an error from a delivery provider.
type CourierError struct {
	Provider   string
	Code       string
	Message    string
	StatusCode int
	Cause      error
}

// Error implements the error interface.
func (e *CourierError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error (%s): %s: %v", e.Provider, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error (%s): %s", e.Provider, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *CourierError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for CourierError.
func (e *CourierError) Is(target error) bool {
	t, ok := target.(*CourierError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewCourierError creates a new CourierError.
func NewCourierError(provider, code, message string) *CourierError {
	return &CourierError{
		Provider: provider,
		Code:     code,
		Message:  message,
	}
}

// WithCause adds a cause to the error.
func (e *CourierError) WithCause(err error) *CourierError {
	e.Cause = err
	return e
}

// WithStatusCode adds an HTTP status code to the error.
func (e *CourierError) WithStatusCode(code int) *CourierError {
	e.StatusCode = code
	return e
}

// Sentinel errors for common dispatch scenarios.
var (
	// ErrProviderNotFound indicates the requested provider is not registered.
	ErrProviderNotFound = errors.New("provider not found")

	// ErrOrderNotFound indicates the order ID was not known to the provider.
	ErrOrderNotFound = errors.New("order not found")

	// ErrAuthenticationFailed indicates the account credentials were rejected.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrCancellationNotAllowed indicates the order can no longer be cancelled.
	ErrCancellationNotAllowed = errors.New("cancellation not allowed")

	// ErrInsufficientBalance indicates the wallet cannot cover the order.
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
)
