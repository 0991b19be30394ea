package errors

import (
	"errors"
	"fmt"
)

// Common error types used across the seqflow library

var (
	// ErrClosed indicates that an operation was attempted on a closed or consumed resource
	ErrClosed = errors.New("resource is closed")

	// ErrExhausted indicates that an element was requested from a sequence with no remaining elements
	ErrExhausted = errors.New("sequence is exhausted")

	// ErrInvalidBound indicates a negative count, limit, or skip argument
	ErrInvalidBound = errors.New("invalid bound")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// ValidationError describes a rejected argument or configuration value.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string

	// Kind is the sentinel matched by errors.Is. Defaults to ErrInvalidConfiguration.
	Kind error
}

// NewValidationError creates a ValidationError of kind ErrInvalidConfiguration.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// NewBoundError creates a ValidationError of kind ErrInvalidBound.
func NewBoundError(module, field string, value interface{}, reason string) *ValidationError {
	err := NewValidationError(module, field, value, reason)
	err.Kind = ErrInvalidBound
	return err
}

// WithHint attaches a remediation hint and returns the same instance.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap returns the sentinel kind of the validation failure.
func (e *ValidationError) Unwrap() error {
	if e.Kind != nil {
		return e.Kind
	}
	return ErrInvalidConfiguration
}

// OperationError records which operation of which module failed and why.
type OperationError struct {
	Module    string
	Operation string
	Cause     error
	Context   string
}

// NewOperationError creates an OperationError wrapping cause.
func NewOperationError(module, operation string, cause error) *OperationError {
	return &OperationError{
		Module:    module,
		Operation: operation,
		Cause:     cause,
	}
}

// WithContext attaches free-form context and returns the same instance.
func (e *OperationError) WithContext(context string) *OperationError {
	e.Context = context
	return e
}

func (e *OperationError) Error() string {
	msg := fmt.Sprintf("%s.%s failed: %v", e.Module, e.Operation, e.Cause)
	if e.Context != "" {
		msg += " (" + e.Context + ")"
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	return e.Cause
}

// IsExhausted returns true if err reports a pull from an exhausted sequence
func IsExhausted(err error) bool {
	return errors.Is(err, ErrExhausted)
}

// IsInvalidBound returns true if err reports a negative count, limit, or skip
func IsInvalidBound(err error) bool {
	return errors.Is(err, ErrInvalidBound)
}

// IsValidationError returns true if err is, or wraps, a *ValidationError
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
