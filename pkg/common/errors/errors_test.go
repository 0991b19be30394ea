package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestCommonErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrClosed", ErrClosed, "resource is closed"},
		{"ErrExhausted", ErrExhausted, "sequence is exhausted"},
		{"ErrInvalidBound", ErrInvalidBound, "invalid bound"},
		{"ErrInvalidConfiguration", ErrInvalidConfiguration, "invalid configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "without hint",
			err: &ValidationError{
				Module: "stream",
				Field:  "limit",
				Value:  -1,
				Reason: "cannot be negative",
			},
			want: "stream: invalid limit=-1 (cannot be negative)",
		},
		{
			name: "with hint",
			err: &ValidationError{
				Module: "sequence",
				Field:  "n",
				Value:  -3,
				Reason: "cannot be negative",
				Hint:   "use 0 or a positive value",
			},
			want: "sequence: invalid n=-3 (cannot be negative) - use 0 or a positive value",
		},
		{
			name: "string value",
			err: &ValidationError{
				Module: "scheduler",
				Field:  "cron",
				Value:  "",
				Reason: "cannot be empty",
			},
			want: "scheduler: invalid cron= (cannot be empty)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	verr := NewValidationError("config", "workers", 0, "must be positive")
	if !errors.Is(verr, ErrInvalidConfiguration) {
		t.Error("default kind should be ErrInvalidConfiguration")
	}
	if errors.Is(verr, ErrInvalidBound) {
		t.Error("default kind should not match ErrInvalidBound")
	}

	berr := NewBoundError("stream", "skip", -1, "cannot be negative")
	if !errors.Is(berr, ErrInvalidBound) {
		t.Error("bound error should match ErrInvalidBound")
	}
	if !IsInvalidBound(berr) {
		t.Error("IsInvalidBound should report bound errors")
	}
}

func TestValidationError_WithHint(t *testing.T) {
	err := NewValidationError("test", "field", 0, "invalid").
		WithHint("try using a positive value")

	if err.Hint != "try using a positive value" {
		t.Errorf("Hint = %q, want %q", err.Hint, "try using a positive value")
	}

	result := err.WithHint("new hint")
	if result != err {
		t.Error("WithHint should return the same instance")
	}
}

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *OperationError
		want string
	}{
		{
			name: "without context",
			err: &OperationError{
				Module:    "sequence",
				Operation: "Next",
				Cause:     ErrExhausted,
			},
			want: "sequence.Next failed: sequence is exhausted",
		},
		{
			name: "with context",
			err: &OperationError{
				Module:    "redislist",
				Operation: "LRange",
				Cause:     errors.New("connection refused"),
				Context:   "key words",
			},
			want: "redislist.LRange failed: connection refused (key words)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	opErr := NewOperationError("sequence", "Next", ErrExhausted).WithContext("digits")

	if opErr.Unwrap() != ErrExhausted {
		t.Errorf("Unwrap() = %v, want %v", opErr.Unwrap(), ErrExhausted)
	}
	if !IsExhausted(opErr) {
		t.Error("IsExhausted should see through OperationError")
	}
	if IsExhausted(errors.New("other")) {
		t.Error("IsExhausted should not match unrelated errors")
	}
}

func TestIsValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"validation error", NewValidationError("test", "field", 0, "test"), true},
		{"bound error", NewBoundError("test", "n", -1, "test"), true},
		{"wrapped validation error", &OperationError{Cause: NewBoundError("test", "n", -1, "test")}, true},
		{"operation error", &OperationError{Cause: errors.New("test")}, false},
		{"standard error", errors.New("test"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidationError(tt.err); got != tt.want {
				t.Errorf("IsValidationError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	err := NewBoundError("sequence", "n", -42, "cannot be negative").
		WithHint("use 0 or a positive value")

	msg := err.Error()
	for _, part := range []string{"sequence", "n", "-42", "cannot be negative", "use 0 or a positive value"} {
		if !strings.Contains(msg, part) {
			t.Errorf("error message should contain %q, got %q", part, msg)
		}
	}
}
