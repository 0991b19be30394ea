// Package validation provides common validation utilities for the seqflow library.
package validation

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	gferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
)

var (
	structValidator *validator.Validate
	once            sync.Once
)

// ValidatePositive validates that an integer value is positive (> 0).
// Returns a ValidationError if the value is not positive.
func ValidatePositive(module, field string, value int) error {
	if value <= 0 {
		return gferrors.NewValidationError(module, field, value, "must be positive").
			WithHint("value must be greater than 0")
	}
	return nil
}

// ValidateNonNegative validates that a count, limit, or skip argument is non-negative (>= 0).
// Returns a ValidationError of kind ErrInvalidBound if the value is negative.
func ValidateNonNegative(module, field string, value int64) error {
	if value < 0 {
		return gferrors.NewBoundError(module, field, value, "cannot be negative").
			WithHint("use 0 or a positive value")
	}
	return nil
}

// ValidateRange validates that low <= high.
// Returns a ValidationError of kind ErrInvalidBound otherwise.
func ValidateRange(module, field string, low, high int) error {
	if low > high {
		return gferrors.NewBoundError(module, field, low, "low should be <= high").
			WithHint("high is " + strconv.Itoa(high))
	}
	return nil
}

// ValidateNotNil validates that an interface value is not nil.
// Typed nil functions, maps and channels are rejected as well.
func ValidateNotNil(module, field string, value interface{}) error {
	if value == nil || isNilFunc(value) {
		return gferrors.NewValidationError(module, field, nil, "cannot be nil").
			WithHint("provide a valid " + field)
	}
	return nil
}

// ValidateNotEmpty validates that a string value is not empty.
// Returns a ValidationError if the string is empty.
func ValidateNotEmpty(module, field string, value string) error {
	if value == "" {
		return gferrors.NewValidationError(module, field, value, "cannot be empty").
			WithHint("provide a non-empty " + field)
	}
	return nil
}

// ValidateStruct validates s using `validate` struct tags.
// The first failing field is reported as a ValidationError.
func ValidateStruct(module string, s interface{}) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return gferrors.NewValidationError(module, "struct", nil, err.Error())
	}

	fe := fieldErrs[0]
	reason := "failed " + fe.Tag()
	if fe.Param() != "" {
		reason += "=" + fe.Param()
	}
	return gferrors.NewValidationError(module, strings.ToLower(fe.Namespace()), fe.Value(), reason)
}

func getValidator() *validator.Validate {
	once.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())
		structValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return structValidator
}

func isNilFunc(value interface{}) bool {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Func, reflect.Map, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
