// Package validation provides common validation utilities for bounds and
// configuration parameters across the seqflow library.
//
// Bound checks (negative counts, limits, skips) report ValidationErrors of
// kind errors.ErrInvalidBound; configuration checks report
// errors.ErrInvalidConfiguration. ValidateStruct applies `validate` struct
// tags through go-playground/validator.
package validation
