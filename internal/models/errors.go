package models

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every request validation failure so handlers
// can map them to 400 with errors.Is.
var ErrValidation = errors.New("validation failed")

// Sentinel errors for validation.
var (
	ErrMissingID     = fmt.Errorf("%w: id is required", ErrValidation)
	ErrMissingRootID = fmt.Errorf("%w: root_id is required", ErrValidation)
	ErrSamePerson    = fmt.Errorf("%w: from and to must differ", ErrValidation)
	ErrBirthRange    = fmt.Errorf("%w: birth_year_from must not exceed birth_year_to", ErrValidation)
)

// ErrNeighborhoodTooLarge indicates that the requested depth reaches more of
// the graph than a single request may load.
var ErrNeighborhoodTooLarge = errors.New("neighborhood too large")

// ErrFieldTooLong returns an error indicating a field exceeds its maximum length.
func ErrFieldTooLong(field string, maxLen int) error {
	return fmt.Errorf("%w: %s exceeds maximum length of %d", ErrValidation, field, maxLen)
}

// ErrOutOfRange returns an error indicating a numeric field is outside [lo, hi].
func ErrOutOfRange(field string, lo, hi int) error {
	return fmt.Errorf("%w: %s must be between %d and %d", ErrValidation, field, lo, hi)
}
