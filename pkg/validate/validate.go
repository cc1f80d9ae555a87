// Package validate holds the field-level error returned for malformed input.
package validate

import (
	"errors"
	"fmt"
	"math"
)

// Error reports a single offending input field.
type Error struct {
	Field  string
	Value  float64
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s (%g): %s", e.Field, e.Value, e.Reason)
}

// New returns a *Error for field.
func New(field string, value float64, reason string) error {
	return &Error{Field: field, Value: value, Reason: reason}
}

// Finite fails when v is NaN or infinite.
func Finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(field, v, "must be a finite number")
	}
	return nil
}

// Range fails when v is outside [lo, hi] or not finite.
func Range(field string, v, lo, hi float64) error {
	if err := Finite(field, v); err != nil {
		return err
	}
	if v < lo || v > hi {
		return New(field, v, fmt.Sprintf("must be between %g and %g", lo, hi))
	}
	return nil
}

// Positive fails when v <= 0 or not finite.
func Positive(field string, v float64) error {
	if err := Finite(field, v); err != nil {
		return err
	}
	if v <= 0 {
		return New(field, v, "must be positive")
	}
	return nil
}

// Min fails when v < lo or not finite.
func Min(field string, v, lo float64) error {
	if err := Finite(field, v); err != nil {
		return err
	}
	if v < lo {
		return New(field, v, fmt.Sprintf("must be at least %g", lo))
	}
	return nil
}

// Field extracts the offending field name from err, if err wraps an *Error.
func Field(err error) (string, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Field, true
	}
	return "", false
}
