package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Calculation notices: the input is well formed but the arithmetic has no
// meaningful answer.
var (
	ErrPaymentTooLow   = errors.New("payment does not cover the interest charged each period")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrNoSolution      = errors.New("no solution exists for the given values")
	ErrInvalidTriangle = errors.New("the given values do not form a triangle")
	ErrDataUnavailable = errors.New("reference data is not available for the requested period")
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every field problem of one submission.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Add records a problem for field and returns the receiver.
func (e *ValidationError) Add(field, format string, args ...any) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	return e
}

// Err returns nil when no field problem was recorded.
func (e *ValidationError) Err() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Invalid is a shorthand for a single-field validation error.
func Invalid(field, format string, args ...any) error {
	return (&ValidationError{}).Add(field, format, args...)
}
