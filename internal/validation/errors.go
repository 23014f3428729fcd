package validation

import (
	"errors"
	"fmt"
)

// Input validation errors. Every rejection is an *Error wrapping one of these,
// so callers can match with errors.Is.
var (
	ErrInvalidTimezone       = errors.New("invalid timezone")
	ErrInvalidClock          = errors.New("invalid time of day")
	ErrInvalidRange          = errors.New("invalid date range")
	ErrInvalidDate           = errors.New("invalid date")
	ErrInvalidDuration       = errors.New("invalid duration")
	ErrDurationExceedsWindow = errors.New("duration exceeds every working window")
	ErrInvalidPriority       = errors.New("invalid priority")
	ErrInvalidFrequency      = errors.New("invalid frequency")
	ErrInvalidTimeOfDay      = errors.New("invalid preferred time of day")
	ErrInvalidWeekday        = errors.New("invalid weekday")
	ErrDuplicateID           = errors.New("duplicate id")
	ErrMissingID             = errors.New("missing id")
)

// Error describes one rejected input field.
type Error struct {
	Field string
	Value string
	Err   error
}

func (e *Error) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v %q", e.Field, e.Err, e.Value)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func fieldError(field, value string, err error) *Error {
	return &Error{Field: field, Value: value, Err: err}
}
