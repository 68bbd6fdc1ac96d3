package domain

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrProviderFailure      = errors.New("provider failure")
	ErrBlocked              = errors.New("blocked by safety filter")
	ErrNoImages             = errors.New("no images produced")
	ErrBusy                 = errors.New("generation already in progress")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrNoSuggestions        = errors.New("no suggestions available")
)

// ValidationError reports a rejected input before any provider call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Invalid builds a ValidationError for field.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
