package domain

import "errors"

// Sentinel errors returned by repositories and services. Handlers map these
// to HTTP status codes.
var (
	ErrNotFound             = errors.New("resource not found")
	ErrRegistrationClosed   = errors.New("registration for this event is closed")
	ErrFullyBooked          = errors.New("event is fully booked")
	ErrAlreadyRegistered    = errors.New("email already registered for this event")
	ErrCapacityRace         = errors.New("failed to update participant count; registration rolled back")
	ErrDuplicateBookingCode = errors.New("booking code already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPageOutOfRange       = errors.New("page is out of range")
)

// ValidationError reports invalid client input. The message names the
// offending fields.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Message
}
