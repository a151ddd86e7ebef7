package domain

import (
	"context"
	"time"
)

// RegistrationInput is the validated-at-the-service registration request.
// Pointer fields are optional.
type RegistrationInput struct {
	EventID               string
	FullName              string
	Email                 string
	PhoneNumber           string
	BirthDate             time.Time
	Gender                string
	EmergencyContactName  *string
	EmergencyContactPhone *string
	MedicalNotes          *string
	PaymentAmount         int64
}

// RegistrationResult is returned on successful registration.
type RegistrationResult struct {
	Participant *Participant `json:"participant"`
	BookingCode string       `json:"unique_code"`
	Message     string       `json:"message"`
}

// RegistrationService runs the registration workflow: validation, capacity
// check, participant insert, and the conditional counter increment with
// rollback on a lost race.
type RegistrationService interface {
	Register(ctx context.Context, in RegistrationInput) (*RegistrationResult, error)
}

// PaymentService transitions a participant's payment status and keeps the
// event counter in step on cancel/uncancel transitions.
type PaymentService interface {
	UpdatePaymentStatus(ctx context.Context, participantID string, status PaymentStatus, paymentDate *time.Time) (*Participant, error)
}
