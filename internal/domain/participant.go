package domain

import (
	"context"
	"time"
)

// PaymentStatus is the lifecycle state of a participant's payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentExpired   PaymentStatus = "expired"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Valid reports whether s is one of the known payment statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentExpired, PaymentCancelled:
		return true
	}
	return false
}

// Genders accepted on registration.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// ValidGender reports whether g is an accepted gender value.
func ValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

// Participant represents a registered runner for one event.
// swagger:model Participant
type Participant struct {
	ID                    string        `json:"id"`
	EventID               string        `json:"event_id"`
	FullName              string        `json:"full_name"`
	Email                 string        `json:"email"`
	PhoneNumber           string        `json:"phone_number"`
	BirthDate             time.Time     `json:"birth_date"`
	Gender                string        `json:"gender"`
	EmergencyContactName  *string       `json:"emergency_contact_name"`
	EmergencyContactPhone *string       `json:"emergency_contact_phone"`
	MedicalNotes          *string       `json:"medical_notes"`
	RegistrationDate      time.Time     `json:"registration_date"`
	BookingCode           string        `json:"unique_code"`
	PaymentStatus         PaymentStatus `json:"payment_status"`
	PaymentAmount         int64         `json:"payment_amount"`
	PaymentDate           *time.Time    `json:"payment_date"`
	CreatedAt             time.Time     `json:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at"`
}

// ParticipantWithEvent bundles a participant with its event.
type ParticipantWithEvent struct {
	Participant *Participant `json:"participant"`
	Event       *Event       `json:"event"`
}

// ParticipantSortColumns is the allow-list for the admin listing sort_by
// parameter. Anything else falls back to registration_date.
var ParticipantSortColumns = map[string]struct{}{
	"registration_date": {},
	"full_name":         {},
	"email":             {},
	"payment_status":    {},
	"payment_amount":    {},
	"created_at":        {},
}

// ParticipantFilter holds the admin listing filters. Zero values mean "no
// filter". Search matches name, email, phone, and booking code.
type ParticipantFilter struct {
	EventID       string
	PaymentStatus PaymentStatus
	Search        string
	SortBy        string
	SortOrder     string
}

// PaymentPatch describes a payment-status update to persist.
type PaymentPatch struct {
	Status      PaymentStatus
	PaymentDate *time.Time
}

// ParticipantRepository defines storage operations for participants.
type ParticipantRepository interface {
	Insert(ctx context.Context, p *Participant) error
	Delete(ctx context.Context, id string) error
	GetWithEvent(ctx context.Context, id string) (*ParticipantWithEvent, error)
	GetByBookingCode(ctx context.Context, code string) (*ParticipantWithEvent, error)

	// FindActiveByEmail returns the non-cancelled participant with this email
	// for the event, or ErrNotFound.
	FindActiveByEmail(ctx context.Context, eventID, email string) (*Participant, error)

	UpdatePayment(ctx context.Context, id string, patch PaymentPatch) (*Participant, error)
	List(ctx context.Context, filter ParticipantFilter, page PaginationParams) ([]*Participant, error)
	Count(ctx context.Context, filter ParticipantFilter) (int, error)
}

// ParticipantList is the admin listing result: one page of participants plus
// the pagination descriptor and an echo of the applied filters.
type ParticipantList struct {
	Items      []*Participant `json:"items"`
	Pagination Pagination     `json:"pagination"`
	Filters    ParticipantFilterEcho `json:"filters"`
}

// ParticipantFilterEcho mirrors the filters the caller applied.
type ParticipantFilterEcho struct {
	EventID       string `json:"event_id,omitempty"`
	PaymentStatus string `json:"payment_status,omitempty"`
	Search        string `json:"search,omitempty"`
	SortBy        string `json:"sort_by"`
	SortOrder     string `json:"sort_order"`
}

// ParticipantService defines the admin-facing participant queries.
type ParticipantService interface {
	List(ctx context.Context, filter ParticipantFilter, page PaginationParams) (*ParticipantList, error)
	GetByBookingCode(ctx context.Context, code string) (*ParticipantWithEvent, error)
}
