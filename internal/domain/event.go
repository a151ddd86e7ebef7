package domain

import (
	"context"
	"time"
)

// Event represents a trail-running event open for registration.
// swagger:model Event
type Event struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Description         *string   `json:"description"`
	Date                time.Time `json:"date"`
	Location            string    `json:"location"`
	Distance            string    `json:"distance"`
	Elevation           *string   `json:"elevation"`
	Price               int64     `json:"price"`
	MaxParticipants     int       `json:"max_participants"`
	CurrentParticipants int       `json:"current_participants"`
	RegistrationOpen    bool      `json:"registration_open"`
	ImageURL            *string   `json:"image_url"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// SlotsRemaining returns how many registration slots are left.
func (e *Event) SlotsRemaining() int {
	remaining := e.MaxParticipants - e.CurrentParticipants
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CreateEventInput holds the staff-supplied fields for a new event.
// current_participants always starts at zero; only the registration and
// payment workflows may move it afterwards.
type CreateEventInput struct {
	Title            string
	Description      *string
	Date             time.Time
	Location         string
	Distance         string
	Elevation        *string
	Price            int64
	MaxParticipants  int
	RegistrationOpen bool
	ImageURL         *string
}

// UpdateEventInput holds optional staff edits to an event. Nil fields are left
// untouched. The participant counter is deliberately absent.
type UpdateEventInput struct {
	Title            *string
	Description      *string
	Date             *time.Time
	Location         *string
	Distance         *string
	Elevation        *string
	Price            *int64
	MaxParticipants  *int
	RegistrationOpen *bool
	ImageURL         *string
}

// EventRepository defines storage operations for events.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListAll(ctx context.Context) ([]*Event, error)
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*Event, error)
	Update(ctx context.Context, id string, in UpdateEventInput) (*Event, error)
	Delete(ctx context.Context, id string) error

	// IncrementParticipants atomically bumps current_participants by one,
	// conditioned on registration being open and a slot remaining. It returns
	// the number of rows affected: zero means the precondition no longer held.
	IncrementParticipants(ctx context.Context, id string) (int64, error)

	// DecrementParticipants atomically lowers current_participants by one,
	// floored at zero.
	DecrementParticipants(ctx context.Context, id string) error

	// RestoreParticipantSlot re-occupies a previously freed slot when a
	// cancelled participant moves back to paid. Capped at max_participants and
	// independent of registration_open.
	RestoreParticipantSlot(ctx context.Context, id string) error
}

// EventService defines the staff- and visitor-facing event operations.
type EventService interface {
	Create(ctx context.Context, in CreateEventInput) (*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	ListAll(ctx context.Context) ([]*Event, error)
	ListUpcoming(ctx context.Context, limit int) ([]*Event, error)
	Update(ctx context.Context, id string, in UpdateEventInput) (*Event, error)
	Delete(ctx context.Context, id string) error
}
