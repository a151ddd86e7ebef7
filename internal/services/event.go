package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"trailreg/internal/domain"
)

const defaultUpcomingLimit = 3

type eventService struct {
	eventRepo domain.EventRepository
	now       func() time.Time
}

// NewEventService creates the event CRUD service.
func NewEventService(eventRepo domain.EventRepository) domain.EventService {
	return &eventService{eventRepo: eventRepo, now: time.Now}
}

func (s *eventService) Create(ctx context.Context, in domain.CreateEventInput) (*domain.Event, error) {
	missing := []string{}
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if in.Date.IsZero() {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(in.Location) == "" {
		missing = append(missing, "location")
	}
	if strings.TrimSpace(in.Distance) == "" {
		missing = append(missing, "distance")
	}
	if len(missing) > 0 {
		return nil, domain.NewValidationError("missing required fields: " + strings.Join(missing, ", "))
	}
	if in.Price < 0 {
		return nil, domain.NewValidationError("price must not be negative")
	}
	if in.MaxParticipants <= 0 {
		return nil, domain.NewValidationError("max_participants must be positive")
	}

	now := s.now()
	event := &domain.Event{
		ID:                  uuid.NewString(),
		Title:               strings.TrimSpace(in.Title),
		Description:         in.Description,
		Date:                in.Date,
		Location:            strings.TrimSpace(in.Location),
		Distance:            strings.TrimSpace(in.Distance),
		Elevation:           in.Elevation,
		Price:               in.Price,
		MaxParticipants:     in.MaxParticipants,
		CurrentParticipants: 0,
		RegistrationOpen:    in.RegistrationOpen,
		ImageURL:            in.ImageURL,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListAll(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.eventRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) ListUpcoming(ctx context.Context, limit int) ([]*domain.Event, error) {
	if limit <= 0 {
		limit = defaultUpcomingLimit
	}
	// Midnight today: an event later the same day still counts as upcoming.
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	events, err := s.eventRepo.ListUpcoming(ctx, today, limit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	return events, nil
}

func (s *eventService) Update(ctx context.Context, id string, in domain.UpdateEventInput) (*domain.Event, error) {
	if in.Price != nil && *in.Price < 0 {
		return nil, domain.NewValidationError("price must not be negative")
	}
	if in.MaxParticipants != nil && *in.MaxParticipants <= 0 {
		return nil, domain.NewValidationError("max_participants must be positive")
	}
	event, err := s.eventRepo.Update(ctx, id, in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
