package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"trailreg/internal/domain"
)

type upcomingEventRepo struct {
	fakeEventRepo
	lastFrom  time.Time
	lastLimit int
}

func (f *upcomingEventRepo) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*domain.Event, error) {
	f.lastFrom = from
	f.lastLimit = limit
	return []*domain.Event{}, nil
}

func TestEventService_Create_Validation(t *testing.T) {
	valid := domain.CreateEventInput{
		Title:            "Rinjani Trail 25K",
		Date:             time.Date(2025, 8, 17, 0, 0, 0, 0, time.UTC),
		Location:         "Lombok",
		Distance:         "25K",
		Price:            350000,
		MaxParticipants:  100,
		RegistrationOpen: true,
	}

	tests := []struct {
		name    string
		mutate  func(*domain.CreateEventInput)
		wantMsg string
	}{
		{name: "missing title", mutate: func(in *domain.CreateEventInput) { in.Title = " " }, wantMsg: "title"},
		{name: "missing date", mutate: func(in *domain.CreateEventInput) { in.Date = time.Time{} }, wantMsg: "date"},
		{name: "missing location", mutate: func(in *domain.CreateEventInput) { in.Location = "" }, wantMsg: "location"},
		{name: "missing distance", mutate: func(in *domain.CreateEventInput) { in.Distance = "" }, wantMsg: "distance"},
		{name: "negative price", mutate: func(in *domain.CreateEventInput) { in.Price = -1 }, wantMsg: "price"},
		{name: "zero capacity", mutate: func(in *domain.CreateEventInput) { in.MaxParticipants = 0 }, wantMsg: "max_participants"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewEventService(&fakeEventRepo{})
			in := valid
			tt.mutate(&in)
			_, err := svc.Create(context.Background(), in)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !strings.Contains(ve.Error(), tt.wantMsg) {
				t.Errorf("expected message to mention %q, got %q", tt.wantMsg, ve.Error())
			}
		})
	}
}

func TestEventService_Create_Success(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := NewEventService(repo)

	got, err := svc.Create(context.Background(), domain.CreateEventInput{
		Title:            "  Rinjani Trail 25K  ",
		Date:             time.Date(2025, 8, 17, 0, 0, 0, 0, time.UTC),
		Location:         "Lombok",
		Distance:         "25K",
		Price:            350000,
		MaxParticipants:  100,
		RegistrationOpen: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID == "" {
		t.Error("expected a generated event id")
	}
	if got.Title != "Rinjani Trail 25K" {
		t.Errorf("expected trimmed title, got %q", got.Title)
	}
	if got.CurrentParticipants != 0 {
		t.Errorf("new events start with zero participants, got %d", got.CurrentParticipants)
	}
	if _, ok := repo.events[got.ID]; !ok {
		t.Error("event was not persisted")
	}
}

func TestEventService_GetByID_NotFound(t *testing.T) {
	svc := NewEventService(&fakeEventRepo{events: map[string]*domain.Event{}})
	_, err := svc.GetByID(context.Background(), "ev-missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEventService_ListUpcoming_Defaults(t *testing.T) {
	repo := &upcomingEventRepo{}
	svc := NewEventService(repo).(*eventService)
	fixed := time.Date(2025, 6, 15, 18, 45, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	if _, err := svc.ListUpcoming(ctx, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastLimit != defaultUpcomingLimit {
		t.Errorf("expected default limit %d, got %d", defaultUpcomingLimit, repo.lastLimit)
	}
	want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	if !repo.lastFrom.Equal(want) {
		t.Errorf("expected cutoff at midnight today, got %v", repo.lastFrom)
	}

	if _, err := svc.ListUpcoming(ctx, 8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastLimit != 8 {
		t.Errorf("expected explicit limit 8, got %d", repo.lastLimit)
	}
}

func TestEventService_Update_Validation(t *testing.T) {
	svc := NewEventService(&fakeEventRepo{})
	negative := int64(-5)
	_, err := svc.Update(context.Background(), "ev-1", domain.UpdateEventInput{Price: &negative})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	zero := 0
	_, err = svc.Update(context.Background(), "ev-1", domain.UpdateEventInput{MaxParticipants: &zero})
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestEventService_Update_NotFound(t *testing.T) {
	svc := NewEventService(&fakeEventRepo{})
	title := "New title"
	_, err := svc.Update(context.Background(), "ev-missing", domain.UpdateEventInput{Title: &title})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
