package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"trailreg/internal/domain"
)

const eventColumns = `id, title, description, date, location, distance, elevation, price,
		max_participants, current_participants, registration_open, image_url, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	var descNull, elevNull, imageNull sql.NullString
	err := row.Scan(
		&e.ID, &e.Title, &descNull, &e.Date, &e.Location, &e.Distance, &elevNull, &e.Price,
		&e.MaxParticipants, &e.CurrentParticipants, &e.RegistrationOpen, &imageNull,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if descNull.Valid {
		e.Description = &descNull.String
	}
	if elevNull.Valid {
		e.Elevation = &elevNull.String
	}
	if imageNull.Valid {
		e.ImageURL = &imageNull.String
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (id, title, description, date, location, distance, elevation, price,
			max_participants, current_participants, registration_open, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.DB.ExecContext(ctx, query,
		e.ID, e.Title, e.Description, e.Date, e.Location, e.Distance, e.Elevation, e.Price,
		e.MaxParticipants, e.CurrentParticipants, e.RegistrationOpen, e.ImageURL,
		e.CreatedAt, e.UpdatedAt,
	)
	return err
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
	`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY date ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE date >= $1 AND registration_open = TRUE
		ORDER BY date ASC
		LIMIT $2
	`
	rows, err := r.DB.QueryContext(ctx, query, from, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id string, in domain.UpdateEventInput) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	add := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if in.Title != nil {
		add("title", *in.Title)
	}
	if in.Description != nil {
		add("description", *in.Description)
	}
	if in.Date != nil {
		add("date", *in.Date)
	}
	if in.Location != nil {
		add("location", *in.Location)
	}
	if in.Distance != nil {
		add("distance", *in.Distance)
	}
	if in.Elevation != nil {
		add("elevation", *in.Elevation)
	}
	if in.Price != nil {
		add("price", *in.Price)
	}
	if in.MaxParticipants != nil {
		add("max_participants", *in.MaxParticipants)
	}
	if in.RegistrationOpen != nil {
		add("registration_open", *in.RegistrationOpen)
	}
	if in.ImageURL != nil {
		add("image_url", *in.ImageURL)
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING `+eventColumns+`
	`, strings.Join(setClauses, ", "), n)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementParticipants is the sole concurrency guard for registration: the
// increment only happens while registration is open and a slot remains, in a
// single atomic statement. Callers treat zero affected rows as a lost race.
func (r *eventRepository) IncrementParticipants(ctx context.Context, id string) (int64, error) {
	query := `
		UPDATE events
		SET current_participants = current_participants + 1, updated_at = NOW()
		WHERE id = $1 AND registration_open = TRUE AND current_participants < max_participants
	`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *eventRepository) RestoreParticipantSlot(ctx context.Context, id string) error {
	query := `
		UPDATE events
		SET current_participants = LEAST(current_participants + 1, max_participants), updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) DecrementParticipants(ctx context.Context, id string) error {
	query := `
		UPDATE events
		SET current_participants = GREATEST(current_participants - 1, 0), updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
