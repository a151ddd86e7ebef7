package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"trailreg/internal/domain"
)

const participantColumns = `id, event_id, full_name, email, phone_number, birth_date, gender,
		emergency_contact_name, emergency_contact_phone, medical_notes, registration_date,
		unique_code, payment_status, payment_amount, payment_date, created_at, updated_at`

type participantRepository struct {
	DB *sql.DB
}

func NewParticipantRepository(db *sql.DB) domain.ParticipantRepository {
	return &participantRepository{
		DB: db,
	}
}

func scanParticipant(row interface{ Scan(...any) error }) (*domain.Participant, error) {
	p := &domain.Participant{}
	var ecNameNull, ecPhoneNull, notesNull sql.NullString
	var paymentDateNull sql.NullTime
	err := row.Scan(
		&p.ID, &p.EventID, &p.FullName, &p.Email, &p.PhoneNumber, &p.BirthDate, &p.Gender,
		&ecNameNull, &ecPhoneNull, &notesNull, &p.RegistrationDate,
		&p.BookingCode, &p.PaymentStatus, &p.PaymentAmount, &paymentDateNull,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if ecNameNull.Valid {
		p.EmergencyContactName = &ecNameNull.String
	}
	if ecPhoneNull.Valid {
		p.EmergencyContactPhone = &ecPhoneNull.String
	}
	if notesNull.Valid {
		p.MedicalNotes = &notesNull.String
	}
	if paymentDateNull.Valid {
		p.PaymentDate = &paymentDateNull.Time
	}
	return p, nil
}

func (r *participantRepository) Insert(ctx context.Context, p *domain.Participant) error {
	query := `
		INSERT INTO participants (id, event_id, full_name, email, phone_number, birth_date, gender,
			emergency_contact_name, emergency_contact_phone, medical_notes, registration_date,
			unique_code, payment_status, payment_amount, payment_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := r.DB.ExecContext(ctx, query,
		p.ID, p.EventID, p.FullName, p.Email, p.PhoneNumber, p.BirthDate, p.Gender,
		p.EmergencyContactName, p.EmergencyContactPhone, p.MedicalNotes, p.RegistrationDate,
		p.BookingCode, p.PaymentStatus, p.PaymentAmount, p.PaymentDate,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			if strings.Contains(perr.Constraint, "unique_code") {
				return domain.ErrDuplicateBookingCode
			}
			return domain.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

func (r *participantRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM participants WHERE id = $1`
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

const participantEventJoin = `
		SELECT p.id, p.event_id, p.full_name, p.email, p.phone_number, p.birth_date, p.gender,
			p.emergency_contact_name, p.emergency_contact_phone, p.medical_notes, p.registration_date,
			p.unique_code, p.payment_status, p.payment_amount, p.payment_date, p.created_at, p.updated_at,
			e.id, e.title, e.description, e.date, e.location, e.distance, e.elevation, e.price,
			e.max_participants, e.current_participants, e.registration_open, e.image_url, e.created_at, e.updated_at
		FROM participants p
		JOIN events e ON e.id = p.event_id
`

func scanParticipantWithEvent(row interface{ Scan(...any) error }) (*domain.ParticipantWithEvent, error) {
	p := &domain.Participant{}
	e := &domain.Event{}
	var ecNameNull, ecPhoneNull, notesNull sql.NullString
	var paymentDateNull sql.NullTime
	var descNull, elevNull, imageNull sql.NullString
	err := row.Scan(
		&p.ID, &p.EventID, &p.FullName, &p.Email, &p.PhoneNumber, &p.BirthDate, &p.Gender,
		&ecNameNull, &ecPhoneNull, &notesNull, &p.RegistrationDate,
		&p.BookingCode, &p.PaymentStatus, &p.PaymentAmount, &paymentDateNull,
		&p.CreatedAt, &p.UpdatedAt,
		&e.ID, &e.Title, &descNull, &e.Date, &e.Location, &e.Distance, &elevNull, &e.Price,
		&e.MaxParticipants, &e.CurrentParticipants, &e.RegistrationOpen, &imageNull,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if ecNameNull.Valid {
		p.EmergencyContactName = &ecNameNull.String
	}
	if ecPhoneNull.Valid {
		p.EmergencyContactPhone = &ecPhoneNull.String
	}
	if notesNull.Valid {
		p.MedicalNotes = &notesNull.String
	}
	if paymentDateNull.Valid {
		p.PaymentDate = &paymentDateNull.Time
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
	return &domain.ParticipantWithEvent{Participant: p, Event: e}, nil
}

func (r *participantRepository) GetWithEvent(ctx context.Context, id string) (*domain.ParticipantWithEvent, error) {
	query := participantEventJoin + `		WHERE p.id = $1`
	pw, err := scanParticipantWithEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return pw, nil
}

func (r *participantRepository) GetByBookingCode(ctx context.Context, code string) (*domain.ParticipantWithEvent, error) {
	query := participantEventJoin + `		WHERE p.unique_code = $1`
	pw, err := scanParticipantWithEvent(r.DB.QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return pw, nil
}

func (r *participantRepository) FindActiveByEmail(ctx context.Context, eventID, email string) (*domain.Participant, error) {
	query := `
		SELECT ` + participantColumns + `
		FROM participants
		WHERE event_id = $1 AND email = $2 AND payment_status <> 'cancelled'
	`
	p, err := scanParticipant(r.DB.QueryRowContext(ctx, query, eventID, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *participantRepository) UpdatePayment(ctx context.Context, id string, patch domain.PaymentPatch) (*domain.Participant, error) {
	setClauses := []string{"updated_at = NOW()", "payment_status = $1"}
	args := []interface{}{string(patch.Status)}
	n := 2
	if patch.PaymentDate != nil {
		setClauses = append(setClauses, fmt.Sprintf("payment_date = $%d", n))
		args = append(args, *patch.PaymentDate)
		n++
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE participants SET %s
		WHERE id = $%d
		RETURNING `+participantColumns+`
	`, strings.Join(setClauses, ", "), n)
	p, err := scanParticipant(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// buildFilter renders the WHERE clause shared by List and Count. Args are
// numbered starting at 1.
func buildFilter(filter domain.ParticipantFilter) (string, []interface{}) {
	clauses := []string{}
	args := []interface{}{}
	n := 1
	if filter.EventID != "" {
		clauses = append(clauses, fmt.Sprintf("event_id = $%d", n))
		args = append(args, filter.EventID)
		n++
	}
	if filter.PaymentStatus != "" {
		clauses = append(clauses, fmt.Sprintf("payment_status = $%d", n))
		args = append(args, string(filter.PaymentStatus))
		n++
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		clauses = append(clauses, fmt.Sprintf(
			"(full_name ILIKE $%d OR email ILIKE $%d OR phone_number ILIKE $%d OR unique_code ILIKE $%d)",
			n, n+1, n+2, n+3))
		args = append(args, pattern, pattern, pattern, pattern)
		n += 4
	}
	if len(clauses) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

// sortClause validates sort_by against the allow-list and sort_order against
// asc/desc. Unknown values fall back to registration_date DESC.
func sortClause(filter domain.ParticipantFilter) string {
	column := "registration_date"
	if _, ok := domain.ParticipantSortColumns[filter.SortBy]; ok {
		column = filter.SortBy
	}
	order := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		order = "ASC"
	}
	return fmt.Sprintf("ORDER BY %s %s", column, order)
}

func (r *participantRepository) List(ctx context.Context, filter domain.ParticipantFilter, page domain.PaginationParams) ([]*domain.Participant, error) {
	where, args := buildFilter(filter)
	query := fmt.Sprintf(`
		SELECT `+participantColumns+`
		FROM participants
		%s
		%s
		LIMIT $%d OFFSET $%d
	`, where, sortClause(filter), len(args)+1, len(args)+2)
	args = append(args, page.Limit, page.Offset())
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	participants := make([]*domain.Participant, 0)
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func (r *participantRepository) Count(ctx context.Context, filter domain.ParticipantFilter) (int, error) {
	where, args := buildFilter(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM participants %s`, where)
	var total int
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
