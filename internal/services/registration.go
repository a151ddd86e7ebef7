package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"trailreg/internal/bookingcode"
	"trailreg/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// maxCodeAttempts bounds booking-code regeneration when the unique constraint
// on unique_code fires. With nine random digits a second collision in a row is
// already vanishingly unlikely.
const maxCodeAttempts = 5

const registrationSuccessMessage = "Registration successful. Please complete payment."

type registrationService struct {
	eventRepo       domain.EventRepository
	participantRepo domain.ParticipantRepository
	codes           *bookingcode.Generator
	emails          domain.EmailService
	logger          *slog.Logger
	now             func() time.Time
}

// NewRegistrationService creates the registration workflow. emails may be nil
// when no confirmation email should be sent.
func NewRegistrationService(
	eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	codes *bookingcode.Generator,
	emails domain.EmailService,
	logger *slog.Logger,
) domain.RegistrationService {
	return &registrationService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		codes:           codes,
		emails:          emails,
		logger:          logger,
		now:             time.Now,
	}
}

func validateRegistrationInput(in domain.RegistrationInput) error {
	missing := []string{}
	if strings.TrimSpace(in.EventID) == "" {
		missing = append(missing, "event_id")
	}
	if strings.TrimSpace(in.FullName) == "" {
		missing = append(missing, "full_name")
	}
	if strings.TrimSpace(in.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(in.PhoneNumber) == "" {
		missing = append(missing, "phone_number")
	}
	if in.BirthDate.IsZero() {
		missing = append(missing, "birth_date")
	}
	if strings.TrimSpace(in.Gender) == "" {
		missing = append(missing, "gender")
	}
	if in.PaymentAmount == 0 {
		missing = append(missing, "payment_amount")
	}
	if len(missing) > 0 {
		return domain.NewValidationError("missing required fields: " + strings.Join(missing, ", "))
	}
	if !emailRegexp.MatchString(in.Email) {
		return domain.NewValidationError("invalid email format")
	}
	if !domain.ValidGender(in.Gender) {
		return domain.NewValidationError("gender must be one of male, female, other")
	}
	if in.PaymentAmount < 0 {
		return domain.NewValidationError("payment_amount must not be negative")
	}
	return nil
}

func (s *registrationService) Register(ctx context.Context, in domain.RegistrationInput) (*domain.RegistrationResult, error) {
	if err := validateRegistrationInput(in); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	event, err := s.eventRepo.GetByID(ctx, in.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !event.RegistrationOpen {
		return nil, domain.ErrRegistrationClosed
	}
	if event.SlotsRemaining() == 0 {
		return nil, domain.ErrFullyBooked
	}

	// Active means any non-cancelled registration for this event.
	if _, err := s.participantRepo.FindActiveByEmail(ctx, in.EventID, email); err == nil {
		return nil, domain.ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check existing registration: %w", err)
	}

	participant, err := s.insertWithFreshCode(ctx, in, email)
	if err != nil {
		return nil, err
	}

	// The conditional increment is the sole concurrency guard: zero affected
	// rows means another registration claimed the last slot (or staff closed
	// registration) after our read. Roll the insert back before failing.
	rows, err := s.eventRepo.IncrementParticipants(ctx, in.EventID)
	if err != nil || rows == 0 {
		if delErr := s.participantRepo.Delete(ctx, participant.ID); delErr != nil {
			// A failed rollback leaves an orphaned row that needs manual
			// cleanup; log it apart from the race itself.
			s.logger.Error("registration rollback failed",
				"participant_id", participant.ID, "event_id", in.EventID, "err", delErr)
		}
		if err != nil {
			return nil, fmt.Errorf("update participant count: %w", err)
		}
		return nil, domain.ErrCapacityRace
	}

	if s.emails != nil {
		data := &domain.RegistrationEmailData{
			Email:         participant.Email,
			FullName:      participant.FullName,
			EventTitle:    event.Title,
			EventDate:     event.Date.Format("2 January 2006"),
			EventLocation: event.Location,
			BookingCode:   participant.BookingCode,
			PaymentAmount: participant.PaymentAmount,
		}
		if err := s.emails.SendRegistrationConfirmation(ctx, data); err != nil {
			s.logger.Warn("confirmation email failed",
				"participant_id", participant.ID, "email", participant.Email, "err", err)
		}
	}

	return &domain.RegistrationResult{
		Participant: participant,
		BookingCode: participant.BookingCode,
		Message:     registrationSuccessMessage,
	}, nil
}

// insertWithFreshCode inserts the participant row, regenerating the booking
// code when the storage-level uniqueness constraint rejects it.
func (s *registrationService) insertWithFreshCode(ctx context.Context, in domain.RegistrationInput, email string) (*domain.Participant, error) {
	now := s.now()
	p := &domain.Participant{
		ID:                    uuid.NewString(),
		EventID:               in.EventID,
		FullName:              strings.TrimSpace(in.FullName),
		Email:                 email,
		PhoneNumber:           strings.TrimSpace(in.PhoneNumber),
		BirthDate:             in.BirthDate,
		Gender:                in.Gender,
		EmergencyContactName:  in.EmergencyContactName,
		EmergencyContactPhone: in.EmergencyContactPhone,
		MedicalNotes:          in.MedicalNotes,
		RegistrationDate:      now,
		PaymentStatus:         domain.PaymentPending,
		PaymentAmount:         in.PaymentAmount,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		p.BookingCode = s.codes.Generate()
		err := s.participantRepo.Insert(ctx, p)
		if err == nil {
			return p, nil
		}
		if errors.Is(err, domain.ErrDuplicateBookingCode) {
			continue
		}
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("insert participant: %w", err)
	}
	return nil, fmt.Errorf("insert participant: could not find a free booking code after %d attempts", maxCodeAttempts)
}
