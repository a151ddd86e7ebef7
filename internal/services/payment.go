package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"trailreg/internal/domain"
)

type paymentService struct {
	eventRepo       domain.EventRepository
	participantRepo domain.ParticipantRepository
	logger          *slog.Logger
	now             func() time.Time
}

// NewPaymentService creates the payment-status workflow.
func NewPaymentService(
	eventRepo domain.EventRepository,
	participantRepo domain.ParticipantRepository,
	logger *slog.Logger,
) domain.PaymentService {
	return &paymentService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *paymentService) UpdatePaymentStatus(ctx context.Context, participantID string, status domain.PaymentStatus, paymentDate *time.Time) (*domain.Participant, error) {
	if status != domain.PaymentPaid && status != domain.PaymentExpired && status != domain.PaymentCancelled {
		return nil, domain.NewValidationError("status must be one of paid, expired, cancelled")
	}

	pw, err := s.participantRepo.GetWithEvent(ctx, participantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get participant: %w", err)
	}
	prev := pw.Participant.PaymentStatus

	patch := domain.PaymentPatch{Status: status, PaymentDate: paymentDate}
	if status == domain.PaymentPaid && paymentDate == nil && pw.Participant.PaymentDate == nil {
		now := s.now()
		patch.PaymentDate = &now
	}

	updated, err := s.participantRepo.UpdatePayment(ctx, participantID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update payment status: %w", err)
	}

	// Counter reconciliation only fires on the transitions that change how
	// many slots are occupied. The status update is the operation of record:
	// a failed adjustment is logged, never surfaced as a failure.
	switch {
	case prev != domain.PaymentCancelled && status == domain.PaymentCancelled:
		if err := s.eventRepo.DecrementParticipants(ctx, pw.Participant.EventID); err != nil {
			s.logger.Warn("participant count decrement failed",
				"participant_id", participantID, "event_id", pw.Participant.EventID, "err", err)
		}
	case prev == domain.PaymentCancelled && status == domain.PaymentPaid:
		if err := s.eventRepo.RestoreParticipantSlot(ctx, pw.Participant.EventID); err != nil {
			s.logger.Warn("participant count increment failed",
				"participant_id", participantID, "event_id", pw.Participant.EventID, "err", err)
		}
	}

	return updated, nil
}
