package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trailreg/internal/domain"
)

type participantService struct {
	participantRepo domain.ParticipantRepository
}

// NewParticipantService creates the admin-facing participant query service.
func NewParticipantService(participantRepo domain.ParticipantRepository) domain.ParticipantService {
	return &participantService{participantRepo: participantRepo}
}

func (s *participantService) List(ctx context.Context, filter domain.ParticipantFilter, page domain.PaginationParams) (*domain.ParticipantList, error) {
	if page.Page < 1 {
		return nil, domain.ErrPageOutOfRange
	}
	if page.Limit < 1 || page.Limit > 100 {
		return nil, domain.NewValidationError("limit must be between 1 and 100")
	}
	if filter.PaymentStatus != "" && !filter.PaymentStatus.Valid() {
		return nil, domain.NewValidationError("payment_status must be one of pending, paid, expired, cancelled")
	}

	total, err := s.participantRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count participants: %w", err)
	}

	pagination := domain.NewPagination(page.Page, page.Limit, total)
	// Requesting a page past the end is an error, not a silent clamp. Page 1
	// of an empty result set is still fine.
	if total > 0 && page.Page > pagination.TotalPages {
		return nil, domain.ErrPageOutOfRange
	}

	items := []*domain.Participant{}
	if total > 0 {
		items, err = s.participantRepo.List(ctx, filter, page)
		if err != nil {
			return nil, fmt.Errorf("list participants: %w", err)
		}
	}

	sortBy := filter.SortBy
	if _, ok := domain.ParticipantSortColumns[sortBy]; !ok {
		sortBy = "registration_date"
	}
	sortOrder := "desc"
	if strings.EqualFold(filter.SortOrder, "asc") {
		sortOrder = "asc"
	}

	return &domain.ParticipantList{
		Items:      items,
		Pagination: pagination,
		Filters: domain.ParticipantFilterEcho{
			EventID:       filter.EventID,
			PaymentStatus: string(filter.PaymentStatus),
			Search:        filter.Search,
			SortBy:        sortBy,
			SortOrder:     sortOrder,
		},
	}, nil
}

func (s *participantService) GetByBookingCode(ctx context.Context, code string) (*domain.ParticipantWithEvent, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.NewValidationError("unique code is required")
	}
	pw, err := s.participantRepo.GetByBookingCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get participant by code: %w", err)
	}
	return pw, nil
}
