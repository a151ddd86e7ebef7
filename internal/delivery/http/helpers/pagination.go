package helpers

import (
	"net/http"
	"strconv"
	"strings"

	"trailreg/internal/domain"
)

// Pagination query parameter defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 20
)

// ParsePagination reads page and limit from the request query string.
// Missing values fall back to defaults; non-numeric values are a validation
// error. Range enforcement (page >= 1, limit 1..100) happens in the service.
func ParsePagination(r *http.Request) (domain.PaginationParams, error) {
	page := DefaultPage
	if s := r.URL.Query().Get("page"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return domain.PaginationParams{}, domain.NewValidationError("page must be an integer")
		}
		page = v
	}
	limit := DefaultLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return domain.PaginationParams{}, domain.NewValidationError("limit must be an integer")
		}
		limit = v
	}
	return domain.PaginationParams{Page: page, Limit: limit}, nil
}

// ParseParticipantFilter reads the listing filters from the query string.
// Values are passed through as-is; the service validates payment_status and
// normalizes the sort columns against its allow-list.
func ParseParticipantFilter(r *http.Request) domain.ParticipantFilter {
	q := r.URL.Query()
	return domain.ParticipantFilter{
		EventID:       strings.TrimSpace(q.Get("event_id")),
		PaymentStatus: domain.PaymentStatus(strings.TrimSpace(q.Get("payment_status"))),
		Search:        strings.TrimSpace(q.Get("search")),
		SortBy:        strings.TrimSpace(q.Get("sort_by")),
		SortOrder:     strings.TrimSpace(q.Get("sort_order")),
	}
}
