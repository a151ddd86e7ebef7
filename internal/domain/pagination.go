package domain

// PaginationParams holds offset-based pagination parameters for list queries.
type PaginationParams struct {
	Page  int
	Limit int
}

// Offset returns the row offset for the current page (0-based).
// Formula: (Page - 1) * Limit.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Pagination is the descriptor included in paginated list responses.
// swagger:model Pagination
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
	NextPage   *int `json:"next_page"`
	PrevPage   *int `json:"prev_page"`
}

// NewPagination builds the descriptor from the current page, limit, and total
// row count. TotalPages is ceiling(total / limit); zero limit yields zero pages.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	p := Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1 && total > 0,
	}
	if p.HasNext {
		next := page + 1
		p.NextPage = &next
	}
	if p.HasPrev {
		prev := page - 1
		p.PrevPage = &prev
	}
	return p
}
