package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"trailreg/internal/delivery/http/helpers"
	"trailreg/internal/domain"
)

// UpdatePaymentRequest is the request body for PUT /api/participants/{participantID}/payment.
type UpdatePaymentRequest struct {
	Status      string     `json:"status"`
	PaymentDate *time.Time `json:"payment_date"`
}

// Validate implements Validator.
func (u UpdatePaymentRequest) Validate() []string {
	if u.Status == "" {
		return []string{"status is required"}
	}
	return nil
}

type ParticipantController struct {
	Logger   *slog.Logger
	Service  domain.ParticipantService
	Payments domain.PaymentService
}

func NewParticipantController(logger *slog.Logger, svc domain.ParticipantService, payments domain.PaymentService) *ParticipantController {
	return &ParticipantController{
		Logger:   logger,
		Service:  svc,
		Payments: payments,
	}
}

// List godoc
// @Summary List participants
// @Description Returns a paginated participant listing for the admin panel with optional filters. A page beyond the last page is a 400, not an empty page.
// @Tags participants
// @Produce json
// @Security CookieAuth
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param event_id query string false "Filter by event"
// @Param payment_status query string false "Filter by payment status (pending, paid, expired, cancelled)"
// @Param search query string false "Match against name, email, phone, or booking code"
// @Param sort_by query string false "Sort column (default registration_date)"
// @Param sort_order query string false "asc or desc (default desc)"
// @Success 200 {object} helpers.APIResponse "data contains items, pagination, and filters"
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 500 {object} helpers.APIResponse
// @Router /api/participants [get]
func (c *ParticipantController) List(w http.ResponseWriter, r *http.Request) {
	page, err := helpers.ParsePagination(r)
	if err != nil {
		helpers.WriteDomainError(w, c.Logger, err)
		return
	}
	filter := helpers.ParseParticipantFilter(r)
	list, err := c.Service.List(r.Context(), filter, page)
	if err != nil {
		helpers.WriteDomainError(w, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "participants retrieved", list)
}

// UpdatePayment godoc
// @Summary Update a participant's payment status
// @Description Transitions the payment status (paid, expired, cancelled) and reconciles the event's participant counter on cancel and un-cancel transitions. payment_date defaults to now when entering paid without one.
// @Tags participants
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param participantID path string true "Participant ID (UUID)"
// @Param body body UpdatePaymentRequest true "New payment status"
// @Success 200 {object} helpers.APIResponse "data contains the updated participant"
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse
// @Failure 500 {object} helpers.APIResponse
// @Router /api/participants/{participantID}/payment [put]
func (c *ParticipantController) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	participantID := r.PathValue("participantID")
	if participantID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, "missing participantID")
		return
	}
	var req UpdatePaymentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	updated, err := c.Payments.UpdatePaymentStatus(r.Context(), participantID, domain.PaymentStatus(req.Status), req.PaymentDate)
	if err != nil {
		helpers.WriteDomainError(w, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "payment status updated", updated)
}
