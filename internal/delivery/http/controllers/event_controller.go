package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"trailreg/internal/delivery/http/helpers"
	"trailreg/internal/domain"
)

// CreateEventRequest is the request body for POST /api/events.
type CreateEventRequest struct {
	Title            string  `json:"title"`
	Description      *string `json:"description"`
	Date             string  `json:"date"`
	Location         string  `json:"location"`
	Distance         string  `json:"distance"`
	Elevation        *string `json:"elevation"`
	Price            int64   `json:"price"`
	MaxParticipants  int     `json:"max_participants"`
	RegistrationOpen bool    `json:"registration_open"`
	ImageURL         *string `json:"image_url"`
}

// Validate implements Validator. Required-field and range rules live in the
// event service; here we only reject an unparseable date.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if c.Date != "" {
		if _, err := time.Parse(time.RFC3339, c.Date); err != nil {
			errs = append(errs, "date must be an RFC3339 timestamp")
		}
	}
	return errs
}

func (c CreateEventRequest) toInput() domain.CreateEventInput {
	date, _ := time.Parse(time.RFC3339, c.Date)
	return domain.CreateEventInput{
		Title:            c.Title,
		Description:      c.Description,
		Date:             date,
		Location:         c.Location,
		Distance:         c.Distance,
		Elevation:        c.Elevation,
		Price:            c.Price,
		MaxParticipants:  c.MaxParticipants,
		RegistrationOpen: c.RegistrationOpen,
		ImageURL:         c.ImageURL,
	}
}

// UpdateEventRequest is the request body for PUT /api/events/{eventID}.
// All fields optional; omitted fields are unchanged. The participant counter
// cannot be edited through this endpoint.
type UpdateEventRequest struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	Date             *time.Time `json:"date"`
	Location         *string    `json:"location"`
	Distance         *string    `json:"distance"`
	Elevation        *string    `json:"elevation"`
	Price            *int64     `json:"price"`
	MaxParticipants  *int       `json:"max_participants"`
	RegistrationOpen *bool      `json:"registration_open"`
	ImageURL         *string    `json:"image_url"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Title != nil && *u.Title == "" {
		errs = append(errs, "title cannot be empty")
	}
	return errs
}

func (u UpdateEventRequest) toInput() domain.UpdateEventInput {
	return domain.UpdateEventInput{
		Title:            u.Title,
		Description:      u.Description,
		Date:             u.Date,
		Location:         u.Location,
		Distance:         u.Distance,
		Elevation:        u.Elevation,
		Price:            u.Price,
		MaxParticipants:  u.MaxParticipants,
		RegistrationOpen: u.RegistrationOpen,
		ImageURL:         u.ImageURL,
	}
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListAll godoc
// @Summary List all events
// @Description Returns every event, soonest first.
// @Tags events
// @Produce json
// @Success 200 {object} helpers.APIResponse "data is an array of events"
// @Failure 500 {object} helpers.APIResponse
// @Router /api/events [get]
func (c *EventController) ListAll(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListAll(r.Context())
	if err != nil {
		helpers.WriteDomainError(w, c.Logger, err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "events retrieved", events)
}

// ListUpcoming godoc
// @Summary List upcoming open events
// @Description Returns the next events with registration open, for the landing page. Default limit is 3.
// @Tags events
// @Produce json
// @Param limit query int false "Maximum number of events (default 3)"
// @Success 200 {object} helpers.APIResponse "data is an array of events"
// @Failure 400 {object} helpers.APIResponse
// @Failure 500 {object} helpers.APIResponse
// @Router /api/events/upcoming [get]
func (c *EventController) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			helpers.WriteJSONError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = v
	}
	events, err := c.Service.ListUpcoming(r.Context(), limit)
	if err != nil {
		helpers.WriteDomainError(w, c.Logger, err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "upcoming events retrieved", events)
}

// GetByID godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse
// @Failure 500 {object} helpers.APIResponse
// @Router /api/events/{eventID} [get]
func (c *EventController) GetByID(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, "missing eventID")
		return
	}
	event, err := c.Service.GetByID(r.Context(), eventID)
	if err != nil {
		helpers.WriteDomainError(w, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "event retrieved", event)
}

// Create godoc
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param body body CreateEventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 500 {object} helpers.APIResponse
// @Router /api/events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.Create(r.Context(), req.toInput())
	if err != nil {
		helpers.WriteDomainError(w, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, "event created", event)
}

// Update godoc
// @Summary Update an event
// @Description Updates event details. Omitted fields are unchanged; current_participants cannot be set here.
// @Tags events
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} helpers.APIResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse
// @Failure 500 {object} helpers.APIResponse
// @Router /api/events/{eventID} [put]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, "missing eventID")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.Update(r.Context(), eventID, req.toInput())
	if err != nil {
		helpers.WriteDomainError(w, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "event updated", event)
}

// DeleteEventResponse is the data payload for DELETE /api/events/{eventID} (200).
type DeleteEventResponse struct {
	Status string `json:"status"`
}

// Delete godoc
// @Summary Delete an event
// @Description Deletes an event and its participants.
// @Tags events
// @Produce json
// @Security CookieAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse
// @Failure 500 {object} helpers.APIResponse
// @Router /api/events/{eventID} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, "missing eventID")
		return
	}
	if err := c.Service.Delete(r.Context(), eventID); err != nil {
		helpers.WriteDomainError(w, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "event deleted", DeleteEventResponse{Status: "deleted"})
}
