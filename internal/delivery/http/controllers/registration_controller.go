package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"trailreg/internal/delivery/http/helpers"
	"trailreg/internal/domain"
)

// birthDateLayout is the accepted format for the birth_date field.
const birthDateLayout = "2006-01-02"

// RegisterParticipantRequest is the request body for POST /api/participants.
type RegisterParticipantRequest struct {
	EventID               string  `json:"event_id"`
	FullName              string  `json:"full_name"`
	Email                 string  `json:"email"`
	PhoneNumber           string  `json:"phone_number"`
	BirthDate             string  `json:"birth_date"`
	Gender                string  `json:"gender"`
	EmergencyContactName  *string `json:"emergency_contact_name"`
	EmergencyContactPhone *string `json:"emergency_contact_phone"`
	MedicalNotes          *string `json:"medical_notes"`
	PaymentAmount         int64   `json:"payment_amount"`
}

// Validate implements Validator. Field-level rules beyond format checks live
// in the registration service.
func (r RegisterParticipantRequest) Validate() []string {
	var errs []string
	if r.BirthDate != "" {
		if _, err := time.Parse(birthDateLayout, r.BirthDate); err != nil {
			errs = append(errs, "birth_date must be formatted as YYYY-MM-DD")
		}
	}
	return errs
}

func (r RegisterParticipantRequest) toInput() domain.RegistrationInput {
	birthDate, _ := time.Parse(birthDateLayout, r.BirthDate)
	return domain.RegistrationInput{
		EventID:               strings.TrimSpace(r.EventID),
		FullName:              strings.TrimSpace(r.FullName),
		Email:                 strings.TrimSpace(r.Email),
		PhoneNumber:           strings.TrimSpace(r.PhoneNumber),
		BirthDate:             birthDate,
		Gender:                strings.TrimSpace(r.Gender),
		EmergencyContactName:  r.EmergencyContactName,
		EmergencyContactPhone: r.EmergencyContactPhone,
		MedicalNotes:          r.MedicalNotes,
		PaymentAmount:         r.PaymentAmount,
	}
}

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
	Lookup  domain.ParticipantService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService, lookup domain.ParticipantService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
		Lookup:  lookup,
	}
}

// Register godoc
// @Summary Register a participant for an event
// @Description Registers a runner for an event, assigns a booking code, and occupies one capacity slot. Fails with 400 when the event is closed, fully booked, or the email already has an active registration.
// @Tags participants
// @Accept json
// @Produce json
// @Param body body RegisterParticipantRequest true "Registration data"
// @Success 201 {object} helpers.APIResponse "data contains the participant and booking code"
// @Failure 400 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "event not found"
// @Failure 500 {object} helpers.APIResponse
// @Router /api/participants [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterParticipantRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.Register(r.Context(), req.toInput())
	if err != nil {
		c.Logger.InfoContext(r.Context(), "registration rejected", "event_id", req.EventID, "err", err)
		helpers.WriteDomainError(w, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, result.Message, result)
}

// GetByBookingCode godoc
// @Summary Look up a registration by booking code
// @Description Returns the participant and its event for a booking code. Public so runners can check their registration status.
// @Tags participants
// @Produce json
// @Param code path string true "Booking code (e.g. RITW25-483920114)"
// @Success 200 {object} helpers.APIResponse "data contains participant and event"
// @Failure 400 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse
// @Failure 500 {object} helpers.APIResponse
// @Router /api/participants/code/{code} [get]
func (c *RegistrationController) GetByBookingCode(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	result, err := c.Lookup.GetByBookingCode(r.Context(), code)
	if err != nil {
		helpers.WriteDomainError(w, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "registration found", result)
}
