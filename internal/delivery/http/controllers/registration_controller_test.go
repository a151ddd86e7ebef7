package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trailreg/internal/delivery/http/helpers"
	"trailreg/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeRegistrationService implements domain.RegistrationService for handler tests.
type fakeRegistrationService struct {
	result    *domain.RegistrationResult
	err       error
	lastInput domain.RegistrationInput
}

func (f *fakeRegistrationService) Register(_ context.Context, in domain.RegistrationInput) (*domain.RegistrationResult, error) {
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// fakeParticipantService implements domain.ParticipantService for handler tests.
type fakeParticipantService struct {
	list       *domain.ParticipantList
	listErr    error
	byCode     *domain.ParticipantWithEvent
	byCodeErr  error
	lastFilter domain.ParticipantFilter
	lastPage   domain.PaginationParams
	lastCode   string
}

func (f *fakeParticipantService) List(_ context.Context, filter domain.ParticipantFilter, page domain.PaginationParams) (*domain.ParticipantList, error) {
	f.lastFilter = filter
	f.lastPage = page
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.list, nil
}

func (f *fakeParticipantService) GetByBookingCode(_ context.Context, code string) (*domain.ParticipantWithEvent, error) {
	f.lastCode = code
	if f.byCodeErr != nil {
		return nil, f.byCodeErr
	}
	return f.byCode, nil
}

func validRegisterBody() map[string]any {
	return map[string]any{
		"event_id":       "8f7a2c91-3f45-4f7e-9a2d-6c1b5e8d0f34",
		"full_name":      "Alice Runner",
		"email":          "alice@example.com",
		"phone_number":   "+62811111111",
		"birth_date":     "1992-03-14",
		"gender":         "female",
		"payment_amount": 350000,
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	return envelope
}

func TestRegistrationController_Register_Success(t *testing.T) {
	svc := &fakeRegistrationService{
		result: &domain.RegistrationResult{
			Participant: &domain.Participant{ID: "p-1", BookingCode: "RITW25-483920114"},
			BookingCode: "RITW25-483920114",
			Message:     "Registration successful. Please complete payment.",
		},
	}
	c := NewRegistrationController(testLogger, svc, &fakeParticipantService{})

	rr := postJSON(t, c.Register, "http://test/api/participants", validRegisterBody())

	require.Equal(t, http.StatusCreated, rr.Code)
	envelope := decodeEnvelope(t, rr)
	assert.True(t, envelope.Success)
	assert.Equal(t, "Registration successful. Please complete payment.", envelope.Message)
	assert.Equal(t, "alice@example.com", svc.lastInput.Email)
	assert.Equal(t, 1992, svc.lastInput.BirthDate.Year())
}

func TestRegistrationController_Register_BadBirthDate(t *testing.T) {
	svc := &fakeRegistrationService{}
	c := NewRegistrationController(testLogger, svc, &fakeParticipantService{})

	body := validRegisterBody()
	body["birth_date"] = "14/03/1992"
	rr := postJSON(t, c.Register, "http://test/api/participants", body)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.False(t, decodeEnvelope(t, rr).Success)
}

func TestRegistrationController_Register_UnknownField(t *testing.T) {
	c := NewRegistrationController(testLogger, &fakeRegistrationService{}, &fakeParticipantService{})

	body := validRegisterBody()
	body["payment_status"] = "paid" // clients cannot set this
	rr := postJSON(t, c.Register, "http://test/api/participants", body)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRegistrationController_Register_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", domain.NewValidationError("missing required fields: email"), http.StatusBadRequest},
		{"closed", domain.ErrRegistrationClosed, http.StatusBadRequest},
		{"full", domain.ErrFullyBooked, http.StatusBadRequest},
		{"duplicate email", domain.ErrAlreadyRegistered, http.StatusBadRequest},
		{"event missing", domain.ErrNotFound, http.StatusNotFound},
		{"capacity race", domain.ErrCapacityRace, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewRegistrationController(testLogger, &fakeRegistrationService{err: tt.err}, &fakeParticipantService{})
			rr := postJSON(t, c.Register, "http://test/api/participants", validRegisterBody())

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr)
			assert.False(t, envelope.Success)
			assert.NotEmpty(t, envelope.Error)
		})
	}
}

func TestRegistrationController_GetByBookingCode(t *testing.T) {
	lookup := &fakeParticipantService{
		byCode: &domain.ParticipantWithEvent{
			Participant: &domain.Participant{ID: "p-1", BookingCode: "RITW25-483920114"},
			Event:       &domain.Event{ID: "ev-1", Title: "Rinjani Trail 25K"},
		},
	}
	c := NewRegistrationController(testLogger, &fakeRegistrationService{}, lookup)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/participants/code/{code}", c.GetByBookingCode)
	req := httptest.NewRequest(http.MethodGet, "http://test/api/participants/code/RITW25-483920114", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "RITW25-483920114", lookup.lastCode)
	assert.True(t, decodeEnvelope(t, rr).Success)
}

func TestRegistrationController_GetByBookingCode_NotFound(t *testing.T) {
	lookup := &fakeParticipantService{byCodeErr: domain.ErrNotFound}
	c := NewRegistrationController(testLogger, &fakeRegistrationService{}, lookup)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/participants/code/{code}", c.GetByBookingCode)
	req := httptest.NewRequest(http.MethodGet, "http://test/api/participants/code/RITW25-000000000", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
}
