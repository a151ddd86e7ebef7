package helpers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"trailreg/internal/domain"
)

// APIResponse is the standardized envelope for all API responses.
// On success: Success is true and Data carries the payload. On error:
// Success is false and Error carries the detail.
// swagger:model APIResponse
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// WriteJSONSuccess sets Content-Type to application/json, writes statusCode,
// and encodes a successful APIResponse with the given message and data.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Success: true, Message: message, Data: data})
}

// WriteJSONError sets Content-Type to application/json, writes statusCode,
// and encodes a failed APIResponse carrying the error detail.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Success: false, Message: message, Error: message})
}

// WriteDomainError maps a service-layer error to an HTTP response. Unknown
// errors are logged and reported as a generic 500.
func WriteDomainError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		WriteJSONError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, domain.ErrPageOutOfRange),
		errors.Is(err, domain.ErrRegistrationClosed),
		errors.Is(err, domain.ErrFullyBooked),
		errors.Is(err, domain.ErrAlreadyRegistered):
		WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteJSONError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrCapacityRace):
		WriteJSONError(w, http.StatusInternalServerError, err.Error())
	default:
		logger.Error("unhandled error", "error", err)
		WriteJSONError(w, http.StatusInternalServerError, "internal server error")
	}
}

// Validator is implemented by request DTOs that support validation.
// Validate returns a slice of error messages; nil or empty means valid.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate decodes the request body into dest (with DisallowUnknownFields)
// and, if dest implements Validator, runs Validate(). On decode or validation failure
// it writes a 400 JSON error and returns false; otherwise returns true.
// Callers should return immediately when DecodeAndValidate returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	if v, ok := dest.(Validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			WriteJSONError(w, http.StatusBadRequest, "validation failed: "+strings.Join(errs, "; "))
			return false
		}
	}
	return true
}
