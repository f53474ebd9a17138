package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"islandrides-backend/internal/errs"
	"islandrides-backend/internal/logger"
)

// ErrorResponse is the standard API error payload.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Error codes surfaced in ErrorResponse.Error.
const (
	codeNotFound        = "not_found"
	codeBadRequest      = "bad_request"
	codeValidation      = "validation_error"
	codeConflict        = "conflict"
	codePaymentDeclined = "payment_declined"
	codeInternalError   = "internal_error"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// writeServiceError maps service layer errors onto HTTP statuses.
// Unknown errors are logged and reported as a plain 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	verr, isValidation := errs.AsValidation(err)
	switch {
	case isValidation:
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   codeValidation,
			Message: "Validation failed",
			Fields:  verr.Fields,
		})
	case errors.Is(err, errs.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "Resource not found")
	case errors.Is(err, errs.ErrInvalidRange):
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
	case errors.Is(err, errs.ErrAvailabilityConflict):
		writeError(w, http.StatusConflict, codeConflict, "Vehicle is not available for the selected dates")
	case errors.Is(err, errs.ErrInvalidTransition):
		writeError(w, http.StatusConflict, codeConflict, errs.ErrInvalidTransition.Error())
	case errors.Is(err, errs.ErrPaymentDeclined):
		writeError(w, http.StatusPaymentRequired, codePaymentDeclined, "Payment was declined")
	default:
		logger.ErrorContext(r.Context(), "Unhandled service error", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, codeInternalError, "An unexpected error occurred")
	}
}
