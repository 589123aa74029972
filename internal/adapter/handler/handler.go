// Package handler translates HTTP requests to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eventhub-ke/eventhub/internal/core/domain"
)

// ErrorResponse is the JSON error envelope. Code is set on authentication
// failures so clients can decide whether to force re-authentication.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Message: msg})
}

func writeAuthError(w http.ResponseWriter, msg, code string) {
	writeJSON(w, http.StatusUnauthorized, ErrorResponse{Message: msg, Code: code})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20)
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeDomainError maps the error taxonomy onto HTTP statuses. Errors outside
// the taxonomy become a generic 500.
func writeDomainError(w http.ResponseWriter, err error) {
	var inventory *domain.InsufficientInventoryError
	var partial *domain.PartialBookingError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.As(err, &inventory):
		writeError(w, http.StatusBadRequest, inventory.Error())
	case errors.Is(err, domain.ErrPaymentFailed):
		writeError(w, http.StatusBadRequest, "Payment failed. Please try again.")
	case errors.Is(err, domain.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		writeError(w, http.StatusConflict, "User already exists with this email")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "Not authorized to modify this resource")
	case errors.As(err, &partial):
		writeError(w, http.StatusInternalServerError,
			"Payment succeeded and your ticket was recorded, but it could not be added to your purchase history. Contact support with ticket "+partial.TicketNumber)
	default:
		writeError(w, http.StatusInternalServerError, "Server error")
	}
}

// HealthCheck handles GET /api/health.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK", "message": "Event Management API is running"})
}
