package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eventhub-ke/eventhub/internal/core/services"
)

type PaymentHandler struct {
	bookings *services.BookingService
}

func NewPaymentHandler(bookings *services.BookingService) *PaymentHandler {
	return &PaymentHandler{bookings: bookings}
}

// Process handles POST /api/payments/process: the ticket purchase flow.
func (h *PaymentHandler) Process(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	var req services.PurchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.UserID = user.ID

	confirmation, err := h.bookings.Purchase(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Payment successful",
		"ticket":  confirmation,
	})
}

// History handles GET /api/payments/history: the caller's tickets in
// purchase order.
func (h *PaymentHandler) History(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	tickets, err := h.bookings.History(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tickets)
}

// Ticket handles GET /api/payments/ticket/{ticketNumber}: a plain-text
// receipt rendering, served as an attachment.
func (h *PaymentHandler) Ticket(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	ticketNumber := chi.URLParam(r, "ticketNumber")

	receipt, err := h.bookings.Receipt(r.Context(), user.ID, ticketNumber)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Disposition", "attachment; filename="+ticketNumber+".txt")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(receipt))
}
