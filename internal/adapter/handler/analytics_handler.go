package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eventhub-ke/eventhub/internal/core/services"
)

type AnalyticsHandler struct {
	analytics *services.AnalyticsService
}

func NewAnalyticsHandler(analytics *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Dashboard handles GET /api/analytics/dashboard.
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	dashboard, err := h.analytics.Dashboard(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

// Event handles GET /api/analytics/event/{eventId}.
func (h *AnalyticsHandler) Event(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	analytics, err := h.analytics.ForEvent(r.Context(), user.ID, chi.URLParam(r, "eventId"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}
