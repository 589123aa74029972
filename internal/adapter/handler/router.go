package handler

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/eventhub-ke/eventhub/internal/core/services"
)

// NewRouter builds the full API surface.
func NewRouter(
	log *logrus.Logger,
	auth *services.AuthService,
	events *services.EventService,
	bookings *services.BookingService,
	analytics *services.AnalyticsService,
) chi.Router {
	authHandler := NewAuthHandler(auth)
	eventHandler := NewEventHandler(events)
	paymentHandler := NewPaymentHandler(bookings)
	analyticsHandler := NewAnalyticsHandler(analytics)

	protect := Protect(auth)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(CORS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", HealthCheck)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.With(protect).Get("/profile", authHandler.Profile)
			r.With(protect).Get("/tickets", authHandler.Tickets)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", eventHandler.List)
			r.With(protect, OrganizerOnly).Post("/", eventHandler.Create)
			// Registered before /{id} so the literal path wins.
			r.With(protect, OrganizerOnly).Get("/my-events", eventHandler.MyEvents)
			r.Get("/{id}", eventHandler.Get)
			r.With(protect, OrganizerOnly).Put("/{id}", eventHandler.Update)
			r.With(protect, OrganizerOnly).Delete("/{id}", eventHandler.Delete)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Use(protect)
			r.Post("/process", paymentHandler.Process)
			r.Get("/history", paymentHandler.History)
			r.Get("/ticket/{ticketNumber}", paymentHandler.Ticket)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Use(protect, OrganizerOnly)
			r.Get("/dashboard", analyticsHandler.Dashboard)
			r.Get("/event/{eventId}", analyticsHandler.Event)
		})
	})

	return r
}
