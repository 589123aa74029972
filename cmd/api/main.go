package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eventhub-ke/eventhub/internal/adapter/handler"
	"github.com/eventhub-ke/eventhub/internal/adapter/payment"
	"github.com/eventhub-ke/eventhub/internal/core/services"
	"github.com/eventhub-ke/eventhub/internal/platform/config"
	"github.com/eventhub-ke/eventhub/internal/platform/storage"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("load configuration")
	}

	ctx := context.Background()
	backend := storage.Select(ctx, cfg, log)

	paymentProvider := payment.NewSimulator(cfg.PaymentDelay, cfg.PaymentSuccessRate)

	authService := services.NewAuthService(backend.Users, cfg.JWTSecret, cfg.TokenTTL)
	eventService := services.NewEventService(backend.Events)
	bookingService := services.NewBookingService(backend.Events, backend.Users, paymentProvider)
	analyticsService := services.NewAnalyticsService(backend.Events)

	router := handler.NewRouter(log, authService, eventService, bookingService, analyticsService)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server startup failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}
	log.Info("server exiting")
}
