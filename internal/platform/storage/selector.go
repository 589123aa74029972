// Package storage selects the persistence backend at process start and binds
// the repository handles for the rest of the process lifetime.
package storage

import (
	"context"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/eventhub-ke/eventhub/internal/adapter/repository/memory"
	"github.com/eventhub-ke/eventhub/internal/adapter/repository/postgres"
	"github.com/eventhub-ke/eventhub/internal/adapter/repository/redisdoc"
	"github.com/eventhub-ke/eventhub/internal/core/ports"
	"github.com/eventhub-ke/eventhub/internal/platform/config"
	"github.com/eventhub-ke/eventhub/internal/platform/database"
)

// Kind identifies which backend is active.
type Kind string

const (
	KindPrimary   Kind = "primary"
	KindSecondary Kind = "secondary"
	KindMock      Kind = "mock"
)

// Backend is the bound repository set. It is constructed once in main and
// passed by reference to everything that needs persistence.
type Backend struct {
	Kind   Kind
	Events ports.EventRepository
	Users  ports.UserRepository
}

// Select probes the candidate backends in priority order: PostgreSQL, then
// the Redis document store, then the in-memory mock. Probe failures are
// logged and swallowed; the mock cannot fail, so Select always succeeds.
func Select(ctx context.Context, cfg config.Config, log *logrus.Logger) *Backend {
	if backend := tryPrimary(ctx, cfg, log); backend != nil {
		return backend
	}
	if backend := trySecondary(ctx, cfg, log); backend != nil {
		return backend
	}
	return bindMock(ctx, log)
}

func tryPrimary(ctx context.Context, cfg config.Config, log *logrus.Logger) *Backend {
	if cfg.DatabaseURL == "" {
		return nil
	}

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Warn("primary database unreachable, trying next backend")
		return nil
	}
	if err := postgres.InitializeSchema(ctx, db); err != nil {
		log.WithError(err).Warn("primary database schema initialization failed, trying next backend")
		db.Close()
		return nil
	}

	log.WithField("backend", KindPrimary).Info("storage backend selected")
	return &Backend{
		Kind:   KindPrimary,
		Events: postgres.NewEventRepository(db),
		Users:  postgres.NewUserRepository(db),
	}
}

func trySecondary(ctx context.Context, cfg config.Config, log *logrus.Logger) *Backend {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := redisdoc.Probe(ctx, client); err != nil {
		log.WithError(err).Warn("secondary document store unreachable, trying next backend")
		client.Close()
		return nil
	}

	log.WithField("backend", KindSecondary).Info("storage backend selected")
	return &Backend{
		Kind:   KindSecondary,
		Events: redisdoc.NewEventRepository(client),
		Users:  redisdoc.NewUserRepository(client),
	}
}

func bindMock(ctx context.Context, log *logrus.Logger) *Backend {
	store := memory.Shared()
	if err := memory.Seed(ctx, store); err != nil {
		// Seeding a map cannot realistically fail; log and serve empty.
		log.WithError(err).Warn("mock backend seeding failed")
	}

	log.WithField("backend", KindMock).Info("storage backend selected (no database configured)")
	return &Backend{
		Kind:   KindMock,
		Events: memory.NewEventRepository(store),
		Users:  memory.NewUserRepository(store),
	}
}
