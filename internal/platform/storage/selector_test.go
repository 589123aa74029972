package storage_test

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub-ke/eventhub/internal/adapter/repository/memory"
	"github.com/eventhub-ke/eventhub/internal/core/ports"
	"github.com/eventhub-ke/eventhub/internal/platform/config"
	"github.com/eventhub-ke/eventhub/internal/platform/storage"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestSelect_FallsBackToMock(t *testing.T) {
	ctx := context.Background()

	// No database and no Redis configured: the mock backend is bound and
	// seeded with the sample events.
	backend := storage.Select(ctx, config.Config{}, quietLogger())
	require.NotNil(t, backend)
	assert.Equal(t, storage.KindMock, backend.Kind)

	events, err := backend.Events.Find(ctx, ports.EventFilter{Organizer: memory.SeedOrganizer})
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestSelect_MockIsNotReseeded(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{}

	first := storage.Select(ctx, cfg, quietLogger())
	again := storage.Select(ctx, cfg, quietLogger())
	require.Equal(t, storage.KindMock, again.Kind)

	events, err := again.Events.Find(ctx, ports.EventFilter{Organizer: memory.SeedOrganizer})
	require.NoError(t, err)
	assert.Len(t, events, 3)

	// Both selections observe the same store.
	created, err := first.Events.FindOne(ctx, ports.EventFilter{Organizer: memory.SeedOrganizer})
	require.NoError(t, err)
	_, err = again.Events.FindByID(ctx, created.ID)
	assert.NoError(t, err)
}

func TestSelect_UnreachableBackendsSwallowed(t *testing.T) {
	ctx := context.Background()

	// Both candidates configured but unreachable: selection still succeeds.
	backend := storage.Select(ctx, config.Config{
		RedisAddr: "127.0.0.1:1", // nothing listens here
	}, quietLogger())
	require.NotNil(t, backend)
	assert.Equal(t, storage.KindMock, backend.Kind)
}
