package redisdoc

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const probeKey = "eventhub:connection-test"

// Probe verifies the store is usable by round-tripping a sentinel document:
// write, read back, delete. Any failure means the backend selector should
// move on to the next candidate.
func Probe(ctx context.Context, client *redis.Client) error {
	if err := client.Set(ctx, probeKey, "ok", 0).Err(); err != nil {
		return fmt.Errorf("probe write: %w", err)
	}
	if _, err := client.Get(ctx, probeKey).Result(); err != nil {
		return fmt.Errorf("probe read: %w", err)
	}
	if err := client.Del(ctx, probeKey).Err(); err != nil {
		return fmt.Errorf("probe delete: %w", err)
	}
	return nil
}
