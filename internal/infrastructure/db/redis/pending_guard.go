package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PendingGuard marks in-flight auth flows across every replica sharing the
// Redis instance. The key expires on its own if a replica dies mid-flow.
// Key format: auth-pending:<session_id>
type PendingGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPendingGuard wraps client. ttl should exceed the simulated auth latency.
func NewPendingGuard(client *redis.Client, ttl time.Duration) *PendingGuard {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &PendingGuard{client: client, ttl: ttl}
}

// Acquire reports false when a flow is already pending for sessionID.
func (g *PendingGuard) Acquire(ctx context.Context, sessionID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, pendingKey(sessionID), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("pending guard acquire: %w", err)
	}
	return ok, nil
}

func (g *PendingGuard) Release(ctx context.Context, sessionID string) error {
	if err := g.client.Del(ctx, pendingKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("pending guard release: %w", err)
	}
	return nil
}

func pendingKey(sessionID string) string {
	return "auth-pending:" + sessionID
}
