// Package dedup suppresses FIX messages a session has already processed,
// using Redis SETNX as the atomic "claim this key once" primitive, the
// same primitive the teacher engine's cache layer exposed for distributed
// locking.
package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisDeduplicator claims session-scoped idempotency keys (cmd/fixgateway
// passes "<session ID>:<MsgSeqNum>") in Redis with a bounded TTL, so a
// replayed or duplicated TCP segment never reaches a session handler twice.
type RedisDeduplicator struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisDeduplicator wraps an existing Redis client. ttl bounds how long
// a claimed key is remembered; zero defaults to 24 hours, comfortably
// longer than any FIX session's resend window.
func NewRedisDeduplicator(client *redis.Client, prefix string, ttl time.Duration) *RedisDeduplicator {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &RedisDeduplicator{client: client, prefix: prefix, ttl: ttl}
}

// SeenBefore atomically claims key; it returns true if the key was already
// claimed by an earlier call (i.e. this message is a duplicate).
func (d *RedisDeduplicator) SeenBefore(ctx context.Context, key string) (bool, error) {
	claimed, err := d.client.SetNX(ctx, d.makeKey(key), 1, d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedup: setnx %q: %w", key, err)
	}
	return !claimed, nil
}

func (d *RedisDeduplicator) makeKey(key string) string {
	if d.prefix == "" {
		return "fixdedup:" + key
	}
	return d.prefix + ":" + key
}
