// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Redis stores JSON-encoded values in a shared Redis instance so several
// resolver processes can reuse each other's lookups. Expiry is delegated to
// Redis; a decode or transport failure degrades to a cache miss.
type Redis[V any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis creates a Redis-backed store. Keys are namespaced with prefix.
func NewRedis[V any](client *redis.Client, prefix string, ttl time.Duration) *Redis[V] {
	return &Redis[V]{client: client, prefix: prefix, ttl: ttl}
}

func (r *Redis[V]) key(key string) string {
	return r.prefix + ":" + key
}

// Get fetches and decodes the value for key.
func (r *Redis[V]) Get(ctx context.Context, key string) (V, bool) {
	var zero V

	raw, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("redis cache read failed")
		}

		return zero, false
	}

	var value V
	if err := json.Unmarshal(raw, &value); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis cache entry undecodable")

		return zero, false
	}

	return value, true
}

// Set encodes and stores value under key with the store's TTL. Failures are
// logged and swallowed: the cache is advisory.
func (r *Redis[V]) Set(ctx context.Context, key string, value V) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis cache entry unencodable")

		return
	}

	if err := r.client.Set(ctx, r.key(key), raw, r.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis cache write failed")
	}
}
