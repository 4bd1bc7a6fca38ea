// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

// Package cache provides short-lived TTL key-value stores. The resolver owns
// four independent instances (geocode results, polygons, POI counts, dataset
// pages), each with its own TTL. Entries are evicted lazily on read; there is
// no background sweep.
package cache

import (
	"context"
	"sync"
	"time"
)

// Store is the read/write surface shared by the memory and Redis backends.
type Store[V any] interface {
	Get(ctx context.Context, key string) (V, bool)
	Set(ctx context.Context, key string, value V)
}

type entry[V any] struct {
	value     V
	createdAt time.Time
	ttl       time.Duration
}

func (e entry[V]) expired(now time.Time) bool {
	return now.Sub(e.createdAt) >= e.ttl
}

// Memory is an in-process TTL store. Safe for concurrent use. Values are
// never mutated after Set; callers overwrite, they do not patch in place.
type Memory[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]
	ttl     time.Duration

	now func() time.Time // test hook
}

// NewMemory creates a memory store whose entries live for ttl.
func NewMemory[V any](ttl time.Duration) *Memory[V] {
	return &Memory[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the live value for key. An expired entry is deleted and
// reported as a miss.
func (m *Memory[V]) Get(_ context.Context, key string) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		var zero V

		return zero, false
	}

	if e.expired(m.now()) {
		delete(m.entries, key)

		var zero V

		return zero, false
	}

	return e.value, true
}

// Set stores value under key, resetting its lifetime. Concurrent writers for
// the same key race benignly: last writer wins, and equivalent values are
// expected for equal keys.
func (m *Memory[V]) Set(_ context.Context, key string, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry[V]{value: value, createdAt: m.now(), ttl: m.ttl}
}

// Len reports the number of stored entries, including not-yet-collected
// expired ones.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}
