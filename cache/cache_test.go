// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryHitBeforeTTL(t *testing.T) {
	ctx := context.Background()
	store := NewMemory[string](time.Minute)

	store.Set(ctx, "k", "v")

	got, ok := store.Get(ctx, "k")
	if !ok || got != "v" {
		t.Errorf("Get = (%q, %v), want (v, true)", got, ok)
	}
}

func TestMemoryMissAfterTTL(t *testing.T) {
	ctx := context.Background()
	store := NewMemory[string](time.Minute)

	current := time.Now()
	store.now = func() time.Time { return current }

	store.Set(ctx, "k", "v")

	current = current.Add(time.Minute + time.Second)

	if _, ok := store.Get(ctx, "k"); ok {
		t.Error("expected a miss after ttl elapsed")
	}

	if store.Len() != 0 {
		t.Errorf("expired entry should be evicted on read, Len = %d", store.Len())
	}
}

func TestMemoryMissingKey(t *testing.T) {
	store := NewMemory[int](time.Minute)

	if v, ok := store.Get(context.Background(), "nope"); ok || v != 0 {
		t.Errorf("Get = (%d, %v), want zero miss", v, ok)
	}
}

func TestMemorySetResetsLifetime(t *testing.T) {
	ctx := context.Background()
	store := NewMemory[string](time.Minute)

	current := time.Now()
	store.now = func() time.Time { return current }

	store.Set(ctx, "k", "old")

	current = current.Add(45 * time.Second)
	store.Set(ctx, "k", "new")

	current = current.Add(30 * time.Second)

	got, ok := store.Get(ctx, "k")
	if !ok || got != "new" {
		t.Errorf("Get = (%q, %v), want (new, true)", got, ok)
	}
}
