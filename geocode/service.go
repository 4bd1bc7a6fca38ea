// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"strings"

	"github.com/uber/h3-go/v4"
	"golang.org/x/sync/singleflight"

	"github.com/hanapph/hanap/address"
	"github.com/hanapph/hanap/cache"
)

// anchorCellResolution quantizes the anchor for cache keys. Resolution 7
// cells average ~5 km2, so nearby anchors share one cached resolution while
// distant ones do not.
const anchorCellResolution = 7

// Service is the resolution facade: validation, result caching and in-flight
// deduplication in front of the chain.
type Service struct {
	resolver *Resolver
	results  cache.Store[Result]
	group    singleflight.Group
}

// NewService wraps resolver with the given result cache.
func NewService(resolver *Resolver, results cache.Store[Result]) *Service {
	return &Service{resolver: resolver, results: results}
}

// Resolve answers query from cache when possible; otherwise exactly one
// chain run is in flight per cache key, and its result is shared.
func (s *Service) Resolve(ctx context.Context, query Query) (*Result, error) {
	if strings.TrimSpace(query.RawText) == "" && query.Hints.Empty() {
		return nil, ErrInvalidInput
	}

	key := resolveKey(query)

	if cached, ok := s.results.Get(ctx, key); ok {
		return &cached, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		// The flight outlives any single caller: a caller abandoning its
		// request must not cancel provider calls another caller shares.
		// Provider clients carry their own timeouts.
		flightCtx := context.WithoutCancel(ctx)

		result, err := s.resolver.Resolve(flightCtx, query)
		if err != nil {
			return nil, err
		}

		s.results.Set(flightCtx, key, *result)

		return result, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Result), nil
}

// Boundary exposes the underlying polygon store, for callers that want the
// barangay outline without resolving an address.
func (s *Service) Boundary(ctx context.Context, barangay, city, province string) (*Boundary, error) {
	return s.resolver.polygons.Boundary(ctx, barangay, city, province, nil)
}

// resolveKey is stable across whitespace, case and diacritic variations of
// the same query. The anchor contributes its containing cell, not its exact
// coordinates.
func resolveKey(query Query) string {
	parts := []string{
		address.CanonicalLoose(query.RawText),
		address.CanonicalLoose(query.Hints.Street),
		address.CanonicalLoose(query.Hints.Vicinity),
		address.CanonicalLoose(query.Hints.Barangay),
		address.CanonicalLoose(query.Hints.City),
		address.CanonicalLoose(query.Hints.Province),
	}

	if query.Anchor != nil {
		cell, err := h3.LatLngToCell(h3.LatLng{Lat: query.Anchor.Lat, Lng: query.Anchor.Lng}, anchorCellResolution)
		if err == nil {
			parts = append(parts, cell.String())
		}
	}

	return strings.Join(parts, "|")
}
