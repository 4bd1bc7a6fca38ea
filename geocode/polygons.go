// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hanapph/hanap/address"
	"github.com/hanapph/hanap/cache"
	"github.com/hanapph/hanap/spatial"
)

const (
	// DefaultMaxRingVertices caps boundary rings; geometric fidelity is
	// traded for payload size and client render cost.
	DefaultMaxRingVertices = 240

	// half-width of the acquisition viewbox around the anchor, meters
	polygonSearchHalfWidth = 10000
)

// PolygonStore fetches, simplifies and caches administrative boundary
// polygons, and answers containment and centroid queries through the
// Boundary values it returns.
type PolygonStore struct {
	search      AddressSearcher
	store       cache.Store[Boundary]
	maxVertices int
}

// NewPolygonStore creates a polygon store on top of an address searcher.
func NewPolygonStore(search AddressSearcher, store cache.Store[Boundary]) *PolygonStore {
	return &PolygonStore{
		search:      search,
		store:       store,
		maxVertices: DefaultMaxRingVertices,
	}
}

// Boundary returns the boundary polygon for a barangay, searching inside a
// viewbox around the anchor when one is given. Results are cached under the
// composite barangay|city|province key.
func (s *PolygonStore) Boundary(ctx context.Context, barangay, city, province string, anchor *spatial.Point) (*Boundary, error) {
	if strings.TrimSpace(barangay) == "" {
		return nil, ErrPolygonUnavailable
	}

	key := boundaryKey(barangay, city, province)

	if cached, ok := s.store.Get(ctx, key); ok {
		return &cached, nil
	}

	query := joinNonEmpty(", ", barangay, city, province, "Philippines")

	opts := SearchOptions{
		IncludeGeometry: true,
		Limit:           5,
	}

	if anchor != nil {
		box := spatial.NewBoundingBox(*anchor, polygonSearchHalfWidth)
		opts.Viewbox = &box
		opts.Bounded = true
	}

	places, err := s.search.Search(ctx, query, opts)
	if err != nil {
		log.Warn().Err(err).Str("barangay", barangay).Msg("boundary search failed")

		return nil, fmt.Errorf("%w: %w", ErrPolygonUnavailable, err)
	}

	place, ok := pickBoundaryPlace(places, city, province)
	if !ok {
		return nil, ErrPolygonUnavailable
	}

	ring := spatial.LargestRing(place.Rings)
	if len(ring) < 3 {
		return nil, ErrPolygonUnavailable
	}

	ring = ring.Downsample(s.maxVertices)

	boundary := Boundary{
		Key:      key,
		Ring:     ring,
		Centroid: ring.Centroid(),
	}

	s.store.Set(ctx, key, boundary)

	return &boundary, nil
}

// pickBoundaryPlace prefers the candidate whose address attributes loosely
// match the city or province hints, falling back to the first candidate with
// usable geometry.
func pickBoundaryPlace(places []Place, city, province string) (Place, bool) {
	var (
		first      Place
		haveFirst  bool
		matchHints = city != "" || province != ""
	)

	for _, place := range places {
		if len(place.Rings) == 0 {
			continue
		}

		if !haveFirst {
			first, haveFirst = place, true
		}

		if !matchHints {
			break
		}

		if looseMatch(place.Address.locality(), city) ||
			looseMatch(place.Address.State, province) {
			return place, true
		}
	}

	return first, haveFirst
}

// looseMatch is a case-insensitive substring match in either direction.
func looseMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}

	ca, cb := address.CanonicalLoose(a), address.CanonicalLoose(b)

	return strings.Contains(ca, cb) || strings.Contains(cb, ca)
}

func boundaryKey(parts ...string) string {
	keyed := make([]string, 0, len(parts))
	for _, p := range parts {
		keyed = append(keyed, address.CanonicalLoose(p))
	}

	return strings.Join(keyed, "|")
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}

	return strings.Join(kept, sep)
}
