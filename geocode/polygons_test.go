// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanapph/hanap/cache"
	"github.com/hanapph/hanap/spatial"
)

func ringAround(center spatial.Point, half float64) spatial.Ring {
	// crude square, good enough for selection tests
	return spatial.Ring{
		{Lat: center.Lat - half, Lng: center.Lng - half},
		{Lat: center.Lat - half, Lng: center.Lng + half},
		{Lat: center.Lat + half, Lng: center.Lng + half},
		{Lat: center.Lat + half, Lng: center.Lng - half},
		{Lat: center.Lat - half, Lng: center.Lng - half},
	}
}

func TestPolygonStoreBoundary(t *testing.T) {
	search := boundarySearcher()
	store := NewPolygonStore(search, cache.NewMemory[Boundary](time.Hour))

	boundary, err := store.Boundary(context.Background(), "Sambag II", "Cebu City", "Cebu", nil)
	require.NoError(t, err)

	assert.Equal(t, "sambag ii|cebu city|cebu", boundary.Key)
	assert.True(t, boundary.Ring.Closed())
	assert.True(t, boundary.Contains(spatial.Point{Lat: 10.31, Lng: 123.89}))
	assert.False(t, boundary.Contains(spatial.Point{Lat: 14.59, Lng: 120.98}))

	// Second lookup is served from the cache.
	_, err = store.Boundary(context.Background(), "sambag ii", "CEBU CITY", "Cebu", nil)
	require.NoError(t, err)
	assert.Len(t, search.calls, 1)
}

func TestPolygonStoreAnchorBoundsSearch(t *testing.T) {
	var bounded bool

	search := &fakeSearcher{fn: func(_ string, opts SearchOptions) ([]Place, error) {
		bounded = opts.Bounded && opts.Viewbox != nil

		return nil, nil
	}}

	store := NewPolygonStore(search, cache.NewMemory[Boundary](time.Hour))
	anchor := spatial.Point{Lat: 10.31, Lng: 123.89}

	_, err := store.Boundary(context.Background(), "Sambag II", "Cebu City", "", &anchor)
	assert.ErrorIs(t, err, ErrPolygonUnavailable)
	assert.True(t, bounded)
}

func TestPolygonStorePrefersHintMatchedPlace(t *testing.T) {
	// Two admin boundaries named alike; the one whose attribution matches
	// the city hint wins even when listed second.
	mandaue := ringAround(spatial.Point{Lat: 10.33, Lng: 123.93}, 0.01)
	cebu := ringAround(spatial.Point{Lat: 10.31, Lng: 123.89}, 0.01)

	search := &fakeSearcher{fn: func(string, SearchOptions) ([]Place, error) {
		return []Place{
			{
				DisplayName: "Guadalupe, Mandaue City",
				Address:     PlaceAddress{City: "Mandaue City", State: "Cebu"},
				Rings:       []spatial.Ring{mandaue},
			},
			{
				DisplayName: "Guadalupe, Cebu City",
				Address:     PlaceAddress{City: "Cebu City", State: "Cebu"},
				Rings:       []spatial.Ring{cebu},
			},
		}, nil
	}}

	store := NewPolygonStore(search, cache.NewMemory[Boundary](time.Hour))

	boundary, err := store.Boundary(context.Background(), "Guadalupe", "Cebu City", "", nil)
	require.NoError(t, err)
	assert.True(t, boundary.Contains(spatial.Point{Lat: 10.31, Lng: 123.89}))
	assert.False(t, boundary.Contains(spatial.Point{Lat: 10.33, Lng: 123.93}))
}

func TestPolygonStoreLargestRingWins(t *testing.T) {
	small := ringAround(spatial.Point{Lat: 10.31, Lng: 123.89}, 0.001)
	large := ringAround(spatial.Point{Lat: 10.31, Lng: 123.89}, 0.02)

	search := &fakeSearcher{fn: func(string, SearchOptions) ([]Place, error) {
		return []Place{{
			DisplayName: "Sambag II, Cebu City",
			Rings:       []spatial.Ring{small, large},
		}}, nil
	}}

	store := NewPolygonStore(search, cache.NewMemory[Boundary](time.Hour))

	boundary, err := store.Boundary(context.Background(), "Sambag II", "", "", nil)
	require.NoError(t, err)

	// A point inside the large ring but outside the small one.
	assert.True(t, boundary.Contains(spatial.Point{Lat: 10.32, Lng: 123.9}))
}

func TestPolygonStoreDownsamplesLongRings(t *testing.T) {
	long := make(spatial.Ring, 0, 1001)
	for i := 0; i < 1000; i++ {
		long = append(long, spatial.Point{
			Lat: 10.31 + 0.01*float64(i%2),
			Lng: 123.89 + 0.00001*float64(i),
		})
	}

	long = long.Close()

	search := &fakeSearcher{fn: func(string, SearchOptions) ([]Place, error) {
		return []Place{{DisplayName: "long", Rings: []spatial.Ring{long}}}, nil
	}}

	store := NewPolygonStore(search, cache.NewMemory[Boundary](time.Hour))

	boundary, err := store.Boundary(context.Background(), "Talamban", "", "", nil)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(boundary.Ring), DefaultMaxRingVertices+1)
	assert.True(t, boundary.Ring.Closed())
}

func TestPolygonStoreUnavailable(t *testing.T) {
	tests := []struct {
		name   string
		search *fakeSearcher
	}{
		{"no results", &fakeSearcher{}},
		{"search error", &fakeSearcher{fn: func(string, SearchOptions) ([]Place, error) {
			return nil, errors.New("connection refused")
		}}},
		{"no geometry", &fakeSearcher{fn: func(string, SearchOptions) ([]Place, error) {
			return []Place{{DisplayName: "point only"}}, nil
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewPolygonStore(tt.search, cache.NewMemory[Boundary](time.Hour))

			_, err := store.Boundary(context.Background(), "Sambag II", "Cebu City", "", nil)
			assert.ErrorIs(t, err, ErrPolygonUnavailable)
		})
	}
}

func TestPolygonStoreEmptyBarangay(t *testing.T) {
	search := &fakeSearcher{}
	store := NewPolygonStore(search, cache.NewMemory[Boundary](time.Hour))

	_, err := store.Boundary(context.Background(), "  ", "Cebu City", "Cebu", nil)
	assert.ErrorIs(t, err, ErrPolygonUnavailable)
	assert.Empty(t, search.calls, "no network call without a barangay")
}
