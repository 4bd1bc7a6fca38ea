// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanapph/hanap/spatial"
)

func newTestGoogle(handler http.HandlerFunc) (*GoogleGeocoder, *httptest.Server) {
	srv := httptest.NewServer(handler)

	g := NewGoogleGeocoder("test-key")
	g.baseURL = srv.URL

	return g, srv
}

func TestGoogleGeocode(t *testing.T) {
	var seen url.Values

	g, srv := newTestGoogle(func(w http.ResponseWriter, r *http.Request) {
		seen = r.URL.Query()

		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"geometry": {
					"location": {"lat": 10.3157, "lng": 123.8854},
					"location_type": "ROOFTOP"
				},
				"formatted_address": "Osmena Blvd, Cebu City, 6000 Cebu, Philippines"
			}]
		}`))
	})
	defer srv.Close()

	box := spatial.NewBoundingBox(spatial.Point{Lat: 10.31, Lng: 123.89}, 10000)

	place, err := g.Geocode(context.Background(), "Osmena Boulevard, Cebu City", &box)
	require.NoError(t, err)

	assert.Equal(t, "test-key", seen.Get("key"))
	assert.Equal(t, "ph", seen.Get("region"))
	assert.NotEmpty(t, seen.Get("bounds"))

	assert.InDelta(t, 10.3157, place.Point.Lat, 1e-9)
	assert.InDelta(t, 123.8854, place.Point.Lng, 1e-9)
	assert.Equal(t, "google", place.Class)
	assert.Equal(t, "ROOFTOP", place.Type)
}

func TestGoogleGeocodeZeroResults(t *testing.T) {
	g, srv := newTestGoogle(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	})
	defer srv.Close()

	_, err := g.Geocode(context.Background(), "nowhere", nil)
	require.Error(t, err)

	var perr *ProviderError

	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ErrorTypeNotFound, perr.Type)
}

func TestGoogleGeocodeBadStatus(t *testing.T) {
	g, srv := newTestGoogle(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "OVER_QUERY_LIMIT", "results": [{}]}`))
	})
	defer srv.Close()

	_, err := g.Geocode(context.Background(), "anything", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OVER_QUERY_LIMIT")
}
