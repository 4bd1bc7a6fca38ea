// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	apikeys "cloud.google.com/go/apikeys/apiv2"
	"cloud.google.com/go/apikeys/apiv2/apikeyspb"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/iterator"

	"github.com/hanapph/hanap/spatial"
)

const googleTimeout = 8 * time.Second

// GoogleGeocoder is the optional commercial provider, enabled only when an
// API key is available. Its results go through the same polygon containment
// check as organic-data results.
type GoogleGeocoder struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGoogleGeocoder creates a Google Maps geocoder.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com/maps/api/geocode/json",
		httpClient: &http.Client{
			Timeout: googleTimeout,
		},
	}
}

// GoogleAPIKeyFromADC retrieves the Maps API key through Application Default
// Credentials when it is not configured in the environment.
func GoogleAPIKeyFromADC(ctx context.Context, displayName string) (string, error) {
	creds, err := google.FindDefaultCredentials(ctx, "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return "", fmt.Errorf("finding default credentials: %w", err)
	}

	if creds.ProjectID == "" {
		return "", errors.New("no project ID in default credentials")
	}

	client, err := apikeys.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("creating apikeys client: %w", err)
	}
	defer client.Close()

	it := client.ListKeys(ctx, &apikeyspb.ListKeysRequest{
		Parent: fmt.Sprintf("projects/%s/locations/global", creds.ProjectID),
	})

	for {
		key, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}

		if err != nil {
			return "", fmt.Errorf("listing keys: %w", err)
		}

		if key.DisplayName != displayName {
			continue
		}

		// ListKeys redacts KeyString; GetKeyString returns the secret.
		resp, err := client.GetKeyString(ctx, &apikeyspb.GetKeyStringRequest{Name: key.Name})
		if err != nil {
			return "", fmt.Errorf("getting key string: %w", err)
		}

		if resp.KeyString == "" {
			return "", fmt.Errorf("key %q found but its secret is empty", displayName)
		}

		return resp.KeyString, nil
	}

	return "", fmt.Errorf("key %q not found in project %s", displayName, creds.ProjectID)
}

type googleMapsResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
			LocationType string `json:"location_type"`
		} `json:"geometry"`
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
	Status string `json:"status"`
}

// Geocode resolves a free-text query, biased to the Philippines and
// optionally to a bounding box.
func (g *GoogleGeocoder) Geocode(ctx context.Context, query string, box *spatial.BoundingBox) (*Place, error) {
	ctx, cancel := context.WithTimeout(ctx, googleTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("address", query)
	params.Set("key", g.apiKey)
	params.Set("region", "ph")

	if box != nil {
		params.Set("bounds", fmt.Sprintf("%f,%f|%f,%f",
			box.MinLat, box.MinLng, box.MaxLat, box.MaxLng))
	}

	reqURL := g.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating google maps request: %w", err)
	}

	start := time.Now()

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google maps request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google maps geocode: %w", ClassifyHTTPStatus(resp.StatusCode))
	}

	var gmResp googleMapsResponse
	if err := json.NewDecoder(resp.Body).Decode(&gmResp); err != nil {
		return nil, fmt.Errorf("decoding google maps response: %w", err)
	}

	log.Debug().
		Str("provider", "google_maps").
		Str("query", query).
		Str("status", gmResp.Status).
		Dur("elapsed", time.Since(start)).
		Msg("address search")

	if gmResp.Status == "ZERO_RESULTS" || len(gmResp.Results) == 0 {
		return nil, &ProviderError{Type: ErrorTypeNotFound, Message: "no results for " + query}
	}

	if gmResp.Status != "OK" {
		return nil, &ProviderError{Type: ErrorTypeUnknown, Message: "google maps status " + gmResp.Status}
	}

	result := gmResp.Results[0]

	return &Place{
		Point: spatial.Point{
			Lat: result.Geometry.Location.Lat,
			Lng: result.Geometry.Location.Lng,
		},
		DisplayName: result.FormattedAddress,
		Class:       "google",
		Type:        result.Geometry.LocationType,
	}, nil
}
