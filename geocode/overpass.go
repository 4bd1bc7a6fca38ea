// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/hanapph/hanap/spatial"
)

const (
	defaultOverpassURL = "https://overpass-api.de/api/interpreter"

	// Overpass evaluates the query server-side; give it headroom beyond the
	// in-query timeout.
	overpassTimeout = 18 * time.Second

	// maximum features requested per query
	overpassLimit = 60
)

// OverpassClient is a FeatureQuerier backed by the Overpass API.
type OverpassClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewOverpass creates an Overpass client. An empty baseURL selects the
// public overpass-api.de instance.
func NewOverpass(baseURL, userAgent string) *OverpassClient {
	if baseURL == "" {
		baseURL = defaultOverpassURL
	}

	return &OverpassClient{
		baseURL:    baseURL,
		httpClient: providerClient(overpassTimeout, userAgent),
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// FeaturesInPolygon returns named ways and nodes inside the ring.
func (c *OverpassClient) FeaturesInPolygon(ctx context.Context, ring spatial.Ring) ([]Feature, error) {
	if len(ring) < 3 {
		return nil, &ProviderError{Type: ErrorTypeInvalidRequest, Message: "degenerate polygon"}
	}

	poly := polyFilter(ring)
	query := fmt.Sprintf(`
		[out:json][timeout:15];
		(
			way["name"](poly:"%s");
			node["name"](poly:"%s");
		);
		out center %d;
	`, poly, poly, overpassLimit)

	return c.run(ctx, query)
}

// FeaturesNear returns named ways and nodes within radius meters of center.
func (c *OverpassClient) FeaturesNear(ctx context.Context, center spatial.Point, radius float64) ([]Feature, error) {
	query := fmt.Sprintf(`
		[out:json][timeout:15];
		(
			way["name"](around:%f,%f,%f);
			node["name"](around:%f,%f,%f);
		);
		out center %d;
	`, radius, center.Lat, center.Lng, radius, center.Lat, center.Lng, overpassLimit)

	return c.run(ctx, query)
}

// polyFilter renders the ring as the lat-lng pair list Overpass expects. The
// closing vertex is redundant for Overpass and omitted.
func polyFilter(ring spatial.Ring) string {
	n := len(ring)
	if ring.Closed() {
		n--
	}

	parts := make([]string, 0, n)
	for _, p := range ring[:n] {
		parts = append(parts, fmt.Sprintf("%f %f", p.Lat, p.Lng))
	}

	return strings.Join(parts, " ")
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type   string            `json:"type"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *overpassCenter   `json:"center,omitempty"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// kindTags are checked in order to classify a feature.
var kindTags = []string{"highway", "amenity", "shop", "leisure", "building"}

func (c *OverpassClient) run(ctx context.Context, query string) ([]Feature, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for overpass rate limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, overpassTimeout)
	defer cancel()

	body := url.Values{"data": {query}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating overpass request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass query: %w", ClassifyHTTPStatus(resp.StatusCode))
	}

	var decoded overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding overpass response: %w", err)
	}

	log.Debug().
		Str("provider", "overpass").
		Int("results", len(decoded.Elements)).
		Dur("elapsed", time.Since(start)).
		Msg("feature query")

	features := make([]Feature, 0, len(decoded.Elements))

	for _, el := range decoded.Elements {
		name := el.Tags["name"]
		if name == "" {
			continue
		}

		point := spatial.Point{Lat: el.Lat, Lng: el.Lon}
		if el.Type == "way" {
			if el.Center == nil {
				continue
			}

			point = spatial.Point{Lat: el.Center.Lat, Lng: el.Center.Lon}
		}

		kind := ""

		for _, tag := range kindTags {
			if v := el.Tags[tag]; v != "" {
				kind = tag

				break
			}
		}

		features = append(features, Feature{Name: name, Kind: kind, Point: point})
	}

	return features, nil
}
