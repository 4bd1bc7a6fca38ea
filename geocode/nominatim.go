// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/hanapph/hanap/spatial"
)

const (
	defaultNominatimURL = "https://nominatim.openstreetmap.org"

	// Usage policy of the shared public instance: at most one request per
	// second, sequentially.
	nominatimTimeout = 10 * time.Second
)

// NominatimClient is an AddressSearcher backed by a Nominatim instance.
type NominatimClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewNominatim creates a Nominatim client. An empty baseURL selects the
// public openstreetmap.org instance.
func NewNominatim(baseURL, userAgent string) *NominatimClient {
	if baseURL == "" {
		baseURL = defaultNominatimURL
	}

	return &NominatimClient{
		baseURL:    baseURL,
		httpClient: providerClient(nominatimTimeout, userAgent),
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

type nominatimItem struct {
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	DisplayName string           `json:"display_name"`
	Class       string           `json:"class"`
	Type        string           `json:"type"`
	Address     nominatimAddress `json:"address"`
	GeoJSON     *geoJSONGeometry `json:"geojson,omitempty"`
}

type nominatimAddress struct {
	Road         string `json:"road"`
	Suburb       string `json:"suburb"`
	Village      string `json:"village"`
	City         string `json:"city"`
	Town         string `json:"town"`
	Municipality string `json:"municipality"`
	State        string `json:"state"`
}

type geoJSONGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Search performs a free-text forward search restricted to the Philippines.
func (c *NominatimClient) Search(ctx context.Context, query string, opts SearchOptions) ([]Place, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for nominatim rate limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, nominatimTimeout)
	defer cancel()

	limit := opts.Limit
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("addressdetails", "1")
	params.Set("countrycodes", "ph")
	params.Set("limit", strconv.Itoa(limit))

	if opts.IncludeGeometry {
		params.Set("polygon_geojson", "1")
	}

	if opts.Viewbox != nil {
		// left,top,right,bottom
		params.Set("viewbox", fmt.Sprintf("%f,%f,%f,%f",
			opts.Viewbox.MinLng, opts.Viewbox.MaxLat, opts.Viewbox.MaxLng, opts.Viewbox.MinLat))

		if opts.Bounded {
			params.Set("bounded", "1")
		}
	}

	reqURL := c.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating nominatim request: %w", err)
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim search: %w", ClassifyHTTPStatus(resp.StatusCode))
	}

	var items []nominatimItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decoding nominatim response: %w", err)
	}

	log.Debug().
		Str("provider", "nominatim").
		Str("query", query).
		Int("results", len(items)).
		Dur("elapsed", time.Since(start)).
		Msg("address search")

	places := make([]Place, 0, len(items))

	for _, item := range items {
		place, err := item.toPlace()
		if err != nil {
			log.Warn().Err(err).Str("display_name", item.DisplayName).Msg("skipping unparsable nominatim item")

			continue
		}

		places = append(places, place)
	}

	return places, nil
}

func (item nominatimItem) toPlace() (Place, error) {
	lat, err := strconv.ParseFloat(item.Lat, 64)
	if err != nil {
		return Place{}, fmt.Errorf("parsing lat %q: %w", item.Lat, err)
	}

	lng, err := strconv.ParseFloat(item.Lon, 64)
	if err != nil {
		return Place{}, fmt.Errorf("parsing lon %q: %w", item.Lon, err)
	}

	place := Place{
		Point:       spatial.Point{Lat: lat, Lng: lng},
		DisplayName: item.DisplayName,
		Class:       item.Class,
		Type:        item.Type,
		Address: PlaceAddress{
			Road:         item.Address.Road,
			Suburb:       item.Address.Suburb,
			Village:      item.Address.Village,
			City:         item.Address.City,
			Town:         item.Address.Town,
			Municipality: item.Address.Municipality,
			State:        item.Address.State,
		},
	}

	if item.GeoJSON != nil {
		rings, err := item.GeoJSON.rings()
		if err != nil {
			return Place{}, fmt.Errorf("parsing geometry: %w", err)
		}

		place.Rings = rings
	}

	return place, nil
}

// rings extracts every polygon ring from the geometry. GeoJSON positions are
// [lng, lat].
func (g *geoJSONGeometry) rings() ([]spatial.Ring, error) {
	switch g.Type {
	case "Polygon":
		var coords [][][2]float64
		if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
			return nil, fmt.Errorf("polygon coordinates: %w", err)
		}

		return toRings(coords), nil
	case "MultiPolygon":
		var coords [][][][2]float64
		if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
			return nil, fmt.Errorf("multipolygon coordinates: %w", err)
		}

		var rings []spatial.Ring
		for _, polygon := range coords {
			rings = append(rings, toRings(polygon)...)
		}

		return rings, nil
	default:
		// Point, LineString etc. carry no area.
		return nil, nil
	}
}

func toRings(polygon [][][2]float64) []spatial.Ring {
	rings := make([]spatial.Ring, 0, len(polygon))

	for _, raw := range polygon {
		ring := make(spatial.Ring, 0, len(raw))
		for _, pos := range raw {
			ring = append(ring, spatial.Point{Lat: pos[1], Lng: pos[0]})
		}

		rings = append(rings, ring)
	}

	return rings
}
