// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

// Package poi counts named points of interest around a resolved location.
package poi

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/uber/h3-go/v4"

	"github.com/hanapph/hanap/cache"
	"github.com/hanapph/hanap/geocode"
	"github.com/hanapph/hanap/spatial"
)

// DefaultRadius is the survey radius around the resolved point, meters.
const DefaultRadius = 500

// cache keys quantize the center to an H3 cell at this resolution; POI
// density varies block to block, so the cell is much finer than the one the
// resolver uses for whole-address results.
const cellResolution = 9

// Counts groups nearby named features by category tag. Roads are not POIs
// and are excluded.
type Counts map[string]int

// Total sums all categories.
func (c Counts) Total() int {
	var n int
	for _, v := range c {
		n += v
	}

	return n
}

// Counter surveys POIs through a feature-query provider, memoizing by cell
// and radius.
type Counter struct {
	features geocode.FeatureQuerier
	store    cache.Store[Counts]
}

// NewCounter creates a counter on top of features.
func NewCounter(features geocode.FeatureQuerier, store cache.Store[Counts]) *Counter {
	return &Counter{features: features, store: store}
}

// Near counts named POIs within radius meters of center, grouped by
// category. radius <= 0 selects DefaultRadius.
func (c *Counter) Near(ctx context.Context, center spatial.Point, radius float64) (Counts, error) {
	if !center.Valid() {
		return nil, fmt.Errorf("invalid center %s", center.String())
	}

	if radius <= 0 {
		radius = DefaultRadius
	}

	key := countKey(center, radius)

	if cached, ok := c.store.Get(ctx, key); ok {
		return cached, nil
	}

	features, err := c.features.FeaturesNear(ctx, center, radius)
	if err != nil {
		return nil, fmt.Errorf("surveying POIs: %w", err)
	}

	counts := make(Counts)

	for _, f := range features {
		if f.Kind == "" || f.Kind == "highway" {
			continue
		}

		counts[f.Kind]++
	}

	c.store.Set(ctx, key, counts)

	log.Debug().
		Str("center", center.String()).
		Float64("radius", radius).
		Int("total", counts.Total()).
		Msg("POI survey")

	return counts, nil
}

func countKey(center spatial.Point, radius float64) string {
	cell, err := h3.LatLngToCell(h3.LatLng{Lat: center.Lat, Lng: center.Lng}, cellResolution)
	if err != nil {
		return fmt.Sprintf("%s|%.0f", center.String(), radius)
	}

	return fmt.Sprintf("%s|%.0f", cell.String(), radius)
}
