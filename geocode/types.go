// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

// Package geocode resolves loosely-specified Philippine postal addresses to
// coordinates, constraining results to the correct barangay boundary when
// one can be obtained.
package geocode

import (
	"context"

	"github.com/hanapph/hanap/address"
	"github.com/hanapph/hanap/spatial"
)

// Query is one resolution request. Immutable once built.
type Query struct {
	RawText string         `json:"query"`
	Hints   address.Hints  `json:"hints"`
	Anchor  *spatial.Point `json:"anchor,omitempty"`
}

// Boundary is a third-level administrative boundary: a closed, downsampled
// outer ring plus its approximate centroid.
type Boundary struct {
	Key      string        `json:"key"`
	Ring     spatial.Ring  `json:"ring"`
	Centroid spatial.Point `json:"centroid"`
}

// Contains reports whether p falls inside the boundary ring.
func (b *Boundary) Contains(p spatial.Point) bool {
	return b != nil && b.Ring.Contains(p)
}

// Confidence describes how a result's point was produced.
type Confidence string

const (
	// ConfidenceExact is a named feature matched inside the barangay polygon.
	ConfidenceExact Confidence = "exact"
	// ConfidenceCentroid is the barangay polygon centroid fallback.
	ConfidenceCentroid Confidence = "centroid"
	// ConfidenceNearAnchor is a feature matched near the anchor point, with
	// no polygon available.
	ConfidenceNearAnchor Confidence = "near_anchor"
	// ConfidenceUnconstrained is a plain address-search result.
	ConfidenceUnconstrained Confidence = "unconstrained"
)

// Result is a resolved location. Boundary is attached when the barangay
// polygon was obtained, regardless of which step produced the point.
type Result struct {
	Point      spatial.Point `json:"point"`
	Label      string        `json:"label"`
	Source     string        `json:"source"`
	Confidence Confidence    `json:"confidence"`
	Boundary   *Boundary     `json:"boundary,omitempty"`
}

// Place is one candidate returned by an address-search provider.
type Place struct {
	Point       spatial.Point
	DisplayName string
	Class       string
	Type        string
	Address     PlaceAddress
	Rings       []spatial.Ring // present when geometry was requested
}

// PlaceAddress is the provider's structured address attribution, used only
// for loose hint matching.
type PlaceAddress struct {
	Road         string
	Suburb       string
	Village      string
	City         string
	Town         string
	Municipality string
	State        string
}

// locality returns the best city-level attribute.
func (a PlaceAddress) locality() string {
	for _, v := range []string{a.City, a.Town, a.Municipality, a.Village} {
		if v != "" {
			return v
		}
	}

	return ""
}

// SearchOptions tune one address-search call.
type SearchOptions struct {
	Viewbox         *spatial.BoundingBox // bias results to this box
	Bounded         bool                 // restrict, not just bias
	Limit           int
	IncludeGeometry bool // request polygon geometry
}

// AddressSearcher turns free text into candidate places, optionally with
// polygon geometry attached.
type AddressSearcher interface {
	Search(ctx context.Context, query string, opts SearchOptions) ([]Place, error)
}

// Feature is a named road or POI returned by a feature-query provider.
type Feature struct {
	Name  string
	Kind  string // highway, amenity, shop, ...
	Point spatial.Point
}

// FeatureQuerier finds named features within a polygon or within a radius of
// a point.
type FeatureQuerier interface {
	FeaturesInPolygon(ctx context.Context, ring spatial.Ring) ([]Feature, error)
	FeaturesNear(ctx context.Context, center spatial.Point, radius float64) ([]Feature, error)
}
