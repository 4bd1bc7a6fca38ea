// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

import (
	"fmt"
	"math"
)

const (
	earthRadius = 6371e3 // meters

	// meters per degree of latitude, and of longitude at the equator
	metersPerDegree = 111320.0
)

// Point represents a geographical point with latitude and longitude.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String returns a string representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("POINT(%f %f)", p.Lng, p.Lat)
}

// Valid reports whether the point lies within global coordinate bounds.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// HaversineDistance calculates the distance between two points on Earth in meters.
func (p *Point) HaversineDistance(other *Point) float64 {
	lat1 := p.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - p.Lat) * math.Pi / 180
	dLng := (other.Lng - p.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// BoundingBox is an axis-aligned box in degrees.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// NewBoundingBox builds a box centered on p whose sides span 2×halfWidth
// meters. The longitude span widens with latitude so the box stays roughly
// square on the ground.
func NewBoundingBox(p Point, halfWidth float64) BoundingBox {
	dLat := halfWidth / metersPerDegree

	cos := math.Cos(p.Lat * math.Pi / 180)
	if cos < 0.01 {
		cos = 0.01
	}

	dLng := halfWidth / (metersPerDegree * cos)

	return BoundingBox{
		MinLat: p.Lat - dLat,
		MinLng: p.Lng - dLng,
		MaxLat: p.Lat + dLat,
		MaxLng: p.Lng + dLng,
	}
}

// Contains reports whether p falls inside the box.
func (b BoundingBox) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}
