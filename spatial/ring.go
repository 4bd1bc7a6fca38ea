// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

import "math"

// Ring is an ordered sequence of points describing a polygon's outer edge.
// A usable ring is closed: its first and last points are equal.
type Ring []Point

// Closed reports whether the ring's first and last points coincide.
func (r Ring) Closed() bool {
	if len(r) < 2 {
		return false
	}

	return r[0] == r[len(r)-1]
}

// Close returns the ring with its first point appended if it is not already
// closed.
func (r Ring) Close() Ring {
	if len(r) == 0 || r.Closed() {
		return r
	}

	return append(r, r[0])
}

// Area returns the absolute planar area of the ring in square degrees, via
// the shoelace formula. Degrees are fine here: the value is only used to
// compare rings of the same geometry against each other.
func (r Ring) Area() float64 {
	n := len(r)
	if n < 3 {
		return 0
	}

	var sum float64

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += r[i].Lng*r[j].Lat - r[j].Lng*r[i].Lat
	}

	return math.Abs(sum / 2)
}

// Centroid returns the arithmetic mean of the ring's vertices, skipping the
// duplicated closing vertex. This is an approximation of the true polygon
// centroid; it is adequate for near-convex administrative shapes.
func (r Ring) Centroid() Point {
	n := len(r)
	if n == 0 {
		return Point{}
	}

	if n > 1 && r.Closed() {
		n--
	}

	var lat, lng float64

	for _, p := range r[:n] {
		lat += p.Lat
		lng += p.Lng
	}

	return Point{Lat: lat / float64(n), Lng: lng / float64(n)}
}

// Contains reports whether p lies inside the ring, by casting a ray east and
// counting edge crossings. Points exactly on an edge yield an unspecified
// result.
func (r Ring) Contains(p Point) bool {
	n := len(r)
	if n < 3 {
		return false
	}

	inside := false

	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		yi, xi := r[i].Lat, r[i].Lng
		yj, xj := r[j].Lat, r[j].Lng

		if (yi > p.Lat) != (yj > p.Lat) &&
			p.Lng < (xj-xi)*(p.Lat-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}

	return inside
}

// Downsample uniformly samples the ring down to at most maxVertices points
// using a fixed stride, then closes the result. Rings already within the cap
// are only closed.
func (r Ring) Downsample(maxVertices int) Ring {
	if maxVertices < 3 || len(r) <= maxVertices {
		return r.Close()
	}

	stride := (len(r) + maxVertices - 1) / maxVertices
	out := make(Ring, 0, maxVertices+1)

	for i := 0; i < len(r); i += stride {
		out = append(out, r[i])
	}

	return out.Close()
}

// LargestRing returns the ring with the largest absolute area, or nil when
// rings is empty. Multi-polygon geometries keep only their dominant outer
// ring; enclaves and detached fragments are discarded.
func LargestRing(rings []Ring) Ring {
	var (
		best     Ring
		bestArea float64
	)

	for _, ring := range rings {
		if a := ring.Area(); best == nil || a > bestArea {
			best, bestArea = ring, a
		}
	}

	return best
}
