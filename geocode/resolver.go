// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hanapph/hanap/address"
	"github.com/hanapph/hanap/spatial"
	"github.com/hanapph/hanap/textmatch"
)

// search radius around the anchor when no polygon is available, meters
const anchorRadius = 3000

// errStepSkipped signals a chain step had nothing to contribute; the next
// step runs. Distinct from a step failing, which is logged but advances the
// chain all the same.
var errStepSkipped = errors.New("step skipped")

// Resolver runs the fixed, sequential fallback chain. Steps are attempted in
// order until one yields an accepted result; provider failures and timeouts
// advance the chain, they are never surfaced.
//
// Sequential on purpose: fanning out in parallel to shared community
// geocoding services would violate their usage policies.
type Resolver struct {
	search   AddressSearcher
	features FeatureQuerier
	polygons *PolygonStore
	google   *GoogleGeocoder // nil unless a credential is configured
	match    textmatch.Options
}

// NewResolver assembles the chain. google may be nil.
func NewResolver(search AddressSearcher, features FeatureQuerier, polygons *PolygonStore, google *GoogleGeocoder) *Resolver {
	return &Resolver{
		search:   search,
		features: features,
		polygons: polygons,
		google:   google,
		match:    textmatch.DefaultOptions(),
	}
}

// resolution is the per-request state shared between chain steps.
type resolution struct {
	query      Query
	hints      address.Hints
	target     string // the street-level term features are matched against
	candidates []string
	boundary   *Boundary // set once the polygon step obtains one
}

type step struct {
	name string
	run  func(ctx context.Context, st *resolution) (*Result, error)
}

// Resolve runs the chain for one query.
func (r *Resolver) Resolve(ctx context.Context, query Query) (*Result, error) {
	if strings.TrimSpace(query.RawText) == "" && query.Hints.Empty() {
		return nil, ErrInvalidInput
	}

	// The free-text query doubles as the street hint when none was given;
	// it is the most specific term the caller had.
	hints := query.Hints
	if strings.TrimSpace(hints.Street) == "" {
		hints.Street = query.RawText
	}

	target := address.Normalize(hints.Street)
	if target == "" || address.IsLowQualityLabel(target) {
		target = address.Normalize(hints.Vicinity)
	}

	st := &resolution{
		query:      query,
		hints:      hints,
		target:     target,
		candidates: address.GenerateCandidates(hints),
	}

	steps := []step{
		{"polygon_feature", r.polygonFeatureStep},
		{"polygon_centroid", r.polygonCentroidStep},
		{"anchor_proximity", r.anchorProximityStep},
		{"address_search", r.addressSearchStep},
	}

	for _, s := range steps {
		result, err := s.run(ctx, st)
		if err == nil {
			log.Info().
				Str("step", s.name).
				Str("query", query.RawText).
				Str("confidence", string(result.Confidence)).
				Msg("resolved")

			return result, nil
		}

		if errors.Is(err, errStepSkipped) {
			continue
		}

		// Timeouts and provider errors are absorbed; the chain moves on.
		log.Warn().Err(err).Str("step", s.name).Str("query", query.RawText).Msg("step failed")
	}

	return nil, ErrNoMatch
}

// polygonFeatureStep locks resolution to the barangay polygon: named
// features inside it are fuzzy-matched against the street target, and a
// match is accepted only if its point is actually contained.
func (r *Resolver) polygonFeatureStep(ctx context.Context, st *resolution) (*Result, error) {
	if st.hints.Barangay == "" {
		return nil, errStepSkipped
	}

	boundary, err := r.polygons.Boundary(ctx, st.hints.Barangay, st.hints.City, st.hints.Province, st.query.Anchor)
	if err != nil {
		if errors.Is(err, ErrPolygonUnavailable) {
			log.Debug().Str("barangay", st.hints.Barangay).Msg("no polygon; skipping polygon-locked search")

			return nil, errStepSkipped
		}

		return nil, err
	}

	st.boundary = boundary

	if st.target == "" {
		return nil, errStepSkipped
	}

	features, err := r.features.FeaturesInPolygon(ctx, boundary.Ring)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(features))
	for i, f := range features {
		names[i] = f.Name
	}

	match, ok := textmatch.BestMatch(st.target, names, r.match)
	if !ok {
		return nil, errStepSkipped
	}

	for _, f := range features {
		if f.Name != match.Candidate {
			continue
		}

		if !boundary.Ring.Contains(f.Point) {
			// A way's center can fall outside a concave barangay.
			continue
		}

		return &Result{
			Point:      f.Point,
			Label:      f.Name,
			Source:     "overpass",
			Confidence: ConfidenceExact,
			Boundary:   boundary,
		}, nil
	}

	return nil, errStepSkipped
}

// polygonCentroidStep keeps the result constrained to the barangay when no
// feature qualified. A configured commercial provider gets one attempt
// first; its point is subjected to the same containment lock and corrected
// to the centroid when it falls outside.
func (r *Resolver) polygonCentroidStep(ctx context.Context, st *resolution) (*Result, error) {
	if st.boundary == nil {
		return nil, errStepSkipped
	}

	if r.google != nil && len(st.candidates) > 0 {
		box := spatial.NewBoundingBox(st.boundary.Centroid, polygonSearchHalfWidth)

		place, err := r.google.Geocode(ctx, st.candidates[0], &box)
		if err == nil && st.boundary.Contains(place.Point) {
			return &Result{
				Point:      place.Point,
				Label:      place.DisplayName,
				Source:     "google_maps",
				Confidence: ConfidenceExact,
				Boundary:   st.boundary,
			}, nil
		}

		if err != nil {
			log.Debug().Err(err).Msg("commercial geocode failed; falling back to centroid")
		}
	}

	label := joinNonEmpty(", ",
		address.Normalize(st.hints.Barangay),
		address.Normalize(st.hints.City)) + " (barangay center)"

	return &Result{
		Point:      st.boundary.Centroid,
		Label:      label,
		Source:     "polygon",
		Confidence: ConfidenceCentroid,
		Boundary:   st.boundary,
	}, nil
}

// anchorProximityStep searches named features near the anchor when no
// polygon could be obtained.
func (r *Resolver) anchorProximityStep(ctx context.Context, st *resolution) (*Result, error) {
	if st.boundary != nil || st.query.Anchor == nil || st.target == "" {
		return nil, errStepSkipped
	}

	features, err := r.features.FeaturesNear(ctx, *st.query.Anchor, anchorRadius)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(features))
	for i, f := range features {
		names[i] = f.Name
	}

	match, ok := textmatch.BestMatch(st.target, names, r.match)
	if !ok {
		return nil, errStepSkipped
	}

	for _, f := range features {
		if f.Name == match.Candidate {
			return &Result{
				Point:      f.Point,
				Label:      f.Name,
				Source:     "overpass",
				Confidence: ConfidenceNearAnchor,
			}, nil
		}
	}

	return nil, errStepSkipped
}

// addressSearchStep is the unconstrained fallback: every candidate is tried
// against the general address-search provider (commercial first when
// configured), biased to a box around the anchor.
func (r *Resolver) addressSearchStep(ctx context.Context, st *resolution) (*Result, error) {
	var box *spatial.BoundingBox

	if st.query.Anchor != nil {
		b := spatial.NewBoundingBox(*st.query.Anchor, polygonSearchHalfWidth)
		box = &b
	}

	for _, candidate := range st.candidates {
		if r.google != nil {
			place, err := r.google.Geocode(ctx, candidate, box)
			if err == nil {
				return r.acceptPlace(*place, "google_maps", st), nil
			}

			log.Debug().Err(err).Str("candidate", candidate).Msg("commercial geocode failed")
		}

		places, err := r.search.Search(ctx, candidate, SearchOptions{Viewbox: box, Limit: 5})
		if err != nil {
			log.Warn().Err(err).Str("candidate", candidate).Msg("address search failed")

			continue
		}

		if len(places) == 0 {
			continue
		}

		place := preferByHints(places, st.hints)

		return r.acceptPlace(place, "nominatim", st), nil
	}

	return nil, errStepSkipped
}

// acceptPlace applies the containment lock to an unconstrained result: a
// point outside a known barangay polygon is corrected to the polygon
// centroid rather than accepted as-is.
func (r *Resolver) acceptPlace(place Place, source string, st *resolution) *Result {
	if st.boundary != nil && !st.boundary.Contains(place.Point) {
		return &Result{
			Point:      st.boundary.Centroid,
			Label:      place.DisplayName + " (corrected to barangay center)",
			Source:     source,
			Confidence: ConfidenceCentroid,
			Boundary:   st.boundary,
		}
	}

	return &Result{
		Point:      place.Point,
		Label:      place.DisplayName,
		Source:     source,
		Confidence: ConfidenceUnconstrained,
		Boundary:   st.boundary,
	}
}

// preferByHints picks the place whose address attributes loosely match the
// hints, else the first.
func preferByHints(places []Place, hints address.Hints) Place {
	for _, place := range places {
		if looseMatch(place.Address.locality(), hints.City) ||
			looseMatch(place.Address.State, hints.Province) ||
			looseMatch(place.Address.Suburb, hints.Barangay) ||
			looseMatch(place.Address.Village, hints.Barangay) {
			return place
		}
	}

	return places[0]
}
