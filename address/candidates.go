// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

package address

import "strings"

// Hints carries the hierarchical parts of a loosely-specified address, from
// most to least specific. Any field may be empty.
type Hints struct {
	Street   string `json:"street,omitempty"`
	Vicinity string `json:"vicinity,omitempty"`
	Barangay string `json:"barangay,omitempty"`
	City     string `json:"city,omitempty"`
	Province string `json:"province,omitempty"`
}

// Empty reports whether no hint field is set.
func (h Hints) Empty() bool {
	return strings.TrimSpace(h.Street) == "" &&
		strings.TrimSpace(h.Vicinity) == "" &&
		strings.TrimSpace(h.Barangay) == "" &&
		strings.TrimSpace(h.City) == "" &&
		strings.TrimSpace(h.Province) == ""
}

// normalized returns a copy with every field passed through Normalize.
func (h Hints) normalized() Hints {
	return Hints{
		Street:   Normalize(h.Street),
		Vicinity: Normalize(h.Vicinity),
		Barangay: Normalize(h.Barangay),
		City:     Normalize(h.City),
		Province: Normalize(h.Province),
	}
}

// GenerateCandidates turns hierarchical hints into an ordered, de-duplicated
// list of geocoding query strings, most specific first. The final
// barangay/city/province entry is the guaranteed-resolvable fallback.
// Low-quality street and vicinity labels are skipped as inputs.
func GenerateCandidates(hints Hints) []string {
	h := hints.normalized()

	streetUsable := h.Street != "" && !IsLowQualityLabel(h.Street)

	var candidates []string

	if streetUsable {
		candidates = append(candidates,
			joinParts(h.Street, h.Barangay, h.City, h.Province),
			joinParts(h.Street, h.City, h.Province),
		)

		// Partial or abbreviated street names often geocode better from the
		// leading tokens alone ("AH Mendoza" out of "AH Mendoza Street").
		// Only worthwhile when an administrative part can anchor the query.
		tokens := strings.Fields(h.Street)
		hasArea := h.Barangay != "" || h.City != "" || h.Province != ""

		if hasArea && len(tokens) > 2 {
			candidates = append(candidates,
				joinParts(strings.Join(tokens[:2], " "), h.Barangay, h.City, h.Province))
		}

		if hasArea && len(tokens) > 1 && len(tokens[0]) >= 4 {
			candidates = append(candidates,
				joinParts(tokens[0], h.Barangay, h.City, h.Province))
		}
	}

	if h.Vicinity != "" && !IsLowQualityLabel(h.Vicinity) {
		candidates = append(candidates,
			joinParts(h.Vicinity, h.Barangay, h.City, h.Province))
	}

	candidates = append(candidates,
		joinParts(h.Barangay, h.City, h.Province))

	return dedupe(candidates)
}

// joinParts joins the non-empty parts with commas.
func joinParts(parts ...string) string {
	kept := parts[:0:0]

	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			kept = append(kept, part)
		}
	}

	return strings.Join(kept, ", ")
}

// dedupe removes empty and repeated entries, preserving first-seen order.
// Comparison is case-insensitive.
func dedupe(candidates []string) []string {
	seen := make(map[string]bool, len(candidates))
	out := make([]string, 0, len(candidates))

	for _, c := range candidates {
		key := strings.ToLower(c)
		if c == "" || seen[key] {
			continue
		}

		seen[key] = true

		out = append(out, c)
	}

	return out
}
