// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

// Package address canonicalizes free-text Philippine postal addresses and
// derives prioritized geocoding candidates from hierarchical hints.
package address

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// abbreviations maps a lower-cased token (trailing periods stripped) to its
// expanded form. Locality abbreviations expand with or without a period;
// tokens in needsPeriod are too ambiguous to expand bare ("Dr" the honorific,
// "St" in saints' names already covered by STO/STA).
var abbreviations = map[string]string{
	"pob":  "Poblacion",
	"sto":  "Santo",
	"sta":  "Santa",
	"st":   "Street",
	"rd":   "Road",
	"ave":  "Avenue",
	"blvd": "Boulevard",
	"dr":   "Drive",
	"ln":   "Lane",
	"ext":  "Extension",
	"brgy": "Barangay",
	"bgy":  "Barangay",
}

var needsPeriod = map[string]bool{
	"st": true,
	"dr": true,
	"ln": true,
}

var (
	parenthetical = regexp.MustCompile(`\([^)]*\)`)
	enyeReplacer  = strings.NewReplacer("Ñ", "N", "ñ", "n")
)

// Normalize canonicalizes free address text for display and for building
// provider queries: parenthetical notes stripped, Ñ folded, locality and
// road-type abbreviations expanded, whitespace collapsed. It is idempotent.
func Normalize(text string) string {
	text = parenthetical.ReplaceAllString(text, " ")
	text = enyeReplacer.Replace(text)

	fields := strings.Fields(text)
	for i, field := range fields {
		fields[i] = expandToken(field)
	}

	return strings.Join(fields, " ")
}

func expandToken(token string) string {
	core := strings.TrimRight(token, ",;")
	suffix := token[len(core):]

	hadPeriod := strings.HasSuffix(core, ".")
	key := strings.ToLower(strings.TrimRight(core, "."))

	expanded, ok := abbreviations[key]
	if !ok || (needsPeriod[key] && !hadPeriod) {
		return token
	}

	return expanded + suffix
}

// CanonicalLoose reduces text to a loose canonical form used only for
// similarity scoring, never for display: normalized, lower-cased, diacritics
// folded, periods removed.
func CanonicalLoose(text string) string {
	text = strings.ReplaceAll(Normalize(text), ".", "")

	return lowerASCIIFolding(text)
}

// lowerASCIIFolding removes accents, lowercases, and trims the string.
func lowerASCIIFolding(s string) string {
	s, _, _ = transform.String(
		transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
		),
		strings.TrimSpace(strings.ToLower(s)),
	)

	return s
}

// genericLabels are street/building descriptors too vague to geocode.
var genericLabels = map[string]bool{
	"others":                true,
	"other":                 true,
	"n/a":                   true,
	"na":                    true,
	"none":                  true,
	"bldg":                  true,
	"building":              true,
	"commercial building":   true,
	"residential building":  true,
	"government building":   true,
	"purok":                 true,
	"sitio":                 true,
	"proper":                true,
	"interior":              true,
	"near the plaza":        true,
	"along the highway":     true,
	"new commercial center": true,
}

// IsLowQualityLabel flags generic, non-specific strings that would only
// mislead a geocoder ("ALL OTHER STREETS", "OTHERS", bare building
// descriptors). The candidate generator skips these as inputs.
func IsLowQualityLabel(text string) bool {
	loose := CanonicalLoose(text)
	if loose == "" {
		return true
	}

	if strings.HasPrefix(loose, "all other") {
		return true
	}

	return genericLabels[loose]
}
