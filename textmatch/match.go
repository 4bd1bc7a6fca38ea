// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

// Package textmatch scores a target string against candidate strings using
// combined exact, keyword, edit-distance and bigram similarity. It is used to
// pick the street or POI feature that best matches an address candidate.
package textmatch

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/hanapph/hanap/address"
)

// Method records which rule produced a match.
type Method string

const (
	MethodExact   Method = "exact"
	MethodKeyword Method = "keyword"
	MethodFuzzy   Method = "fuzzy"
)

// Match is the best-scoring candidate of one invocation.
type Match struct {
	Candidate string
	Score     float64 // always within [0,1]
	Method    Method
}

// Options tune when a candidate qualifies at all.
type Options struct {
	// Threshold is the minimum keyword, Dice, or normalized Levenshtein
	// similarity for a candidate to qualify on that signal alone.
	Threshold float64
	// MaxEditDistance qualifies candidates within this many edits.
	MaxEditDistance int
	// MinDice qualifies candidates at or above this bigram similarity.
	MinDice float64
}

// DefaultOptions match street names against noisy OSM feature names.
func DefaultOptions() Options {
	return Options{
		Threshold:       0.6,
		MaxEditDistance: 3,
		MinDice:         0.45,
	}
}

// stopWords are dropped before keyword comparison: directionals, road-type
// words, and generic subdivision words carry no discriminating signal.
var stopWords = map[string]bool{
	"north": true, "south": true, "east": true, "west": true,
	"n": true, "s": true, "e": true, "w": true,
	"upper": true, "lower": true,
	"street": true, "road": true, "avenue": true, "boulevard": true,
	"drive": true, "lane": true, "extension": true, "highway": true,
	"subdivision": true, "village": true, "phase": true, "block": true,
	"purok": true, "sitio": true, "barangay": true,
}

// Distance is the Levenshtein edit distance between a and b. It is symmetric
// and satisfies the triangle inequality.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Similarity is the normalized Levenshtein similarity in [0,1].
func Similarity(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la == 0 && lb == 0 {
		return 1
	}

	longest := max(la, lb)

	return 1 - float64(Distance(a, b))/float64(longest)
}

// DiceCoefficient is the Sørensen–Dice similarity over character bigrams,
// in [0,1].
func DiceCoefficient(a, b string) float64 {
	ba, bb := bigrams(a), bigrams(b)
	if len(ba) == 0 || len(bb) == 0 {
		if a == b {
			return 1
		}

		return 0
	}

	var total, overlap int

	for bg, na := range ba {
		total += na

		if nb := bb[bg]; nb > 0 {
			overlap += min(na, nb)
		}
	}

	for _, nb := range bb {
		total += nb
	}

	return 2 * float64(overlap) / float64(total)
}

func bigrams(s string) map[string]int {
	runes := []rune(s)
	if len(runes) < 2 {
		return nil
	}

	out := make(map[string]int, len(runes)-1)
	for i := 0; i < len(runes)-1; i++ {
		out[string(runes[i:i+2])]++
	}

	return out
}

// keywordScore is the similarity-weighted fraction of target keywords found
// in the candidate, verbatim or within Levenshtein similarity > 0.75.
func keywordScore(target, candidate string) float64 {
	targetWords := keywords(target)
	if len(targetWords) == 0 {
		return 0
	}

	candidateWords := keywords(candidate)

	var sum float64

	for _, tw := range targetWords {
		best := 0.0

		for _, cw := range candidateWords {
			if tw == cw {
				best = 1

				break
			}

			if sim := Similarity(tw, cw); sim > 0.75 && sim > best {
				best = sim
			}
		}

		sum += best
	}

	return sum / float64(len(targetWords))
}

func keywords(s string) []string {
	fields := strings.Fields(s)
	out := fields[:0:0]

	for _, f := range fields {
		if !stopWords[f] {
			out = append(out, f)
		}
	}

	return out
}

// BestMatch scores target against every candidate and returns the single
// best qualifying match, or false when nothing qualifies. An exact match on
// the canonical form short-circuits with score 1. Ties keep the earliest
// candidate.
func BestMatch(target string, candidates []string, opts Options) (Match, bool) {
	ct := address.CanonicalLoose(target)
	if ct == "" {
		return Match{}, false
	}

	var (
		best  Match
		found bool
	)

	for _, candidate := range candidates {
		cc := address.CanonicalLoose(candidate)
		if cc == "" {
			continue
		}

		if cc == ct {
			return Match{Candidate: candidate, Score: 1, Method: MethodExact}, true
		}

		substring := strings.Contains(cc, ct) || strings.Contains(ct, cc)
		dist := Distance(ct, cc)
		lev := Similarity(ct, cc)
		dice := DiceCoefficient(ct, cc)
		kw := keywordScore(ct, cc)

		qualifies := substring ||
			dist <= opts.MaxEditDistance ||
			dice >= opts.MinDice ||
			kw >= opts.Threshold ||
			lev >= opts.Threshold ||
			dice >= opts.Threshold

		if !qualifies {
			continue
		}

		score := 0.7*lev + 0.8*dice
		if score > 1 {
			score = 1
		}

		method := MethodFuzzy
		if kw >= opts.Threshold {
			method = MethodKeyword
		}

		if !found || score > best.Score {
			best = Match{Candidate: candidate, Score: score, Method: method}
			found = true
		}
	}

	return best, found
}
