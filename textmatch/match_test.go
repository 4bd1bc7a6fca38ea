// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

package textmatch

import "testing"

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"AZNAR", "AZNER", 1},
		{"", "", 0},
		{"a", "", 1},
		{"mendoza", "mendoza", 0},
		{"colon", "solon", 1},
	}

	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); got != tt.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDistanceSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"AZNAR", "AZNER"},
		{"mendoza", "mandaue"},
		{"sambag", ""},
		{"osmena boulevard", "osmena blvd"},
	}

	for _, p := range pairs {
		if Distance(p[0], p[1]) != Distance(p[1], p[0]) {
			t.Errorf("Distance(%q, %q) not symmetric", p[0], p[1])
		}
	}
}

func TestDistanceTriangleInequality(t *testing.T) {
	triples := [][3]string{
		{"aznar", "azner", "asner"},
		{"sambag", "sampaguita", "sampaloc"},
		{"colon", "", "solon"},
		{"mendoza", "mendiola", "magnolia"},
	}

	for _, tr := range triples {
		ab := Distance(tr[0], tr[1])
		bc := Distance(tr[1], tr[2])
		ac := Distance(tr[0], tr[2])

		if ac > ab+bc {
			t.Errorf("triangle inequality violated for %v: d(a,c)=%d > %d+%d", tr, ac, ab, bc)
		}
	}
}

func TestDiceCoefficientRange(t *testing.T) {
	pairs := [][2]string{
		{"mendoza", "mendoza"},
		{"mendoza", "mandaue"},
		{"a", "b"},
		{"", ""},
		{"night", "nacht"},
		{"ah mendoza street", "mendoza"},
	}

	for _, p := range pairs {
		got := DiceCoefficient(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("DiceCoefficient(%q, %q) = %f out of [0,1]", p[0], p[1], got)
		}
	}

	if DiceCoefficient("mendoza", "mendoza") != 1 {
		t.Error("identical strings should have Dice 1")
	}

	if DiceCoefficient("ab", "cd") != 0 {
		t.Error("disjoint bigrams should have Dice 0")
	}
}

func TestBestMatchExactShortCircuit(t *testing.T) {
	m, ok := BestMatch("AH Mendoza St.", []string{"Junquera Street", "AH Mendoza Street"}, DefaultOptions())
	if !ok {
		t.Fatal("expected a match")
	}

	if m.Method != MethodExact || m.Score != 1 {
		t.Errorf("expected exact match with score 1, got %+v", m)
	}

	if m.Candidate != "AH Mendoza Street" {
		t.Errorf("unexpected candidate %q", m.Candidate)
	}
}

func TestBestMatchSubstring(t *testing.T) {
	m, ok := BestMatch("Mendoza", []string{"Junquera Street", "AH Mendoza Street", "V Rama Avenue"}, DefaultOptions())
	if !ok {
		t.Fatal("expected a match")
	}

	if m.Candidate != "AH Mendoza Street" {
		t.Errorf("expected AH Mendoza Street, got %q", m.Candidate)
	}

	if m.Score < 0 || m.Score > 1 {
		t.Errorf("score %f out of [0,1]", m.Score)
	}
}

func TestBestMatchTypos(t *testing.T) {
	m, ok := BestMatch("Aznar Road", []string{"Azner Road", "Banilad Road"}, DefaultOptions())
	if !ok {
		t.Fatal("expected a match")
	}

	if m.Candidate != "Azner Road" {
		t.Errorf("expected Azner Road, got %q", m.Candidate)
	}
}

func TestBestMatchNone(t *testing.T) {
	if m, ok := BestMatch("Mendoza", []string{"Talamban Wharf Causeway"}, DefaultOptions()); ok {
		t.Errorf("expected no match, got %+v", m)
	}

	if _, ok := BestMatch("", []string{"anything"}, DefaultOptions()); ok {
		t.Error("empty target should never match")
	}

	if _, ok := BestMatch("Mendoza", nil, DefaultOptions()); ok {
		t.Error("no candidates should never match")
	}
}

func TestBestMatchScoreRange(t *testing.T) {
	candidates := []string{"AH Mendoza Street", "Sambag II", "Osmena Boulevard", "B Rodriguez Extension"}
	targets := []string{"Mendoza", "Sambag", "Osmena Blvd", "Rodriguez"}

	for _, target := range targets {
		m, ok := BestMatch(target, candidates, DefaultOptions())
		if !ok {
			continue
		}

		if m.Score < 0 || m.Score > 1 {
			t.Errorf("BestMatch(%q) score %f out of [0,1]", target, m.Score)
		}
	}
}
