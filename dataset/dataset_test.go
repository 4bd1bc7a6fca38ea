// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanapph/hanap/cache"
)

type fakeValues struct {
	rows   [][]any
	err    error
	ranges []string
}

func (f *fakeValues) Values(_ context.Context, _ string, readRange string) ([][]any, error) {
	f.ranges = append(f.ranges, readRange)

	return f.rows, f.err
}

func newTestSource(values ValuesGetter) *Source {
	return &Source{
		values:        values,
		spreadsheetID: "sheet-1",
		pages:         cache.NewMemory[[]Record](time.Hour),
	}
}

func TestRowsToRecords(t *testing.T) {
	rows := [][]any{
		{"R-001", "J. Dela Cruz", "123 Colon St", "", "Sambag II", "Cebu City", "Cebu"},
		{"R-002", "M. Santos", "AH Mendoza"}, // short row: API trims trailing blanks
		{"", "", "", "", "", "", ""},         // blank row dropped
		{"R-003", 42, "V Rama Ave"},          // non-string cell ignored
	}

	want := []Record{
		{ID: "R-001", Addressee: "J. Dela Cruz", Street: "123 Colon St", Barangay: "Sambag II", City: "Cebu City", Province: "Cebu"},
		{ID: "R-002", Addressee: "M. Santos", Street: "AH Mendoza"},
		{ID: "R-003", Street: "V Rama Ave"},
	}

	got := rowsToRecords(rows)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rowsToRecords mismatch (-want +got):\n%s", diff)
	}
}

func TestPageRanges(t *testing.T) {
	values := &fakeValues{}
	src := newTestSource(values)

	_, err := src.Page(context.Background(), 1)
	require.NoError(t, err)

	_, err = src.Page(context.Background(), 3)
	require.NoError(t, err)

	// header row skipped: page 1 starts at row 2
	assert.Equal(t, []string{"A2:G101", "A202:G301"}, values.ranges)
}

func TestPageCached(t *testing.T) {
	values := &fakeValues{rows: [][]any{{"R-001", "", "Colon St"}}}
	src := newTestSource(values)

	first, err := src.Page(context.Background(), 1)
	require.NoError(t, err)

	second, err := src.Page(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, values.ranges, 1, "second read must be served from cache")
}

func TestPageOutOfRange(t *testing.T) {
	src := newTestSource(&fakeValues{})

	_, err := src.Page(context.Background(), 0)
	assert.Error(t, err)
}

func TestRecordHints(t *testing.T) {
	rec := Record{Street: "Colon St", Barangay: "Sambag II", City: "Cebu City", Province: "Cebu"}

	hints := rec.Hints()
	assert.Equal(t, "Colon St", hints.Street)
	assert.Equal(t, "Sambag II", hints.Barangay)
	assert.False(t, hints.Empty())
}
