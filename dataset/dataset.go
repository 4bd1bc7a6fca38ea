// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

// Package dataset reads address records from the shared spreadsheet the
// delivery team maintains. Rows are fetched a page at a time and cached
// briefly; the sheet is edited during the day and staleness past the TTL is
// acceptable.
package dataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/hanapph/hanap/address"
	"github.com/hanapph/hanap/cache"
)

// PageSize is the number of records per page.
const PageSize = 100

// expected column order in the sheet
const (
	colID = iota
	colAddressee
	colStreet
	colVicinity
	colBarangay
	colCity
	colProvince
	columnCount
)

// Record is one address row.
type Record struct {
	ID        string `json:"id"`
	Addressee string `json:"addressee"`
	Street    string `json:"street"`
	Vicinity  string `json:"vicinity,omitempty"`
	Barangay  string `json:"barangay,omitempty"`
	City      string `json:"city,omitempty"`
	Province  string `json:"province,omitempty"`
}

// Hints converts the record's admin columns into resolution hints.
func (r Record) Hints() address.Hints {
	return address.Hints{
		Street:   r.Street,
		Vicinity: r.Vicinity,
		Barangay: r.Barangay,
		City:     r.City,
		Province: r.Province,
	}
}

// ValuesGetter fetches a cell range. Satisfied by the Sheets API client and
// by test fakes.
type ValuesGetter interface {
	Values(ctx context.Context, spreadsheetID, readRange string) ([][]any, error)
}

type sheetsValues struct {
	svc *sheets.Service
}

func (s *sheetsValues) Values(ctx context.Context, spreadsheetID, readRange string) ([][]any, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading range %s: %w", readRange, err)
	}

	return resp.Values, nil
}

// Source is a paged view over the spreadsheet.
type Source struct {
	values        ValuesGetter
	spreadsheetID string
	pages         cache.Store[[]Record]
}

// NewSource creates a source over the Sheets API.
func NewSource(ctx context.Context, apiKey, spreadsheetID string, pages cache.Store[[]Record]) (*Source, error) {
	svc, err := sheets.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &Source{
		values:        &sheetsValues{svc: svc},
		spreadsheetID: spreadsheetID,
		pages:         pages,
	}, nil
}

// Page returns records for the 1-based page number. Row 1 of the sheet is
// the header and is never read.
func (s *Source) Page(ctx context.Context, page int) ([]Record, error) {
	if page < 1 {
		return nil, fmt.Errorf("page %d out of range", page)
	}

	key := fmt.Sprintf("%s|%d", s.spreadsheetID, page)

	if cached, ok := s.pages.Get(ctx, key); ok {
		return cached, nil
	}

	first := 2 + (page-1)*PageSize
	readRange := fmt.Sprintf("A%d:G%d", first, first+PageSize-1)

	rows, err := s.values.Values(ctx, s.spreadsheetID, readRange)
	if err != nil {
		return nil, fmt.Errorf("fetching page %d: %w", page, err)
	}

	records := rowsToRecords(rows)

	s.pages.Set(ctx, key, records)

	log.Debug().Int("page", page).Int("records", len(records)).Msg("dataset page loaded")

	return records, nil
}

// rowsToRecords converts sheet rows, dropping rows with no id and no street.
// Short rows are padded; the sheet API trims trailing empty cells.
func rowsToRecords(rows [][]any) []Record {
	records := make([]Record, 0, len(rows))

	for _, row := range rows {
		cells := make([]string, columnCount)
		for i := 0; i < columnCount && i < len(row); i++ {
			if s, ok := row[i].(string); ok {
				cells[i] = strings.TrimSpace(s)
			}
		}

		rec := Record{
			ID:        cells[colID],
			Addressee: cells[colAddressee],
			Street:    cells[colStreet],
			Vicinity:  cells[colVicinity],
			Barangay:  cells[colBarangay],
			City:      cells[colCity],
			Province:  cells[colProvince],
		}

		if rec.ID == "" && rec.Street == "" {
			continue
		}

		records = append(records, rec)
	}

	return records
}
