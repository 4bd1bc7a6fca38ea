// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/hanapph/hanap/address"
	"github.com/hanapph/hanap/config"
	"github.com/hanapph/hanap/dataset"
	"github.com/hanapph/hanap/geocode"
	"github.com/hanapph/hanap/spatial"
)

const resolveTimeout = 2 * time.Minute

var resolveOptions = struct {
	hints   address.Hints
	lat     float64
	lng     float64
	csvPath string
	outPath string
}{}

var resolveCmd = &cobra.Command{
	Use:   "resolve [query]",
	Short: "Resolve an address to coordinates",
	Long: `
Resolves a single free-text address, or a CSV of address hint rows when
--csv is given. CSV rows carry the spreadsheet column layout: id, addressee,
street, vicinity, barangay, city, province.
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		a, err := buildApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		if resolveOptions.csvPath != "" {
			return resolveBatch(cmd.Context(), a.service, resolveOptions.csvPath, resolveOptions.outPath)
		}

		if len(args) == 0 && resolveOptions.hints.Empty() {
			return errors.New("provide a query argument, hint flags, or --csv")
		}

		query := geocode.Query{Hints: resolveOptions.hints}
		if len(args) > 0 {
			query.RawText = args[0]
		}

		if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
			query.Anchor = &spatial.Point{Lat: resolveOptions.lat, Lng: resolveOptions.lng}
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), resolveTimeout)
		defer cancel()

		result, err := a.service.Resolve(ctx, query)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}

		fmt.Println(string(out))

		return nil
	},
}

func resolveBatch(ctx context.Context, service *geocode.Service, inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	// Tolerate a header row using the spreadsheet column names.
	if len(rows) > 0 && strings.EqualFold(strings.TrimSpace(rows[0][0]), "id") {
		rows = rows[1:]
	}

	out := os.Stdout

	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()

		out = f
	}

	writer := csv.NewWriter(out)
	defer writer.Flush()

	header := []string{"id", "addressee", "street", "vicinity", "barangay", "city", "province",
		"lat", "lng", "label", "confidence", "source"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	var bar *progressbar.ProgressBar
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.NewOptions(len(rows),
			progressbar.OptionSetDescription("Resolving"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	var failures int

	for _, row := range rows {
		record := rowToRecord(row)
		fields := []string{record.ID, record.Addressee, record.Street, record.Vicinity,
			record.Barangay, record.City, record.Province}

		result, err := resolveRecord(ctx, service, record)
		if err != nil {
			failures++

			log.Debug().Err(err).Str("id", record.ID).Msg("row did not resolve")

			fields = append(fields, "", "", "", "", "")
		} else {
			fields = append(fields,
				strconv.FormatFloat(result.Point.Lat, 'f', 6, 64),
				strconv.FormatFloat(result.Point.Lng, 'f', 6, 64),
				result.Label,
				string(result.Confidence),
				result.Source,
			)
		}

		if err := writer.Write(fields); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	log.Info().Int("rows", len(rows)).Int("failed", failures).Msg("batch done")

	return nil
}

func resolveRecord(ctx context.Context, service *geocode.Service, record dataset.Record) (*geocode.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	return service.Resolve(ctx, geocode.Query{Hints: record.Hints()})
}

func rowToRecord(row []string) dataset.Record {
	cell := func(i int) string {
		if i >= len(row) {
			return ""
		}

		return strings.TrimSpace(row[i])
	}

	return dataset.Record{
		ID:        cell(0),
		Addressee: cell(1),
		Street:    cell(2),
		Vicinity:  cell(3),
		Barangay:  cell(4),
		City:      cell(5),
		Province:  cell(6),
	}
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringVar(&resolveOptions.hints.Street, "street", "", "street hint")
	resolveCmd.Flags().StringVar(&resolveOptions.hints.Vicinity, "vicinity", "", "vicinity hint (subdivision, building, sitio)")
	resolveCmd.Flags().StringVar(&resolveOptions.hints.Barangay, "barangay", "", "barangay hint")
	resolveCmd.Flags().StringVar(&resolveOptions.hints.City, "city", "", "city or municipality hint")
	resolveCmd.Flags().StringVar(&resolveOptions.hints.Province, "province", "", "province hint")
	resolveCmd.Flags().Float64Var(&resolveOptions.lat, "lat", 0, "anchor latitude")
	resolveCmd.Flags().Float64Var(&resolveOptions.lng, "lng", 0, "anchor longitude")
	resolveCmd.Flags().StringVar(&resolveOptions.csvPath, "csv", "", "resolve a CSV of hint rows instead of a single query")
	resolveCmd.Flags().StringVar(&resolveOptions.outPath, "out", "", "write batch output to a file instead of stdout")
}
