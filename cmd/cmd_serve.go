// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hanapph/hanap/cache"
	"github.com/hanapph/hanap/config"
	"github.com/hanapph/hanap/dataset"
	"github.com/hanapph/hanap/geocode"
	"github.com/hanapph/hanap/poi"
	"github.com/hanapph/hanap/server"
)

// app wires the provider clients, caches and domain services from one
// Config. The record source is nil when the spreadsheet is not configured.
type app struct {
	cfg     *config.Config
	service *geocode.Service
	pois    *poi.Counter
	records *dataset.Source
}

func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	nominatim := geocode.NewNominatim(cfg.NominatimURL, cfg.UserAgent)
	overpass := geocode.NewOverpass(cfg.OverpassURL, cfg.UserAgent)

	if httpTrace {
		nominatim.EnableHTTPTrace(os.Stderr, true)
		overpass.EnableHTTPTrace(os.Stderr, true)
	}

	var google *geocode.GoogleGeocoder

	switch {
	case cfg.GoogleMapsAPIKey != "":
		google = geocode.NewGoogleGeocoder(cfg.GoogleMapsAPIKey)
	case cfg.GoogleMapsKeyName != "":
		key, err := geocode.GoogleAPIKeyFromADC(ctx, cfg.GoogleMapsKeyName)
		if err != nil {
			log.Warn().Err(err).Msg("commercial provider disabled: no API key found")
		} else {
			google = geocode.NewGoogleGeocoder(key)
		}
	}

	if google != nil && httpTrace {
		google.EnableHTTPTrace(os.Stderr, true)
	}

	var (
		results  cache.Store[geocode.Result]
		polygons cache.Store[geocode.Boundary]
		counts   cache.Store[poi.Counts]
		pages    cache.Store[[]dataset.Record]
	)

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.RedisAddr, err)
		}

		results = cache.NewRedis[geocode.Result](client, "geocode", cfg.GeocodeTTL)
		polygons = cache.NewRedis[geocode.Boundary](client, "polygon", cfg.PolygonTTL)
		counts = cache.NewRedis[poi.Counts](client, "poi", cfg.POITTL)
		pages = cache.NewRedis[[]dataset.Record](client, "page", cfg.DatasetPageTTL)
	} else {
		results = cache.NewMemory[geocode.Result](cfg.GeocodeTTL)
		polygons = cache.NewMemory[geocode.Boundary](cfg.PolygonTTL)
		counts = cache.NewMemory[poi.Counts](cfg.POITTL)
		pages = cache.NewMemory[[]dataset.Record](cfg.DatasetPageTTL)
	}

	store := geocode.NewPolygonStore(nominatim, polygons)
	resolver := geocode.NewResolver(nominatim, overpass, store, google)

	a := &app{
		cfg:     cfg,
		service: geocode.NewService(resolver, results),
		pois:    poi.NewCounter(overpass, counts),
	}

	if cfg.SheetsEnabled() {
		source, err := dataset.NewSource(ctx, cfg.SheetsAPIKey, cfg.SheetID, pages)
		if err != nil {
			return nil, fmt.Errorf("initializing spreadsheet source: %w", err)
		}

		a.records = source
	}

	return a, nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the resolution HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		a, err := buildApp(ctx, cfg)

		cancel()

		if err != nil {
			return err
		}

		var records server.RecordSource
		if a.records != nil {
			records = a.records
		}

		log.Info().
			Str("addr", cfg.HTTPAddr).
			Bool("commercial", cfg.GoogleMapsAPIKey != "" || cfg.GoogleMapsKeyName != "").
			Bool("redis", cfg.RedisAddr != "").
			Bool("sheets", cfg.SheetsEnabled()).
			Msg("starting server")

		return server.NewServer(a.service, a.pois, records).Run(cfg.HTTPAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
