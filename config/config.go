// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the process configuration from the environment, with
// an optional .env file for development.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full process configuration. Optional collaborators stay
// disabled when their variables are absent.
type Config struct {
	HTTPAddr  string
	UserAgent string

	NominatimURL string
	OverpassURL  string

	// GoogleMapsAPIKey enables the commercial provider. When empty and
	// GoogleMapsKeyName is set, the key is discovered through ADC.
	GoogleMapsAPIKey  string
	GoogleMapsKeyName string

	// RedisAddr switches the caches to a shared Redis backend.
	RedisAddr     string
	RedisPassword string

	SheetsAPIKey string
	SheetID      string

	GeocodeTTL     time.Duration
	PolygonTTL     time.Duration
	POITTL         time.Duration
	DatasetPageTTL time.Duration

	Debug bool
}

// Load reads the environment. A missing .env file is not an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPAddr:  getEnv("HTTP_ADDR", ":8080"),
		UserAgent: getEnv("USER_AGENT", "hanap/1.0 (+https://github.com/hanapph/hanap)"),

		NominatimURL: getEnv("NOMINATIM_URL", ""),
		OverpassURL:  getEnv("OVERPASS_URL", ""),

		GoogleMapsAPIKey:  getEnv("GOOGLE_MAPS_API_KEY", ""),
		GoogleMapsKeyName: getEnv("GOOGLE_MAPS_KEY_NAME", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		SheetsAPIKey: getEnv("SHEETS_API_KEY", ""),
		SheetID:      getEnv("SHEET_ID", ""),

		GeocodeTTL:     durationEnv("GEOCODE_TTL", 14*24*time.Hour),
		PolygonTTL:     durationEnv("POLYGON_TTL", 30*24*time.Hour),
		POITTL:         durationEnv("POI_TTL", 12*time.Hour),
		DatasetPageTTL: durationEnv("DATASET_PAGE_TTL", 30*time.Minute),

		Debug: strings.EqualFold(getEnv("DEBUG", "false"), "true"),
	}
}

// SheetsEnabled reports whether the spreadsheet record source is configured.
func (c *Config) SheetsEnabled() bool {
	return c.SheetsAPIKey != "" && c.SheetID != ""
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}

	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}

	return d
}
