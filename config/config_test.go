// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}

	if cfg.GeocodeTTL != 14*24*time.Hour {
		t.Errorf("GeocodeTTL = %v, want 336h", cfg.GeocodeTTL)
	}

	if cfg.SheetsEnabled() {
		t.Error("sheets must be disabled without credentials")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("POI_TTL", "1h")
	t.Setenv("SHEETS_API_KEY", "k")
	t.Setenv("SHEET_ID", "s")
	t.Setenv("DEBUG", "TRUE")

	cfg := Load()

	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want :9090", cfg.HTTPAddr)
	}

	if cfg.POITTL != time.Hour {
		t.Errorf("POITTL = %v, want 1h", cfg.POITTL)
	}

	if !cfg.SheetsEnabled() {
		t.Error("sheets must be enabled with both credentials set")
	}

	if !cfg.Debug {
		t.Error("DEBUG=TRUE must enable debug")
	}
}

func TestDurationEnvBadValue(t *testing.T) {
	t.Setenv("POI_TTL", "soon")

	if got := Load().POITTL; got != 12*time.Hour {
		t.Errorf("POITTL = %v, want fallback 12h", got)
	}
}
