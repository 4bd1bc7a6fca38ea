// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

// Package server exposes the resolution engine over HTTP for the dispatch
// frontend.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/hanapph/hanap/dataset"
	"github.com/hanapph/hanap/geocode"
	"github.com/hanapph/hanap/poi"
	"github.com/hanapph/hanap/spatial"
)

// LocationResolver is the slice of the resolution facade the API consumes.
type LocationResolver interface {
	Resolve(ctx context.Context, query geocode.Query) (*geocode.Result, error)
	Boundary(ctx context.Context, barangay, city, province string) (*geocode.Boundary, error)
}

// POICounter surveys points of interest around a coordinate.
type POICounter interface {
	Near(ctx context.Context, center spatial.Point, radius float64) (poi.Counts, error)
}

// RecordSource serves pages of address records.
type RecordSource interface {
	Page(ctx context.Context, page int) ([]dataset.Record, error)
}

// Server wires the collaborators behind the API routes. records may be nil
// when no spreadsheet is configured.
type Server struct {
	resolver LocationResolver
	pois     POICounter
	records  RecordSource
}

// NewServer creates the API server.
func NewServer(resolver LocationResolver, pois POICounter, records RecordSource) *Server {
	return &Server{resolver: resolver, pois: pois, records: records}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	r.GET("/api/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/api/resolve", s.resolve)
	r.GET("/api/boundary", s.boundary)
	r.GET("/api/poi/counts", s.poiCounts)
	r.GET("/api/records", s.listRecords)

	return r
}

// Run serves the API on addr until the listener fails.
func (s *Server) Run(addr string) error {
	log.Info().Str("addr", addr).Msg("serving API")

	return s.Router().Run(addr)
}

func (s *Server) resolve(ctx *gin.Context) {
	var query geocode.Query
	if err := ctx.ShouldBindJSON(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})

		return
	}

	result, err := s.resolver.Resolve(ctx.Request.Context(), query)

	switch {
	case errors.Is(err, geocode.ErrInvalidInput):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "query text or hints are required"})
	case errors.Is(err, geocode.ErrNoMatch):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no location matched"})
	case err != nil:
		log.Error().Err(err).Str("query", query.RawText).Msg("resolve failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "resolution failed"})
	default:
		ctx.JSON(http.StatusOK, result)
	}
}

func (s *Server) boundary(ctx *gin.Context) {
	barangay := ctx.Query("barangay")
	if barangay == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "barangay query parameter is required"})

		return
	}

	boundary, err := s.resolver.Boundary(ctx.Request.Context(), barangay, ctx.Query("city"), ctx.Query("province"))

	switch {
	case errors.Is(err, geocode.ErrPolygonUnavailable):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no boundary found"})
	case err != nil:
		log.Error().Err(err).Str("barangay", barangay).Msg("boundary lookup failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "boundary lookup failed"})
	default:
		ctx.JSON(http.StatusOK, boundary)
	}
}

func (s *Server) poiCounts(ctx *gin.Context) {
	lat, errLat := strconv.ParseFloat(ctx.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(ctx.Query("lng"), 64)

	if errLat != nil || errLng != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng query parameters are required"})

		return
	}

	center := spatial.Point{Lat: lat, Lng: lng}
	if !center.Valid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})

		return
	}

	var radius float64
	if raw := ctx.Query("radius"); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil || r <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid radius parameter"})

			return
		}

		radius = r
	}

	counts, err := s.pois.Near(ctx.Request.Context(), center, radius)
	if err != nil {
		log.Error().Err(err).Msg("POI survey failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "POI survey failed"})

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"counts": counts, "total": counts.Total()})
}

func (s *Server) listRecords(ctx *gin.Context) {
	if s.records == nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "no record source configured"})

		return
	}

	page := 1

	if raw := ctx.Query("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid page parameter"})

			return
		}

		page = p
	}

	records, err := s.records.Page(ctx.Request.Context(), page)
	if err != nil {
		log.Error().Err(err).Int("page", page).Msg("record page fetch failed")
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "record source unavailable"})

		return
	}

	ctx.JSON(http.StatusOK, gin.H{"page": page, "records": records})
}
