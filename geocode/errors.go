// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// The only two failures surfaced to callers. Everything a provider does
// wrong in between is absorbed by the fallback chain and logged.
var (
	// ErrInvalidInput rejects a request with no usable query text before any
	// network call is made.
	ErrInvalidInput = errors.New("geocode: missing query text")

	// ErrNoMatch means every fallback step was exhausted without a usable
	// point.
	ErrNoMatch = errors.New("geocode: no match")
)

// ErrPolygonUnavailable is internal to the chain: polygon-dependent steps
// are skipped when the boundary cannot be obtained. It never reaches the
// caller.
var ErrPolygonUnavailable = errors.New("geocode: polygon unavailable")

// ProviderError classifies a failed provider call.
type ProviderError struct {
	Type    ErrorType
	Message string
	Err     error
}

// ErrorType partitions provider failures.
type ErrorType int

const (
	// ErrorTypeUnknown is an unclassified failure.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeRateLimit means the provider throttled us.
	ErrorTypeRateLimit
	// ErrorTypeQuotaExceeded means the account quota ran out.
	ErrorTypeQuotaExceeded
	// ErrorTypeTimeout is a connection or deadline timeout.
	ErrorTypeTimeout
	// ErrorTypeNotFound means the provider had no answer.
	ErrorTypeNotFound
	// ErrorTypeInvalidRequest means we built a bad request.
	ErrorTypeInvalidRequest
	// ErrorTypeNetwork is an upstream availability problem.
	ErrorTypeNetwork
)

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsTimeoutError verifies whether the error is a timeout.
func IsTimeoutError(err error) bool {
	var provErr *ProviderError
	if errors.As(err, &provErr) && provErr.Type == ErrorTypeTimeout {
		return true
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// IsRateLimitError verifies whether the error is a rate limit rejection.
func IsRateLimitError(err error) bool {
	var provErr *ProviderError
	if errors.As(err, &provErr) && provErr.Type == ErrorTypeRateLimit {
		return true
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "429")
}

// ClassifyHTTPStatus maps an upstream HTTP status to a ProviderError.
func ClassifyHTTPStatus(statusCode int) *ProviderError {
	switch statusCode {
	case http.StatusTooManyRequests:
		return &ProviderError{
			Type:    ErrorTypeRateLimit,
			Message: "rate limit reached",
		}
	case http.StatusForbidden:
		return &ProviderError{
			Type:    ErrorTypeQuotaExceeded,
			Message: "quota exceeded or access denied",
		}
	case http.StatusBadRequest:
		return &ProviderError{
			Type:    ErrorTypeInvalidRequest,
			Message: "invalid request",
		}
	case http.StatusNotFound:
		return &ProviderError{
			Type:    ErrorTypeNotFound,
			Message: "not found",
		}
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return &ProviderError{
			Type:    ErrorTypeNetwork,
			Message: fmt.Sprintf("service unavailable (status %d)", statusCode),
		}
	default:
		return &ProviderError{
			Type:    ErrorTypeUnknown,
			Message: fmt.Sprintf("HTTP error %d", statusCode),
		}
	}
}
