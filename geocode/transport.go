// Copyright 2026 The Hanap Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"io"
	"net/http"
	"time"

	"github.com/hanapph/hanap/utils/httputils"
)

// providerClient builds the HTTP client shared by the provider
// implementations. The identifying User-Agent rides on the transport so
// every request carries it, as the community providers' usage policies
// require.
func providerClient(timeout time.Duration, userAgent string) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &httputils.AppendRequestHeadersRoundTripper{
			Transport: http.DefaultTransport,
			Headers: map[string]string{
				"User-Agent": userAgent,
				"Accept":     "application/json",
			},
		},
	}
}

// enableTrace wraps the client's transport with a wire dump.
func enableTrace(c *http.Client, w io.Writer, body bool) {
	transport := c.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	c.Transport = &httputils.LoggingRoundTripper{
		Transport: transport,
		Writer:    w,
		DumpBody:  body,
	}
}

// EnableHTTPTrace dumps this client's wire traffic to w.
func (c *NominatimClient) EnableHTTPTrace(w io.Writer, body bool) {
	enableTrace(c.httpClient, w, body)
}

// EnableHTTPTrace dumps this client's wire traffic to w.
func (c *OverpassClient) EnableHTTPTrace(w io.Writer, body bool) {
	enableTrace(c.httpClient, w, body)
}

// EnableHTTPTrace dumps this client's wire traffic to w.
func (g *GoogleGeocoder) EnableHTTPTrace(w io.Writer, body bool) {
	enableTrace(g.httpClient, w, body)
}
