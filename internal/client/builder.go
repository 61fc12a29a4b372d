/*
// Copyright contributors to the Virtual Machine Manager for Go project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
*/

// Package client implements the CLI-facing HTTP stubs, grounded on
// original_source's client/config.rs RequestBuilder<State> typestate
// (NeedsEndpoint / ReadyToSend). Go has no zero-sized phantom marker
// types, so the typestate is realized as two distinct builder types
// instead.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// EndpointBuilder holds a daemon base URL and an http.Client but has
// not yet been pointed at a specific control-plane route. It cannot
// send a request — only WithPath can produce something that can.
type EndpointBuilder struct {
	base       *url.URL
	httpClient *http.Client
}

// NewEndpointBuilder parses daemonURL ("tcp://host:port" or
// "unix://<percent-encoded-path>") and builds the transport each
// subsequent request reuses: a plain HTTP transport for tcp, a
// unix-socket-dialing transport for unix.
func NewEndpointBuilder(daemonURL string, verbose bool) (*EndpointBuilder, error) {
	parsed, err := url.Parse(daemonURL)
	if err != nil {
		return nil, fmt.Errorf("parsing daemon url %q: %w", daemonURL, err)
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	base := &url.URL{Scheme: "http", Host: "daemon"}

	switch parsed.Scheme {
	case "tcp":
		base.Host = parsed.Host
	case "unix":
		socketPath := parsed.Path
		httpClient.Transport = &http.Transport{
			DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, "unix", socketPath)
			},
		}
	default:
		return nil, fmt.Errorf("unsupported daemon url scheme: %s", parsed.Scheme)
	}

	if verbose {
		httpClient.Transport = &verboseTransport{inner: roundTripperOrDefault(httpClient.Transport)}
	}

	return &EndpointBuilder{base: base, httpClient: httpClient}, nil
}

func roundTripperOrDefault(rt http.RoundTripper) http.RoundTripper {
	if rt != nil {
		return rt
	}
	return http.DefaultTransport
}

// WithPath resolves path against the daemon base URL, producing a
// ReadyRequest — the typestate transition from "needs endpoint" to
// "ready to send".
func (b *EndpointBuilder) WithPath(method, path string) *ReadyRequest {
	u := *b.base
	u.Path = path
	return &ReadyRequest{
		method:     method,
		url:        u.String(),
		httpClient: b.httpClient,
	}
}

// ReadyRequest is fully addressed and can be sent; it cannot be
// constructed except through EndpointBuilder.WithPath.
type ReadyRequest struct {
	method     string
	url        string
	body       io.Reader
	httpClient *http.Client
}

// WithJSONBody attaches a raw JSON body to the request.
func (r *ReadyRequest) WithJSONBody(body []byte) *ReadyRequest {
	r.body = bytes.NewReader(body)
	return r
}

// Send issues the request and returns the response body alongside the
// status-derived error, if any (the inverse of the control plane's
// canonical error->status mapping, applied in errors.go).
func (r *ReadyRequest) Send(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, r.method, r.url, r.body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request to %s: %w", r.url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode >= 300 {
		return data, errorFromStatus(resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return data, nil
}
