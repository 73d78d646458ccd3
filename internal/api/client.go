// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// DefaultBaseURL is the portal URL used when none is configured.
	DefaultBaseURL = "http://localhost:8080"

	// DefaultTimeout is the timeout for ordinary JSON requests.
	// Streaming requests carry no timeout; they are context-controlled.
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize caps response bodies read into memory.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024

	// requestsPerSecond throttles the client so screen refreshes and
	// rapid-fire submits stay polite to the portal.
	requestsPerSecond = 10
	requestBurst      = 20
)

// Error variables for common portal failures.
var (
	// ErrUnauthorized indicates the session cookie is missing or expired.
	ErrUnauthorized = errors.New("not authenticated")

	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates too many requests were made.
	ErrRateLimited = errors.New("rate limited")
)

// APIError is a non-2xx response from the portal.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("portal error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("portal error (HTTP %d)", e.Status)
}

// Is allows APIError values to be matched against the sentinel errors.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrRateLimited:
		return e.Status == http.StatusTooManyRequests
	}
	return false
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is the portal API client. It is safe for use from the single
// TUI goroutine plus the streaming goroutine bubbletea commands run on.
type Client struct {
	baseURL string

	// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
	httpClient   *http.Client
	streamClient *http.Client

	limiter *rate.Limiter
}

// NewClient creates a client for the portal at baseURL. The session cookie
// set by /api/auth/login is held in an in-memory jar shared by both the
// JSON and streaming transports; nothing is persisted.
func NewClient(baseURL string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	// cookiejar.New only fails on a bad PublicSuffixList option.
	jar, _ := cookiejar.New(nil)

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: transport,
			Jar:       jar,
			Timeout:   DefaultTimeout,
		},
		streamClient: &http.Client{
			Transport: transport,
			Jar:       jar,
			// No timeout for streaming - controlled via context.
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
	}
}

// BaseURL returns the configured portal URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetTimeout overrides the per-request timeout for non-streaming calls.
// The streaming client stays unbounded; callers control it via context.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.httpClient.Timeout = d
	}
}

// =============================================================================
// REQUEST HELPERS
// =============================================================================

// getJSON issues a GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

// postJSON issues a POST with a JSON body and decodes the response into
// out when out is non-nil.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

// putJSON issues a PUT with a JSON body.
func (c *Client) putJSON(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

// doJSON performs one JSON request/response round trip.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.handleErrorResponse(resp)
	}

	if out == nil {
		return nil
	}

	limited := io.LimitReader(resp.Body, MaxResponseSize)
	if err := json.NewDecoder(limited).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// postMultipart issues a multipart POST (avatar upload). The caller builds
// the body; contentType carries the boundary.
func (c *Client) postMultipart(ctx context.Context, path, contentType string, body io.Reader, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.handleErrorResponse(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(io.LimitReader(resp.Body, MaxResponseSize)).Decode(out)
}

// handleErrorResponse converts a non-2xx response into an *APIError,
// preferring a JSON {"error": ...} message and falling back to plain text.
func (c *Client) handleErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))

	apiErr := &APIError{Status: resp.StatusCode}

	var wire struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &wire); err == nil {
		if wire.Error != "" {
			apiErr.Message = wire.Error
		} else if wire.Message != "" {
			apiErr.Message = wire.Message
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return apiErr
}

// pathEscape escapes a path segment such as a solicitation source ID.
func pathEscape(s string) string {
	return url.PathEscape(s)
}
