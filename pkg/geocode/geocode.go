// Package geocode resolves coordinates to formatted addresses through the
// Google Maps Geocoding API. Lookups exist solely to serve the fill-if-empty
// field policy: a failed, skipped, or disabled lookup leaves the address out
// of the delta and never interrupts reconciliation.
//
// Calls run behind a circuit breaker so a dead geocoder stops being probed
// once per record for the rest of the run. There are no retries; a failure
// simply means "no address" for that record.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/guangfu250923/fieldsync/pkg/errors"
	"github.com/guangfu250923/fieldsync/pkg/logging"
)

// DefaultBaseURL is the Google Maps Geocoding endpoint.
const DefaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// DefaultTimeout bounds each lookup request.
const DefaultTimeout = 30 * time.Second

// Language requests Traditional Chinese formatted addresses.
const Language = "zh_tw"

// Lookup resolves a coordinate pair to a formatted address. The reconciler
// depends on this signature, not on the client type, so tests substitute
// plain functions.
type Lookup func(ctx context.Context, lat, lng float64) (string, error)

// Client is a geocoding API client.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[string]
	logger  *zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the geocoding endpoint (tests use this).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a geocoding client. An empty API key yields a disabled client
// whose lookups report ErrNoAPIKey; the fill-if-empty policy degrades
// gracefully instead of erroring.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:    "geocode",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return c
}

// Enabled reports whether lookups can run at all.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Lookup resolves (lat, lng) to a formatted address.
func (c *Client) Lookup(ctx context.Context, lat, lng float64) (string, error) {
	if !c.Enabled() {
		return "", errors.ErrNoAPIKey
	}

	address, err := c.breaker.Execute(func() (string, error) {
		return c.lookup(ctx, lat, lng)
	})
	if err != nil {
		c.logger.Warn().
			Float64("lat", lat).
			Float64("lng", lng).
			Err(err).
			Msg("address lookup failed")
		return "", err
	}

	c.logger.Debug().
		Float64("lat", lat).
		Float64("lng", lng).
		Str("address", address).
		Msg("resolved address")
	return address, nil
}

func (c *Client) lookup(ctx context.Context, lat, lng float64) (string, error) {
	query := url.Values{}
	query.Set("latlng", fmt.Sprintf("%v,%v", lat, lng))
	query.Set("key", c.apiKey)
	query.Set("language", Language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", &errors.LookupError{Lat: lat, Lng: lng, Message: "building request", Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &errors.LookupError{Lat: lat, Lng: lng, Message: "request failed", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &errors.LookupError{Lat: lat, Lng: lng, Message: fmt.Sprintf("status %d", resp.StatusCode)}
	}

	var body struct {
		Status  string `json:"status"`
		Results []struct {
			FormattedAddress string `json:"formatted_address"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &errors.LookupError{Lat: lat, Lng: lng, Message: "decoding response", Err: err}
	}

	if body.Status != "OK" || len(body.Results) == 0 {
		return "", &errors.LookupError{Lat: lat, Lng: lng, Status: body.Status}
	}
	return body.Results[0].FormattedAddress, nil
}
