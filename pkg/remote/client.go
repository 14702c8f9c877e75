// Package remote fetches resource collections from the remote datastore and
// normalizes them into canonical station sets. A fetch that fails (network
// error, timeout, non-success status, malformed body) degrades to an empty
// set: reconciliation proceeds treating every source record as unmatched
// rather than aborting the run.
package remote

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/guangfu250923/fieldsync/pkg/errors"
	"github.com/guangfu250923/fieldsync/pkg/logging"
	"github.com/guangfu250923/fieldsync/pkg/resources"
	"github.com/guangfu250923/fieldsync/pkg/stations"
)

// DefaultBaseURL is the production datastore host.
const DefaultBaseURL = "https://guangfu250923.pttapp.cc"

// DefaultTimeout bounds each collection read. There is no retry: a timed-out
// fetch degrades to "remote empty" and processing continues.
const DefaultTimeout = 30 * time.Second

// Client reads remote resource collections.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the datastore base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
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

// WithHTTPClient substitutes the underlying HTTP client (tests use this).
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

// New creates a remote client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured datastore base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchStations reads the resource's collection and normalizes it. On any
// failure it returns an empty set together with the error; callers report
// the error and reconcile against the empty set.
func (c *Client) FetchStations(ctx context.Context, res *resources.Resource) (*stations.Set, error) {
	set := stations.NewSet()

	endpoint := res.Endpoint(c.baseURL)
	c.logger.Info().
		Str("resource", string(res.Type)).
		Str("endpoint", endpoint).
		Msg("fetching remote collection")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return set, &errors.APIError{Endpoint: endpoint, Message: "building request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return set, &errors.APIError{Endpoint: endpoint, Message: "request failed", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return set, &errors.APIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: "unexpected status"}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return set, &errors.APIError{Endpoint: endpoint, Message: "reading response body", Err: err}
	}

	items, err := decodeCollection(body)
	if err != nil {
		return set, &errors.APIError{Endpoint: endpoint, Message: "decoding response body", Err: err}
	}

	for _, item := range items {
		set.Put(c.convert(item, res))
	}

	c.logger.Info().
		Str("resource", string(res.Type)).
		Int("count", set.Len()).
		Msg("fetched remote collection")
	return set, nil
}
