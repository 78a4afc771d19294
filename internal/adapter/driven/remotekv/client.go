// Package remotekv implements the KV port against the hosted key-value
// service's HTTP API. The service is an external collaborator: one blob
// per key, GET to read, PUT to overwrite.
package remotekv

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/jay-reddin/api-keys/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.KV = (*Client)(nil)

// maxValueBytes caps how much of a response body is read. Collections are
// small JSON arrays; anything beyond this is a misbehaving service.
const maxValueBytes = 16 << 20

// Client implements the driven.KV port over the hosted service's REST API.
// The transport wraps an httpcache memory cache so repeated loads become
// conditional requests when the service emits validators.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// New creates a Client for the service at baseURL, authenticating with the
// given bearer token. Returns an error when baseURL is empty or unparsable,
// so the composition root can fall back to the local store.
func New(baseURL, token string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("create remote kv client: %w", driven.ErrStoreUnavailable)
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse kv base URL: %w", err)
	}

	return &Client{
		httpClient: &http.Client{
			Transport: httpcache.NewMemoryCacheTransport(),
			Timeout:   30 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}, nil
}

// NewWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an
// httptest server.
func NewWithHTTPClient(httpClient *http.Client, baseURL, token string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

// Get fetches the blob stored under key. A 404 means the key has never been
// set and returns ok=false with no error.
func (c *Client) Get(ctx context.Context, key string) (string, bool, error) {
	req, err := c.newRequest(ctx, http.MethodGet, key, nil)
	if err != nil {
		return "", false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("get %q from kv service: %w", key, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxValueBytes))
		if err != nil {
			return "", false, fmt.Errorf("read kv response for %q: %w", key, err)
		}
		return string(body), true, nil
	case http.StatusNotFound:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("get %q from kv service: unexpected status %d", key, resp.StatusCode)
	}
}

// Set overwrites the blob stored under key.
func (c *Client) Set(ctx context.Context, key, value string) error {
	req, err := c.newRequest(ctx, http.MethodPut, key, strings.NewReader(value))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("set %q in kv service: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("set %q in kv service: unexpected status %d", key, resp.StatusCode)
	}

	return nil
}

// newRequest builds an authenticated request for the given key.
func (c *Client) newRequest(ctx context.Context, method, key string, body io.Reader) (*http.Request, error) {
	u := c.baseURL + "/v1/kv/" + url.PathEscape(key)

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build kv request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return req, nil
}
