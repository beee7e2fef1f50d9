package hypixel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxResponseBodySize = 1 << 20 // 1MB

// connection pooling limits; one host is polled repeatedly for the whole
// process lifetime, so keep a small warm pool
const (
	defaultMaxIdleConns    = 10
	defaultIdleConnTimeout = 60 * time.Second
)

// APIError is a failed fetch: network error, timeout, non-2xx status, or a
// body that is not JSON. It is transient from the monitor's point of view
// and never fatal; the next cycle retries.
type APIError struct {
	// Endpoint is the endpoint path that was fetched.
	Endpoint string

	// StatusCode is the HTTP status code, or zero if the request failed
	// before a response arrived.
	StatusCode int

	// Err is the underlying cause.
	Err error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("hypixel %s: status %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("hypixel %s: %v", e.Endpoint, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Client fetches JSON documents from the Hypixel API.
//
// The API key is injected into every request and never appears in errors
// or logs. Timeouts are applied per request via context. Response bodies
// are capped at 1MB.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	timeout    time.Duration
}

// NewClient creates a Hypixel API [Client].
//
// baseURL is the API root without a trailing slash, normally
// https://api.hypixel.net. timeout bounds each request.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			// no default timeout - per-request timeouts via context
			Transport: &http.Transport{
				MaxIdleConns:    defaultMaxIdleConns,
				IdleConnTimeout: defaultIdleConnTimeout,
			},
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
	}
}

// Fetch performs one authenticated GET against an endpoint and decodes the
// response body as JSON.
//
// params is copied before the key is added, so callers can reuse one
// parameter set for the whole run. All failure modes return a [*APIError];
// nothing on this path panics or escalates.
func (c *Client) Fetch(ctx context.Context, endpoint string, params url.Values) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	query := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			query.Add(k, v)
		}
	}
	query.Set("key", c.apiKey)

	reqURL := c.baseURL + "/" + endpoint + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &APIError{Endpoint: endpoint, Err: fmt.Errorf("failed to create request: %w", redactURLError(err))}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Endpoint: endpoint, Err: fmt.Errorf("request failed: %w", redactURLError(err))}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, &APIError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to read response body: %w", err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		}
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &APIError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("response is not valid JSON: %w", err),
		}
	}

	return doc, nil
}

// Close closes idle connections in the client's pool.
//
// Safe to call multiple times; the client remains usable afterwards.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}

// redactURLError strips the request URL out of transport errors. The URL
// query carries the API key, which must never reach errors or logs.
func redactURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Err != nil {
		return uerr.Err
	}
	return err
}
