// Package mojang resolves Minecraft usernames to account UUIDs for
// hywatch.
//
// Resolution happens once at startup and is fatal when it fails; the
// monitor never retries it. This package is internal to hywatch.
package mojang

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxResponseBodySize = 64 << 10 // profile responses are tiny

// ErrNoID indicates the profile response did not contain an id field.
var ErrNoID = errors.New("profile response contains no id field")

// Resolver looks up account UUIDs by username via the Mojang profile API.
type Resolver struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
}

// NewResolver creates a [Resolver].
//
// baseURL is the API root without a trailing slash, normally
// https://api.mojang.com. timeout bounds the lookup request.
func NewResolver(baseURL string, timeout time.Duration) *Resolver {
	return &Resolver{
		httpClient: &http.Client{},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		timeout:    timeout,
	}
}

// UUID resolves a username to its account UUID.
//
// A single timeout-bounded GET is issued; there is no caching across
// calls. Any transport failure, non-200 status, or a response without an
// id field is an error. The caller treats failure as fatal to startup.
func (r *Resolver) UUID(ctx context.Context, username string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	reqURL := r.baseURL + "/users/profiles/minecraft/" + username
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("lookup request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Mojang answers 404 (historically 204) for unknown names
		return "", fmt.Errorf("no profile for username %q (status %d)", username, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return "", fmt.Errorf("failed to read profile response: %w", err)
	}

	var profile struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &profile); err != nil {
		return "", fmt.Errorf("profile response is not valid JSON: %w", err)
	}
	if profile.ID == "" {
		return "", ErrNoID
	}

	return profile.ID, nil
}
