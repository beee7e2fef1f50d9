package hypixel

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestClient_Fetch(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":true,"player":{"karma":100}}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-key", time.Second)
	defer client.Close()

	params := url.Values{"uuid": {"u1"}}
	doc, err := client.Fetch(context.Background(), "player", params)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if gotPath != "/player" {
		t.Errorf("request path = %q, want %q", gotPath, "/player")
	}
	if gotQuery.Get("key") != "secret-key" {
		t.Errorf("request key param = %q, want the api key", gotQuery.Get("key"))
	}
	if gotQuery.Get("uuid") != "u1" {
		t.Errorf("request uuid param = %q, want %q", gotQuery.Get("uuid"), "u1")
	}

	m, ok := doc.(map[string]any)
	if !ok {
		t.Fatalf("Fetch() doc type = %T, want map", doc)
	}
	if m["success"] != true {
		t.Errorf("doc success = %v, want true", m["success"])
	}

	// the caller's parameter set must not pick up the key
	if params.Get("key") != "" {
		t.Error("Fetch() mutated the caller's params with the api key")
	}
}

func TestClient_FetchNon2xx(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
	}{
		{"forbidden", http.StatusForbidden},
		{"too many requests", http.StatusTooManyRequests},
		{"server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "k", time.Second)
			defer client.Close()

			_, err := client.Fetch(context.Background(), "player", nil)
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Fetch() error = %v, want *APIError", err)
			}
			if apiErr.StatusCode != tt.statusCode {
				t.Errorf("APIError.StatusCode = %d, want %d", apiErr.StatusCode, tt.statusCode)
			}
		})
	}
}

func TestClient_FetchInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>not json</html>")
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k", time.Second)
	defer client.Close()

	_, err := client.Fetch(context.Background(), "player", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Fetch() error = %v, want *APIError", err)
	}
	if !strings.Contains(apiErr.Error(), "not valid JSON") {
		t.Errorf("APIError = %q, want a JSON cause", apiErr.Error())
	}
}

func TestClient_FetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "k", 20*time.Millisecond)
	defer client.Close()

	_, err := client.Fetch(context.Background(), "player", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Fetch() error = %v, want *APIError", err)
	}
}

func TestClient_ErrorsNeverContainKey(t *testing.T) {
	// unreachable address forces a transport error whose url.Error would
	// carry the full request URL, key included
	client := NewClient("http://127.0.0.1:1", "super-secret", 100*time.Millisecond)
	defer client.Close()

	_, err := client.Fetch(context.Background(), "player", nil)
	if err == nil {
		t.Fatal("Fetch() error = nil, want transport error")
	}
	if strings.Contains(err.Error(), "super-secret") {
		t.Errorf("error message leaks the api key: %q", err.Error())
	}
}

func TestClient_CloseIsSafe(t *testing.T) {
	client := NewClient("http://example.com", "k", time.Second)
	client.Close()
	client.Close()

	var nilClient *Client
	nilClient.Close() // must not panic
}
