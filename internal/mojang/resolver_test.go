package mojang

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestResolver_UUID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/profiles/minecraft/Technoblade" {
			t.Errorf("request path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"b876ec32e396476ba1158438d83c67d4","name":"Technoblade"}`)
	}))
	defer srv.Close()

	resolver := NewResolver(srv.URL, time.Second)
	id, err := resolver.UUID(context.Background(), "Technoblade")
	if err != nil {
		t.Fatalf("UUID() error = %v", err)
	}
	if id != "b876ec32e396476ba1158438d83c67d4" {
		t.Errorf("UUID() = %q", id)
	}
}

func TestResolver_UUIDNotFound(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
	}{
		{"not found", http.StatusNotFound},
		{"no content", http.StatusNoContent},
		{"server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer srv.Close()

			resolver := NewResolver(srv.URL, time.Second)
			if _, err := resolver.UUID(context.Background(), "NoSuchPlayer"); err == nil {
				t.Error("UUID() error = nil, want failure")
			}
		})
	}
}

func TestResolver_UUIDMissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"name":"Someone"}`)
	}))
	defer srv.Close()

	resolver := NewResolver(srv.URL, time.Second)
	_, err := resolver.UUID(context.Background(), "Someone")
	if !errors.Is(err, ErrNoID) {
		t.Errorf("UUID() error = %v, want ErrNoID", err)
	}
}

func TestResolver_UUIDInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "not json")
	}))
	defer srv.Close()

	resolver := NewResolver(srv.URL, time.Second)
	if _, err := resolver.UUID(context.Background(), "Someone"); err == nil {
		t.Error("UUID() error = nil, want parse failure")
	}
}

func TestResolver_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	resolver := NewResolver(srv.URL, 20*time.Millisecond)
	if _, err := resolver.UUID(context.Background(), "Someone"); err == nil {
		t.Error("UUID() error = nil, want timeout")
	}
}
