package hywatch

import (
	"errors"
	"testing"
	"time"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(WithQuery("player.karma"))
	if !errors.Is(err, ErrAPIKeyRequired) {
		t.Errorf("New() error = %v, want ErrAPIKeyRequired", err)
	}
}

func TestNew_RequiresQuery(t *testing.T) {
	_, err := New(WithAPIKey("K"))
	if !errors.Is(err, ErrQueryRequired) {
		t.Errorf("New() error = %v, want ErrQueryRequired", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	m, err := New(WithAPIKey("K"), WithQuery("player.karma"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if m.Endpoint() != "player" {
		t.Errorf("Endpoint() = %q, want %q", m.Endpoint(), "player")
	}
	if m.Interval() != DefaultInterval {
		t.Errorf("Interval() = %v, want %v", m.Interval(), DefaultInterval)
	}
}

func TestOption_Validation(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"zero interval", WithInterval(0)},
		{"negative interval", WithInterval(-time.Second)},
		{"empty endpoint", WithEndpoint("")},
		{"nil notifier", WithNotifier(nil)},
		{"nil logger", WithLogger(nil)},
		{"nil output", WithOutput(nil)},
		{"empty base URL", WithBaseURL("")},
		{"empty mojang URL", WithMojangURL("")},
		{"zero history size", WithHistorySize(0)},
		{"nil outcome func", WithOutcomeFunc(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(WithAPIKey("K"), WithQuery("q"), tt.opt)
			if err == nil {
				t.Error("New() error = nil, want validation error")
			}
		})
	}
}

func TestWithParams_Copies(t *testing.T) {
	params := map[string]string{"page": "1"}
	m, err := New(
		WithAPIKey("K"),
		WithQuery("q"),
		WithEndpoint("leaderboards"),
		WithParams(params),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	params["page"] = "2"
	if m.params["page"] != "1" {
		t.Errorf("params[page] = %q after caller mutation, want %q", m.params["page"], "1")
	}
}
