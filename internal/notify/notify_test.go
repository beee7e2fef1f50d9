package notify

import "testing"

// notifier mirrors the capability interface the monitor expects.
type notifier interface {
	Notify(title, message string) error
}

var (
	_ notifier = Desktop{}
	_ notifier = Noop{}
)

func TestNoop(t *testing.T) {
	if err := (Noop{}).Notify("title", "message"); err != nil {
		t.Errorf("Noop.Notify() = %v, want nil", err)
	}
}
