// Package notify provides the desktop notification capability for hywatch.
//
// Desktop notifications are best effort: delivery failure never affects
// the monitoring loop. The capability is chosen once at startup and
// injected into the monitor; when notifications are disabled or the
// platform has no notification daemon, [Noop] stands in.
package notify

import "github.com/gen2brain/beeep"

// Desktop delivers notifications through the platform notification
// facility (notify-send/dbus on Linux, toast on Windows, osascript on
// macOS).
type Desktop struct{}

// Notify shows a desktop notification. The returned error is advisory:
// callers log it at most and carry on.
func (Desktop) Notify(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Noop is the stand-in used when desktop notifications are disabled or
// unavailable. It always succeeds.
type Noop struct{}

// Notify does nothing.
func (Noop) Notify(title, message string) error {
	return nil
}
