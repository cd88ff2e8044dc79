package domain

import (
	"errors"
	"fmt"
)

// ErrMonitorTimeout marks a plugin call that exceeded its deadline.
var ErrMonitorTimeout = errors.New("monitor plugin timed out")

// ErrChecksumMismatch marks a plugin binary that does not match its
// manifest digest.
var ErrChecksumMismatch = errors.New("monitor binary checksum mismatch")

// Manifest describes one installed monitor plugin binary. SHA256 is
// optional; when present the binary is verified against it before
// lifecycle checks.
type Manifest struct {
	Name        string `json:"name"`
	Binary      string `json:"binary"`
	SHA256      string `json:"sha256,omitempty"`
	Enabled     bool   `json:"enabled"`
	PollSeconds int    `json:"poll_seconds"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("monitor name is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("monitor binary is required")
	}
	if m.PollSeconds < 0 {
		return fmt.Errorf("poll interval must be non-negative")
	}
	return nil
}

// Metadata is what a monitor plugin reports about itself.
type Metadata struct {
	Name         string
	Version      string
	Capabilities []string
}

// Sample is one observation of the desktop environment: the focused
// application, its window title, and whether do-not-disturb is engaged.
type Sample struct {
	App         string
	WindowTitle string
	DNDActive   bool
}

// Changed reports which signal-worthy deltas separate two samples.
func (s Sample) Changed(prev Sample) (focusShift, dndToggled bool) {
	focusShift = s.App != prev.App || s.WindowTitle != prev.WindowTitle
	dndToggled = s.DNDActive != prev.DNDActive
	return focusShift, dndToggled
}
