package domain

import "fmt"

// Keys of the persisted settings table. Durations are stored in minutes.
const (
	KeyFocusDuration      = "focus_duration"
	KeyShortBreakDuration = "short_break_duration"
	KeyLongBreakDuration  = "long_break_duration"
)

// Durations are the planned session lengths in minutes.
type Durations struct {
	Focus      int
	ShortBreak int
	LongBreak  int
}

func (d Durations) Validate() error {
	if d.Focus <= 0 || d.ShortBreak <= 0 || d.LongBreak <= 0 {
		return fmt.Errorf("durations must be positive minutes")
	}
	return nil
}
