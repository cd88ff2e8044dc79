package domain

import "time"

// Record is the persisted summary of a destroyed session. DurationSeconds is
// active time only; pauses are excluded. Records are written exactly once and
// never updated.
type Record struct {
	ID                     string
	StartTime              time.Time
	EndTime                time.Time
	DurationSeconds        int
	PlannedDurationMinutes int
	Mode                   Mode
	Completed              bool
	TaskName               string
	Category               string
	InterruptionCount      int
}
