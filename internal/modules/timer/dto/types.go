package dto

import "time"

type StatusOutput struct {
	Active            bool
	SessionID         string
	Mode              string
	PlannedSeconds    int
	ActiveSeconds     int
	TotalSeconds      int
	PauseSeconds      int
	RemainingSeconds  int
	IsPaused          bool
	InterruptionCount int
	TaskName          string
	Category          string
}

type ModeInput struct {
	Mode string
}

type InterruptionInput struct {
	Kind     string
	Severity string
}

type SignalInput struct {
	Kind     string
	Metadata map[string]any
}

type SessionOutput struct {
	ID                     string
	StartTime              time.Time
	EndTime                time.Time
	DurationSeconds        int
	PlannedDurationMinutes int
	Mode                   string
	Completed              bool
	TaskName               string
	Category               string
	InterruptionCount      int
}

type ListSessionsInput struct {
	Limit int
}
