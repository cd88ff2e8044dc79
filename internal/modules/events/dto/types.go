package dto

import "time"

type EventOutput struct {
	ID             int64
	SessionID      string
	Kind           string
	ElapsedSeconds int
	Timestamp      time.Time
	Metadata       map[string]any
}

type RangeInput struct {
	From time.Time
	To   time.Time
}

type FlushOutput struct {
	Flushed int
}
