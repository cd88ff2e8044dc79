package dto

import "time"

type CreateTaskInput struct {
	Name           string
	Tag            string
	PlannedMinutes int
	ParentID       *int64
	Color          string
}

type TaskOutput struct {
	ID             int64
	Name           string
	Tag            string
	PlannedMinutes int
	CreatedAt      time.Time
	IsActive       bool
	Color          string
	ParentID       *int64
	IsCompleted    bool
}
