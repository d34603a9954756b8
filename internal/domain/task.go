package domain

import "time"

type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "open"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// Valid reports whether the status is one of the known task states.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// Task represents a to-do item tracked by the system. OwnerID is stamped at
// creation from the authenticated identity and never changes afterwards.
type Task struct {
	ID          int64
	OwnerID     int64
	Title       string
	Notes       string
	Status      TaskStatus
	DueAt       *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}
