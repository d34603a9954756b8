package repository

import (
	"context"
	"time"

	"tasktrack/internal/domain"
)

// TaskRepository exposes persistence operations for Task records. Every
// single-record operation is keyed by (id, ownerID); there is no way to reach
// a task through its primary key alone.
type TaskRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, task *domain.Task) (int64, error)
	Get(ctx context.Context, id, ownerID int64) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	SetStatus(ctx context.Context, id, ownerID int64, status domain.TaskStatus, completedAt *time.Time) error
	Delete(ctx context.Context, id, ownerID int64) error
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Task, error)
}
