package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"tasktrack/internal/domain"
	"tasktrack/internal/repository"
)

var (
	// ErrMissingTitle rejects tasks without a title.
	ErrMissingTitle = errors.New("title is required")
	// ErrInvalidStatus rejects unknown task states.
	ErrInvalidStatus = errors.New("invalid task status")
)

// TaskService coordinates task operations. Every method takes the acting
// owner's id; it must come from the resolved request identity, never from
// client input.
type TaskService interface {
	Create(ctx context.Context, ownerID int64, title, notes string, dueAt *time.Time) (*domain.Task, error)
	Get(ctx context.Context, id, ownerID int64) (*domain.Task, error)
	List(ctx context.Context, ownerID int64) ([]domain.Task, error)
	Update(ctx context.Context, id, ownerID int64, title, notes string, dueAt *time.Time) (*domain.Task, error)
	SetStatus(ctx context.Context, id, ownerID int64, status domain.TaskStatus) (*domain.Task, error)
	Delete(ctx context.Context, id, ownerID int64) error
}

type taskService struct {
	tasks repository.TaskRepository
}

func NewTaskService(tasks repository.TaskRepository) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) Create(ctx context.Context, ownerID int64, title, notes string, dueAt *time.Time) (*domain.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrMissingTitle
	}

	task := &domain.Task{
		OwnerID: ownerID,
		Title:   title,
		Notes:   notes,
		Status:  domain.TaskStatusOpen,
		DueAt:   dueAt,
	}
	if _, err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Get(ctx context.Context, id, ownerID int64) (*domain.Task, error) {
	return s.tasks.Get(ctx, id, ownerID)
}

func (s *taskService) List(ctx context.Context, ownerID int64) ([]domain.Task, error) {
	return s.tasks.ListByOwner(ctx, ownerID)
}

func (s *taskService) Update(ctx context.Context, id, ownerID int64, title, notes string, dueAt *time.Time) (*domain.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrMissingTitle
	}

	task, err := s.tasks.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	task.Title = title
	task.Notes = notes
	task.DueAt = dueAt
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) SetStatus(ctx context.Context, id, ownerID int64, status domain.TaskStatus) (*domain.Task, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	var completedAt *time.Time
	if status == domain.TaskStatusDone {
		now := time.Now().UTC()
		completedAt = &now
	}

	if err := s.tasks.SetStatus(ctx, id, ownerID, status, completedAt); err != nil {
		return nil, err
	}
	return s.tasks.Get(ctx, id, ownerID)
}

func (s *taskService) Delete(ctx context.Context, id, ownerID int64) error {
	return s.tasks.Delete(ctx, id, ownerID)
}
