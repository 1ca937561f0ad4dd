package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"task_manager/internal/models"
	"task_manager/internal/repository"
)

// TaskInput is what callers supply on create and update. Any status sent
// on create is ignored; update requires a valid one.
type TaskInput struct {
	Title          string
	Description    string
	ExpirationDate time.Time
	Status         string
}

// TaskListFilter narrows List results by case-sensitive substring.
type TaskListFilter struct {
	Title  string
	Status string
}

// TaskView is the task shape returned to the transport layer.
type TaskView = models.Task

var (
	errEmptyTitle    = errors.New("title must not be empty")
	errInvalidStatus = errors.New("status must be TO_DO, IN_PROGRESS, or DONE")
)

type TaskService struct {
	tasks repository.Tasks
}

func NewTaskService(tasks repository.Tasks) *TaskService {
	return &TaskService{tasks: tasks}
}

var _ Tasks = (*TaskService)(nil)

// Create stores a new task. Status is forced to TO_DO regardless of input.
func (s *TaskService) Create(ctx context.Context, in TaskInput) (TaskView, error) {
	if strings.TrimSpace(in.Title) == "" {
		return models.Task{}, errEmptyTitle
	}
	return s.tasks.Create(ctx, models.Task{
		Title:          in.Title,
		Description:    in.Description,
		ExpirationDate: in.ExpirationDate,
		Status:         models.StatusToDo,
	})
}

func (s *TaskService) GetByID(ctx context.Context, id string) (TaskView, error) {
	return s.tasks.GetByID(ctx, id)
}

// List returns all tasks matching the filter; no matches is an empty
// slice, not an error.
func (s *TaskService) List(ctx context.Context, f TaskListFilter) ([]TaskView, error) {
	return s.tasks.List(ctx, repository.TaskFilter{
		Title:  f.Title,
		Status: f.Status,
	})
}

// Update fully replaces the stored task fields. Unlike Create, the caller
// chooses the status here, so it must be a known one.
func (s *TaskService) Update(ctx context.Context, id string, in TaskInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return errEmptyTitle
	}
	if !models.ValidStatus(in.Status) {
		return errInvalidStatus
	}
	return s.tasks.Update(ctx, id, models.Task{
		Title:          in.Title,
		Description:    in.Description,
		ExpirationDate: in.ExpirationDate,
		Status:         in.Status,
	})
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}
