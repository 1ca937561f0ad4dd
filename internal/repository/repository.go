package repository

import (
	"context"
	"database/sql"

	"task_manager/internal/models"
)

// Users persists account records. GetByUsername returns (nil, nil) on miss.
type Users interface {
	Create(ctx context.Context, username, passwordHash string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// TaskFilter narrows List results. A set field is matched as a
// case-sensitive substring against the stored column; an empty field is
// unconstrained.
type TaskFilter struct {
	Title  string
	Status string
}

// Tasks persists task records. Read, update, and delete all report a
// missing id as models.ErrTaskNotFound.
type Tasks interface {
	Create(ctx context.Context, t models.Task) (models.Task, error)
	GetByID(ctx context.Context, id string) (models.Task, error)
	List(ctx context.Context, f TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, id string, t models.Task) error
	Delete(ctx context.Context, id string) error
}

type Repository struct {
	Users Users
	Tasks Tasks
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(db),
		Tasks: NewTaskRepository(db),
	}
}
