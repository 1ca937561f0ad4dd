package service

import (
	"context"

	"task_manager/internal/repository"
)

// Authorization covers signup, credential sign-in, and token verification.
type Authorization interface {
	SignUp(ctx context.Context, username, password string) (CreatedUser, error)
	SignIn(ctx context.Context, username, password string) (TokenPair, error)
	ParseToken(accessToken string) (Claims, error)
}

// Tasks exposes task CRUD with substring filtering.
type Tasks interface {
	Create(ctx context.Context, in TaskInput) (TaskView, error)
	GetByID(ctx context.Context, id string) (TaskView, error)
	List(ctx context.Context, f TaskListFilter) ([]TaskView, error)
	Update(ctx context.Context, id string, in TaskInput) error
	Delete(ctx context.Context, id string) error
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	Tasks
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, authCfg AuthConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, authCfg),
		Tasks:         NewTaskService(repos.Tasks),
	}
}
