package service

import (
	"context"

	"tasklist/internal/models"
	"tasklist/internal/repository"
)

// Authorization covers registration, login, and token verification.
type Authorization interface {
	Register(ctx context.Context, username, email, password string) (models.User, error)
	Login(ctx context.Context, email, password string) (string, models.User, error)
	ParseToken(accessToken string) (int64, error)
}

// Tasks exposes owner-scoped task operations. Every call takes the
// verified user id explicitly; there is no ambient identity.
type Tasks interface {
	List(ctx context.Context, userID int64) ([]models.Task, error)
	Create(ctx context.Context, userID int64, title string, description *string) (models.Task, error)
	Update(ctx context.Context, userID, taskID int64, patch models.TaskPatch) (models.Task, error)
	Delete(ctx context.Context, userID, taskID int64) error
}

// Service aggregates the sub-services the HTTP layer depends on.
type Service struct {
	Authorization
	Tasks
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, signingKey []byte) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, signingKey),
		Tasks:         NewTaskService(repos.Tasks),
	}
}
