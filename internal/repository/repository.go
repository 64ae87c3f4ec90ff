package repository

import (
	"context"
	"database/sql"
	"errors"

	"tasklist/internal/models"
)

// Storage-level sentinels. ErrTaskNotFound covers both "no such row" and
// "row owned by someone else": the two cases are indistinguishable on
// purpose, so a caller cannot probe for foreign task ids.
var (
	ErrDuplicateUser = errors.New("username or email already taken")
	ErrTaskNotFound  = errors.New("task not found")
)

type Users interface {
	Create(ctx context.Context, username, email, passwordHash string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type Tasks interface {
	ListByOwner(ctx context.Context, userID int64) ([]models.Task, error)
	Create(ctx context.Context, userID int64, title string, description *string) (models.Task, error)
	Update(ctx context.Context, userID, taskID int64, patch models.TaskPatch) (models.Task, error)
	Delete(ctx context.Context, userID, taskID int64) error
}

type Repository struct {
	Users Users
	Tasks Tasks
}

func NewRepository(conn *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(conn),
		Tasks: NewTaskRepository(conn),
	}
}
