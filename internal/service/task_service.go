package service

import (
	"context"
	"errors"

	"tasklist/internal/models"
	"tasklist/internal/repository"
)

// ErrTaskNotFound covers both a missing task and a task owned by another
// user; the distinction never crosses this boundary.
var ErrTaskNotFound = errors.New("task not found")

// TaskService applies owner-scoped task operations on top of storage.
type TaskService struct {
	tasks repository.Tasks
}

func NewTaskService(tasks repository.Tasks) *TaskService {
	return &TaskService{tasks: tasks}
}

func (s *TaskService) List(ctx context.Context, userID int64) ([]models.Task, error) {
	return s.tasks.ListByOwner(ctx, userID)
}

func (s *TaskService) Create(ctx context.Context, userID int64, title string, description *string) (models.Task, error) {
	return s.tasks.Create(ctx, userID, title, description)
}

func (s *TaskService) Update(ctx context.Context, userID, taskID int64, patch models.TaskPatch) (models.Task, error) {
	task, err := s.tasks.Update(ctx, userID, taskID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID int64) error {
	if err := s.tasks.Delete(ctx, userID, taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	return nil
}
