package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"tasklist/internal/models"
)

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

var _ Tasks = (*TaskRepository)(nil)

const (
	// Every statement that touches an existing row conjoins the owner into
	// the predicate. Ownership is part of the query, never a separate
	// check-then-act step.
	selectTasksByOwnerSQL = `
		SELECT id, user_id, title, description, completed, created_at
		FROM tasks WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`

	insertTaskSQL = `INSERT INTO tasks (user_id, title, description, completed, created_at) VALUES (?, ?, ?, ?, ?)`

	selectOwnedTaskSQL = `
		SELECT id, user_id, title, description, completed, created_at
		FROM tasks WHERE id = ? AND user_id = ?`

	deleteOwnedTaskSQL = `DELETE FROM tasks WHERE id = ? AND user_id = ?`

	ownershipClause = ` WHERE id = ? AND user_id = ?`
)

// ListByOwner returns the user's tasks, newest-created first. No rows is
// an empty slice, not an error.
func (r *TaskRepository) ListByOwner(ctx context.Context, userID int64) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, selectTasksByOwnerSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select tasks for user %d: %w", userID, err)
	}
	defer rows.Close()

	tasks := make([]models.Task, 0, 16)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate task rows: %w", err)
	}
	return tasks, nil
}

// Create inserts a task owned by userID. A nil description persists as
// SQL NULL.
func (r *TaskRepository) Create(ctx context.Context, userID int64, title string, description *string) (models.Task, error) {
	createdAt := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, insertTaskSQL, userID, title, description, false, createdAt)
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task for user %d: %w", userID, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return models.Task{}, fmt.Errorf("get last insert id for task: %w", err)
	}
	return models.Task{
		ID:          lastID,
		UserID:      userID,
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   createdAt,
	}, nil
}

// Update applies a typed partial update to a task the user owns and
// returns the updated row. Zero matched rows means the task does not
// exist or belongs to someone else; both report ErrTaskNotFound.
func (r *TaskRepository) Update(ctx context.Context, userID, taskID int64, patch models.TaskPatch) (models.Task, error) {
	query, args, err := buildTaskUpdate(userID, taskID, patch)
	if err != nil {
		return models.Task{}, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task %d: %w", taskID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Task{}, fmt.Errorf("rows affected for task %d: %w", taskID, err)
	}
	if affected == 0 {
		return models.Task{}, ErrTaskNotFound
	}

	return r.getOwned(ctx, userID, taskID)
}

// Delete removes a task the user owns. Deleting an absent or foreign id
// reports ErrTaskNotFound, so the call is idempotent in effect.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID int64) error {
	res, err := r.db.ExecContext(ctx, deleteOwnedTaskSQL, taskID, userID)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", taskID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for task %d: %w", taskID, err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// buildTaskUpdate compiles the patch into a parameterized UPDATE. Only
// supplied fields become SET assignments; the ownership clause is
// appended last and is never optional.
func buildTaskUpdate(userID, taskID int64, patch models.TaskPatch) (string, []any, error) {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 5)

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, *patch.Completed)
	}
	if len(sets) == 0 {
		return "", nil, errors.New("empty task patch")
	}

	query := "UPDATE tasks SET " + strings.Join(sets, ", ") + ownershipClause
	args = append(args, taskID, userID)
	return query, args, nil
}

func (r *TaskRepository) getOwned(ctx context.Context, userID, taskID int64) (models.Task, error) {
	row := r.db.QueryRowContext(ctx, selectOwnedTaskSQL, taskID, userID)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, fmt.Errorf("select task %d: %w", taskID, err)
	}
	return t, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var t models.Task
	var desc sql.NullString
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &desc, &t.Completed, &t.CreatedAt); err != nil {
		return models.Task{}, err
	}
	if desc.Valid {
		t.Description = &desc.String
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return t, nil
}
