package models

import "time"

// Task is a single todo item owned by exactly one user.
// Description is nullable and serializes as JSON null when unset.
type Task struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskPatch is a typed partial update: only non-nil fields are written.
// Using a struct instead of a free-form map keeps the set of assignable
// columns closed and the ownership predicate impossible to forget.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// IsEmpty reports whether the patch carries no assignments.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil
}
