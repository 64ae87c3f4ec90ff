package validation

import (
	"io"
	"strconv"
	"strings"

	"tasklist/internal/models"
)

// CreateTaskInput is a normalized, validated task-creation payload.
// Description stays nil when absent or blank so storage writes NULL.
type CreateTaskInput struct {
	Title       string
	Description *string
}

// DecodeCreateTask parses and validates a POST /tasks body.
func DecodeCreateTask(r io.Reader) (CreateTaskInput, error) {
	var raw struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
	}
	if errs := decodeStrict(r, &raw); errs != nil {
		return CreateTaskInput{}, errs
	}

	var errs Errors
	var in CreateTaskInput

	if raw.Title == nil {
		errs = append(errs, FieldError{Field: "title", Message: "title is required"})
	} else if in.Title = strings.TrimSpace(*raw.Title); in.Title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "title must not be empty"})
	}
	if raw.Description != nil {
		if d := strings.TrimSpace(*raw.Description); d != "" {
			in.Description = &d
		}
	}

	if len(errs) > 0 {
		return CreateTaskInput{}, errs
	}
	return in, nil
}

// DecodeUpdateTask parses and validates a PUT /tasks/:id body into a
// typed patch. Every field is optional, but an empty patch is rejected
// as a whole-payload violation.
func DecodeUpdateTask(r io.Reader) (models.TaskPatch, error) {
	var raw struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Completed   *bool   `json:"completed"`
	}
	if errs := decodeStrict(r, &raw); errs != nil {
		return models.TaskPatch{}, errs
	}

	if raw.Title == nil && raw.Description == nil && raw.Completed == nil {
		return models.TaskPatch{}, Errors{{Field: FormField, Message: "at least one field must be provided"}}
	}

	var errs Errors
	var patch models.TaskPatch

	if raw.Title != nil {
		if t := strings.TrimSpace(*raw.Title); t == "" {
			errs = append(errs, FieldError{Field: "title", Message: "title must not be empty"})
		} else {
			patch.Title = &t
		}
	}
	if raw.Description != nil {
		// An explicit empty description is rejected rather than treated
		// as "clear the field".
		if d := strings.TrimSpace(*raw.Description); d == "" {
			errs = append(errs, FieldError{Field: "description", Message: "description must not be empty"})
		} else {
			patch.Description = &d
		}
	}
	patch.Completed = raw.Completed

	if len(errs) > 0 {
		return models.TaskPatch{}, errs
	}
	return patch, nil
}

// TaskID validates a path id before any storage access. Well-formed but
// absent ids are a storage concern (404); a malformed id never reaches it.
func TaskID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, Errors{{Field: "id", Message: "id must be a positive integer"}}
	}
	return id, nil
}
