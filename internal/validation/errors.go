package validation

import "strings"

// FormField scopes an error to the whole payload rather than one field.
const FormField = "_form"

// FieldError is one violated rule, attributed to a single field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is an ordered list of violations. It implements error so that
// handlers can recover the structured detail with errors.As.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
