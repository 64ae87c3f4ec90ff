package validation

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"
)

// decodeStrict unmarshals a closed-schema JSON body into dst. Unknown
// fields and type mismatches are validation errors, not silent drops.
func decodeStrict(r io.Reader, dst any) Errors {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &typeErr):
			field := typeErr.Field
			if field == "" {
				field = FormField
			}
			return Errors{{Field: field, Message: "must be " + typeName(typeErr.Type)}}
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			name := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
			return Errors{{Field: name, Message: "unknown field"}}
		default:
			return Errors{{Field: FormField, Message: "body must be a valid JSON object"}}
		}
	}
	return nil
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int64, reflect.Float64:
		return "a number"
	default:
		return "of type " + t.String()
	}
}
