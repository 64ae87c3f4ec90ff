package validation

import (
	"io"
	"regexp"
	"strings"
)

const (
	minUsernameLen = 3
	minPasswordLen = 8
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// RegisterInput is a normalized registration payload: username trimmed,
// email trimmed and lowercased.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// DecodeRegister parses and validates a POST /auth/register body.
func DecodeRegister(r io.Reader) (RegisterInput, error) {
	var raw struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}
	if errs := decodeStrict(r, &raw); errs != nil {
		return RegisterInput{}, errs
	}

	var errs Errors
	var in RegisterInput

	if raw.Username == nil {
		errs = append(errs, FieldError{Field: "username", Message: "username is required"})
	} else if in.Username = strings.TrimSpace(*raw.Username); len(in.Username) < minUsernameLen {
		errs = append(errs, FieldError{Field: "username", Message: "username must be at least 3 characters"})
	}

	if raw.Email == nil {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	} else if in.Email = strings.ToLower(strings.TrimSpace(*raw.Email)); !emailPattern.MatchString(in.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "email must be a valid address"})
	}

	if raw.Password == nil {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	} else if in.Password = *raw.Password; len(in.Password) < minPasswordLen {
		errs = append(errs, FieldError{Field: "password", Message: "password must be at least 8 characters"})
	}

	if len(errs) > 0 {
		return RegisterInput{}, errs
	}
	return in, nil
}

// LoginInput is a normalized login payload.
type LoginInput struct {
	Email    string
	Password string
}

// DecodeLogin parses and validates a POST /auth/login body.
func DecodeLogin(r io.Reader) (LoginInput, error) {
	var raw struct {
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}
	if errs := decodeStrict(r, &raw); errs != nil {
		return LoginInput{}, errs
	}

	var errs Errors
	var in LoginInput

	if raw.Email == nil || strings.TrimSpace(*raw.Email) == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	} else {
		in.Email = strings.ToLower(strings.TrimSpace(*raw.Email))
	}
	if raw.Password == nil || *raw.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	} else {
		in.Password = *raw.Password
	}

	if len(errs) > 0 {
		return LoginInput{}, errs
	}
	return in, nil
}
