package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"portal/internal/repositories"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrNotFound is returned for unknown tile ids or user ids.
	ErrNotFound = repositories.ErrNotFound
	// ErrUnauthorized covers bad credentials and invalid, expired or forged tokens.
	ErrUnauthorized = errors.New("invalid credentials")
	// ErrConflict is returned when a profile rename collides with another user.
	ErrConflict = errors.New("username already taken")
)

// ValidationError reports input fields that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

var validate = validator.New()

// validateStruct runs the struct's validate tags and converts failures into
// a *ValidationError keyed by field name.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		fields[e.Field()] = fmt.Sprintf("failed on the '%s' tag", e.Tag())
	}
	return &ValidationError{Fields: fields}
}
