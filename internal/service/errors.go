package service

import (
	"admin-service/internal/repository"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials or inactive user", ErrUnauthorized)
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput runs the struct tags of v and reports the first failing
// field as ErrInvalidInput.
func validateInput(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		first := validationErr[0]
		field := lowerFirst(first.Field())
		switch first.Tag() {
		case "required":
			return fmt.Errorf("%w: %s is required", repository.ErrInvalidInput, field)
		case "email":
			return fmt.Errorf("%w: invalid email format", repository.ErrInvalidInput)
		case "gte":
			return fmt.Errorf("%w: %s must be at least %s", repository.ErrInvalidInput, field, first.Param())
		}
		return fmt.Errorf("%w: %s is invalid", repository.ErrInvalidInput, field)
	}
	return fmt.Errorf("%w: %v", repository.ErrInvalidInput, err)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
