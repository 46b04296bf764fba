package service

import (
	"errors"
	"fmt"

	"peaceconnect_service/internal/repository"
	"peaceconnect_service/pkg/utils"
)

var (
	// ErrValidation is wrapped by every *ValidationError.
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = repository.ErrNotFound
	// ErrDuplicateRegistration means the email is already registered to
	// the event.
	ErrDuplicateRegistration = errors.New("email already registered for this event")
	// ErrDuplicateName means another category or theme has the name.
	ErrDuplicateName = errors.New("name already taken")
)

// ValidationError rejects an input before it reaches the database.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// uniqueName turns a unique-index violation on name into ErrDuplicateName.
func uniqueName(name string, err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return fmt.Errorf("%q: %w", name, ErrDuplicateName)
	}
	return err
}

// validate runs the struct tags of input and returns the first failure.
func validate(input interface{}) error {
	if errs := utils.GetValidator().Validate(input); len(errs) > 0 {
		return &ValidationError{Field: errs[0].Field, Message: errs[0].Message}
	}
	return nil
}
