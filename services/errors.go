package services

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/heavydutyrent/machinery-api/dto"
)

// ValidationError reports input that cannot be applied: a malformed request
// or a reference to an entity that does not exist
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err is or wraps a ValidationError
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// validateRequest runs the request's binding rules and converts the first
// failure into a ValidationError
func validateRequest(request interface{}) error {
	err := dto.Validate(request)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		fe := fieldErrors[0]
		return &ValidationError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
		}
	}

	return &ValidationError{Message: err.Error()}
}

func missingReference(field, entity string, id interface{}) error {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("%s %v not found", entity, id),
	}
}
