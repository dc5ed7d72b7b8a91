package apperror

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldError is one violated constraint on a request payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

func fieldMessage(e validator.FieldError) string {
	name := formatFieldName(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", name)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", name, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", name, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, strings.ReplaceAll(e.Param(), " ", ", "))
	case "hiredate":
		return fmt.Sprintf("%s must be a valid date (YYYY-MM-DD or RFC3339)", name)
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}

// MapValidationError converts validator errors into a single AppError
// carrying every violated field, not just the first one.
func MapValidationError(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := make([]FieldError, 0, len(errs))
		for _, e := range errs {
			details = append(details, FieldError{
				Field:   e.Field(),
				Message: fieldMessage(e),
			})
		}

		return New(
			CodeValidationError,
			"One or more fields are invalid",
			http.StatusBadRequest,
		).WithDetails(details)
	}

	return New(
		CodeValidationError,
		"Invalid input",
		http.StatusBadRequest,
	)
}
