package employeeerrors

import (
	"fmt"
	"net/http"

	"go-ems/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with this email already exists",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidHireDate = apperror.New(
		apperror.CodeValidationError,
		"Hire date must be a valid date",
		http.StatusBadRequest,
	).WithDetails([]apperror.FieldError{{
		Field:   "hire_date",
		Message: "Hire Date must be a valid date (YYYY-MM-DD or RFC3339)",
	}})
)

// ErrSalaryBelowMinimum reports a configured salary floor violation.
func ErrSalaryBelowMinimum(min float64) *apperror.AppError {
	return apperror.New(
		apperror.CodeValidationError,
		fmt.Sprintf("Salary must be at least %.0f", min),
		http.StatusBadRequest,
	).WithDetails([]apperror.FieldError{{
		Field:   "salary",
		Message: fmt.Sprintf("Salary must be at least %.0f", min),
	}})
}
