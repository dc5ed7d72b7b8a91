package apperror

import (
	"errors"
	"net/http"
	"os"
)

// HTTPError is the transport-facing view of an error.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP converts any error into an HTTPError. AppErrors pass through
// with their status and details; everything else collapses to a generic
// internal error. The underlying message is only exposed outside
// production-like environments.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		}
	}

	message := ErrInternal.Message
	if os.Getenv("APP_ENV") == "development" && err != nil {
		message = err.Error()
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: message,
	}
}
