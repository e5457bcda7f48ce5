package apperror

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// HTTPError is what handlers write into the error part of the envelope.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP turns any error into an HTTPError. Errors that are not an AppError
// and not a validation failure become a generic 500 so internals never leak.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		mapped := MapValidationError(verrs)
		if errors.As(mapped, &appErr) {
			return HTTPError{
				Status:  appErr.HTTPStatus,
				Code:    appErr.Code,
				Message: appErr.Message,
				Details: err.Error(),
			}
		}
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    ErrInternal.Code,
		Message: ErrInternal.Message,
	}
}
