package attendanceerrors

import (
	"net/http"

	"github.com/krushit1307/HRMS/internal/shared/apperror"
)

var (
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeConflict,
		"already checked in for today",
		http.StatusConflict,
	)
	ErrNotCheckedIn = apperror.New(
		apperror.CodeInvalidState,
		"check in before checking out",
		http.StatusBadRequest,
	)
	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeConflict,
		"already checked out for today",
		http.StatusConflict,
	)
	ErrCheckOutTooEarly = apperror.New(
		apperror.CodeInvalidState,
		"check-out must be after check-in",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be present, late, absent, half-day or leave",
		http.StatusBadRequest,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"you can only view your own attendance",
		http.StatusForbidden,
	)
)
