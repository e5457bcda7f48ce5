package payrollerrors

import (
	"net/http"

	"github.com/krushit1307/HRMS/internal/shared/apperror"
)

var (
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"month must be a full month name, e.g. January",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"salary amounts must not be negative",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be pending or paid",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"employee not found",
		http.StatusBadRequest,
	)
	ErrNotAnEmployee = apperror.New(
		apperror.CodeInvalidInput,
		"payroll can only be created for users with the employee role",
		http.StatusBadRequest,
	)
	ErrPayrollAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"payroll already exists for this employee and period",
		http.StatusConflict,
	)
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll not found",
		http.StatusNotFound,
	)
	ErrAlreadyPaid = apperror.New(
		apperror.CodeInvalidState,
		"payroll is already paid",
		http.StatusBadRequest,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"you can only view your own payroll",
		http.StatusForbidden,
	)
)
