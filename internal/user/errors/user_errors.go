package usererrors

import (
	"net/http"

	"github.com/krushit1307/HRMS/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrUserAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"User with the same email already exists",
		http.StatusConflict,
	)

	ErrEmployeeIDTaken = apperror.New(
		apperror.CodeConflict,
		"Employee ID is already assigned",
		http.StatusConflict,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"Role must be admin, hr or employee",
		http.StatusBadRequest,
	)

	ErrInvalidJoinDate = apperror.New(
		apperror.CodeInvalidInput,
		"Join date must be YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidUser = apperror.New(
		apperror.CodeInvalidInput,
		"User details are invalid",
		http.StatusBadRequest,
	)

	ErrWrongPassword = apperror.New(
		apperror.CodeInvalidInput,
		"Current password is incorrect",
		http.StatusBadRequest,
	)

	ErrRoleNotAssignable = apperror.New(
		apperror.CodeForbidden,
		"Only admins can create or promote admin and hr users",
		http.StatusForbidden,
	)

	ErrFieldsNotEditable = apperror.New(
		apperror.CodeForbidden,
		"You are not allowed to change these fields",
		http.StatusForbidden,
	)

	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"You can only access your own profile",
		http.StatusForbidden,
	)
)
