package store

import "errors"

var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateID         = errors.New("record id already exists")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrDuplicateAttendance = errors.New("attendance already recorded for this user and date")
	ErrInvalidRecord       = errors.New("invalid record")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrCorruptStore        = errors.New("stored data is corrupt")
)
