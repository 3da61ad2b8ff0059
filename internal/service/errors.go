package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDuplicateNumber is returned when an order or quote number is
	// already taken within the owner scope
	ErrDuplicateNumber = errors.New("number already in use")

	// ErrImportFile is returned for file-level import problems; the
	// whole batch aborts with no rows processed
	ErrImportFile = errors.New("import file rejected")
)
