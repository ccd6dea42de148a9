package domain

import "errors"

// Sentinel errors for the service layer - match with errors.Is() and map
// to HTTP status codes in the handler package.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)
