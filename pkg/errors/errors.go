package apperrors

import "errors"

// Domain errors shared across services and handlers. Every service returns one
// of these sentinels (possibly wrapped); the HTTP layer maps them to status
// codes in exactly one place.
var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrInvalidInput  = errors.New("invalid input")
	ErrAlreadyExists = errors.New("already exists")
	ErrNotUploaded   = errors.New("file not uploaded")
	ErrRateLimited   = errors.New("rate limited")
)
