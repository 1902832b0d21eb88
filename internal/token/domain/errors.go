package domain

import (
	"github.com/allisson/stampd/internal/errors"
)

var (
	// ErrMalformedToken indicates the token text is not a well-formed JSON object.
	ErrMalformedToken = errors.Wrap(errors.ErrInvalidInput, "malformed token")

	// ErrMissingTokenField indicates a required token field is absent or empty.
	ErrMissingTokenField = errors.Wrap(errors.ErrInvalidInput, "missing token field")

	// ErrInvalidToken indicates a decoded token fails structural validation.
	ErrInvalidToken = errors.Wrap(errors.ErrInvalidInput, "invalid token")

	// ErrTokenNotFound indicates no token record exists for the token id.
	ErrTokenNotFound = errors.Wrap(errors.ErrNotFound, "token not found")

	// ErrTokenAlreadyExists indicates a token record with the same token id already exists.
	ErrTokenAlreadyExists = errors.Wrap(errors.ErrAlreadyExists, "token already exists")
)

// MissingFieldError reports which required field was absent from a decoded token.
type MissingFieldError struct {
	Field string
}

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	return ErrMissingTokenField.Error() + ": " + e.Field
}

// Unwrap exposes ErrMissingTokenField so callers can match with errors.Is.
func (e *MissingFieldError) Unwrap() error {
	return ErrMissingTokenField
}
