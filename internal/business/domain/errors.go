package domain

import (
	"github.com/allisson/stampd/internal/errors"
)

var (
	// ErrBusinessNotFound indicates no profile exists for the business id.
	ErrBusinessNotFound = errors.Wrap(errors.ErrNotFound, "business not found")

	// ErrBusinessAlreadyExists indicates a profile with the same business id already exists.
	ErrBusinessAlreadyExists = errors.Wrap(errors.ErrAlreadyExists, "business already exists")

	// ErrInvalidBusinessCredentials indicates the scan credentials do not match.
	ErrInvalidBusinessCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid business credentials")

	// ErrBusinessMismatch indicates an authenticated business tried to act on another business.
	ErrBusinessMismatch = errors.Wrap(errors.ErrForbidden, "business mismatch")
)
