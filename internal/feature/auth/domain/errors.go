// Package domain defines domain-level errors for the auth feature.
package domain

import "taskhive/internal/shared/apperr"

// Errors returned by the user store.
var (
	// ErrUserNotFound indicates that no user was found with the given criteria.
	ErrUserNotFound = apperr.New(apperr.ErrNotFound, "user not found")

	// ErrEmailAlreadyExists indicates that another user already owns the email.
	ErrEmailAlreadyExists = apperr.New(apperr.ErrConflict, "email already exists")
)
