// Package domain defines domain-level errors for the task feature.
package domain

import "taskhive/internal/shared/apperr"

var (
	// ErrTaskNotFound is returned for a missing task and for a task owned by
	// someone else alike.
	ErrTaskNotFound = apperr.New(apperr.ErrNotFound, "task not found")

	// ErrOwnerNotFound means the authenticated user no longer exists.
	ErrOwnerNotFound = apperr.New(apperr.ErrUnauthenticated, "user no longer exists")
)
