// Package entity defines the domain entities for the task feature.
package entity

import "time"

// Task is a to-do item owned by exactly one user.
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description *string
	Status      bool
	// DueDate is a calendar date at midnight UTC, or nil.
	DueDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Nullable is a patch value that may set a column or clear it to NULL.
// Set reports whether the field is part of the patch; a nil Value clears it.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// NewNullable returns a Nullable that sets v, or clears the column when v is nil.
func NewNullable[T any](v *T) Nullable[T] {
	return Nullable[T]{Set: true, Value: v}
}

// TaskPatch lists the task fields to change. Unset fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description Nullable[string]
	DueDate     Nullable[time.Time]
	Status      *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && !p.Description.Set && !p.DueDate.Set && p.Status == nil
}
