// Package api defines the JSON bodies exchanged over HTTP.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse acknowledges a request that returns no resource.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}

// Task is the wire form of a task.
type Task struct {
	ID          string              `json:"id"`
	UserID      string              `json:"user_id"`
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	Status      bool                `json:"status"`
	DueDate     *openapi_types.Date `json:"due_date"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// TaskListResponse wraps the caller's tasks. Tasks is never null.
type TaskListResponse struct {
	Tasks []Task `json:"tasks"`
}

// User is the wire form of a user. It never carries the password hash.
type User struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Email     openapi_types.Email `json:"email"`
	CreatedAt time.Time           `json:"created_at"`
}
