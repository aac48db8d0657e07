// Package dto defines data transfer objects for the task feature's HTTP transport layer.
package dto

// CreateTaskReq is the request body for POST /task.
// due_date is accepted as an alias of dueDate; dueDate wins when both are sent.
// Dates are parsed by the handler so that an empty string can clear the field.
type CreateTaskReq struct {
	Title        string  `json:"title" binding:"required,max=255"`
	Description  *string `json:"description"`
	DueDate      *string `json:"dueDate"`
	DueDateAlias *string `json:"due_date"`
}

// Due returns the due date string from either key.
func (r CreateTaskReq) Due() *string {
	if r.DueDate != nil {
		return r.DueDate
	}
	return r.DueDateAlias
}

// UpdateTaskReq is the request body for PUT /task/:id. Absent or null keys are left untouched.
type UpdateTaskReq struct {
	Title        *string `json:"title" binding:"omitempty,max=255"`
	Description  *string `json:"description"`
	DueDate      *string `json:"dueDate"`
	DueDateAlias *string `json:"due_date"`
	Status       *bool   `json:"status"`
}

// Due returns the due date string from either key.
func (r UpdateTaskReq) Due() *string {
	if r.DueDate != nil {
		return r.DueDate
	}
	return r.DueDateAlias
}
