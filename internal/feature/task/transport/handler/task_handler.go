// Package handler provides HTTP handlers for the task feature.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"taskhive/internal/api"
	"taskhive/internal/feature/task/domain/entity"
	"taskhive/internal/feature/task/transport/http/dto"
	"taskhive/internal/feature/task/usecase"
	jwtmw "taskhive/internal/platform/jwt"
	"taskhive/internal/shared/apperr"
)

const taskDeletedMessage = "Task deleted"

// TaskUsecase defines the task operations the handler needs.
type TaskUsecase interface {
	Create(ctx context.Context, uid string, in usecase.CreateTaskInput) (*entity.Task, error)
	List(ctx context.Context, uid string) ([]entity.Task, error)
	Get(ctx context.Context, uid, id string) (*entity.Task, error)
	Update(ctx context.Context, uid, id string, patch entity.TaskPatch) (*entity.Task, error)
	Delete(ctx context.Context, uid, id string) error
}

// TaskHandler serves the /task routes for the authenticated caller.
type TaskHandler struct {
	tasks TaskUsecase
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks TaskUsecase) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

var errNoUser = apperr.New(apperr.ErrUnauthenticated, "authorization required")

// callerID returns the authenticated user id, writing a 401 when it is missing.
func callerID(c *gin.Context, op string) (string, bool) {
	uid, ok := jwtmw.UserID(c)
	if !ok {
		api.WriteError(c, op, errNoUser)
		return "", false
	}
	return uid, true
}

// parseDate parses a YYYY-MM-DD string. An empty string yields nil.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(openapi_types.DateFormat, s)
	if err != nil {
		return nil, apperr.Validationf("dueDate must be a date in YYYY-MM-DD format")
	}
	return &t, nil
}

// ToTaskResponse converts a task to its wire form.
func ToTaskResponse(t entity.Task) api.Task {
	resp := api.Task{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.DueDate != nil {
		resp.DueDate = &openapi_types.Date{Time: *t.DueDate}
	}
	return resp
}

// List handles GET /task.
func (h *TaskHandler) List(c *gin.Context) {
	uid, ok := callerID(c, "list tasks")
	if !ok {
		return
	}
	tasks, err := h.tasks.List(c.Request.Context(), uid)
	if err != nil {
		api.WriteError(c, "list tasks", err)
		return
	}

	resp := api.TaskListResponse{Tasks: make([]api.Task, 0, len(tasks))}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, ToTaskResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

// Create handles POST /task.
// - 400 on a missing title or a malformed due date
// - 201 with the created task
func (h *TaskHandler) Create(c *gin.Context) {
	uid, ok := callerID(c, "create task")
	if !ok {
		return
	}
	var req dto.CreateTaskReq
	if !api.BindJSON(c, "create task", &req) {
		return
	}

	in := usecase.CreateTaskInput{Title: req.Title, Description: req.Description}
	if due := req.Due(); due != nil {
		d, err := parseDate(*due)
		if err != nil {
			api.WriteError(c, "create task", err)
			return
		}
		in.DueDate = d
	}

	task, err := h.tasks.Create(c.Request.Context(), uid, in)
	if err != nil {
		api.WriteError(c, "create task", err)
		return
	}
	c.JSON(http.StatusCreated, ToTaskResponse(*task))
}

// Get handles GET /task/:id.
func (h *TaskHandler) Get(c *gin.Context) {
	uid, ok := callerID(c, "get task")
	if !ok {
		return
	}
	task, err := h.tasks.Get(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		api.WriteError(c, "get task", err)
		return
	}
	c.JSON(http.StatusOK, ToTaskResponse(*task))
}

// Update handles PUT /task/:id.
// - 400 when the body carries no fields
// - 404 when the caller does not own the task
func (h *TaskHandler) Update(c *gin.Context) {
	uid, ok := callerID(c, "update task")
	if !ok {
		return
	}
	var req dto.UpdateTaskReq
	if !api.BindJSON(c, "update task", &req) {
		return
	}

	patch := entity.TaskPatch{Title: req.Title, Status: req.Status}
	if req.Description != nil {
		patch.Description = entity.NewNullable(req.Description)
	}
	if due := req.Due(); due != nil {
		d, err := parseDate(*due)
		if err != nil {
			api.WriteError(c, "update task", err)
			return
		}
		patch.DueDate = entity.NewNullable(d)
	}

	task, err := h.tasks.Update(c.Request.Context(), uid, c.Param("id"), patch)
	if err != nil {
		api.WriteError(c, "update task", err)
		return
	}
	c.JSON(http.StatusOK, ToTaskResponse(*task))
}

// Delete handles DELETE /task/:id.
func (h *TaskHandler) Delete(c *gin.Context) {
	uid, ok := callerID(c, "delete task")
	if !ok {
		return
	}
	if err := h.tasks.Delete(c.Request.Context(), uid, c.Param("id")); err != nil {
		api.WriteError(c, "delete task", err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: taskDeletedMessage})
}
