// Package handler provides HTTP handlers for the caller's profile.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"taskhive/internal/api"
	"taskhive/internal/feature/auth/domain/entity"
	"taskhive/internal/feature/user/transport/http/dto"
	"taskhive/internal/feature/user/usecase"
	jwtmw "taskhive/internal/platform/jwt"
	"taskhive/internal/shared/apperr"
)

const (
	userUpdatedMessage = "User updated successfully"
	userDeletedMessage = "User deleted successfully"
)

// UserUsecase defines the profile operations the handler needs.
type UserUsecase interface {
	GetSelf(ctx context.Context, uid string) (*entity.User, error)
	UpdateSelf(ctx context.Context, uid string, patch usecase.ProfilePatch) error
	DeleteSelf(ctx context.Context, uid string) error
}

// UserHandler serves /user/me.
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

var errNoUser = apperr.New(apperr.ErrUnauthenticated, "authorization required")

// ToUserResponse converts a user to its wire form without the password hash.
func ToUserResponse(u entity.User) api.User {
	return api.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     openapi_types.Email(u.Email),
		CreatedAt: u.CreatedAt.UTC(),
	}
}

// GetMe handles GET /user/me.
func (h *UserHandler) GetMe(c *gin.Context) {
	uid, ok := jwtmw.UserID(c)
	if !ok {
		api.WriteError(c, "get user", errNoUser)
		return
	}
	u, err := h.users.GetSelf(c.Request.Context(), uid)
	if err != nil {
		api.WriteError(c, "get user", err)
		return
	}
	c.JSON(http.StatusOK, ToUserResponse(*u))
}

// UpdateMe handles PUT /user/me.
// - 400 when the body carries no fields or an invalid one
// - 409 when the new email is taken
func (h *UserHandler) UpdateMe(c *gin.Context) {
	uid, ok := jwtmw.UserID(c)
	if !ok {
		api.WriteError(c, "update user", errNoUser)
		return
	}
	var req dto.UpdateUserReq
	if !api.BindJSON(c, "update user", &req) {
		return
	}

	patch := usecase.ProfilePatch{Name: req.Name, Email: req.Email, Password: req.Password}
	if err := h.users.UpdateSelf(c.Request.Context(), uid, patch); err != nil {
		api.WriteError(c, "update user", err)
		return
	}
	slog.Info("user updated", "user_id", uid, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.MessageResponse{Message: userUpdatedMessage})
}

// DeleteMe handles DELETE /user/me.
func (h *UserHandler) DeleteMe(c *gin.Context) {
	uid, ok := jwtmw.UserID(c)
	if !ok {
		api.WriteError(c, "delete user", errNoUser)
		return
	}
	if err := h.users.DeleteSelf(c.Request.Context(), uid); err != nil {
		api.WriteError(c, "delete user", err)
		return
	}
	slog.Info("user deleted", "user_id", uid, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.MessageResponse{Message: userDeletedMessage})
}
