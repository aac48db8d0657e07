// Package handler provides HTTP handlers for the auth feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhive/internal/api"
	"taskhive/internal/feature/auth/transport/http/dto"
)

const (
	registeredMessage = "Account created, please login"
	loggedInMessage   = "Successfully logged in"
)

// AuthUsecase defines the auth operations the handler needs.
type AuthUsecase interface {
	// Register creates a user; the caller must log in separately.
	Register(ctx context.Context, name, email, password string) error
	// Login authenticates a user and returns a signed token.
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthHandler handles registration and login requests.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /auth/register.
// - 400 on an invalid body
// - 409 when the email is taken
// - 201 on success
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if !api.BindJSON(c, "register", &req) {
		return
	}
	if err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		api.WriteError(c, "register", err)
		return
	}
	slog.Info("user registered", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.MessageResponse{Message: registeredMessage})
}

// Login handles POST /auth/login.
// - 400 on an invalid body or invalid credentials
// - 200 with the token on success
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if !api.BindJSON(c, "login", &req) {
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		api.WriteError(c, "login", err)
		return
	}
	slog.Info("user logged in", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{Token: token, Message: loggedInMessage})
}
