// Package router builds the gin engine and the route table.
package router

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"taskhive/internal/api"
	authhandler "taskhive/internal/feature/auth/transport/handler"
	taskhandler "taskhive/internal/feature/task/transport/handler"
	userhandler "taskhive/internal/feature/user/transport/handler"
	platformhandler "taskhive/internal/platform/http/handler"
	"taskhive/internal/platform/http/middleware"
	jwtmw "taskhive/internal/platform/jwt"
	"taskhive/internal/shared/ratelimiter"
)

// Options configures the cross-cutting middleware.
type Options struct {
	// AllowedOrigins lists the browser origins allowed by CORS. "*" allows any.
	AllowedOrigins []string
	// AuthLimiter throttles /api/auth/*. Nil disables rate limiting.
	AuthLimiter ratelimiter.Limiter
	Logger      *slog.Logger
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:        12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}

// NewRouter wires the handlers behind the global middleware.
func NewRouter(authH *authhandler.AuthHandler, taskH *taskhandler.TaskHandler, userH *userhandler.UserHandler,
	verifier jwtmw.TokenVerifier, opts Options) *gin.Engine {
	api.RegisterValidation()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(logger))
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	}

	// 認証不要
	r.GET("/", platformhandler.Root)
	r.GET("/healthz", platformhandler.Health)
	r.HEAD("/healthz", platformhandler.Health)
	r.OPTIONS("/healthz", platformhandler.Health)

	apiGroup := r.Group("/api")

	auth := apiGroup.Group("/auth")
	auth.Use(middleware.RateLimit(opts.AuthLimiter, middleware.KeyByIPAndPath()))
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", authH.Login)
	}

	// 認証必須のルート
	protected := apiGroup.Group("/")
	protected.Use(jwtmw.AuthRequired(verifier))
	{
		protected.GET("/task", taskH.List)
		protected.POST("/task", taskH.Create)
		protected.GET("/task/:id", taskH.Get)
		protected.PUT("/task/:id", taskH.Update)
		protected.DELETE("/task/:id", taskH.Delete)

		protected.GET("/user/me", userH.GetMe)
		protected.PUT("/user/me", userH.UpdateMe)
		protected.DELETE("/user/me", userH.DeleteMe)
	}

	return r
}
