package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"taskhive/internal/app/di"
	"taskhive/internal/app/router"
	"taskhive/internal/config"
	authadapters "taskhive/internal/feature/auth/adapters"
	authhandler "taskhive/internal/feature/auth/transport/handler"
	authusecase "taskhive/internal/feature/auth/usecase"
	taskadapters "taskhive/internal/feature/task/adapters"
	taskhandler "taskhive/internal/feature/task/transport/handler"
	taskusecase "taskhive/internal/feature/task/usecase"
	userhandler "taskhive/internal/feature/user/transport/handler"
	userusecase "taskhive/internal/feature/user/usecase"
	"taskhive/internal/platform/db"
	jwtmw "taskhive/internal/platform/jwt"
	infraredis "taskhive/internal/platform/redis"
	"taskhive/internal/shared/password"
)

func newLogger(cfg config.Config) *slog.Logger {
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func main() {
	// .env は任意
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg := config.Load()
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := db.Open(cfg.DB)
	if err != nil {
		slog.Error("failed to open database", "driver", cfg.DB.Driver, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	// Redis
	var rdb *redisv9.Client
	if cfg.RedisEnabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg); err != nil {
			slog.Warn("Redis unavailable. Rate limiting falls back to in-process counters.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Repository
	userRepo := authadapters.NewUserGorm(gdb)
	taskRepo := taskadapters.NewTaskGorm(gdb)

	hasher := password.NewHasher(cfg.BcryptCost)
	jwtGen := jwtmw.NewGenerator(cfg.JWTSecret, config.TokenTTL)
	verifier := jwtmw.NewVerifier(cfg.JWTSecret)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, hasher, jwtGen)
	taskUC := taskusecase.NewTaskUsecase(taskRepo)
	userUC := userusecase.NewUserUsecase(userRepo, hasher)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	taskH := taskhandler.NewTaskHandler(taskUC)
	userH := userhandler.NewUserHandler(userUC)

	// ルータ生成
	engine := router.NewRouter(authH, taskH, userH, verifier, router.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AuthLimiter:    di.NewRateLimiter(rdb, cfg.RateLimitMax, cfg.RateLimitWindow),
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("server failed", "error", err)
		}
		return
	case <-ctx.Done():
	}

	slog.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
