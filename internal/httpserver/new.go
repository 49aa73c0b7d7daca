package httpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"task-planner/internal/habit"
	"task-planner/internal/middleware"
	"task-planner/internal/task"
	tgDelivery "task-planner/internal/task/delivery/telegram"
	"task-planner/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	mw          middleware.Middleware
	ready       func(ctx context.Context) error

	// Domains
	taskUC  task.UseCase
	habitUC habit.UseCase

	// Optional Telegram quick-add webhook
	telegramHandler tgDelivery.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger          log.Logger
	Port            int
	Mode            string
	Environment     string
	RateLimitPerMin int
	// TrustedProxies lists the proxy IPs or CIDRs whose forwarding headers
	// are believed. Empty trusts none and uses the peer address.
	TrustedProxies []string
	// ReadyCheck backs /ready; nil always reports ready.
	ReadyCheck func(ctx context.Context) error

	TaskUseCase  task.UseCase
	HabitUseCase habit.UseCase

	TelegramHandler tgDelivery.Handler
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		mw:              middleware.New(logger, middleware.Config{RateLimitPerMin: cfg.RateLimitPerMin}),
		ready:           cfg.ReadyCheck,
		taskUC:          cfg.TaskUseCase,
		habitUC:         cfg.HabitUseCase,
		telegramHandler: cfg.TelegramHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.gin.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.taskUC == nil {
		return errors.New("task usecase is required")
	}
	if srv.habitUC == nil {
		return errors.New("habit usecase is required")
	}
	return nil
}
