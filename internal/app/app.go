// Package app wires configuration into the planner's use cases. Both the
// API server and the CLI start from here.
package app

import (
	"context"
	"errors"
	"fmt"

	"task-planner/config"
	"task-planner/internal/habit"
	habitMemory "task-planner/internal/habit/repository/memory"
	habitUC "task-planner/internal/habit/usecase"
	"task-planner/internal/task"
	taskRepo "task-planner/internal/task/repository"
	taskMemory "task-planner/internal/task/repository/memory"
	taskNATS "task-planner/internal/task/repository/nats"
	taskRedis "task-planner/internal/task/repository/redis"
	taskUC "task-planner/internal/task/usecase"
	"task-planner/pkg/datemath"
	"task-planner/pkg/gcalendar"
	"task-planner/pkg/llmprovider"
	"task-planner/pkg/log"
	"task-planner/pkg/normalizer"
	"task-planner/pkg/prompt"
)

// App holds the initialized use cases and the resources behind them.
type App struct {
	Tasks  task.UseCase
	Habits habit.UseCase
	Parser *datemath.Parser

	// Ready reports whether the task store is reachable.
	Ready func(ctx context.Context) error

	repo taskRepo.Repository
}

// Close releases the storage connection.
func (a *App) Close() error {
	if a.repo == nil {
		return nil
	}
	return a.repo.Close()
}

// New builds the App from cfg. Missing LLM providers or calendar
// credentials are logged and leave those features disabled.
func New(ctx context.Context, cfg *config.Config, l log.Logger) (*App, error) {
	parser, err := datemath.NewParser(cfg.Planner.Timezone)
	if err != nil {
		l.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Planner.Timezone, err)
		parser, _ = datemath.NewParser("UTC")
	}

	urgency, err := normalizer.ParseUrgencyMode(cfg.Planner.AutoUrgency)
	if err != nil {
		return nil, fmt.Errorf("planner.auto_urgency: %w", err)
	}

	strategy, err := prompt.New(cfg.LLM.PromptStrategy, parser)
	if err != nil {
		return nil, fmt.Errorf("llm.prompt_strategy: %w", err)
	}

	a := &App{Parser: parser}
	if err := a.openStorage(ctx, cfg, l); err != nil {
		return nil, err
	}

	taskCfg := taskUC.Config{
		Urgency:            urgency,
		DefaultDueTomorrow: cfg.Planner.DefaultDueTomorrow,
		Parser:             parser,
		Strategy:           strategy,
		CacheSize:          cfg.LLM.CacheSize,
		CacheTTL:           config.ParseDuration(cfg.LLM.CacheTTL, 0),
	}
	if cal := newCalendar(ctx, cfg, l); cal != nil {
		taskCfg.Calendar = cal
		taskCfg.CalendarID = cfg.GoogleCalendar.CalendarID
	}

	var gen llmprovider.Generator
	if m := newLLMManager(ctx, cfg, l); m != nil {
		gen = m
	}

	if a.Tasks, err = taskUC.New(a.repo, gen, taskCfg, l); err != nil {
		_ = a.Close()
		return nil, err
	}
	if a.Habits, err = habitUC.New(habitMemory.New(), parser, nil, l); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) openStorage(ctx context.Context, cfg *config.Config, l log.Logger) error {
	switch cfg.Storage.Driver {
	case "", "memory":
		a.repo = taskMemory.New()
	case "redis":
		rdb, err := taskRedis.Connect(ctx, taskRedis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		a.repo = taskRedis.New(rdb, cfg.Redis.KeyPrefix, l)
		a.Ready = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	case "nats":
		repo, err := taskNATS.Open(ctx, cfg.NATS.URL, cfg.NATS.Bucket, l)
		if err != nil {
			return err
		}
		a.repo = repo
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	l.Infof(ctx, "Task storage: %s", cfg.Storage.Driver)
	return nil
}

// newLLMManager returns nil when no provider could be initialized.
func newLLMManager(ctx context.Context, cfg *config.Config, l log.Logger) *llmprovider.Manager {
	providers, initErrs, err := llmprovider.InitializeProviders(&cfg.LLM, llmprovider.FactoryOptions{Referer: cfg.Planner.AppURL})
	for _, e := range initErrs {
		l.Warnf(ctx, "LLM provider skipped: %v", e)
	}
	if err != nil {
		if errors.Is(err, llmprovider.ErrNoProvidersConfigured) {
			l.Warn(ctx, "No LLM provider configured, text parsing disabled")
		} else {
			l.Warnf(ctx, "LLM providers unavailable, text parsing disabled: %v", err)
		}
		return nil
	}

	m := llmprovider.NewManager(providers, llmprovider.ManagerConfigFrom(&cfg.LLM), l)
	l.Infof(ctx, "LLM providers: %v", m.Providers())
	return m
}

// newCalendar returns nil unless credentials are configured and valid.
func newCalendar(ctx context.Context, cfg *config.Config, l log.Logger) *gcalendar.Client {
	if cfg.GoogleCalendar.CredentialsPath == "" {
		return nil
	}
	client, err := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
	if err != nil {
		l.Warnf(ctx, "Google Calendar not available (optional): %v", err)
		return nil
	}
	l.Info(ctx, "Google Calendar initialized")
	return client
}
