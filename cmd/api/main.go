package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"task-planner/config"
	_ "task-planner/docs" // Swagger docs
	"task-planner/internal/app"
	"task-planner/internal/httpserver"
	tgDelivery "task-planner/internal/task/delivery/telegram"
	"task-planner/pkg/log"
	"task-planner/pkg/telegram"
)

// @title       Task Planner API
// @description Natural-language task capture, task and habit tracking.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// 1. Configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Task Planner...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Use cases
	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize application: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Warnf(context.Background(), "Failed to close storage: %v", err)
		}
	}()

	// 4. Telegram quick-add (optional)
	var telegramHandler tgDelivery.Handler
	if cfg.Telegram.BotToken != "" {
		bot := telegram.NewBot(cfg.Telegram.BotToken)
		telegramHandler = tgDelivery.New(logger, application.Tasks, bot, cfg.Telegram.WebhookSecret)
		registerWebhook(ctx, logger, bot, cfg.Telegram)
	} else {
		logger.Info(ctx, "Telegram bot token not set, quick-add bot disabled")
	}

	// 5. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		RateLimitPerMin: cfg.RateLimit.PerMin,
		TrustedProxies:  cfg.HTTPServer.TrustedProxies,
		TaskUseCase:     application.Tasks,
		HabitUseCase:    application.Habits,
		ReadyCheck:      application.Ready,
		TelegramHandler: telegramHandler,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return
	}

	// 6. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Errorf(ctx, "Failed to run server: %v", err)
		return
	}

	logger.Info(context.Background(), "Server stopped gracefully")
}

// registerWebhook points Telegram at this server. The URL comes from config,
// or from a local tunnel agent when only telegram.tunnel_api is set.
func registerWebhook(ctx context.Context, logger log.Logger, bot *telegram.Bot, cfg config.TelegramConfig) {
	webhookURL := cfg.WebhookURL
	if webhookURL == "" && cfg.TunnelAPI != "" {
		publicURL, err := detectTunnelURL(ctx, cfg.TunnelAPI, 10, 3*time.Second)
		if err != nil {
			logger.Warnf(ctx, "Could not detect tunnel URL: %v", err)
			return
		}
		webhookURL = publicURL + "/webhook/telegram"
		logger.Infof(ctx, "Auto-detected tunnel URL: %s", webhookURL)
	}
	if webhookURL == "" {
		logger.Warn(ctx, "Telegram webhook URL not configured, skipping registration")
		return
	}

	if err := bot.SetWebhook(ctx, webhookURL, cfg.WebhookSecret); err != nil {
		logger.Warnf(ctx, "Failed to set Telegram webhook: %v", err)
		return
	}
	logger.Infof(ctx, "Telegram webhook registered at %s", webhookURL)
}
