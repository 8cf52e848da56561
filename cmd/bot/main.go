package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/prometheus/client_golang/prometheus"

	sofiaroot "github.com/set-night/sofia"
	"github.com/set-night/sofia/internal/api"
	"github.com/set-night/sofia/internal/config"
	"github.com/set-night/sofia/internal/handler"
	"github.com/set-night/sofia/internal/i18n"
	"github.com/set-night/sofia/internal/logger"
	"github.com/set-night/sofia/internal/metrics"
	"github.com/set-night/sofia/internal/middleware"
	"github.com/set-night/sofia/internal/repository"
	"github.com/set-night/sofia/internal/service"
	"github.com/set-night/sofia/internal/telegram"
	"github.com/set-night/sofia/internal/workers"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.BotToken == "" {
		slog.Error("failed to load config", "error", "BOT_TOKEN is required")
		os.Exit(1)
	}

	// Setup structured logging
	slog.SetDefault(logger.New(os.Stdout, cfg.LogFormat, cfg.Level()))

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Settings storage: Postgres when configured, memory otherwise
	var store service.SettingsStore
	if cfg.DatabaseURL != "" {
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		migrationsFS, err := fs.Sub(sofiaroot.MigrationsFS, "migrations")
		if err != nil {
			slog.Error("failed to load embedded migrations", "error", err)
			os.Exit(1)
		}
		if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		store = repository.NewSettingsRepository(pool)
	} else {
		slog.Warn("DATABASE_URL not set, language preferences are kept in memory")
		store = repository.NewMemorySettings()
	}

	// Initialize services
	m := metrics.New(prometheus.DefaultRegisterer)
	promptPrice, completionPrice := cfg.Prices()

	gemini := service.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL)
	chatService := service.NewChatService(gemini, cfg.ChatModel, m)
	speechService := service.NewSpeechService(gemini, cfg.SpeechModel, cfg.SpeechVoice, m)
	settingsService := service.NewSettingsService(store, cfg.Language())
	billingService := service.NewBillingService(promptPrice, completionPrice)
	sessionService := service.NewSessionService(settingsService, billingService, cfg.SessionIdleTimeout, m)

	// The log chat needs the bot, the bot needs the middleware
	var tgLogger *telegram.TelegramLogger
	reporter := middleware.ReporterFunc(func(err error, context string) {
		tgLogger.LogError(err, context)
	})

	limiter := middleware.NewRateLimiter(config.RateLimitPerMinute)
	rateLimitNotice := func(chatID int64) string {
		return i18n.For(sessionService.Open(ctx, chatID).Language).RateLimited
	}

	// Create bot
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(reporter),
			middleware.Logging(),
			middleware.RateLimit(limiter, rateLimitNotice),
			middleware.SessionLoader(sessionService),
		),
	}
	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	// Get bot info
	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}
	slog.Info("bot info retrieved", "id", me.ID, "username", me.Username)

	if cfg.DropPendingUpdates {
		if _, err := b.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: true}); err != nil {
			slog.Warn("failed to drop pending updates", "error", err)
		}
	}

	tgLogger = telegram.NewTelegramLogger(b, cfg)

	// Initialize handler
	h := handler.New(handler.Deps{
		Bot:      b,
		Cfg:      cfg,
		Sessions: sessionService,
		Chat:     chatService,
		Speech:   speechService,
		Metrics:  m,
		TgLogger: tgLogger,
	})
	h.Register()

	apiServer := api.NewServer(cfg.Port, api.Deps{
		Chat:        chatService,
		Speech:      speechService,
		Metrics:     m,
		Gatherer:    prometheus.DefaultGatherer,
		DefaultLang: cfg.Language(),
	})

	group := workers.Group{
		workers.Func{WorkerName: "telegram", Fn: func(ctx context.Context) error {
			slog.Info("starting bot", "username", me.Username, "id", me.ID)
			b.Start(ctx)
			return nil
		}},
		workers.Func{WorkerName: "http-api", Fn: apiServer.Run},
		workers.Func{WorkerName: "session-cleanup", Fn: func(ctx context.Context) error {
			return sessionService.RunCleanup(ctx, config.SessionCleanupInterval)
		}},
	}

	if err := group.Run(ctx); err != nil {
		slog.Error("stopped with errors", "error", err)
		tgLogger.LogError(err, "shutdown")
		os.Exit(1)
	}

	// Graceful shutdown
	slog.Info("bot stopped gracefully")
}
