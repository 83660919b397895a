package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/zenvia-world/zenvia-chat/internal/api/router"
	"github.com/zenvia-world/zenvia-chat/internal/chat"
	"github.com/zenvia-world/zenvia-chat/internal/chatlog"
	appconfig "github.com/zenvia-world/zenvia-chat/internal/config"
	"github.com/zenvia-world/zenvia-chat/internal/observability/metrics"
	"github.com/zenvia-world/zenvia-chat/internal/session"
	"github.com/zenvia-world/zenvia-chat/pkg/logging"
)

func main() {
	// Local development convenience; a missing .env file is fine.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting zenvia-chat API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"cta_policy", cfg.CTAPolicy,
		"session_backend", cfg.SessionBackend,
	)

	ctx := context.Background()

	// Session store
	var store session.Store
	switch cfg.SessionBackend {
	case appconfig.SessionBackendRedis:
		opts := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		client := redis.NewClient(opts)
		redisStore := session.NewRedisStore(client, cfg.SessionTTL, nil)
		if err := redisStore.Ping(ctx); err != nil {
			logger.Error("redis unreachable at startup", "error", err, "addr", cfg.RedisAddr)
			os.Exit(1)
		}
		store = redisStore
	default:
		store = session.NewMemoryStore()
	}

	// LLM client: classifier always needs it; the generator is optional.
	var llm chat.LLMClient
	if cfg.OpenAIAPIKey != "" {
		client, err := chat.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			logger.Error("failed to create OpenAI client", "error", err)
			os.Exit(1)
		}
		llm = client
	} else if !cfg.ClassifierOnly {
		// Every request would fail identically; refuse to start instead.
		logger.Error("OPENAI_API_KEY not set; set CLASSIFIER_ONLY=true to run scripted-only")
		os.Exit(1)
	}

	var classifier *chat.Classifier
	var generator chat.LLMClient
	if llm != nil {
		classifier = chat.NewClassifier(llm, cfg.OpenAIModel, cfg.LLMTimeout)
		if !cfg.ClassifierOnly {
			generator = llm
		}
	}

	// Transcript sinks
	var sinks []chatlog.Sink
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		pg := chatlog.NewPostgresSink(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Error("failed to ensure transcript schema", "error", err)
			os.Exit(1)
		}
		sinks = append(sinks, pg)
	}
	if cfg.SheetsSpreadsheetID != "" && cfg.SheetsCredentialsEnv != "" {
		sheetsSink, err := chatlog.NewSheetsSink(ctx, cfg.SheetsSpreadsheetID, []byte(cfg.SheetsCredentialsEnv))
		if err != nil {
			// Transcript logging is best-effort; run without it.
			logger.Error("failed to create sheets sink, continuing without it", "error", err)
		} else {
			sinks = append(sinks, sheetsSink)
		}
	}
	recorder := chatlog.NewRecorder(logger, sinks...)
	defer recorder.Close()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	chatMetrics := metrics.NewChatMetrics(registry)

	service := chat.NewService(chat.ServiceConfig{
		Store:            store,
		Engine:           chat.NewCTAEngine(chat.Policy(cfg.CTAPolicy), cfg.CTACooldownTurns, cfg.CTASpacingTurns),
		Composer:         chat.NewComposer(cfg.BookingToken),
		Classifier:       classifier,
		Generator:        generator,
		GeneratorModel:   cfg.OpenAIModel,
		LLMTimeout:       cfg.LLMTimeout,
		DefaultSessionID: cfg.DefaultSessionID,
		Recorder:         recorder,
		Metrics:          chatMetrics,
		Logger:           logger,
	})

	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        chat.NewHandler(service, logger),
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}
