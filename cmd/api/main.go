package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	"github.com/argonath-events/convention-assistant/internal/api/router"
	appconfig "github.com/argonath-events/convention-assistant/internal/config"
	"github.com/argonath-events/convention-assistant/internal/conversation"
	"github.com/argonath-events/convention-assistant/internal/http/handlers"
	"github.com/argonath-events/convention-assistant/internal/notify"
	"github.com/argonath-events/convention-assistant/internal/observability/metrics"
	"github.com/argonath-events/convention-assistant/internal/rag"
	"github.com/argonath-events/convention-assistant/internal/storage"
	"github.com/argonath-events/convention-assistant/internal/webchat"
	"github.com/argonath-events/convention-assistant/internal/websearch"
	"github.com/argonath-events/convention-assistant/pkg/logging"
)

func main() {
	// Load .env if present; real deployments inject env vars directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting convention-assistant API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Postgres
	pool, err := storage.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	store := storage.NewStore(pool)

	// Redis (conversation transcripts)
	redisOpts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)
	defer func() { _ = redisClient.Close() }()

	var transcripts *conversation.TranscriptStore
	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable, transcripts disabled", "error", err)
	} else {
		transcripts = conversation.NewTranscriptStore(redisClient, nil)
	}
	cancelPing()

	// Gemini client, shared by the LLM and the embedder.
	if cfg.GeminiAPIKey == "" {
		logger.Error("GEMINI_API_KEY is required")
		os.Exit(1)
	}
	genaiClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		logger.Error("failed to create gemini client", "error", err)
		os.Exit(1)
	}
	defer func() { _ = genaiClient.Close() }()

	llm, err := conversation.NewGeminiLLMClient(genaiClient, cfg.LLMModel)
	if err != nil {
		logger.Error("failed to create llm client", "error", err)
		os.Exit(1)
	}

	embedder, err := rag.NewGeminiEmbedder(genaiClient, cfg.EmbeddingModel)
	if err != nil {
		logger.Error("failed to create embedder", "error", err)
		os.Exit(1)
	}
	ragStore := rag.NewMemoryStore(embedder,
		rag.WithTopK(cfg.RetrievalTopK),
		rag.WithLogger(logger),
	)

	// Email: fall back to the stub sender when SendGrid is not configured so
	// local development still completes bookings.
	var sender notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sg != nil {
		sender = sg
	} else {
		logger.Warn("SENDGRID_API_KEY not set, using stub email sender")
		sender = notify.NewStubEmailSender(logger)
	}
	mailer := notify.NewConfirmationService(sender)

	searcher := websearch.NewClient(cfg.WebSearchEnabled, cfg.WebSearchTimeout,
		websearch.WithLogger(logger),
	)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	convMetrics := metrics.NewConversationMetrics(registry)

	engine, err := conversation.NewEngine(conversation.EngineConfig{
		LLM:         llm,
		LLMModel:    cfg.LLMModel,
		Temperature: float32(cfg.LLMTemperature),
		Retriever:   ragStore,
		Searcher:    searcher,
		Store:       store,
		Mailer:      mailer,
		Transcripts: transcripts,
		Metrics:     convMetrics,
		Logger:      logger,
		MaxMemory:   cfg.MaxMemoryMessages,
	})
	if err != nil {
		logger.Error("failed to create conversation engine", "error", err)
		os.Exit(1)
	}

	// Handlers
	chatHandler := handlers.NewChatHandler(engine, logger)
	knowledgeHandler := handlers.NewKnowledgeHandler(ragStore, cfg.ChunkSize, cfg.ChunkOverlap, logger)
	adminHandler := handlers.NewAdminHandler(store, logger)
	webchatHandler := webchat.NewHandler(engine, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        chatHandler,
		KnowledgeHandler:   knowledgeHandler,
		AdminHandler:       adminHandler,
		WebchatHandler:     webchatHandler,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		AdminAuthSecret:    cfg.AdminJWTSecret,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
