// cmd/agent-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"venture-agents/internal/agents/branding"
	"venture-agents/internal/agents/legaldocs"
	"venture-agents/internal/agents/research"
	"venture-agents/internal/agents/support"
	"venture-agents/internal/agents/video"
	"venture-agents/internal/capability/commerce"
	"venture-agents/internal/capability/mail"
	"venture-agents/internal/capability/notify"
	"venture-agents/internal/capability/search"
	commonaws "venture-agents/internal/common/aws"
	"venture-agents/internal/common/config"
	"venture-agents/internal/common/database"
	"venture-agents/internal/common/logger"
	"venture-agents/internal/common/observability"
	"venture-agents/internal/gateway"
	"venture-agents/internal/prompt"
	"venture-agents/internal/server"
	"venture-agents/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting agent server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init generation gateways ---
	gemini, err := gateway.NewGeminiGateway(ctx, cfg.Providers.Gemini, log)
	if err != nil {
		zapLog.Fatal("gemini gateway initialization failed", zap.Error(err))
	}
	openai := gateway.NewOpenAIGateway(cfg.Providers.OpenAI, log)
	zapLog.Info("Generation gateways initialized")

	// --- Init SaaS capability clients ---
	mailer := buildMailer(ctx, cfg, zapLog, log)

	var searcher search.Searcher = search.NewClient(cfg.Search, log)
	if cfg.Search.CacheTTL > 0 {
		searcher = search.NewCachedSearcher(searcher, redisClient.Client, time.Duration(cfg.Search.CacheTTL)*time.Second, log)
	}

	shopify := commerce.NewShopifyClient(cfg.Commerce, log)

	var notifier notify.Notifier = notify.NoOpNotifier{}
	if cfg.Notifications.SNS.Enabled {
		snsClient, snsErr := commonaws.NewSNSClient(ctx, cfg.Notifications.SNS.Region)
		if snsErr != nil {
			zapLog.Fatal("sns client initialization failed", zap.Error(snsErr))
		}
		notifier = notify.NewSNSNotifier(snsClient, cfg.Notifications.SNS.TopicARN, log)
	}
	zapLog.Info("All external service clients initialized")

	// --- Init stores ---
	artifacts := store.NewArtifactStore(pg.DB, log)
	reports := store.NewReportStore(esClient.Client, cfg.Database.Elasticsearch.Index, log)
	jobs := store.NewJobStore(redisClient.Client, time.Duration(cfg.Agents.Video.JobTTL)*time.Second, log)

	// --- Wire agent tasks ---
	registry := prompt.NewRegistry()

	tasks := server.Tasks{
		Branding:  branding.NewTask(registry, gemini, artifacts, branding.ConfigFromApp(cfg), log),
		LegalDocs: legaldocs.NewTask(registry, gemini, artifacts, legaldocs.ConfigFromApp(cfg), log),
		Research:  research.NewTask(registry, openai, gemini, searcher, reports, artifacts, research.ConfigFromApp(cfg), log),
		Support:   support.NewTask(registry, gemini, mailer, support.ConfigFromApp(cfg), log),
		Video:     video.NewTask(registry, gemini, gemini, jobs, notifier, video.ConfigFromApp(cfg), log),
	}
	zapLog.Info("All 5 agent tasks wired successfully")

	srv := server.New(tasks, shopify, nil, server.Config{
		AppName:         cfg.App.Name,
		Version:         cfg.App.Version,
		CallbackBaseURL: cfg.Server.CallbackBaseURL,
	}, log)

	httpServer := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: srv.Handler(),
	}

	// --- Metrics Server ---
	go func() {
		zapLog.Info("Metrics server listening", zap.String("address", cfg.Server.MetricsAddress))
		if err := http.ListenAndServe(cfg.Server.MetricsAddress, server.MetricsHandler()); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Metrics server failed", zap.Error(err))
		}
	}()

	// --- API Server ---
	go func() {
		zapLog.Info("API server listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("API server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down API server", zap.Error(err))
	}

	zapLog.Info("Shutdown complete")
}

// buildMailer selects the configured mail transport.
func buildMailer(ctx context.Context, cfg *config.Config, zapLog *zap.Logger, log logger.Logger) mail.Mailer {
	switch cfg.Mail.Provider {
	case "ses":
		sesClient, err := commonaws.NewSESClient(ctx, cfg.Mail.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client initialization failed", zap.Error(err))
		}
		return mail.NewSESMailer(sesClient, cfg.Mail.AWS.FromEmail, log)
	default:
		return mail.NewAgentMailClient(cfg.Mail, log)
	}
}
