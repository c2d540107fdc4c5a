// cmd/tools/webhook-setup/main.go
//
// Registers the inbound-email webhook with the mail provider. Safe to
// run repeatedly: an existing registration for the same URL is kept.
package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"venture-agents/internal/capability/mail"
	"venture-agents/internal/common/config"
	"venture-agents/internal/common/logger"
)

var eventTypes = []string{"message.received"}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	webhookURL := cfg.Server.CallbackBaseURL + "/email/webhook"
	client := mail.NewAgentMailClient(cfg.Mail, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	existing, err := client.ListWebhooks(ctx)
	if err != nil {
		zapLog.Fatal("listing webhooks failed", zap.Error(err))
	}

	for _, hook := range existing {
		if hook.URL == webhookURL {
			zapLog.Info("Webhook already registered",
				zap.String("webhookId", hook.ID),
				zap.String("url", hook.URL),
			)
			return
		}
	}

	created, err := client.CreateWebhook(ctx, webhookURL, eventTypes)
	if err != nil {
		zapLog.Fatal("webhook creation failed", zap.Error(err))
	}

	zapLog.Info("Webhook registered",
		zap.String("webhookId", created.ID),
		zap.String("url", created.URL),
		zap.Strings("eventTypes", created.EventTypes),
	)
}
