// internal/capability/mail/mail_test.go
package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venture-agents/internal/common/config"
	commonerrors "venture-agents/internal/common/errors"
	"venture-agents/internal/common/logger"
)

func newTestClient(t *testing.T, serverURL string) *AgentMailClient {
	cfg := config.MailConfig{
		BaseURL: serverURL,
		APIKey:  "test-key",
		InboxID: "inbox-123",
	}
	return NewAgentMailClient(cfg, logger.NewTestLogger(t))
}

func TestAgentMailClient_Send(t *testing.T) {
	var captured Message
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/inboxes/inbox-123/messages/send", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	err := client.Send(context.Background(), Message{
		To:      "dana@example.com",
		Subject: "Hey Dana! Re: Where is my order?",
		Text:    "Thanks for reaching out.",
		Labels:  []string{"support"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "dana@example.com", captured.To)
	assert.Equal(t, []string{"support"}, captured.Labels)
}

func TestAgentMailClient_Send_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	err := client.Send(context.Background(), Message{To: "dana@example.com"})

	assert.Error(t, err)
	stdErr, ok := err.(*commonerrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, commonerrors.ErrCodeMailSendFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestAgentMailClient_ListWebhooks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/webhooks", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"webhooks": []map[string]interface{}{
				{"webhook_id": "wh-1", "url": "https://callbacks.example.com/email/webhook", "event_types": []string{"message.received"}},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	webhooks, err := client.ListWebhooks(context.Background())

	assert.NoError(t, err)
	require.Len(t, webhooks, 1)
	assert.Equal(t, "wh-1", webhooks[0].ID)
	assert.Equal(t, []string{"message.received"}, webhooks[0].EventTypes)
}

func TestAgentMailClient_CreateWebhook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/webhooks", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "https://callbacks.example.com/email/webhook", body["url"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"webhook_id":  "wh-2",
			"url":         body["url"],
			"event_types": body["event_types"],
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	created, err := client.CreateWebhook(context.Background(), "https://callbacks.example.com/email/webhook", []string{"message.received"})

	assert.NoError(t, err)
	assert.Equal(t, "wh-2", created.ID)
	assert.Equal(t, []string{"message.received"}, created.EventTypes)
}

func TestSESMailer_WebhooksUnsupported(t *testing.T) {
	mailer := NewSESMailer(nil, "support@example.com", logger.NewTestLogger(t))

	_, err := mailer.ListWebhooks(context.Background())
	assert.Error(t, err)

	_, err = mailer.CreateWebhook(context.Background(), "https://example.com", nil)
	stdErr, ok := err.(*commonerrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, commonerrors.ErrCodeWebhookFailed, stdErr.Code)
}
