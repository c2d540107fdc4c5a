// internal/capability/mail/agentmail.go
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"venture-agents/internal/common/config"
	commonerrors "venture-agents/internal/common/errors"
	commonhttp "venture-agents/internal/common/http"
	"venture-agents/internal/common/logger"
)

// AgentMailClient sends through the AgentMail REST API using a
// per-service inbox.
type AgentMailClient struct {
	baseURL string
	apiKey  string
	inboxID string
	client  *commonhttp.Client
	logger  logger.Logger
}

func NewAgentMailClient(cfg config.MailConfig, log logger.Logger) *AgentMailClient {
	return &AgentMailClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		inboxID: cfg.InboxID,
		client:  commonhttp.NewClient(30 * time.Second),
		logger:  log.With(map[string]interface{}{"capability": "mail", "provider": "agentmail"}),
	}
}

func (c *AgentMailClient) Send(ctx context.Context, msg Message) error {
	url := fmt.Sprintf("%s/inboxes/%s/messages/send", c.baseURL, c.inboxID)

	body, err := json.Marshal(msg)
	if err != nil {
		return commonerrors.NewMailSendFailedError(err)
	}

	resp, err := c.do(ctx, http.MethodPost, url, body)
	if err != nil {
		return commonerrors.NewMailSendFailedError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return commonerrors.NewMailSendFailedError(fmt.Errorf("status %d: %s", resp.StatusCode, payload))
	}

	c.logger.Info("mail sent", map[string]interface{}{
		"to":      msg.To,
		"subject": msg.Subject,
		"labels":  msg.Labels,
	})
	return nil
}

func (c *AgentMailClient) ListWebhooks(ctx context.Context) ([]Webhook, error) {
	resp, err := c.do(ctx, http.MethodGet, c.baseURL+"/webhooks", nil)
	if err != nil {
		return nil, commonerrors.NewWebhookFailedError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, commonerrors.NewWebhookFailedError(fmt.Errorf("status %d", resp.StatusCode))
	}

	var payload struct {
		Webhooks []Webhook `json:"webhooks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, commonerrors.NewWebhookFailedError(err)
	}
	return payload.Webhooks, nil
}

func (c *AgentMailClient) CreateWebhook(ctx context.Context, url string, eventTypes []string) (Webhook, error) {
	body, err := json.Marshal(map[string]interface{}{
		"url":         url,
		"event_types": eventTypes,
	})
	if err != nil {
		return Webhook{}, commonerrors.NewWebhookFailedError(err)
	}

	resp, err := c.do(ctx, http.MethodPost, c.baseURL+"/webhooks", body)
	if err != nil {
		return Webhook{}, commonerrors.NewWebhookFailedError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Webhook{}, commonerrors.NewWebhookFailedError(fmt.Errorf("status %d", resp.StatusCode))
	}

	var created Webhook
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return Webhook{}, commonerrors.NewWebhookFailedError(err)
	}

	c.logger.Info("webhook registered", map[string]interface{}{
		"url":        created.URL,
		"eventTypes": created.EventTypes,
	})
	return created, nil
}

func (c *AgentMailClient) do(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.client.Do(req)
}
