// internal/capability/mail/ses.go
package mail

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	commonaws "venture-agents/internal/common/aws"
	commonerrors "venture-agents/internal/common/errors"
	"venture-agents/internal/common/logger"
)

// SESMailer is the fallback transport for deployments without an
// AgentMail inbox. SES has no inbound webhook API, so the webhook
// operations report WEBHOOK_SETUP_FAILED.
type SESMailer struct {
	client    *commonaws.SESClient
	fromEmail string
	logger    logger.Logger
}

func NewSESMailer(client *commonaws.SESClient, fromEmail string, log logger.Logger) *SESMailer {
	return &SESMailer{
		client:    client,
		fromEmail: fromEmail,
		logger:    log.With(map[string]interface{}{"capability": "mail", "provider": "ses"}),
	}
}

func (m *SESMailer) Send(ctx context.Context, msg Message) error {
	input := &ses.SendEmailInput{
		Source: awssdk.String(m.fromEmail),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: awssdk.String(msg.Subject)},
			Body: &types.Body{
				Text: &types.Content{Data: awssdk.String(msg.Text)},
			},
		},
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return commonerrors.NewMailSendFailedError(err)
	}

	m.logger.Info("mail sent", map[string]interface{}{
		"to":      msg.To,
		"subject": msg.Subject,
	})
	return nil
}

func (m *SESMailer) ListWebhooks(ctx context.Context) ([]Webhook, error) {
	return nil, commonerrors.NewWebhookFailedError(fmt.Errorf("ses transport has no webhook API"))
}

func (m *SESMailer) CreateWebhook(ctx context.Context, url string, eventTypes []string) (Webhook, error) {
	return Webhook{}, commonerrors.NewWebhookFailedError(fmt.Errorf("ses transport has no webhook API"))
}
