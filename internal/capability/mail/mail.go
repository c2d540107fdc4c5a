// internal/capability/mail/mail.go
package mail

import "context"

// Message is an outbound transactional email.
type Message struct {
	To      string   `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	Labels  []string `json:"labels,omitempty"`
}

// Webhook is a registered inbound-message callback.
type Webhook struct {
	ID         string   `json:"webhook_id"`
	URL        string   `json:"url"`
	EventTypes []string `json:"event_types"`
}

// Mailer is the mail capability boundary. Implementations are safe for
// concurrent use by in-flight tasks.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
	ListWebhooks(ctx context.Context) ([]Webhook, error)
	CreateWebhook(ctx context.Context, url string, eventTypes []string) (Webhook, error)
}
