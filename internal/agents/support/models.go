// internal/agents/support/models.go
package support

// Inbound is one support email as delivered by the mail webhook.
type Inbound struct {
	Subject string
	From    string // raw address header, e.g. `Jane Doe <jane@example.com>`
	Body    string
}

// Output records the reply that was sent.
type Output struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
