// internal/common/http/client.go
package http

import (
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client is the shared HTTP transport for the SaaS capability clients
// (AgentMail, web search, Shopify). Requests carry their own context;
// the timeout here is a backstop against a hung connection.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}
