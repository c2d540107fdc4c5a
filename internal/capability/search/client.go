// internal/capability/search/client.go
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"venture-agents/internal/common/config"
	commonerrors "venture-agents/internal/common/errors"
	commonhttp "venture-agents/internal/common/http"
	"venture-agents/internal/common/logger"
)

// Client queries a Custom Search style API and returns the top hits.
type Client struct {
	baseURL  string
	apiKey   string
	engineID string
	maxHits  int
	client   *commonhttp.Client
	logger   logger.Logger
}

func NewClient(cfg config.SearchConfig, log logger.Logger) *Client {
	return &Client{
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		engineID: cfg.EngineID,
		maxHits:  cfg.MaxHits,
		client:   commonhttp.NewClient(config.GetDuration(cfg.Timeout)),
		logger:   log.With(map[string]interface{}{"capability": "search"}),
	}
}

func (c *Client) Search(ctx context.Context, query string) ([]Hit, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(query), nil)
	if err != nil {
		return nil, commonerrors.NewSearchFailedError(err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, commonerrors.NewSearchTimeoutError()
		}
		return nil, commonerrors.NewSearchFailedError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, commonerrors.NewSearchFailedError(fmt.Errorf("search API returned %d", resp.StatusCode))
	}

	var apiResponse struct {
		Items []struct {
			Link    string `json:"link"`
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, commonerrors.NewSearchFailedError(err)
	}

	// Dedupe by URL, keep the top ranked hits.
	seen := make(map[string]bool)
	var hits []Hit
	for _, item := range apiResponse.Items {
		if seen[item.Link] {
			continue
		}
		seen[item.Link] = true
		hits = append(hits, Hit{Title: item.Title, Snippet: item.Snippet, Link: item.Link})
		if len(hits) == c.maxHits {
			break
		}
	}

	c.logger.Info("search completed", map[string]interface{}{
		"query":    query,
		"hitCount": len(hits),
	})
	return hits, nil
}

func (c *Client) buildURL(query string) string {
	base, _ := url.Parse(c.baseURL)
	params := url.Values{}
	params.Add("key", c.apiKey)
	params.Add("cx", c.engineID)
	params.Add("q", query)
	params.Add("num", fmt.Sprintf("%d", c.maxHits))
	base.RawQuery = params.Encode()
	return base.String()
}
