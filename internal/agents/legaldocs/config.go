// internal/agents/legaldocs/config.go
package legaldocs

import appconfig "venture-agents/internal/common/config"

const TaskName = "legal_docs"

// Config holds the legal-docs task settings. DocumentCount is the exact
// number of documents a reply must contain.
type Config struct {
	Temperature   float32
	DocumentCount int
}

func DefaultConfig() Config {
	return Config{
		Temperature:   0.3,
		DocumentCount: 2,
	}
}

func ConfigFromApp(cfg *appconfig.Config) Config {
	c := DefaultConfig()
	if cfg.Agents.LegalDocs.Temperature > 0 {
		c.Temperature = float32(cfg.Agents.LegalDocs.Temperature)
	}
	if cfg.Agents.LegalDocs.DocumentCount > 0 {
		c.DocumentCount = cfg.Agents.LegalDocs.DocumentCount
	}
	return c
}
