// internal/agents/support/config.go
package support

import appconfig "venture-agents/internal/common/config"

const TaskName = "support"

// Config holds the support-reply task settings.
type Config struct {
	Temperature float32
}

func DefaultConfig() Config {
	return Config{Temperature: 0.5}
}

func ConfigFromApp(cfg *appconfig.Config) Config {
	c := DefaultConfig()
	if cfg.Agents.Support.Temperature > 0 {
		c.Temperature = float32(cfg.Agents.Support.Temperature)
	}
	return c
}
