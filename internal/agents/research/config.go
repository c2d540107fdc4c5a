// internal/agents/research/config.go
package research

import (
	"time"

	appconfig "venture-agents/internal/common/config"
)

const TaskName = "research"

// Config holds the research task settings. MaxIterations bounds how
// often an analyst is re-asked after an unparseable reply; Timeout
// bounds the whole invocation including synthesis.
type Config struct {
	MaxIterations int
	Timeout       time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxIterations: 2,
		Timeout:       5 * time.Minute,
	}
}

func ConfigFromApp(cfg *appconfig.Config) Config {
	c := DefaultConfig()
	if cfg.Agents.Research.MaxIterations > 0 {
		c.MaxIterations = cfg.Agents.Research.MaxIterations
	}
	if cfg.Agents.Research.Timeout > 0 {
		c.Timeout = time.Duration(cfg.Agents.Research.Timeout) * time.Millisecond
	}
	return c
}
