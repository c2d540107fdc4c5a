// internal/agents/video/config.go
package video

import (
	"time"

	appconfig "venture-agents/internal/common/config"
)

const TaskName = "brand_video"

// Config holds the brand-video task settings. The poll budget is hard:
// a job still pending after MaxPollAttempts is marked failed with a
// generation timeout, whatever the provider is still doing.
type Config struct {
	PollInterval    time.Duration
	MaxPollAttempts int
}

func DefaultConfig() Config {
	return Config{
		PollInterval:    10 * time.Second,
		MaxPollAttempts: 30,
	}
}

func ConfigFromApp(cfg *appconfig.Config) Config {
	c := DefaultConfig()
	if cfg.Agents.Video.PollInterval > 0 {
		c.PollInterval = time.Duration(cfg.Agents.Video.PollInterval) * time.Millisecond
	}
	if cfg.Agents.Video.MaxPollAttempts > 0 {
		c.MaxPollAttempts = cfg.Agents.Video.MaxPollAttempts
	}
	return c
}
