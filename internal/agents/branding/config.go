// internal/agents/branding/config.go
package branding

import appconfig "venture-agents/internal/common/config"

const TaskName = "branding"

// Config holds the branding task settings.
type Config struct {
	Temperature float32
	ImageWidth  int
	ImageHeight int
}

// DefaultConfig returns the stock branding settings.
func DefaultConfig() Config {
	return Config{
		Temperature: 0.7,
		ImageWidth:  512,
		ImageHeight: 512,
	}
}

// ConfigFromApp builds the task config from the application config,
// falling back to defaults for unset values.
func ConfigFromApp(cfg *appconfig.Config) Config {
	c := DefaultConfig()
	if cfg.Agents.Branding.Temperature > 0 {
		c.Temperature = float32(cfg.Agents.Branding.Temperature)
	}
	if cfg.Agents.Branding.ImageWidth > 0 {
		c.ImageWidth = cfg.Agents.Branding.ImageWidth
	}
	if cfg.Agents.Branding.ImageHeight > 0 {
		c.ImageHeight = cfg.Agents.Branding.ImageHeight
	}
	return c
}
