package generatesummary

import (
	"time"

	"homeready-workers/internal/common/config"
)

type Config struct {
	Timeout   time.Duration
	APIKey    string
	Model     string
	MaxTokens int64
}

func LoadConfig() *Config {
	return &Config{
		Timeout:   60 * time.Second,
		Model:     "claude-sonnet-4-20250514",
		MaxTokens: 500,
	}
}

// LoadConfigFrom maps the application config onto the worker config.
func LoadConfigFrom(cfg *config.Config) *Config {
	c := LoadConfig()

	c.APIKey = cfg.Integrations.Anthropic.APIKey
	if cfg.Integrations.Anthropic.Model != "" {
		c.Model = cfg.Integrations.Anthropic.Model
	}
	if cfg.Integrations.Anthropic.MaxTokens > 0 {
		c.MaxTokens = int64(cfg.Integrations.Anthropic.MaxTokens)
	}
	if cfg.Integrations.Anthropic.Timeout > 0 {
		c.Timeout = config.GetDuration(cfg.Integrations.Anthropic.Timeout)
	}

	return c
}
