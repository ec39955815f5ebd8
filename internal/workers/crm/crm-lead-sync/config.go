package crmleadsync

import "time"

type Config struct {
	WebhookURL string
	Timeout    time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
