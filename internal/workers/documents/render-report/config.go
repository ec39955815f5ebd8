package renderreport

import (
	"time"

	"homeready-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration

	CompanyName string
	AdvisorName string
	NMLSNumber  string
	Phone       string
	Email       string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     30 * time.Second,
		CompanyName: "ClearPath Utah Mortgage",
		AdvisorName: "Kelly Sansom",
		NMLSNumber:  "2510508",
	}
}

// LoadConfigFrom maps the application config onto the worker config.
func LoadConfigFrom(cfg *config.Config) *Config {
	c := LoadConfig()

	if cfg.Report.CompanyName != "" {
		c.CompanyName = cfg.Report.CompanyName
	}
	if cfg.Report.AdvisorName != "" {
		c.AdvisorName = cfg.Report.AdvisorName
	}
	if cfg.Report.NMLSNumber != "" {
		c.NMLSNumber = cfg.Report.NMLSNumber
	}
	c.Phone = cfg.Report.Phone
	c.Email = cfg.Report.Email

	return c
}
