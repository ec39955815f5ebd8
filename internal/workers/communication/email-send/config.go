package emailsend

import (
	"time"

	"homeready-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration

	EmailEnabled bool
	SMSEnabled   bool
	FromEmail    string
	AWSRegion    string

	// SMS goes out only when the lead's readiness level meets this threshold.
	SMSLevelThreshold string

	LoanOfficerName  string
	LoanOfficerEmail string
	LoanOfficerPhone string
	CompanyName      string
	NMLSNumber       string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:           30 * time.Second,
		EmailEnabled:      true,
		SMSEnabled:        false,
		SMSLevelThreshold: "green",
		AWSRegion:         "us-east-1",
	}
}

// LoadConfigFrom maps the application config onto the worker config.
func LoadConfigFrom(cfg *config.Config) *Config {
	c := LoadConfig()

	c.EmailEnabled = cfg.Notifications.Email.Enabled
	c.SMSEnabled = cfg.Notifications.SMS.Enabled
	if cfg.Notifications.SMS.LevelThreshold != "" {
		c.SMSLevelThreshold = cfg.Notifications.SMS.LevelThreshold
	}
	if cfg.Notifications.Email.FromEmail != "" {
		c.FromEmail = cfg.Notifications.Email.FromEmail
	} else {
		c.FromEmail = cfg.Integrations.AWS.SES.FromEmail
	}
	if cfg.Integrations.AWS.Region != "" {
		c.AWSRegion = cfg.Integrations.AWS.Region
	}

	c.LoanOfficerName = cfg.Report.AdvisorName
	c.LoanOfficerEmail = cfg.Report.Email
	c.LoanOfficerPhone = cfg.Report.Phone
	c.CompanyName = cfg.Report.CompanyName
	c.NMLSNumber = cfg.Report.NMLSNumber

	return c
}
