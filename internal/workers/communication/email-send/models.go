package emailsend

import "homeready-workers/internal/models"

const (
	StatusSent     = "sent"
	StatusPartial  = "partial"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

type Input struct {
	Lead  models.Lead   `json:"lead"`
	Agent *models.Agent `json:"agent,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"notificationStatus"`
	EmailsSent     int    `json:"emailsSent"`
	SMSSent        bool   `json:"smsSent"`
	SentAt         string `json:"notificationSentAt"`
}
