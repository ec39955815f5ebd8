package crmleadsync

import "homeready-workers/internal/models"

type Input struct {
	Lead  models.Lead   `json:"lead"`
	Agent *models.Agent `json:"agent,omitempty"`
}

type Output struct {
	CRMSyncStatus string `json:"crmSyncStatus"` // synced | skipped
	CRMTag        string `json:"crmTag,omitempty"`
}
