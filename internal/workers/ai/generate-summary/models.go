package generatesummary

import "homeready-workers/internal/models"

const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

type Input struct {
	Lead  models.Lead   `json:"lead"`
	Agent *models.Agent `json:"agent,omitempty"`
}

type Output struct {
	AISummary     string              `json:"aiSummary"`
	ActionItems   []models.ActionItem `json:"actionItems"`
	SummarySource string              `json:"summarySource"` // ai | fallback
}
