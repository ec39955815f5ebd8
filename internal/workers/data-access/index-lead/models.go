package indexlead

import "homeready-workers/internal/models"

type Input struct {
	Lead  models.Lead   `json:"lead"`
	Agent *models.Agent `json:"agent,omitempty"`
}

type Output struct {
	IndexStatus string `json:"indexStatus"` // indexed
	IndexName   string `json:"indexName"`
	DocumentID  string `json:"documentId"`
}

// leadDocument is the flattened shape stored in the search index. The agent
// portal filters on these fields.
type leadDocument struct {
	LeadID    string `json:"lead_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`

	ReadinessScore int    `json:"readiness_score"`
	ReadinessLevel string `json:"readiness_level"`
	RedLightReason string `json:"red_light_reason,omitempty"`

	ComfortablePrice float64 `json:"comfortable_price"`
	StretchPrice     float64 `json:"stretch_price"`
	StrainedPrice    float64 `json:"strained_price"`

	Timeline       string   `json:"timeline,omitempty"`
	TargetCounties []string `json:"target_counties,omitempty"`
	FirstTimeBuyer string   `json:"first_time_buyer,omitempty"`
	VAEligible     string   `json:"va_eligible,omitempty"`
	HasCoBorrower  bool     `json:"has_coborrower"`

	AgentSlug string `json:"agent_slug,omitempty"`
	AgentName string `json:"agent_name,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
	IndexedAt string `json:"indexed_at"`
}
