package createleadrecord

type Input struct {
	Lead      map[string]interface{} `json:"normalizedLead"`
	AgentSlug string                 `json:"agentSlug,omitempty"`

	ReadinessScore int    `json:"readinessScore"`
	ReadinessLevel string `json:"readinessLevel"`
	RedLightReason string `json:"redLightReason,omitempty"`

	ComfortablePayment int `json:"comfortablePayment"`
	StretchPayment     int `json:"stretchPayment"`
	StrainedPayment    int `json:"strainedPayment"`

	ComfortablePrice int `json:"comfortablePrice"`
	StretchPrice     int `json:"stretchPrice"`
	StrainedPrice    int `json:"strainedPrice"`
}

type Output struct {
	LeadID     string `json:"leadId"`
	LeadStatus string `json:"leadStatus"`
	CreatedAt  string `json:"createdAt"` // ISO 8601
}
