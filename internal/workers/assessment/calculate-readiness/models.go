package calculatereadiness

type Input struct {
	LeadID string                 `json:"leadId,omitempty"`
	Lead   map[string]interface{} `json:"normalizedLead"`
}

type Output struct {
	ReadinessScore int    `json:"readinessScore"`
	ReadinessLevel string `json:"readinessLevel"`
	RedLightReason string `json:"redLightReason,omitempty"`

	ComfortablePayment int `json:"comfortablePayment"`
	StretchPayment     int `json:"stretchPayment"`
	StrainedPayment    int `json:"strainedPayment"`

	ComfortableLoan int `json:"comfortableLoan"`
	StretchLoan     int `json:"stretchLoan"`
	StrainedLoan    int `json:"strainedLoan"`

	ComfortablePrice int `json:"comfortablePrice"`
	StretchPrice     int `json:"stretchPrice"`
	StrainedPrice    int `json:"strainedPrice"`
}
