package routelead

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

type Input struct {
	LeadID         string `json:"leadId"`
	AgentSlug      string `json:"agentSlug,omitempty"`
	ReadinessLevel string `json:"readinessLevel"`
	Timeline       string `json:"timeline"`
}

type Output struct {
	RoutingPriority string `json:"routingPriority"`
	Urgent          bool   `json:"urgent"`

	AgentID        string `json:"agentId,omitempty"`
	AgentName      string `json:"agentName,omitempty"`
	AgentEmail     string `json:"agentEmail,omitempty"`
	AgentBrokerage string `json:"agentBrokerage,omitempty"`
}

// cachedAgent is the redis-serialized agent lookup result.
type cachedAgent struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Brokerage string `json:"brokerage"`
}
