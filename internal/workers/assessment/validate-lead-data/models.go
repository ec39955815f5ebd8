package validateleaddata

type Input struct {
	LeadData map[string]interface{} `json:"leadData"`
}

type Output struct {
	Valid    bool              `json:"valid"`
	Errors   []FieldError      `json:"validationErrors,omitempty"`
	Warnings []string          `json:"validationWarnings,omitempty"`
	Lead     map[string]interface{} `json:"normalizedLead,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
