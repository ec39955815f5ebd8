package models

// EmailNotification describes an outbound email request.
type EmailNotification struct {
	To       []string `json:"to"`
	CC       []string `json:"cc,omitempty"`
	Subject  string   `json:"subject"`
	BodyText string   `json:"bodyText"`
	BodyHTML string   `json:"bodyHtml,omitempty"`
}

// SMSNotification describes an outbound SMS request.
type SMSNotification struct {
	PhoneNumber string `json:"phoneNumber"`
	Message     string `json:"message"`
}
