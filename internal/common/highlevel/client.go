// Package highlevel pushes completed assessments to the HighLevel CRM
// via its inbound webhook.
package highlevel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	commonhttp "homeready-workers/internal/common/http"
	"homeready-workers/internal/models"
)

type Client struct {
	webhookURL string
	httpClient *commonhttp.Client
}

// ContactPayload is the webhook body HighLevel expects for contact upserts.
type ContactPayload struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Address1   string `json:"address1,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`

	Source string   `json:"source"`
	Tags   []string `json:"tags"`

	CustomField map[string]interface{} `json:"customField"`
}

func NewClient(webhookURL string, timeout time.Duration) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: commonhttp.NewClient(timeout),
	}
}

// Configured reports whether a webhook URL is set. When it is not, sync
// is a no-op rather than an error.
func (c *Client) Configured() bool {
	return c.webhookURL != ""
}

// SendLead pushes the lead and its assessment to HighLevel. agent may be nil.
func (c *Client) SendLead(ctx context.Context, lead *models.Lead, agent *models.Agent) error {
	if !c.Configured() {
		return nil
	}

	payload := BuildContactPayload(lead, agent)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal lead payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.DoWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("highlevel webhook failed (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}

// ReadinessTag maps a readiness level to its HighLevel contact tag.
func ReadinessTag(level string) string {
	switch level {
	case "green":
		return "Home Ready - Green Light"
	case "yellow":
		return "Home Ready - Yellow Light"
	case "red":
		return "Home Ready - Red Light"
	default:
		return "Home Ready Assessment"
	}
}

// BuildContactPayload assembles the webhook body from a lead and optional agent.
func BuildContactPayload(lead *models.Lead, agent *models.Agent) *ContactPayload {
	state := lead.State
	if state == "" {
		state = "Utah"
	}

	hasCoBorrower := "No"
	if lead.HasCoBorrower {
		hasCoBorrower = "Yes"
	}

	custom := map[string]interface{}{
		"readiness_score":  lead.ReadinessScore,
		"readiness_level":  lead.ReadinessLevel,
		"red_light_reason": lead.RedLightReason,

		"gross_annual_income":   lead.GrossAnnualIncome,
		"monthly_debt_payments": lead.MonthlyDebtPayments,
		"credit_score_range":    lead.CreditScoreRange,
		"down_payment_saved":    lead.DownPaymentSaved,
		"down_payment_sources":  strings.Join(lead.DownPaymentSources, ", "),
		"employment_type":       lead.EmploymentType,

		"comfortable_price": lead.ComfortablePrice,
		"stretch_price":     lead.StretchPrice,
		"strained_price":    lead.StrainedPrice,

		"timeline":         lead.Timeline,
		"target_counties":  strings.Join(lead.TargetCounties, ", "),
		"first_time_buyer": lead.FirstTimeBuyer,
		"va_eligible":      lead.VAEligible,
		"current_housing":  lead.CurrentHousing,

		"has_coborrower":   hasCoBorrower,
		"coborrower_name":  lead.CoBorrowerFullName(),
		"coborrower_email": lead.CoBorrowerEmail,

		"ai_summary": lead.AISummary,
	}

	if agent != nil {
		custom["referring_agent"] = agent.FullName()
		custom["referring_agent_email"] = agent.Email
		custom["referring_agent_brokerage"] = agent.Brokerage
	} else {
		custom["referring_agent"] = ""
		custom["referring_agent_email"] = ""
		custom["referring_agent_brokerage"] = ""
	}

	return &ContactPayload{
		FirstName:  lead.FirstName,
		LastName:   lead.LastName,
		Email:      lead.Email,
		Phone:      lead.Phone,
		Address1:   lead.StreetAddress,
		City:       lead.City,
		State:      state,
		PostalCode: lead.Zip,
		Source:     "Utah Home Ready Check",
		Tags:       []string{ReadinessTag(lead.ReadinessLevel)},

		CustomField: custom,
	}
}
