// Package models defines the shared data structures persisted and passed
// between workers.
package models

import "time"

// Lead is a full lead record as stored in the leads table.
type Lead struct {
	ID      string `json:"leadId" db:"id"`
	AgentID string `json:"agentId,omitempty" db:"agent_id"`

	// Borrower info
	FirstName     string `json:"firstName" db:"first_name"`
	LastName      string `json:"lastName" db:"last_name"`
	Email         string `json:"email" db:"email"`
	Phone         string `json:"phone,omitempty" db:"phone"`
	StreetAddress string `json:"streetAddress,omitempty" db:"street_address"`
	City          string `json:"city,omitempty" db:"city"`
	State         string `json:"state,omitempty" db:"state"`
	Zip           string `json:"zip,omitempty" db:"zip"`
	TimeAtAddress string `json:"timeAtAddress,omitempty" db:"time_at_address"`

	// Co-borrower info
	HasCoBorrower       bool   `json:"hasCoborrower" db:"has_coborrower"`
	CoBorrowerFirstName string `json:"coborrowerFirstName,omitempty" db:"coborrower_first_name"`
	CoBorrowerLastName  string `json:"coborrowerLastName,omitempty" db:"coborrower_last_name"`
	CoBorrowerEmail     string `json:"coborrowerEmail,omitempty" db:"coborrower_email"`

	// Financial info
	GrossAnnualIncome           float64 `json:"grossAnnualIncome" db:"gross_annual_income"`
	CoBorrowerGrossAnnualIncome float64 `json:"coborrowerGrossAnnualIncome,omitempty" db:"coborrower_gross_annual_income"`
	EmploymentType              string  `json:"employmentType,omitempty" db:"employment_type"`
	CoBorrowerEmploymentType    string  `json:"coborrowerEmploymentType,omitempty" db:"coborrower_employment_type"`
	MonthlyDebtPayments         string  `json:"monthlyDebtPayments,omitempty" db:"monthly_debt_payments"`
	CreditScoreRange            string  `json:"creditScoreRange,omitempty" db:"credit_score_range"`
	DownPaymentSaved            float64 `json:"downPaymentSaved" db:"down_payment_saved"`
	DownPaymentSources          []string `json:"downPaymentSources,omitempty" db:"down_payment_sources"`

	// Buying plans
	Timeline       string   `json:"timeline,omitempty" db:"timeline"`
	TargetCounties []string `json:"targetCounties,omitempty" db:"target_counties"`
	FirstTimeBuyer string   `json:"firstTimeBuyer,omitempty" db:"first_time_buyer"`
	VAEligible     string   `json:"vaEligible,omitempty" db:"va_eligible"`
	CurrentHousing string   `json:"currentHousing,omitempty" db:"current_housing"`

	// Calculated results
	ReadinessScore    int     `json:"readinessScore" db:"readiness_score"`
	ReadinessLevel    string  `json:"readinessLevel" db:"readiness_level"`
	RedLightReason    string  `json:"redLightReason,omitempty" db:"red_light_reason"`
	ComfortablePrice  float64 `json:"comfortablePrice" db:"comfortable_price"`
	StretchPrice      float64 `json:"stretchPrice" db:"stretch_price"`
	StrainedPrice     float64 `json:"strainedPrice" db:"strained_price"`
	ComfortablePayment float64 `json:"comfortablePayment" db:"comfortable_payment"`
	StretchPayment     float64 `json:"stretchPayment" db:"stretch_payment"`
	StrainedPayment    float64 `json:"strainedPayment" db:"strained_payment"`

	// AI generated
	AISummary   string       `json:"aiSummary,omitempty" db:"ai_summary"`
	ActionItems []ActionItem `json:"actionItems,omitempty" db:"action_items"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ActionItem is one recommended next step shown on the results page.
type ActionItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"` // high | medium | low
	Category    string `json:"category"` // credit | savings | documents | education | next_step
}

// FullName returns the borrower's display name.
func (l *Lead) FullName() string {
	if l.LastName == "" {
		return l.FirstName
	}
	return l.FirstName + " " + l.LastName
}

// CoBorrowerFullName returns the co-borrower's display name, or empty.
func (l *Lead) CoBorrowerFullName() string {
	if !l.HasCoBorrower {
		return ""
	}
	if l.CoBorrowerLastName == "" {
		return l.CoBorrowerFirstName
	}
	return l.CoBorrowerFirstName + " " + l.CoBorrowerLastName
}
