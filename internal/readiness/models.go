// Package readiness implements the mortgage readiness engine: a composite
// 0-100 score, a traffic-light classification with hard override rules, and
// an affordability estimate at three debt-to-income ceilings. Every function
// is pure and total: unrecognized band strings fall back to documented
// defaults and never produce an error.
package readiness

// Level is the coarse traffic-light readiness tier.
type Level string

const (
	LevelGreen  Level = "green"
	LevelYellow Level = "yellow"
	LevelRed    Level = "red"
)

// OverrideReason names the hard rule that forced a red-light classification.
// Empty when the level is purely score-derived.
type OverrideReason string

const (
	ReasonNone        OverrideReason = ""
	ReasonCredit      OverrideReason = "credit"
	ReasonIncome      OverrideReason = "income"
	ReasonDownPayment OverrideReason = "down_payment"
	ReasonOverall     OverrideReason = "overall"
)

// Applicant is the flat intake record the engine consumes. All fields are
// optional: zero incomes and empty band strings take the documented defaults.
type Applicant struct {
	PrimaryAnnualIncome    float64 `json:"grossAnnualIncome"`
	CoBorrowerAnnualIncome float64 `json:"coborrowerGrossAnnualIncome"`
	MonthlyDebtBand        string  `json:"monthlyDebtPayments"`
	CreditScoreBand        string  `json:"creditScoreRange"`
	EmploymentType         string  `json:"employmentType"`
	TimeAtAddress          string  `json:"timeAtAddress"`
	Timeline               string  `json:"timeline"`
	DownPaymentSaved       float64 `json:"downPaymentSaved"`
}

// CombinedAnnualIncome sums primary and co-borrower income.
func (a *Applicant) CombinedAnnualIncome() float64 {
	return a.PrimaryAnnualIncome + a.CoBorrowerAnnualIncome
}

// TierAffordability holds the derived maximums for one DTI ceiling.
// Loan and price are rounded to the nearest $1,000 / $5,000 and never
// negative.
type TierAffordability struct {
	MaxMonthlyPayment int `json:"maxMonthlyPayment"`
	MaxLoanAmount     int `json:"maxLoanAmount"`
	MaxHomePrice      int `json:"maxHomePrice"`
}

// Affordability holds the three risk tiers. Comfortable uses the lowest DTI
// ceiling, so for identical inputs comfortable <= stretch <= strained.
type Affordability struct {
	Comfortable TierAffordability `json:"comfortable"`
	Stretch     TierAffordability `json:"stretch"`
	Strained    TierAffordability `json:"strained"`
}

// Result is the complete output for one applicant.
type Result struct {
	ReadinessScore int            `json:"readinessScore"`
	ReadinessLevel Level          `json:"readinessLevel"`
	OverrideReason OverrideReason `json:"overrideReason,omitempty"`
	Affordability  Affordability  `json:"affordability"`
}
