package readiness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessApplicant_MidProfile(t *testing.T) {
	result := ProcessApplicant(midApplicant())

	assert.Equal(t, 78, result.ReadinessScore)
	assert.Equal(t, LevelGreen, result.ReadinessLevel)
	assert.Equal(t, ReasonNone, result.OverrideReason)
	assert.Equal(t, 1483, result.Affordability.Comfortable.MaxMonthlyPayment)
}

func TestProcessApplicant_ZeroRecord(t *testing.T) {
	result := ProcessApplicant(&Applicant{})

	assert.Equal(t, 12, result.ReadinessScore)
	assert.Equal(t, LevelRed, result.ReadinessLevel)
	assert.Equal(t, ReasonOverall, result.OverrideReason)
	assert.Equal(t, Affordability{}, result.Affordability)
}

func TestProcessApplicant_Idempotent(t *testing.T) {
	a := midApplicant()

	first := ProcessApplicant(a)
	second := ProcessApplicant(a)

	assert.Equal(t, first, second)
}

func TestProcessApplicant_ScoreAlwaysInRange(t *testing.T) {
	applicants := []*Applicant{
		{},
		strongApplicant(),
		midApplicant(),
		{PrimaryAnnualIncome: 1e9, DownPaymentSaved: 1e9, CreditScoreBand: "Excellent (740+)"},
		{MonthlyDebtBand: "$2,500+", Timeline: "Just exploring options"},
	}

	for _, a := range applicants {
		result := ProcessApplicant(a)
		assert.GreaterOrEqual(t, result.ReadinessScore, 0)
		assert.LessOrEqual(t, result.ReadinessScore, 100)
	}
}

func TestProcessApplicant_OverrideReasonOnlyOnRed(t *testing.T) {
	result := ProcessApplicant(midApplicant())
	assert.Equal(t, ReasonNone, result.OverrideReason)

	bad := midApplicant()
	bad.CreditScoreBand = "Needs Work (below 580)"
	result = ProcessApplicant(bad)
	assert.Equal(t, LevelRed, result.ReadinessLevel)
	assert.Equal(t, ReasonCredit, result.OverrideReason)
}
