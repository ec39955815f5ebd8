package readiness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeAffordability_MidProfile(t *testing.T) {
	// $80k income -> $6,666.67/mo, debt midpoint 650.
	aff := ComputeAffordability(midApplicant())

	// 0.32 * 6666.67 - 650 = 1483.33; 0.36 -> 1750; 0.40 -> 2016.67.
	assert.Equal(t, 1483, aff.Comfortable.MaxMonthlyPayment)
	assert.Equal(t, 1750, aff.Stretch.MaxMonthlyPayment)
	assert.Equal(t, 2017, aff.Strained.MaxMonthlyPayment)

	// 78% P&I inverted at 5.8%/360mo, rounded to $1k / $5k.
	assert.Equal(t, 197000, aff.Comfortable.MaxLoanAmount)
	assert.Equal(t, 210000, aff.Comfortable.MaxHomePrice)
	assert.Equal(t, 233000, aff.Stretch.MaxLoanAmount)
	assert.Equal(t, 250000, aff.Stretch.MaxHomePrice)
	assert.Equal(t, 268000, aff.Strained.MaxLoanAmount)
	assert.Equal(t, 285000, aff.Strained.MaxHomePrice)
}

func TestComputeAffordability_TiersAreMonotonic(t *testing.T) {
	applicants := []*Applicant{
		midApplicant(),
		strongApplicant(),
		{PrimaryAnnualIncome: 45000, MonthlyDebtBand: "$1,200 - $1,799"},
		{PrimaryAnnualIncome: 30000, MonthlyDebtBand: "$800 - $1,199", DownPaymentSaved: 8000},
		{},
	}

	for _, a := range applicants {
		aff := ComputeAffordability(a)

		assert.LessOrEqual(t, aff.Comfortable.MaxMonthlyPayment, aff.Stretch.MaxMonthlyPayment)
		assert.LessOrEqual(t, aff.Stretch.MaxMonthlyPayment, aff.Strained.MaxMonthlyPayment)
		assert.LessOrEqual(t, aff.Comfortable.MaxHomePrice, aff.Stretch.MaxHomePrice)
		assert.LessOrEqual(t, aff.Stretch.MaxHomePrice, aff.Strained.MaxHomePrice)
		assert.LessOrEqual(t, aff.Comfortable.MaxLoanAmount, aff.Stretch.MaxLoanAmount)
		assert.LessOrEqual(t, aff.Stretch.MaxLoanAmount, aff.Strained.MaxLoanAmount)
	}
}

func TestComputeAffordability_NothingGoesNegative(t *testing.T) {
	// Debt far above what any ceiling allows.
	a := &Applicant{
		PrimaryAnnualIncome: 20000, // $1,666.67/mo
		MonthlyDebtBand:     "$2,500+",
		DownPaymentSaved:    10000,
	}

	aff := ComputeAffordability(a)

	for _, tier := range []TierAffordability{aff.Comfortable, aff.Stretch, aff.Strained} {
		assert.Equal(t, 0, tier.MaxMonthlyPayment)
		assert.Equal(t, 0, tier.MaxLoanAmount)
		// Down payment alone does not make an unaffordable home purchasable.
		assert.Equal(t, 0, tier.MaxHomePrice)
	}
}

func TestComputeAffordability_ZeroEverything(t *testing.T) {
	aff := ComputeAffordability(&Applicant{})

	assert.Equal(t, TierAffordability{}, aff.Comfortable)
	assert.Equal(t, TierAffordability{}, aff.Stretch)
	assert.Equal(t, TierAffordability{}, aff.Strained)
}

func TestComputeAffordability_RoundingSteps(t *testing.T) {
	aff := ComputeAffordability(strongApplicant())

	for _, tier := range []TierAffordability{aff.Comfortable, aff.Stretch, aff.Strained} {
		assert.Zero(t, tier.MaxLoanAmount%1000)
		assert.Zero(t, tier.MaxHomePrice%5000)
		assert.Greater(t, tier.MaxLoanAmount, 0)
	}
}
