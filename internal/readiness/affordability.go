package readiness

import "math"

// Fixed-rate amortization assumptions used to invert a monthly payment into
// a loan amount.
const (
	annualInterestRate = 0.058
	loanTermMonths     = 360

	// piShare is the principal-and-interest portion of the total housing
	// payment; the remaining 22% covers taxes, insurance and PMI.
	piShare = 0.78
)

// DTI ceilings for the three risk tiers.
const (
	dtiComfortable = 0.32
	dtiStretch     = 0.36
	dtiStrained    = 0.40
)

// ComputeAffordability derives the maximum sustainable monthly housing
// payment at the three DTI ceilings and inverts the amortization formula to
// a loan amount and home price for each. Reported figures are floored at
// zero; a tier whose raw payment is zero or negative reports zero across the
// board.
func ComputeAffordability(a *Applicant) Affordability {
	monthlyIncome := a.CombinedAnnualIncome() / 12
	monthlyDebt := DebtBandMidpoint(a.MonthlyDebtBand)

	return Affordability{
		Comfortable: tierFor(dtiComfortable*monthlyIncome-monthlyDebt, a.DownPaymentSaved),
		Stretch:     tierFor(dtiStretch*monthlyIncome-monthlyDebt, a.DownPaymentSaved),
		Strained:    tierFor(dtiStrained*monthlyIncome-monthlyDebt, a.DownPaymentSaved),
	}
}

// tierFor converts a raw monthly housing budget into the reported tier.
// With a non-positive budget no mortgage is serviceable, so the loan and the
// price are both zero; the down payment is only added on top of a real loan.
func tierFor(rawPayment, downPayment float64) TierAffordability {
	tier := TierAffordability{
		MaxMonthlyPayment: roundDollars(math.Max(0, rawPayment)),
	}
	if rawPayment <= 0 {
		return tier
	}

	loan := invertAmortization(rawPayment * piShare)
	price := loan + downPayment

	tier.MaxLoanAmount = roundToNearest(loan, 1000)
	tier.MaxHomePrice = roundToNearest(price, 5000)
	return tier
}

// invertAmortization solves the standard amortization payment formula
// PI = P * [r(1+r)^n] / [(1+r)^n - 1] for the principal P.
func invertAmortization(piPayment float64) float64 {
	monthlyRate := annualInterestRate / 12
	compound := math.Pow(1+monthlyRate, loanTermMonths)
	factor := monthlyRate * compound / (compound - 1)
	return piPayment / factor
}

func roundDollars(v float64) int {
	return int(math.Round(v))
}

func roundToNearest(v, step float64) int {
	rounded := math.Round(v/step) * step
	if rounded < 0 {
		return 0
	}
	return int(rounded)
}
