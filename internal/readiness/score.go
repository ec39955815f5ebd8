package readiness

import "strings"

// Sub-score weights: credit 30, down payment 25, employment 15, address 10,
// timeline 10, DTI health 10.

// ComputeReadinessScore returns the composite readiness score, clamped to
// [0, 100]. It never fails: unknown bands take the neutral defaults noted on
// each factor.
func ComputeReadinessScore(a *Applicant) int {
	score := 0

	// Credit band (30 max); unmapped bands contribute nothing.
	score += creditPoints[a.CreditScoreBand]

	// Down payment ratio (25 max) against a rough income-multiple price
	// estimate. Zero income is treated as a 0% ratio.
	score += downPaymentPoints(a.DownPaymentSaved, a.CombinedAnnualIncome())

	// Employment stability (15 max).
	score += employmentPoints(a.EmploymentType)

	// Time at address (10 max); unmapped contributes nothing.
	score += addressPoints[a.TimeAtAddress]

	// Timeline urgency (10 max); unmapped contributes nothing.
	score += timelinePoints[a.Timeline]

	// Current DTI health (10 max). Zero monthly income counts as 100% DTI.
	score += dtiHealthPoints(a)

	return clampScore(score)
}

func downPaymentPoints(saved, combinedIncome float64) int {
	estimatedPrice := combinedIncome * 4
	percent := 0.0
	if estimatedPrice > 0 {
		percent = saved / estimatedPrice * 100
	}

	switch {
	case percent >= 20:
		return 25
	case percent >= 10:
		return 20
	case percent >= 5:
		return 15
	case percent >= 3.5:
		return 10
	default:
		return 5
	}
}

func employmentPoints(employmentType string) int {
	switch {
	case strings.HasPrefix(employmentType, "W-2"), employmentType == "Retired":
		return 15
	case employmentType == "Self-Employed", employmentType == "1099 Contractor":
		return 10
	default:
		return 5
	}
}

func dtiHealthPoints(a *Applicant) int {
	monthlyIncome := a.CombinedAnnualIncome() / 12
	monthlyDebt := DebtBandMidpoint(a.MonthlyDebtBand)

	currentDTI := 100.0
	if monthlyIncome > 0 {
		currentDTI = monthlyDebt / monthlyIncome * 100
	}

	switch {
	case currentDTI < 20:
		return 10
	case currentDTI < 30:
		return 8
	case currentDTI < 40:
		return 5
	default:
		return 2
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
