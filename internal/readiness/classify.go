package readiness

// Classification thresholds. A single severe risk factor forces a red light
// regardless of the composite score: bad credit, debt already unsustainable,
// or no cash buffer under an urgent timeline cannot be averaged away by
// otherwise-good sub-scores.
const (
	greenThreshold  = 65
	yellowThreshold = 45

	// maxPreHousingDTI is the existing-debt ratio above which no additional
	// housing payment is considered sustainable.
	maxPreHousingDTI = 0.45

	// minDownPaymentBuffer is the cash floor for urgent-timeline buyers.
	minDownPaymentBuffer = 3000.0
)

// Classify maps a score plus raw applicant fields to a readiness level.
// Override rules are evaluated in order; the first match wins and carries its
// reason. When no override fires the level is purely score-derived and the
// reason is empty except for the catch-all low-score red.
func Classify(score int, a *Applicant) (Level, OverrideReason) {
	if a.CreditScoreBand == worstCreditBand {
		return LevelRed, ReasonCredit
	}

	monthlyIncome := a.CombinedAnnualIncome() / 12
	monthlyDebt := DebtBandMidpoint(a.MonthlyDebtBand)
	if monthlyIncome > 0 && monthlyDebt/monthlyIncome > maxPreHousingDTI {
		return LevelRed, ReasonIncome
	}

	if a.DownPaymentSaved < minDownPaymentBuffer && urgentTimelines[a.Timeline] {
		return LevelRed, ReasonDownPayment
	}

	switch {
	case score >= greenThreshold:
		return LevelGreen, ReasonNone
	case score >= yellowThreshold:
		return LevelYellow, ReasonNone
	default:
		return LevelRed, ReasonOverall
	}
}
