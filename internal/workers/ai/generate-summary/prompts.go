package generatesummary

import (
	"fmt"
	"strings"

	"homeready-workers/internal/models"
)

func buildSummaryPrompt(lead *models.Lead) string {
	combinedIncome := lead.GrossAnnualIncome + lead.CoBorrowerGrossAnnualIncome

	var b strings.Builder
	b.WriteString("You are a friendly mortgage advisor helping someone understand their home buying readiness.\n\n")
	b.WriteString("Here's their information:\n")
	fmt.Fprintf(&b, "- Name: %s\n", lead.FullName())
	if lead.HasCoBorrower {
		fmt.Fprintf(&b, "- Co-Borrower: %s\n", lead.CoBorrowerFullName())
	}
	fmt.Fprintf(&b, "- Combined Annual Income: $%s\n", formatMoney(combinedIncome))
	employment := lead.EmploymentType
	if lead.CoBorrowerEmploymentType != "" {
		employment += " / " + lead.CoBorrowerEmploymentType
	}
	fmt.Fprintf(&b, "- Employment: %s\n", employment)
	fmt.Fprintf(&b, "- Monthly Debts: %s\n", lead.MonthlyDebtPayments)
	fmt.Fprintf(&b, "- Credit Score Range: %s\n", lead.CreditScoreRange)
	fmt.Fprintf(&b, "- Down Payment Saved: $%s\n", formatMoney(lead.DownPaymentSaved))
	fmt.Fprintf(&b, "- Down Payment Sources: %s\n", orDefault(strings.Join(lead.DownPaymentSources, ", "), "Not specified"))
	fmt.Fprintf(&b, "- Timeline: %s\n", lead.Timeline)
	fmt.Fprintf(&b, "- Target Areas: %s\n", orDefault(strings.Join(lead.TargetCounties, ", "), "Utah"))
	fmt.Fprintf(&b, "- First-Time Buyer: %s\n", lead.FirstTimeBuyer)
	fmt.Fprintf(&b, "- VA Eligible: %s\n", lead.VAEligible)
	fmt.Fprintf(&b, "- Current Housing: %s\n", lead.CurrentHousing)

	fmt.Fprintf(&b, "\nTheir Readiness Level: %s LIGHT\n", strings.ToUpper(lead.ReadinessLevel))
	if lead.RedLightReason != "" {
		fmt.Fprintf(&b, "Red Light Reason: %s\n", lead.RedLightReason)
	}

	b.WriteString("\nAffordability:\n")
	fmt.Fprintf(&b, "- Comfortable (32%% DTI): Up to $%s\n", formatMoney(lead.ComfortablePrice))
	fmt.Fprintf(&b, "- Stretch (36%% DTI): Up to $%s\n", formatMoney(lead.StretchPrice))
	fmt.Fprintf(&b, "- Strained (40%% DTI): Up to $%s\n", formatMoney(lead.StrainedPrice))

	var levelGuidance string
	switch lead.ReadinessLevel {
	case "green":
		levelGuidance = "Congratulates them on being ready and encourages them to get pre-approved"
	case "yellow":
		levelGuidance = "Explains they are close and what small steps would help"
	default:
		levelGuidance = "Kindly explains what they need to work on and that it is achievable"
	}

	b.WriteString("\nWrite a 2-3 paragraph personalized summary that:\n")
	b.WriteString("1. Addresses them by first name\n")
	b.WriteString("2. Acknowledges their strengths (be encouraging!)\n")
	fmt.Fprintf(&b, "3. %s\n", levelGuidance)
	b.WriteString("4. Mentions their affordability range naturally\n")
	b.WriteString("5. Is warm, encouraging, and never condescending\n")
	b.WriteString("6. Keeps it simple - no jargon\n")
	b.WriteString("7. If they are VA eligible, mention VA loans as a great option\n")
	b.WriteString("\nDo NOT use bullet points. Write in conversational paragraphs.")

	return b.String()
}

func buildActionItemsPrompt(lead *models.Lead) string {
	var b strings.Builder
	b.WriteString("Based on this home buyer's profile, generate 3-5 specific, actionable next steps.\n\n")
	b.WriteString("Profile:\n")
	fmt.Fprintf(&b, "- Readiness Level: %s\n", lead.ReadinessLevel)
	fmt.Fprintf(&b, "- Red Light Reason: %s\n", orDefault(lead.RedLightReason, "N/A"))
	fmt.Fprintf(&b, "- Credit Score: %s\n", lead.CreditScoreRange)
	fmt.Fprintf(&b, "- Down Payment: $%s\n", formatMoney(lead.DownPaymentSaved))
	fmt.Fprintf(&b, "- Timeline: %s\n", lead.Timeline)
	fmt.Fprintf(&b, "- First-Time Buyer: %s\n", lead.FirstTimeBuyer)
	fmt.Fprintf(&b, "- VA Eligible: %s\n", lead.VAEligible)

	b.WriteString(`
Return a JSON array of action items, each with:
- title: Short action title (5-7 words max)
- description: 1-2 sentence explanation
- priority: "high", "medium", or "low"
- category: "credit", "savings", "documents", "education", or "next_step"

Example format:
[
  {
    "title": "Get Pre-Approved This Week",
    "description": "You're ready! Getting pre-approved will give you a competitive edge when making offers.",
    "priority": "high",
    "category": "next_step"
  }
]

Return ONLY the JSON array, no other text.`)

	return b.String()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// formatMoney renders a dollar amount with thousands separators, no cents.
func formatMoney(amount float64) string {
	if amount < 0 {
		amount = 0
	}
	digits := fmt.Sprintf("%.0f", amount)
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return b.String()
}
