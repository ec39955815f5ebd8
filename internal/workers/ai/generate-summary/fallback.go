package generatesummary

import (
	"fmt"

	"homeready-workers/internal/models"
)

// fallbackSummary is the deterministic summary used when the API is
// unavailable. The flow never fails on a summary error.
func fallbackSummary(lead *models.Lead) string {
	switch lead.ReadinessLevel {
	case "green":
		return fmt.Sprintf(`Great news, %s! Based on your financial profile, you're in a strong position to buy a home. Your income, savings, and credit put you in a good place to start the home buying process.

You could comfortably look at homes up to $%s, with some flexibility to stretch to $%s if you find the perfect place. The next step is getting fully pre-approved so you can make competitive offers with confidence.

Let's connect to get your pre-approval started and find your dream home in Utah!`,
			lead.FirstName, formatMoney(lead.ComfortablePrice), formatMoney(lead.StretchPrice))
	case "yellow":
		return fmt.Sprintf(`%s, you're close to being ready to buy a home! Your financial foundation is solid, and with a few adjustments, you'll be in an even stronger position.

Based on your current situation, you could look at homes around $%s. With some preparation over the next few months, you might be able to increase that range even further.

Let's talk about what steps would help you the most and create a plan to get you fully ready.`,
			lead.FirstName, formatMoney(lead.ComfortablePrice))
	default:
		return fmt.Sprintf(`%s, thank you for taking the time to complete this assessment. While there are some areas we'll want to work on together, homeownership is absolutely within reach for you.

Many people start exactly where you are and successfully buy homes within 6-12 months. The key is having a clear plan and taking consistent steps forward.

Let's connect to discuss your specific situation and create a roadmap to get you home-ready.`,
			lead.FirstName)
	}
}

func defaultActionItems(lead *models.Lead) []models.ActionItem {
	switch lead.ReadinessLevel {
	case "green":
		return []models.ActionItem{
			{
				Title:       "Get Pre-Approved Now",
				Description: "You're ready! Getting pre-approved will give you a competitive edge when making offers.",
				Priority:    "high",
				Category:    "next_step",
			},
			{
				Title:       "Connect With Your Agent",
				Description: "Start looking at homes in your target areas and price range.",
				Priority:    "high",
				Category:    "next_step",
			},
			{
				Title:       "Gather Your Documents",
				Description: "Have pay stubs, tax returns, and bank statements ready for the pre-approval process.",
				Priority:    "medium",
				Category:    "documents",
			},
		}
	case "yellow":
		return []models.ActionItem{
			{
				Title:       "Schedule a Consultation",
				Description: "Let's review your specific situation and create a plan to get you fully ready.",
				Priority:    "high",
				Category:    "next_step",
			},
			{
				Title:       "Continue Saving",
				Description: "Keep building your down payment - every extra dollar helps.",
				Priority:    "medium",
				Category:    "savings",
			},
			{
				Title:       "Check Your Credit Report",
				Description: "Review your credit reports for any errors or quick wins.",
				Priority:    "medium",
				Category:    "credit",
			},
		}
	default:
		return []models.ActionItem{
			{
				Title:       "Let's Talk About Your Plan",
				Description: "Schedule a call to discuss your path to homeownership.",
				Priority:    "high",
				Category:    "next_step",
			},
			{
				Title:       "Review Your Credit",
				Description: "Understanding your credit is the first step to improving it.",
				Priority:    "high",
				Category:    "credit",
			},
			{
				Title:       "Explore Assistance Programs",
				Description: "There may be programs that can help with your down payment.",
				Priority:    "medium",
				Category:    "education",
			},
		}
	}
}
