package emailsend

import (
	"fmt"
	"strings"
)

// Lead-facing result emails, keyed by readiness level.
var leadTemplates = map[string]map[string]string{
	"green": {
		"subject": "You're Home Ready! Your results are in",
		"body": "Hi {{firstName}},\n\n" +
			"Great news: your Home Ready Check came back with a GREEN light and a readiness score of {{score}}/100.\n\n" +
			"Based on what you shared, a comfortable price range for you is around ${{comfortablePrice}}, " +
			"with a stretch range up to ${{stretchPrice}}.\n\n" +
			"{{loanOfficerName}} from {{companyName}} will reach out shortly to talk next steps.\n\n" +
			"{{signature}}",
	},
	"yellow": {
		"subject": "Your Home Ready Check results: almost there",
		"body": "Hi {{firstName}},\n\n" +
			"Your Home Ready Check came back with a YELLOW light and a readiness score of {{score}}/100. " +
			"You're closer than you might think.\n\n" +
			"A comfortable price range for you today is around ${{comfortablePrice}}. " +
			"With a few adjustments that number can grow.\n\n" +
			"{{loanOfficerName}} from {{companyName}} can walk you through a plan whenever you're ready.\n\n" +
			"{{signature}}",
	},
	"red": {
		"subject": "Your Home Ready Check results and a plan forward",
		"body": "Hi {{firstName}},\n\n" +
			"Your Home Ready Check came back with a RED light and a readiness score of {{score}}/100. " +
			"That's not a no, it's a not-yet.\n\n" +
			"Your full report includes the specific steps that will move you toward a green light.\n\n" +
			"{{loanOfficerName}} from {{companyName}} is happy to build a roadmap with you, no pressure.\n\n" +
			"{{signature}}",
	},
}

var agentTemplate = map[string]string{
	"subject": "New Home Ready lead: {{leadName}} ({{level}} light)",
	"body": "Hi {{agentName}},\n\n" +
		"{{leadName}} just completed the Home Ready Check through your link.\n\n" +
		"Readiness: {{level}} light, score {{score}}/100\n" +
		"Comfortable price range: ${{comfortablePrice}}\n" +
		"Timeline: {{timeline}}\n" +
		"Contact: {{leadEmail}} {{leadPhone}}\n\n" +
		"{{loanOfficerName}} will handle the lending side. Full details are in the agent portal.\n\n" +
		"{{signature}}",
}

var loanOfficerTemplate = map[string]string{
	"subject": "Home Ready lead: {{leadName}} ({{level}} light, {{score}}/100)",
	"body": "New assessment completed.\n\n" +
		"Lead: {{leadName}} ({{leadEmail}} {{leadPhone}})\n" +
		"Readiness: {{level}} light, score {{score}}/100\n" +
		"Income: ${{income}}/yr, down payment saved: ${{downPayment}}\n" +
		"Comfortable / stretch / strained price: ${{comfortablePrice}} / ${{stretchPrice}} / ${{strainedPrice}}\n" +
		"Timeline: {{timeline}}\n" +
		"Referring agent: {{agentName}}\n",
}

const smsTemplate = "Home Ready: {{leadName}} scored {{score}}/100 ({{level}} light), timeline {{timeline}}. Check your email for details."

// renderTemplate substitutes {{key}} placeholders and strips any that are
// missing from the data map.
func renderTemplate(tmpl string, data map[string]interface{}) string {
	result := tmpl

	for k, v := range data {
		placeholder := "{{" + k + "}}"
		value := ""
		switch t := v.(type) {
		case string:
			value = t
		case int:
			value = fmt.Sprintf("%d", t)
		case float64:
			value = fmt.Sprintf("%.0f", t)
		default:
			if v != nil {
				value = fmt.Sprintf("%v", v)
			}
		}
		result = strings.ReplaceAll(result, placeholder, value)
	}

	for {
		start := strings.Index(result, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}}")
		if end == -1 {
			break
		}
		end += start + 2
		result = result[:start] + result[end:]
	}

	return result
}
