package renderreport

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"homeready-workers/internal/models"

	"github.com/go-pdf/fpdf"
)

type bannerStyle struct {
	r, g, b int
	label   string
}

var bannerStyles = map[string]bannerStyle{
	"green":  {76, 175, 80, "GREEN LIGHT - You're Home Ready!"},
	"yellow": {255, 193, 7, "YELLOW LIGHT - Almost There"},
	"red":    {244, 67, 54, "RED LIGHT - Let's Build a Plan"},
}

// renderReport lays out the readiness report and returns the PDF bytes.
func renderReport(cfg *Config, lead *models.Lead, agent *models.Agent) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	writeHeader(pdf, cfg)
	writeBanner(pdf, lead)
	writeAffordability(pdf, lead)
	writeSummary(pdf, lead)
	writeActionItems(pdf, lead)
	writeTeamBlock(pdf, cfg, agent)
	writeDisclaimer(pdf, cfg)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF output: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(pdf *fpdf.Fpdf, cfg *Config) {
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 9, "Home Readiness Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(100, 100, 100)
	subtitle := fmt.Sprintf("%s  |  %s", cfg.CompanyName, time.Now().Format("January 2, 2006"))
	pdf.CellFormat(0, 6, subtitle, "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)
}

func writeBanner(pdf *fpdf.Fpdf, lead *models.Lead) {
	style, ok := bannerStyles[lead.ReadinessLevel]
	if !ok {
		style = bannerStyles["yellow"]
	}

	pdf.SetFillColor(style.r, style.g, style.b)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, style.label, "", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Readiness Score: %d / 100", lead.ReadinessScore), "", 1, "C", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	if lead.ReadinessLevel == "red" && lead.RedLightReason != "" {
		pdf.Ln(2)
		pdf.SetFont("Arial", "I", 9)
		pdf.CellFormat(0, 5, "Primary focus area: "+redLightLabel(lead.RedLightReason), "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)
}

func redLightLabel(reason string) string {
	switch reason {
	case "credit":
		return "credit history"
	case "income":
		return "debt-to-income ratio"
	case "down_payment":
		return "down payment savings"
	default:
		return "overall readiness"
	}
}

func writeAffordability(pdf *fpdf.Fpdf, lead *models.Lead) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "What You Can Afford", "", 1, "L", false, 0, "")
	pdf.Ln(1)

	type row struct {
		tier    string
		payment float64
		price   float64
	}
	rows := []row{
		{"Comfortable (32% DTI)", lead.ComfortablePayment, lead.ComfortablePrice},
		{"Stretch (36% DTI)", lead.StretchPayment, lead.StretchPrice},
		{"Strained (40% DTI)", lead.StrainedPayment, lead.StrainedPrice},
	}

	colWidths := []float64{80, 50, 50}
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	headers := []string{"Budget Tier", "Monthly Payment", "Home Price"}
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	pdf.SetFillColor(255, 255, 255)
	for _, r := range rows {
		pdf.CellFormat(colWidths[0], 7, r.tier, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 7, "$"+formatMoney(r.payment), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[2], 7, "$"+formatMoney(r.price), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)
}

func writeSummary(pdf *fpdf.Fpdf, lead *models.Lead) {
	if lead.AISummary == "" {
		return
	}
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Your Personalized Summary", "", 1, "L", false, 0, "")
	pdf.Ln(1)

	pdf.SetFont("Arial", "", 10)
	for _, para := range strings.Split(lead.AISummary, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		pdf.MultiCell(0, 5, para, "", "L", false)
		pdf.Ln(2)
	}
	pdf.Ln(3)
}

func writeActionItems(pdf *fpdf.Fpdf, lead *models.Lead) {
	if len(lead.ActionItems) == 0 {
		return
	}
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Your Next Steps", "", 1, "L", false, 0, "")
	pdf.Ln(1)

	for i, item := range lead.ActionItems {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("%d. %s", i+1, item.Title), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.SetX(20)
		pdf.MultiCell(0, 5, item.Description, "", "L", false)
		pdf.Ln(1)
	}
	pdf.Ln(4)
}

func writeTeamBlock(pdf *fpdf.Fpdf, cfg *Config, agent *models.Agent) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Your Team", "", 1, "L", false, 0, "")
	pdf.Ln(1)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, fmt.Sprintf("%s, Loan Officer - %s (NMLS #%s)", cfg.AdvisorName, cfg.CompanyName, cfg.NMLSNumber), "", 1, "L", false, 0, "")
	if cfg.Phone != "" || cfg.Email != "" {
		pdf.CellFormat(0, 5, strings.TrimSpace(cfg.Phone+"  "+cfg.Email), "", 1, "L", false, 0, "")
	}
	if agent != nil {
		line := fmt.Sprintf("%s, Real Estate Agent", agent.FullName())
		if agent.Brokerage != "" {
			line += " - " + agent.Brokerage
		}
		pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
}

func writeDisclaimer(pdf *fpdf.Fpdf, cfg *Config) {
	pdf.SetFont("Arial", "I", 7)
	pdf.SetTextColor(120, 120, 120)
	disclaimer := fmt.Sprintf("This report is an educational estimate based on the information you provided. "+
		"It is not a loan approval, pre-approval, or commitment to lend. Actual loan terms depend on a full "+
		"application, credit review, and underwriting. %s, NMLS #%s. Equal Housing Lender.",
		cfg.CompanyName, cfg.NMLSNumber)
	pdf.MultiCell(0, 4, disclaimer, "", "L", false)
	pdf.SetTextColor(0, 0, 0)
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
