package exportmismo

import (
	"context"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"homeready-workers/internal/common/logger"
	"homeready-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl.WithFields(map[string]interface{}{"error": err})
}

func newTestLogger(t *testing.T) logger.Logger {
	return &testLogger{t: t}
}

func sampleLead() models.Lead {
	return models.Lead{
		ID:                  "lead-001",
		FirstName:           "Sarah",
		LastName:            "Checketts",
		Email:               "sarah@example.com",
		Phone:               "801-555-0142",
		StreetAddress:       "123 Cherry Ln",
		City:                "Provo",
		State:               "UT",
		Zip:                 "84601",
		TimeAtAddress:       "2+ years",
		CurrentHousing:      "Renting",
		GrossAnnualIncome:   80000,
		EmploymentType:      "W-2 Employee (traditional job)",
		MonthlyDebtPayments: "$200 - $499",
		DownPaymentSaved:    25000,
		FirstTimeBuyer:      "Yes",
		VAEligible:          "No",
	}
}

func TestHandler_Execute_BorrowerOnly(t *testing.T) {
	handler := NewHandler(LoadConfig(), newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Lead: sampleLead()})

	require.NoError(t, err)
	assert.Equal(t, "mismo-lead-001.xml", output.MISMOFilename)
	assert.Equal(t, "3.4", output.DataVersion)
	assert.True(t, strings.HasPrefix(output.MISMOXML, xml.Header))

	doc := output.MISMOXML
	assert.Contains(t, doc, `xmlns="http://www.mismo.org/residential/2009/schemas"`)
	assert.Contains(t, doc, "<DataVersionIdentifier>3.4</DataVersionIdentifier>")
	assert.Contains(t, doc, "<FirstName>Sarah</FirstName>")
	assert.Contains(t, doc, "<ContactPointEmailValue>sarah@example.com</ContactPointEmailValue>")
	assert.Contains(t, doc, "<CurrentIncomeMonthlyTotalAmount>6667</CurrentIncomeMonthlyTotalAmount>")
	assert.Contains(t, doc, "<EmploymentStatusType>Current</EmploymentStatusType>")
	assert.Contains(t, doc, "<BorrowerResidencyDurationMonthsCount>36</BorrowerResidencyDurationMonthsCount>")
	assert.Contains(t, doc, "<BorrowerResidencyType>Rent</BorrowerResidencyType>")
	assert.Contains(t, doc, "<FirstTimeHomebuyerIndicator>true</FirstTimeHomebuyerIndicator>")
	assert.Contains(t, doc, "<HomeownerPastThreeYearsType>No</HomeownerPastThreeYearsType>")
	assert.Contains(t, doc, "<SelfDeclaredMilitaryServiceIndicator>false</SelfDeclaredMilitaryServiceIndicator>")
	assert.Contains(t, doc, "<AssetCashOrMarketValueAmount>25000</AssetCashOrMarketValueAmount>")
	assert.Contains(t, doc, "<TotalMonthlyLiabilityPaymentAmount>350</TotalMonthlyLiabilityPaymentAmount>")

	// borrower only, one PARTY
	assert.Equal(t, 1, strings.Count(doc, "<PARTY>"))
}

func TestHandler_Execute_WithCoBorrower(t *testing.T) {
	handler := NewHandler(LoadConfig(), newTestLogger(t))

	lead := sampleLead()
	lead.HasCoBorrower = true
	lead.CoBorrowerFirstName = "Mike"
	lead.CoBorrowerLastName = "Checketts"
	lead.CoBorrowerEmail = "mike@example.com"
	lead.CoBorrowerGrossAnnualIncome = 48000

	output, err := handler.Execute(context.Background(), &Input{Lead: lead})

	require.NoError(t, err)
	doc := output.MISMOXML
	assert.Equal(t, 2, strings.Count(doc, "<PARTY>"))
	assert.Contains(t, doc, "<FirstName>Mike</FirstName>")
	assert.Contains(t, doc, "<ContactPointEmailValue>mike@example.com</ContactPointEmailValue>")
	assert.Contains(t, doc, "<CurrentIncomeMonthlyTotalAmount>4000</CurrentIncomeMonthlyTotalAmount>")
}

func TestHandler_Execute_EscapesXMLCharacters(t *testing.T) {
	handler := NewHandler(LoadConfig(), newTestLogger(t))

	lead := sampleLead()
	lead.LastName = "O'Brien & Sons"

	output, err := handler.Execute(context.Background(), &Input{Lead: lead})

	require.NoError(t, err)
	assert.Contains(t, output.MISMOXML, "O&#39;Brien &amp; Sons")
	assert.NotContains(t, output.MISMOXML, "O'Brien & Sons</LastName>")
}

func TestHandler_Execute_MissingName(t *testing.T) {
	handler := NewHandler(LoadConfig(), newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Lead: models.Lead{ID: "x"}})

	assert.Error(t, err)
	assert.Nil(t, output)
}

func TestEmploymentStatusMapping(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"W-2 Employee (traditional job)", "Current"},
		{"W-2 Employee", "Current"},
		{"Self-Employed", "SelfEmployed"},
		{"1099 Contractor", "SelfEmployed"},
		{"Retired", "Retired"},
		{"Student", "Other"},
		{"", "Other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, employmentStatus(tt.in), tt.in)
	}
}

func TestResidencyMonths(t *testing.T) {
	assert.Equal(t, 6, residencyMonths("Less than 1 year"))
	assert.Equal(t, 18, residencyMonths("1-2 years"))
	assert.Equal(t, 36, residencyMonths("2+ years"))
	assert.Equal(t, 12, residencyMonths(""))
}

func TestHandler_Execute_CancelledContext(t *testing.T) {
	handler := NewHandler(LoadConfig(), newTestLogger(t))

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := handler.Execute(ctx, &Input{Lead: sampleLead()})
	assert.Error(t, err)
}
