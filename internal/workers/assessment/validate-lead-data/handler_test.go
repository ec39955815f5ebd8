package validateleaddata

import (
	"context"
	"testing"

	"homeready-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestInput(leadData map[string]interface{}) *Input {
	return &Input{LeadData: leadData}
}

func createValidLeadData() map[string]interface{} {
	return map[string]interface{}{
		"first_name":            "Sarah",
		"last_name":             "Checketts",
		"email":                 "sarah@example.com",
		"phone":                 "801-555-0142",
		"city":                  "Provo",
		"zip":                   "84601",
		"time_at_address":       "2+ years",
		"coborrower_status":     "No, buying solo",
		"gross_annual_income":   "$80,000",
		"employment_type":       "W-2 Employee (traditional job)",
		"monthly_debt_payments": "$200 - $499",
		"credit_score_range":    "Good (670-739)",
		"down_payment_saved":    "$25,000",
		"down_payment_sources":  []interface{}{"Savings", "Gift from family"},
		"timeline":              "3-6 months",
		"target_counties":       []interface{}{"Utah", "Salt Lake"},
		"first_time_buyer":      "Yes",
		"va_eligible":           "No",
		"current_housing":       "Renting",
	}
}

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

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_ValidLead(t *testing.T) {
	handler := NewHandler(LoadConfig(), newTestLogger(t))

	output, err := handler.Execute(context.Background(), createTestInput(createValidLeadData()))

	assert.NoError(t, err)
	assert.True(t, output.Valid)
	assert.Empty(t, output.Errors)
	assert.Empty(t, output.Warnings)

	assert.Equal(t, float64(80000), output.Lead["gross_annual_income"])
	assert.Equal(t, float64(25000), output.Lead["down_payment_saved"])
	assert.Equal(t, false, output.Lead["has_coborrower"])
	assert.Equal(t, float64(0), output.Lead["coborrower_gross_annual_income"])
	assert.Equal(t, []string{"Utah", "Salt Lake"}, output.Lead["target_counties"])
}

func TestHandler_Execute_MissingRequiredFields(t *testing.T) {
	handler := NewHandler(LoadConfig(), newTestLogger(t))

	output, err := handler.Execute(context.Background(), createTestInput(map[string]interface{}{
		"first_name": "Sarah",
	}))

	assert.NoError(t, err)
	assert.False(t, output.Valid)
	assert.NotEmpty(t, output.Errors)
	assert.Nil(t, output.Lead)
}

func TestHandler_Execute_CoBorrowerIncome(t *testing.T) {
	data := createValidLeadData()
	data["coborrower_status"] = "Yes, with my spouse"
	data["coborrower_first_name"] = "Jordan"
	data["coborrower_last_name"] = "Checketts"
	data["coborrower_gross_annual_income"] = "$42,500"

	handler := NewHandler(LoadConfig(), newTestLogger(t))
	output, err := handler.Execute(context.Background(), createTestInput(data))

	assert.NoError(t, err)
	assert.True(t, output.Valid)
	assert.Equal(t, true, output.Lead["has_coborrower"])
	assert.Equal(t, float64(42500), output.Lead["coborrower_gross_annual_income"])
}

func TestHandler_Execute_SoloBuyerDropsCoBorrowerIncome(t *testing.T) {
	data := createValidLeadData()
	data["coborrower_status"] = "No, buying solo"
	data["coborrower_gross_annual_income"] = "$99,999"

	handler := NewHandler(LoadConfig(), newTestLogger(t))
	output, err := handler.Execute(context.Background(), createTestInput(data))

	assert.NoError(t, err)
	assert.Equal(t, false, output.Lead["has_coborrower"])
	assert.Equal(t, float64(0), output.Lead["coborrower_gross_annual_income"])
}

func TestHandler_Execute_UnknownBandsWarnButPass(t *testing.T) {
	data := createValidLeadData()
	data["monthly_debt_payments"] = "About $300"
	data["credit_score_range"] = "Pretty good"
	data["timeline"] = "Whenever"

	handler := NewHandler(LoadConfig(), newTestLogger(t))
	output, err := handler.Execute(context.Background(), createTestInput(data))

	assert.NoError(t, err)
	assert.True(t, output.Valid)
	assert.Len(t, output.Warnings, 3)
}

func TestHandler_Execute_NilLeadData(t *testing.T) {
	handler := NewHandler(LoadConfig(), newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{})

	assert.NoError(t, err)
	assert.False(t, output.Valid)
}

// ==========================
// Normalization Tests
// ==========================

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		name     string
		raw      interface{}
		expected float64
	}{
		{"formatted currency", "$80,000", 80000},
		{"plain digits", "65000", 65000},
		{"float passthrough", float64(42500), 42500},
		{"fractional float passthrough", 42500.5, 42500.5},
		{"int passthrough", 30000, 30000},
		// Whole-dollar intake: a decimal string keeps only its digits.
		{"decimal string loses the point", "80000.50", 8000050},
		{"empty string", "", 0},
		{"garbage", "n/a", 0},
		{"nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseCurrency(tt.raw))
		})
	}
}

func TestCoerceStringSlice(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, coerceStringSlice([]interface{}{"a", "b"}))
	assert.Equal(t, []string{"a"}, coerceStringSlice("a"))
	assert.Equal(t, []string{}, coerceStringSlice(""))
	assert.Equal(t, []string{}, coerceStringSlice(nil))
	assert.Equal(t, []string{}, coerceStringSlice(42))
}
