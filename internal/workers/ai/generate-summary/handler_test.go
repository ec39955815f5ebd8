package generatesummary

import (
	"context"
	"errors"
	"testing"
	"time"

	"homeready-workers/internal/common/logger"
	"homeready-workers/internal/models"

	"github.com/anthropics/anthropic-sdk-go"
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

// mockClient returns scripted responses in call order.
type mockClient struct {
	responses []string
	err       error
	calls     int
	prompts   []string
}

func (m *mockClient) CreateMessage(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	m.calls++
	for _, msg := range params.Messages {
		for _, block := range msg.Content {
			if block.OfText != nil {
				m.prompts = append(m.prompts, block.OfText.Text)
			}
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	idx := m.calls - 1
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	return &anthropic.Message{
		Content: []anthropic.ContentBlockUnion{
			{Type: "text", Text: m.responses[idx]},
		},
	}, nil
}

func testConfig() *Config {
	return &Config{
		Timeout:   60 * time.Second,
		APIKey:    "test-key",
		Model:     "claude-sonnet-4-20250514",
		MaxTokens: 500,
	}
}

func greenLead() models.Lead {
	return models.Lead{
		ID:                "lead-001",
		FirstName:         "Sarah",
		LastName:          "Checketts",
		GrossAnnualIncome: 80000,
		EmploymentType:    "W-2 Employee",
		CreditScoreRange:  "Good (670-739)",
		DownPaymentSaved:  25000,
		Timeline:          "3-6 months",
		FirstTimeBuyer:    "Yes",
		VAEligible:        "No",
		ReadinessScore:    78,
		ReadinessLevel:    "green",
		ComfortablePrice:  210000,
		StretchPrice:      250000,
		StrainedPrice:     285000,
	}
}

func TestHandler_Execute_AIResponses(t *testing.T) {
	mock := &mockClient{
		responses: []string{
			"Sarah, you are in a great position to buy a home this year.",
			`[{"title":"Get Pre-Approved This Week","description":"You're ready.","priority":"high","category":"next_step"},
			  {"title":"Tour Homes","description":"Start visiting homes in your range.","priority":"medium","category":"next_step"}]`,
		},
	}
	handler := NewHandlerWithClient(testConfig(), mock, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Lead: greenLead()})

	require.NoError(t, err)
	assert.Equal(t, SourceAI, output.SummarySource)
	assert.Equal(t, "Sarah, you are in a great position to buy a home this year.", output.AISummary)
	require.Len(t, output.ActionItems, 2)
	assert.Equal(t, "Get Pre-Approved This Week", output.ActionItems[0].Title)
	assert.Equal(t, "high", output.ActionItems[0].Priority)
	assert.Equal(t, 2, mock.calls)

	// first prompt is the summary prompt, second asks for action items
	require.Len(t, mock.prompts, 2)
	assert.Contains(t, mock.prompts[0], "Sarah Checketts")
	assert.Contains(t, mock.prompts[0], "GREEN LIGHT")
	assert.Contains(t, mock.prompts[0], "$210,000")
	assert.Contains(t, mock.prompts[1], "Return ONLY the JSON array")
}

func TestHandler_Execute_ActionItemsInsideProse(t *testing.T) {
	mock := &mockClient{
		responses: []string{
			"summary text",
			`Here are your steps: [{"title":"Save More","description":"Keep going.","priority":"medium","category":"savings"}] good luck!`,
		},
	}
	handler := NewHandlerWithClient(testConfig(), mock, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Lead: greenLead()})

	require.NoError(t, err)
	require.Len(t, output.ActionItems, 1)
	assert.Equal(t, "Save More", output.ActionItems[0].Title)
	assert.Equal(t, SourceAI, output.SummarySource)
}

func TestHandler_Execute_APIFailureFallsBack(t *testing.T) {
	mock := &mockClient{err: errors.New("rate limited")}
	handler := NewHandlerWithClient(testConfig(), mock, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Lead: greenLead()})

	require.NoError(t, err)
	assert.Equal(t, SourceFallback, output.SummarySource)
	assert.Contains(t, output.AISummary, "Great news, Sarah!")
	assert.Contains(t, output.AISummary, "$210,000")
	require.Len(t, output.ActionItems, 3)
	assert.Equal(t, "Get Pre-Approved Now", output.ActionItems[0].Title)
}

func TestHandler_Execute_UnparseableActionItems(t *testing.T) {
	mock := &mockClient{
		responses: []string{
			"summary text",
			"I could not produce a list this time.",
		},
	}
	handler := NewHandlerWithClient(testConfig(), mock, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Lead: greenLead()})

	require.NoError(t, err)
	assert.Equal(t, "summary text", output.AISummary)
	assert.Equal(t, SourceFallback, output.SummarySource)
	require.Len(t, output.ActionItems, 3) // defaults for green
}

func TestHandler_Execute_NoClientConfigured(t *testing.T) {
	handler := NewHandlerWithClient(testConfig(), nil, newTestLogger(t))

	lead := greenLead()
	lead.ReadinessLevel = "red"
	lead.RedLightReason = "credit"

	output, err := handler.Execute(context.Background(), &Input{Lead: lead})

	require.NoError(t, err)
	assert.Equal(t, SourceFallback, output.SummarySource)
	assert.Contains(t, output.AISummary, "thank you for taking the time")
	require.Len(t, output.ActionItems, 3)
	assert.Equal(t, "Let's Talk About Your Plan", output.ActionItems[0].Title)
	assert.Equal(t, "credit", output.ActionItems[1].Category)
}

func TestFallbackSummaryByLevel(t *testing.T) {
	lead := greenLead()

	lead.ReadinessLevel = "yellow"
	assert.Contains(t, fallbackSummary(&lead), "you're close to being ready")

	lead.ReadinessLevel = "red"
	assert.Contains(t, fallbackSummary(&lead), "homeownership is absolutely within reach")
}

func TestBuildSummaryPrompt_CoBorrower(t *testing.T) {
	lead := greenLead()
	lead.HasCoBorrower = true
	lead.CoBorrowerFirstName = "Mike"
	lead.CoBorrowerLastName = "Checketts"
	lead.CoBorrowerGrossAnnualIncome = 40000
	lead.CoBorrowerEmploymentType = "Self-Employed"

	prompt := buildSummaryPrompt(&lead)

	assert.Contains(t, prompt, "Co-Borrower: Mike Checketts")
	assert.Contains(t, prompt, "Combined Annual Income: $120,000")
	assert.Contains(t, prompt, "W-2 Employee / Self-Employed")
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{25000, "25,000"},
		{210000, "210,000"},
		{1234567, "1,234,567"},
		{-50, "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatMoney(tt.in))
	}
}
