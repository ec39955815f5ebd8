package emailsend

import (
	"context"
	"errors"
	"testing"
	"time"

	"homeready-workers/internal/common/logger"
	"homeready-workers/internal/models"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
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

type mockSES struct {
	calls []*ses.SendEmailInput
	err   error
}

func (m *mockSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls = append(m.calls, params)
	if m.err != nil {
		return nil, m.err
	}
	return &ses.SendEmailOutput{}, nil
}

type mockSNS struct {
	calls []*sns.PublishInput
	err   error
}

func (m *mockSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.calls = append(m.calls, params)
	if m.err != nil {
		return nil, m.err
	}
	return &sns.PublishOutput{}, nil
}

func testConfig() *Config {
	return &Config{
		Timeout:           30 * time.Second,
		EmailEnabled:      true,
		SMSEnabled:        true,
		FromEmail:         "hello@clearpathutah.com",
		SMSLevelThreshold: "green",
		LoanOfficerName:   "Kelly Sansom",
		LoanOfficerEmail:  "kelly@clearpathutah.com",
		LoanOfficerPhone:  "+18015550100",
		CompanyName:       "ClearPath Utah Mortgage",
		NMLSNumber:        "2510508",
	}
}

func greenLead() models.Lead {
	return models.Lead{
		ID:               "lead-001",
		FirstName:        "Sarah",
		LastName:         "Checketts",
		Email:            "sarah@example.com",
		Phone:            "801-555-0142",
		ReadinessScore:   78,
		ReadinessLevel:   "green",
		ComfortablePrice: 210000,
		StretchPrice:     250000,
		StrainedPrice:    285000,
		Timeline:         "3-6 months",
	}
}

func TestHandler_Execute_GreenLeadSendsEmailsAndSMS(t *testing.T) {
	sesMock := &mockSES{}
	snsMock := &mockSNS{}
	handler := NewHandlerWithClients(testConfig(), sesMock, snsMock, newTestLogger(t))

	agent := &models.Agent{FirstName: "Jordan", LastName: "Nielsen", Email: "jordan@brokerage.com"}
	output, err := handler.Execute(context.Background(), &Input{Lead: greenLead(), Agent: agent})

	require.NoError(t, err)
	assert.Equal(t, StatusSent, output.Status)
	assert.Equal(t, 3, output.EmailsSent)
	assert.True(t, output.SMSSent)
	assert.NotEmpty(t, output.NotificationID)

	// lead, agent, loan officer
	require.Len(t, sesMock.calls, 3)
	assert.Equal(t, "sarah@example.com", sesMock.calls[0].Destination.ToAddresses[0])
	assert.Equal(t, "jordan@brokerage.com", sesMock.calls[1].Destination.ToAddresses[0])
	assert.Equal(t, "kelly@clearpathutah.com", sesMock.calls[2].Destination.ToAddresses[0])

	leadBody := *sesMock.calls[0].Message.Body.Text.Data
	assert.Contains(t, leadBody, "Hi Sarah")
	assert.Contains(t, leadBody, "GREEN light")
	assert.Contains(t, leadBody, "78/100")
	assert.Contains(t, leadBody, "$210000")
	assert.Contains(t, leadBody, "Kelly Sansom")

	require.Len(t, snsMock.calls, 1)
	assert.Equal(t, "+18015550100", *snsMock.calls[0].PhoneNumber)
	assert.Contains(t, *snsMock.calls[0].Message, "Sarah Checketts")
	assert.Contains(t, *snsMock.calls[0].Message, "78/100")
}

func TestHandler_Execute_YellowLeadNoSMS(t *testing.T) {
	sesMock := &mockSES{}
	snsMock := &mockSNS{}
	handler := NewHandlerWithClients(testConfig(), sesMock, snsMock, newTestLogger(t))

	lead := greenLead()
	lead.ReadinessLevel = "yellow"
	lead.ReadinessScore = 52

	output, err := handler.Execute(context.Background(), &Input{Lead: lead})

	require.NoError(t, err)
	assert.Equal(t, StatusSent, output.Status)
	assert.Equal(t, 2, output.EmailsSent) // lead + loan officer, no agent
	assert.False(t, output.SMSSent)
	assert.Empty(t, snsMock.calls)
}

func TestHandler_Execute_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.EmailEnabled = false
	cfg.SMSEnabled = false
	handler := NewHandlerWithClients(cfg, &mockSES{}, &mockSNS{}, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Lead: greenLead()})

	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, output.Status)
	assert.Equal(t, 0, output.EmailsSent)
}

func TestHandler_Execute_AllEmailsFail(t *testing.T) {
	cfg := testConfig()
	cfg.SMSEnabled = false
	sesMock := &mockSES{err: errors.New("throttled")}
	handler := NewHandlerWithClients(cfg, sesMock, &mockSNS{}, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Lead: greenLead()})

	require.NoError(t, err)
	assert.Equal(t, StatusFailed, output.Status)
	assert.Equal(t, 0, output.EmailsSent)
}

func TestHandler_Execute_AgentCopyOnly(t *testing.T) {
	cfg := testConfig()
	cfg.SMSEnabled = false
	cfg.LoanOfficerEmail = ""

	sesMock := &mockSES{}
	handler := NewHandlerWithClients(cfg, sesMock, &mockSNS{}, newTestLogger(t))

	lead := greenLead()
	lead.Email = "" // lead copy skipped when no address on file
	agent := &models.Agent{FirstName: "Jordan", Email: "jordan@brokerage.com"}

	output, err := handler.Execute(context.Background(), &Input{Lead: lead, Agent: agent})

	require.NoError(t, err)
	assert.Equal(t, StatusSent, output.Status)
	assert.Equal(t, 1, output.EmailsSent)
}

func TestLevelMeetsThreshold(t *testing.T) {
	tests := []struct {
		level     string
		threshold string
		want      bool
	}{
		{"green", "green", true},
		{"yellow", "green", false},
		{"red", "green", false},
		{"green", "yellow", true},
		{"yellow", "yellow", true},
		{"red", "yellow", false},
		{"red", "red", true},
		{"unknown", "green", false},
		{"green", "unknown", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, levelMeetsThreshold(tt.level, tt.threshold),
			"level=%s threshold=%s", tt.level, tt.threshold)
	}
}

func TestRenderTemplate(t *testing.T) {
	out := renderTemplate("Hi {{name}}, score {{score}}/100. {{missing}}done", map[string]interface{}{
		"name":  "Sarah",
		"score": 78,
	})
	assert.Equal(t, "Hi Sarah, score 78/100. done", out)
}
