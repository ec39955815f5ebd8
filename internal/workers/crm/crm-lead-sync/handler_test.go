package crmleadsync

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"homeready-workers/internal/common/highlevel"
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

func greenLead() models.Lead {
	return models.Lead{
		ID:               "lead-001",
		FirstName:        "Sarah",
		LastName:         "Checketts",
		Email:            "sarah@example.com",
		Phone:            "801-555-0142",
		City:             "Provo",
		Zip:              "84601",
		ReadinessScore:   78,
		ReadinessLevel:   "green",
		ComfortablePrice: 210000,
		StretchPrice:     250000,
		StrainedPrice:    285000,
		Timeline:         "3-6 months",
	}
}

func TestHandler_Execute_SyncsGreenLead(t *testing.T) {
	var received map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	crm := highlevel.NewClient(srv.URL, 5*time.Second)
	handler := NewHandlerWithClient(crm, newTestLogger(t))

	lead := greenLead()
	output, err := handler.Execute(context.Background(), &Input{Lead: lead})

	require.NoError(t, err)
	assert.Equal(t, "synced", output.CRMSyncStatus)
	assert.Equal(t, "Home Ready - Green Light", output.CRMTag)

	assert.Equal(t, "Sarah", received["firstName"])
	assert.Equal(t, "Utah", received["state"]) // default when unset
	assert.Equal(t, "Utah Home Ready Check", received["source"])

	tags, ok := received["tags"].([]interface{})
	require.True(t, ok)
	assert.Contains(t, tags, "Home Ready - Green Light")

	custom, ok := received["customField"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(78), custom["readiness_score"])
	assert.Equal(t, "green", custom["readiness_level"])
	assert.Equal(t, "No", custom["has_coborrower"])
}

func TestHandler_Execute_IncludesAgent(t *testing.T) {
	var received map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	crm := highlevel.NewClient(srv.URL, 5*time.Second)
	handler := NewHandlerWithClient(crm, newTestLogger(t))

	agent := &models.Agent{
		FirstName: "Kelly",
		LastName:  "Sansom",
		Email:     "kelly@clearpathutah.com",
		Brokerage: "ClearPath Utah Mortgage",
	}
	_, err := handler.Execute(context.Background(), &Input{Lead: greenLead(), Agent: agent})

	require.NoError(t, err)
	custom := received["customField"].(map[string]interface{})
	assert.Equal(t, "Kelly Sansom", custom["referring_agent"])
	assert.Equal(t, "ClearPath Utah Mortgage", custom["referring_agent_brokerage"])
}

func TestHandler_Execute_SkipsWhenUnconfigured(t *testing.T) {
	crm := highlevel.NewClient("", 5*time.Second)
	handler := NewHandlerWithClient(crm, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Lead: greenLead()})

	require.NoError(t, err)
	assert.Equal(t, "skipped", output.CRMSyncStatus)
	assert.Empty(t, output.CRMTag)
}

func TestHandler_Execute_WebhookErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad payload", http.StatusBadRequest)
	}))
	defer srv.Close()

	crm := highlevel.NewClient(srv.URL, 5*time.Second)
	handler := NewHandlerWithClient(crm, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Lead: greenLead()})

	assert.Error(t, err)
	assert.Nil(t, output)
}

func TestReadinessTagMapping(t *testing.T) {
	assert.Equal(t, "Home Ready - Green Light", highlevel.ReadinessTag("green"))
	assert.Equal(t, "Home Ready - Yellow Light", highlevel.ReadinessTag("yellow"))
	assert.Equal(t, "Home Ready - Red Light", highlevel.ReadinessTag("red"))
	assert.Equal(t, "Home Ready Assessment", highlevel.ReadinessTag(""))
}
