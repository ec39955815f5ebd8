package indexlead

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"homeready-workers/internal/common/logger"
	"homeready-workers/internal/models"
)

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

// newTestESClient points an Elasticsearch client at a stub server.
func newTestESClient(t *testing.T, handler http.HandlerFunc) *elasticsearch.Client {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{srv.URL},
	})
	require.NoError(t, err)
	return client
}

func sampleLead() models.Lead {
	return models.Lead{
		ID:               "lead-001",
		FirstName:        "Sarah",
		LastName:         "Checketts",
		Email:            "sarah@example.com",
		City:             "Provo",
		State:            "UT",
		ReadinessScore:   78,
		ReadinessLevel:   "green",
		ComfortablePrice: 210000,
		StretchPrice:     250000,
		StrainedPrice:    285000,
		Timeline:         "3-6 months",
		TargetCounties:   []string{"Utah County", "Salt Lake County"},
		CreatedAt:        time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

func TestHandler_Execute_IndexesLead(t *testing.T) {
	var gotPath string
	var gotDoc leadDocument

	client := newTestESClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotDoc))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"_index":"leads-assessments","_id":"lead-001","result":"created"}`))
	})

	handler := NewHandler(LoadConfig(), client, createTestLogger(t))

	agent := &models.Agent{Slug: "jordan-nielsen", FirstName: "Jordan", LastName: "Nielsen"}
	output, err := handler.Execute(context.Background(), &Input{Lead: sampleLead(), Agent: agent})

	require.NoError(t, err)
	assert.Equal(t, "indexed", output.IndexStatus)
	assert.Equal(t, "leads-assessments", output.IndexName)
	assert.Equal(t, "lead-001", output.DocumentID)

	assert.Equal(t, "/leads-assessments/_doc/lead-001", gotPath)
	assert.Equal(t, "lead-001", gotDoc.LeadID)
	assert.Equal(t, "Sarah Checketts", gotDoc.FullName)
	assert.Equal(t, 78, gotDoc.ReadinessScore)
	assert.Equal(t, "green", gotDoc.ReadinessLevel)
	assert.Equal(t, []string{"Utah County", "Salt Lake County"}, gotDoc.TargetCounties)
	assert.Equal(t, "jordan-nielsen", gotDoc.AgentSlug)
	assert.Equal(t, "Jordan Nielsen", gotDoc.AgentName)
	assert.Equal(t, "2026-03-14T10:00:00Z", gotDoc.CreatedAt)
	assert.NotEmpty(t, gotDoc.IndexedAt)
}

func TestHandler_Execute_ServerError(t *testing.T) {
	client := newTestESClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"type":"index_failure"}}`))
	})

	handler := NewHandler(LoadConfig(), client, createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Lead: sampleLead()})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, ErrIndexWriteFailed)
}

func TestHandler_Execute_MissingLeadID(t *testing.T) {
	client := newTestESClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	handler := NewHandler(LoadConfig(), client, createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Lead: models.Lead{}})

	assert.Error(t, err)
	assert.Nil(t, output)
}

func TestBuildDocument_NoAgent(t *testing.T) {
	lead := sampleLead()
	doc := buildDocument(&lead, nil)

	assert.Empty(t, doc.AgentSlug)
	assert.Empty(t, doc.AgentName)
	assert.False(t, doc.HasCoBorrower)
}
