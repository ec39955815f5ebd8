package indexlead

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"

	commonerrors "homeready-workers/internal/common/errors"
	"homeready-workers/internal/common/logger"
	"homeready-workers/internal/common/metrics"
	"homeready-workers/internal/models"
)

const (
	TaskType = "index-lead"
)

var (
	ErrIndexWriteFailed = errors.New("INDEX_WRITE_FAILED")
	ErrIndexTimeout     = errors.New("INDEX_TIMEOUT")
)

type Handler struct {
	config     *Config
	client     *elasticsearch.Client
	logger     logger.Logger
	errHandler *commonerrors.ErrorHandler
}

func NewHandler(config *Config, client *elasticsearch.Client, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		client:     client,
		logger:     l,
		errHandler: commonerrors.NewErrorHandler(l),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "PARSE_ERROR").Inc()
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		stdErr := h.classifyError(err)
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
		h.errHandler.HandleJobError(ctx, client, job, stdErr)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

// classifyError maps execute errors onto standard error codes so the
// broker retries transient index failures instead of escalating them.
func (h *Handler) classifyError(err error) *commonerrors.StandardError {
	switch {
	case errors.Is(err, ErrIndexTimeout):
		return commonerrors.NewIndexTimeoutError(h.config.IndexName)
	case errors.Is(err, ErrIndexWriteFailed):
		return commonerrors.NewIndexWriteFailedError(h.config.IndexName, err)
	default:
		return commonerrors.NewBusinessRuleError("lead cannot be indexed", err.Error())
	}
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	lead := &input.Lead
	if lead.ID == "" {
		return nil, errors.New("lead id is required")
	}

	doc := buildDocument(lead, input.Agent)

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal lead document: %w", err)
	}

	res, err := h.client.Index(
		h.config.IndexName,
		bytes.NewReader(body),
		h.client.Index.WithDocumentID(lead.ID),
		h.client.Index.WithContext(ctx),
	)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrIndexTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrIndexWriteFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: %s", ErrIndexWriteFailed, res.String())
	}

	h.logger.Info("lead indexed", map[string]interface{}{
		"leadId": lead.ID,
		"index":  h.config.IndexName,
	})

	return &Output{
		IndexStatus: "indexed",
		IndexName:   h.config.IndexName,
		DocumentID:  lead.ID,
	}, nil
}

func buildDocument(lead *models.Lead, agent *models.Agent) *leadDocument {
	doc := &leadDocument{
		LeadID:    lead.ID,
		FirstName: lead.FirstName,
		LastName:  lead.LastName,
		FullName:  lead.FullName(),
		Email:     lead.Email,
		Phone:     lead.Phone,
		City:      lead.City,
		State:     lead.State,

		ReadinessScore: lead.ReadinessScore,
		ReadinessLevel: lead.ReadinessLevel,
		RedLightReason: lead.RedLightReason,

		ComfortablePrice: lead.ComfortablePrice,
		StretchPrice:     lead.StretchPrice,
		StrainedPrice:    lead.StrainedPrice,

		Timeline:       lead.Timeline,
		TargetCounties: lead.TargetCounties,
		FirstTimeBuyer: lead.FirstTimeBuyer,
		VAEligible:     lead.VAEligible,
		HasCoBorrower:  lead.HasCoBorrower,

		IndexedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if !lead.CreatedAt.IsZero() {
		doc.CreatedAt = lead.CreatedAt.UTC().Format(time.RFC3339)
	}

	if agent != nil {
		doc.AgentSlug = agent.Slug
		doc.AgentName = agent.FullName()
	}

	return doc
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
