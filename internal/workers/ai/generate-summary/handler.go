package generatesummary

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"homeready-workers/internal/common/logger"
	"homeready-workers/internal/common/metrics"
	"homeready-workers/internal/models"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "generate-summary"
)

var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// MessageClient is the slice of the Anthropic API the handler needs,
// extracted so tests can mock it.
type MessageClient interface {
	CreateMessage(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error)
}

type anthropicClient struct {
	client anthropic.Client
}

func (a *anthropicClient) CreateMessage(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	return a.client.Messages.New(ctx, params)
}

type Handler struct {
	config *Config
	logger logger.Logger
	client MessageClient
}

// NewHandler builds the handler. With no API key configured the handler
// still works, serving the deterministic fallback content.
func NewHandler(config *Config, log logger.Logger) *Handler {
	var client MessageClient
	if config.APIKey != "" {
		c := anthropic.NewClient(option.WithAPIKey(config.APIKey))
		client = &anthropicClient{client: c}
	}

	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
		client: client,
	}
}

// NewHandlerWithClient injects the message client, used by tests.
func NewHandlerWithClient(config *Config, client MessageClient, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
		client: client,
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

	// A summary failure never blocks the flow, so execute cannot fail
	// past this point.
	output, _ := h.execute(ctx, &input)
	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	lead := &input.Lead

	if h.client == nil {
		h.logger.Warn("anthropic client not configured, using fallback content", map[string]interface{}{
			"leadId": lead.ID,
		})
		return h.fallbackOutput(lead), nil
	}

	summary, summaryErr := h.generateSummary(ctx, lead)
	items, itemsErr := h.generateActionItems(ctx, lead)

	source := SourceAI
	if summaryErr != nil {
		h.logger.Error("summary generation failed, using fallback", map[string]interface{}{
			"error":  summaryErr,
			"leadId": lead.ID,
		})
		summary = fallbackSummary(lead)
		source = SourceFallback
	}
	if itemsErr != nil {
		h.logger.Error("action item generation failed, using defaults", map[string]interface{}{
			"error":  itemsErr,
			"leadId": lead.ID,
		})
		items = defaultActionItems(lead)
		source = SourceFallback
	}

	h.logger.Info("summary generated", map[string]interface{}{
		"leadId":      lead.ID,
		"source":      source,
		"actionItems": len(items),
	})

	return &Output{
		AISummary:     summary,
		ActionItems:   items,
		SummarySource: source,
	}, nil
}

func (h *Handler) fallbackOutput(lead *models.Lead) *Output {
	return &Output{
		AISummary:     fallbackSummary(lead),
		ActionItems:   defaultActionItems(lead),
		SummarySource: SourceFallback,
	}
}

func (h *Handler) generateSummary(ctx context.Context, lead *models.Lead) (string, error) {
	return h.complete(ctx, buildSummaryPrompt(lead))
}

func (h *Handler) generateActionItems(ctx context.Context, lead *models.Lead) ([]models.ActionItem, error) {
	text, err := h.complete(ctx, buildActionItemsPrompt(lead))
	if err != nil {
		return nil, err
	}

	raw := jsonArrayPattern.FindString(text)
	if raw == "" {
		return nil, fmt.Errorf("no JSON array in response")
	}

	var items []models.ActionItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("parse action items: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("empty action item list")
	}
	return items, nil
}

func (h *Handler) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := h.client.CreateMessage(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(h.config.Model),
		MaxTokens: h.config.MaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API call failed: %w", err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("empty response from model")
	}
	return b.String(), nil
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
