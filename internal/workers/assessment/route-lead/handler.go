package routelead

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"homeready-workers/internal/common/logger"
	"homeready-workers/internal/common/metrics"
	"homeready-workers/internal/readiness"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "route-lead"
)

type Handler struct {
	config *Config
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, rdb *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		redis:  rdb,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "LEAD_ROUTING_FAILED").Inc()
		h.failJob(client, job, "LEAD_ROUTING_FAILED", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "LEAD_ROUTING_FAILED").Inc()
		h.failJob(client, job, "LEAD_ROUTING_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	urgent := readiness.UrgentTimeline(input.Timeline)
	priority := routingPriority(input.ReadinessLevel, urgent)

	output := &Output{
		RoutingPriority: priority,
		Urgent:          urgent,
	}

	// Agent attribution is best effort: an unresolvable slug routes the
	// lead to the house queue instead of failing the flow.
	if input.AgentSlug != "" {
		agent, err := h.lookupAgent(ctx, input.AgentSlug)
		if err != nil {
			h.logger.Warn("agent lookup failed, routing without attribution", map[string]interface{}{
				"agentSlug": input.AgentSlug,
				"error":     err,
			})
		} else {
			output.AgentID = agent.ID
			output.AgentName = agent.Name
			output.AgentEmail = agent.Email
			output.AgentBrokerage = agent.Brokerage
		}
	}

	h.logger.Info("lead routed", map[string]interface{}{
		"leadId":   input.LeadID,
		"priority": priority,
		"urgent":   urgent,
		"agentId":  output.AgentID,
	})

	return output, nil
}

// routingPriority maps the readiness level onto the follow-up queue,
// bumped one level when the buyer's timeline is urgent.
func routingPriority(level string, urgent bool) string {
	var priority string
	switch level {
	case "green":
		priority = PriorityHigh
	case "yellow":
		priority = PriorityMedium
	default:
		priority = PriorityLow
	}

	if urgent {
		switch priority {
		case PriorityMedium:
			priority = PriorityHigh
		case PriorityLow:
			priority = PriorityMedium
		}
	}

	return priority
}

func (h *Handler) lookupAgent(ctx context.Context, slug string) (*cachedAgent, error) {
	cacheKey := "agent:slug:" + slug
	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		var agent cachedAgent
		if err := json.Unmarshal([]byte(val), &agent); err == nil {
			return &agent, nil
		}
	}

	row := h.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, COALESCE(brokerage, '')
		FROM agents
		WHERE slug = $1`, slug)

	var id, firstName, lastName, email, brokerage string
	if err := row.Scan(&id, &firstName, &lastName, &email, &brokerage); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("agent not found for slug %s", slug)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	agent := &cachedAgent{
		ID:        id,
		Name:      firstName + " " + lastName,
		Email:     email,
		Brokerage: brokerage,
	}

	if data, err := json.Marshal(agent); err == nil {
		h.redis.Set(ctx, cacheKey, data, h.config.CacheTTL)
	}

	return agent, nil
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
