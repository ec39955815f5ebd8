package createleadrecord

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"homeready-workers/internal/common/logger"
	"homeready-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "create-lead-record"
)

var (
	ErrDatabaseInsertFailed = errors.New("DATABASE_INSERT_FAILED")
	ErrDuplicateLead        = errors.New("DUPLICATE_LEAD")
)

type Handler struct {
	db     *sql.DB
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	return &Handler{
		db:     db,
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
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "PARSE_ERROR").Inc()
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := "UNKNOWN_ERROR"
		retries := int32(0)
		if errors.Is(err, ErrDatabaseInsertFailed) {
			errorCode = "DATABASE_INSERT_FAILED"
			retries = 3
		} else if errors.Is(err, ErrDuplicateLead) {
			errorCode = "DUPLICATE_LEAD"
			retries = 0
		}
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	lead := input.Lead
	if lead == nil {
		lead = make(map[string]interface{})
	}

	email := str(lead["email"])

	// One open assessment per email and agent at a time.
	var exists bool
	err := h.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM leads
			WHERE email = $1 AND COALESCE(agent_slug, '') = $2 AND status = 'open'
		)`, email, input.AgentSlug).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("%w: duplicate check failed: %v", ErrDatabaseInsertFailed, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: open assessment already exists for %s",
			ErrDuplicateLead, email)
	}

	leadID := uuid.New().String()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	targetCountiesJSON, _ := json.Marshal(lead["target_counties"])
	downPaymentSourcesJSON, _ := json.Marshal(lead["down_payment_sources"])

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO leads (
			id, agent_slug,
			first_name, last_name, email, phone,
			street_address, city, state, zip, time_at_address,
			has_coborrower, coborrower_first_name, coborrower_last_name, coborrower_email,
			gross_annual_income, coborrower_gross_annual_income,
			employment_type, coborrower_employment_type,
			monthly_debt_payments, credit_score_range,
			down_payment_saved, down_payment_sources,
			timeline, target_counties, first_time_buyer, va_eligible, current_housing,
			readiness_score, readiness_level, red_light_reason,
			comfortable_price, stretch_price, strained_price,
			comfortable_payment, stretch_payment, strained_payment,
			status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28,
			$29, $30, $31, $32, $33, $34, $35, $36, $37, $38, $39, $39
		)`,
		leadID,
		input.AgentSlug,
		str(lead["first_name"]),
		str(lead["last_name"]),
		email,
		str(lead["phone"]),
		str(lead["street_address"]),
		str(lead["city"]),
		str(lead["state"]),
		str(lead["zip"]),
		str(lead["time_at_address"]),
		boolean(lead["has_coborrower"]),
		str(lead["coborrower_first_name"]),
		str(lead["coborrower_last_name"]),
		str(lead["coborrower_email"]),
		num(lead["gross_annual_income"]),
		num(lead["coborrower_gross_annual_income"]),
		str(lead["employment_type"]),
		str(lead["coborrower_employment_type"]),
		str(lead["monthly_debt_payments"]),
		str(lead["credit_score_range"]),
		num(lead["down_payment_saved"]),
		downPaymentSourcesJSON,
		str(lead["timeline"]),
		targetCountiesJSON,
		str(lead["first_time_buyer"]),
		str(lead["va_eligible"]),
		str(lead["current_housing"]),
		input.ReadinessScore,
		input.ReadinessLevel,
		input.RedLightReason,
		input.ComfortablePrice,
		input.StretchPrice,
		input.StrainedPrice,
		input.ComfortablePayment,
		input.StretchPayment,
		input.StrainedPayment,
		"open",
		createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: insert failed: %v", ErrDatabaseInsertFailed, err)
	}

	auditDetailsJSON, err := json.Marshal(map[string]interface{}{
		"email":          email,
		"agentSlug":      input.AgentSlug,
		"readinessScore": input.ReadinessScore,
		"readinessLevel": input.ReadinessLevel,
	})
	if err != nil {
		h.logger.Warn("failed to marshal audit log details", map[string]interface{}{
			"error": err,
		})
		auditDetailsJSON = []byte("{}")
	}

	// Audit failures are not fatal to the lead insert.
	_, err = h.db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		"lead_created",
		"lead",
		leadID,
		auditDetailsJSON,
		createdAt,
	)
	if err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":  err,
			"leadId": leadID,
		})
	}

	h.logger.Info("lead record created", map[string]interface{}{
		"leadId":         leadID,
		"email":          email,
		"readinessScore": input.ReadinessScore,
		"readinessLevel": input.ReadinessLevel,
	})

	return &Output{
		LeadID:     leadID,
		LeadStatus: "open",
		CreatedAt:  createdAt,
	}, nil
}

func str(raw interface{}) string {
	s, _ := raw.(string)
	return s
}

func num(raw interface{}) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

func boolean(raw interface{}) bool {
	b, _ := raw.(bool)
	return b
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
	} else {
		h.logger.Info("job completed successfully", map[string]interface{}{
			"jobKey": job.Key,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, retries int32) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
		"retries":      retries,
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
