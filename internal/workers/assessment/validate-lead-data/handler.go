package validateleaddata

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"homeready-workers/internal/common/logger"
	"homeready-workers/internal/common/metrics"
	"homeready-workers/internal/common/validation"
	"homeready-workers/internal/readiness"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "validate-lead-data"

	soloBuyerStatus = "No, buying solo"
)

var nonDigits = regexp.MustCompile(`[^0-9]`)

type Handler struct {
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
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
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "LEAD_VALIDATION_FAILED").Inc()
		h.failJob(client, job, "LEAD_VALIDATION_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	data := input.LeadData
	if data == nil {
		data = make(map[string]interface{})
	}

	result, err := validation.Validate(data, intakeSchema)
	if err != nil {
		return nil, err
	}

	if !result.Valid {
		fieldErrors := make([]FieldError, 0, len(result.Errors))
		for _, e := range result.Errors {
			fieldErrors = append(fieldErrors, FieldError{Field: e.Field, Message: e.Message})
		}
		h.logger.Warn("lead data rejected", map[string]interface{}{
			"errors": result.ErrorSummary(),
		})
		return &Output{Valid: false, Errors: fieldErrors}, nil
	}

	normalized, warnings := h.normalize(data)

	h.logger.Info("lead data validated", map[string]interface{}{
		"email":    normalized["email"],
		"warnings": len(warnings),
	})

	return &Output{
		Valid:    true,
		Warnings: warnings,
		Lead:     normalized,
	}, nil
}

// normalize converts form strings into the shapes downstream workers
// consume. Unknown band strings are reported as warnings but kept:
// the scoring engine is total over its inputs.
func (h *Handler) normalize(data map[string]interface{}) (map[string]interface{}, []string) {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = v
	}

	out["gross_annual_income"] = parseCurrency(data["gross_annual_income"])
	out["down_payment_saved"] = parseCurrency(data["down_payment_saved"])

	coStatus, _ := data["coborrower_status"].(string)
	hasCoBorrower := coStatus != "" && coStatus != soloBuyerStatus
	out["has_coborrower"] = hasCoBorrower
	if hasCoBorrower {
		out["coborrower_gross_annual_income"] = parseCurrency(data["coborrower_gross_annual_income"])
	} else {
		out["coborrower_gross_annual_income"] = float64(0)
	}

	out["target_counties"] = coerceStringSlice(data["target_counties"])
	out["down_payment_sources"] = coerceStringSlice(data["down_payment_sources"])

	var warnings []string
	if band, _ := data["monthly_debt_payments"].(string); band != "" && !readiness.KnownDebtBand(band) {
		warnings = append(warnings, fmt.Sprintf("unknown debt band %q, default midpoint applies", band))
	}
	if band, _ := data["credit_score_range"].(string); band != "" && !readiness.KnownCreditBand(band) {
		warnings = append(warnings, fmt.Sprintf("unknown credit band %q, scores 0 points", band))
	}
	if band, _ := data["time_at_address"].(string); band != "" && !readiness.KnownAddressBand(band) {
		warnings = append(warnings, fmt.Sprintf("unknown time-at-address %q, scores 0 points", band))
	}
	if timeline, _ := data["timeline"].(string); timeline != "" && !readiness.KnownTimeline(timeline) {
		warnings = append(warnings, fmt.Sprintf("unknown timeline %q, scores 0 points", timeline))
	}

	return out, warnings
}

// parseCurrency strips everything but digits, so "$80,000" and 80000
// both come out as 80000. The intake form collects whole-dollar
// amounts, so a stray decimal string loses its point ("80000.50"
// reads as 8000050). Unparseable values become 0.
func parseCurrency(raw interface{}) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		cleaned := nonDigits.ReplaceAllString(v, "")
		if cleaned == "" {
			return 0
		}
		n, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func coerceStringSlice(raw interface{}) []string {
	switch v := raw.(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return []string{}
		}
		return []string{v}
	default:
		return []string{}
	}
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
