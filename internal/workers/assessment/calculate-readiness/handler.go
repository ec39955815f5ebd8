package calculatereadiness

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"homeready-workers/internal/common/logger"
	"homeready-workers/internal/common/metrics"
	"homeready-workers/internal/readiness"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "calculate-readiness"
)

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
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "READINESS_CALCULATION_FAILED").Inc()
		h.failJob(client, job, "READINESS_CALCULATION_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	applicant := applicantFromLead(input.Lead)

	result := readiness.ProcessApplicant(applicant)

	metrics.LeadsAssessed.WithLabelValues(string(result.ReadinessLevel)).Inc()

	h.logger.Info("readiness calculated", map[string]interface{}{
		"leadId":         input.LeadID,
		"score":          result.ReadinessScore,
		"level":          result.ReadinessLevel,
		"redLightReason": result.OverrideReason,
	})

	a := result.Affordability
	return &Output{
		ReadinessScore: result.ReadinessScore,
		ReadinessLevel: string(result.ReadinessLevel),
		RedLightReason: string(result.OverrideReason),

		ComfortablePayment: a.Comfortable.MaxMonthlyPayment,
		StretchPayment:     a.Stretch.MaxMonthlyPayment,
		StrainedPayment:    a.Strained.MaxMonthlyPayment,

		ComfortableLoan: a.Comfortable.MaxLoanAmount,
		StretchLoan:     a.Stretch.MaxLoanAmount,
		StrainedLoan:    a.Strained.MaxLoanAmount,

		ComfortablePrice: a.Comfortable.MaxHomePrice,
		StretchPrice:     a.Stretch.MaxHomePrice,
		StrainedPrice:    a.Strained.MaxHomePrice,
	}, nil
}

// applicantFromLead maps the normalized intake record onto the engine's
// flat applicant. Missing keys leave zero values, which the engine
// treats with its documented defaults.
func applicantFromLead(lead map[string]interface{}) *readiness.Applicant {
	if lead == nil {
		return &readiness.Applicant{}
	}
	return &readiness.Applicant{
		PrimaryAnnualIncome:    toFloat(lead["gross_annual_income"]),
		CoBorrowerAnnualIncome: toFloat(lead["coborrower_gross_annual_income"]),
		MonthlyDebtBand:        toString(lead["monthly_debt_payments"]),
		CreditScoreBand:        toString(lead["credit_score_range"]),
		EmploymentType:         toString(lead["employment_type"]),
		TimeAtAddress:          toString(lead["time_at_address"]),
		Timeline:               toString(lead["timeline"]),
		DownPaymentSaved:       toFloat(lead["down_payment_saved"]),
	}
}

func toFloat(raw interface{}) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

func toString(raw interface{}) string {
	s, _ := raw.(string)
	return s
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
