package emailsend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"homeready-workers/internal/common/logger"
	"homeready-workers/internal/common/metrics"
	"homeready-workers/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "email-send"
)

var (
	ErrNotificationSendFailed = errors.New("NOTIFICATION_SEND_FAILED")
)

// Interfaces over the AWS clients so tests can mock them.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config    *Config
	logger    logger.Logger
	sesClient SESService
	snsClient SNSService
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(config.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &Handler{
		config:    config,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		sesClient: ses.NewFromConfig(awsCfg),
		snsClient: sns.NewFromConfig(awsCfg),
	}, nil
}

// NewHandlerWithClients injects the AWS clients, used by tests.
func NewHandlerWithClients(config *Config, sesClient SESService, snsClient SNSService, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		sesClient: sesClient,
		snsClient: snsClient,
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
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "NOTIFICATION_SEND_FAILED").Inc()
		h.failJob(client, job, "NOTIFICATION_SEND_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	lead := &input.Lead
	sentAt := time.Now().UTC().Format(time.RFC3339)
	notificationID := uuid.New().String()

	if !h.config.EmailEnabled && !h.config.SMSEnabled {
		return &Output{
			NotificationID: notificationID,
			Status:         StatusDisabled,
			SentAt:         sentAt,
		}, nil
	}

	data := h.templateData(lead, input.Agent)

	attempted := 0
	sent := 0
	smsSent := false

	if h.config.EmailEnabled && lead.Email != "" {
		attempted++
		if err := h.sendLeadEmail(ctx, lead, data); err != nil {
			h.logger.Error("lead email failed", map[string]interface{}{
				"error": err,
				"email": lead.Email,
			})
		} else {
			sent++
		}
	}

	if h.config.EmailEnabled && input.Agent != nil && input.Agent.Email != "" {
		attempted++
		if err := h.sendCopy(ctx, input.Agent.Email, agentTemplate, data); err != nil {
			h.logger.Error("agent email failed", map[string]interface{}{
				"error": err,
				"email": input.Agent.Email,
			})
		} else {
			sent++
		}
	}

	if h.config.EmailEnabled && h.config.LoanOfficerEmail != "" {
		attempted++
		if err := h.sendCopy(ctx, h.config.LoanOfficerEmail, loanOfficerTemplate, data); err != nil {
			h.logger.Error("loan officer email failed", map[string]interface{}{
				"error": err,
				"email": h.config.LoanOfficerEmail,
			})
		} else {
			sent++
		}
	}

	if h.config.SMSEnabled && h.config.LoanOfficerPhone != "" &&
		levelMeetsThreshold(lead.ReadinessLevel, h.config.SMSLevelThreshold) {
		sms := models.SMSNotification{
			PhoneNumber: h.config.LoanOfficerPhone,
			Message:     renderTemplate(smsTemplate, data),
		}
		if err := h.sendSMS(ctx, sms); err != nil {
			h.logger.Error("SMS send failed", map[string]interface{}{
				"error": err,
				"phone": h.config.LoanOfficerPhone,
			})
		} else {
			smsSent = true
		}
	}

	status := StatusDisabled
	switch {
	case attempted == 0 && !smsSent:
		status = StatusDisabled
	case sent == attempted:
		status = StatusSent
	case sent > 0:
		status = StatusPartial
	default:
		status = StatusFailed
	}
	if status == StatusDisabled && smsSent {
		status = StatusSent
	}

	h.logger.Info("notifications processed", map[string]interface{}{
		"leadId":     lead.ID,
		"status":     status,
		"emailsSent": sent,
		"smsSent":    smsSent,
	})

	return &Output{
		NotificationID: notificationID,
		Status:         status,
		EmailsSent:     sent,
		SMSSent:        smsSent,
		SentAt:         sentAt,
	}, nil
}

func (h *Handler) templateData(lead *models.Lead, agent *models.Agent) map[string]interface{} {
	signature := fmt.Sprintf("%s\n%s | NMLS #%s\n%s",
		h.config.LoanOfficerName, h.config.CompanyName, h.config.NMLSNumber, h.config.LoanOfficerPhone)

	data := map[string]interface{}{
		"firstName":        lead.FirstName,
		"leadName":         lead.FullName(),
		"leadEmail":        lead.Email,
		"leadPhone":        lead.Phone,
		"score":            lead.ReadinessScore,
		"level":            lead.ReadinessLevel,
		"timeline":         lead.Timeline,
		"income":           lead.GrossAnnualIncome,
		"downPayment":      lead.DownPaymentSaved,
		"comfortablePrice": lead.ComfortablePrice,
		"stretchPrice":     lead.StretchPrice,
		"strainedPrice":    lead.StrainedPrice,
		"loanOfficerName":  h.config.LoanOfficerName,
		"companyName":      h.config.CompanyName,
		"signature":        signature,
	}

	if agent != nil {
		data["agentName"] = agent.FullName()
	}

	return data
}

func (h *Handler) sendLeadEmail(ctx context.Context, lead *models.Lead, data map[string]interface{}) error {
	template, exists := leadTemplates[lead.ReadinessLevel]
	if !exists {
		template = leadTemplates["yellow"]
	}
	return h.sendEmail(ctx, models.EmailNotification{
		To:       []string{lead.Email},
		Subject:  renderTemplate(template["subject"], data),
		BodyText: renderTemplate(template["body"], data),
	})
}

func (h *Handler) sendCopy(ctx context.Context, to string, template map[string]string, data map[string]interface{}) error {
	return h.sendEmail(ctx, models.EmailNotification{
		To:       []string{to},
		Subject:  renderTemplate(template["subject"], data),
		BodyText: renderTemplate(template["body"], data),
	})
}

func (h *Handler) sendEmail(ctx context.Context, note models.EmailNotification) error {
	_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: note.To,
			CcAddresses: note.CC,
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(note.Subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(note.BodyText)},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	return err
}

func (h *Handler) sendSMS(ctx context.Context, note models.SMSNotification) error {
	_, err := h.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(note.PhoneNumber),
		Message:     aws.String(note.Message),
	})
	return err
}

// levelMeetsThreshold orders readiness levels red < yellow < green.
func levelMeetsThreshold(level, threshold string) bool {
	rank := map[string]int{"red": 0, "yellow": 1, "green": 2}
	lr, ok := rank[level]
	if !ok {
		return false
	}
	tr, ok := rank[threshold]
	if !ok {
		return false
	}
	return lr >= tr
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
