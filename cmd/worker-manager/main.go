// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"homeready-workers/internal/common/camunda"
	"homeready-workers/internal/common/config"
	"homeready-workers/internal/common/database"
	"homeready-workers/internal/common/logger"
	"homeready-workers/internal/common/observability"
	"homeready-workers/pkg/registry"

	// Assessment Workers (4)
	cr "homeready-workers/internal/workers/assessment/calculate-readiness"
	clr "homeready-workers/internal/workers/assessment/create-lead-record"
	rl "homeready-workers/internal/workers/assessment/route-lead"
	vld "homeready-workers/internal/workers/assessment/validate-lead-data"

	// CRM & Communication Workers (2)
	es "homeready-workers/internal/workers/communication/email-send"
	cls "homeready-workers/internal/workers/crm/crm-lead-sync"

	// AI Workers (1)
	gs "homeready-workers/internal/workers/ai/generate-summary"

	// Document Workers (2)
	em "homeready-workers/internal/workers/documents/export-mismo"
	rr "homeready-workers/internal/workers/documents/render-report"

	// Data Access Workers (1)
	il "homeready-workers/internal/workers/data-access/index-lead"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Load Activity Registry ---
	registryPath := cfg.RegistryPath
	if registryPath == "" {
		registryPath = "configs/registry.json"
	}
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		zapLog.Fatal("activity registry load failed", zap.Error(err))
	}
	if err := reg.Validate(); err != nil {
		zapLog.Fatal("activity registry invalid", zap.Error(err))
	}
	zapLog.Info("Activity registry loaded",
		zap.String("version", reg.Version),
		zap.Int("activities", len(reg.Activities)),
	)

	for taskType, wcfg := range cfg.Workers {
		if _, ok := reg.FindByTaskType(taskType); !ok && wcfg.Enabled {
			zapLog.Warn("enabled worker has no registry entry", zap.String("taskType", taskType))
		}
	}

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClient(cfg.Camunda.BrokerAddress)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		// Test the connection
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- START: Register ALL 10 Workers ---

	// --- 1. Assessment Workers (4) ---
	if cfg.Workers[vld.TaskType].Enabled {
		handler := vld.NewHandler(
			&vld.Config{
				Timeout: config.GetDuration(cfg.Workers[vld.TaskType].Timeout),
			},
			log,
		)
		startWorker(zeebeClient, vld.TaskType, cfg.Workers[vld.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[cr.TaskType].Enabled {
		handler := cr.NewHandler(
			&cr.Config{
				Timeout: config.GetDuration(cfg.Workers[cr.TaskType].Timeout),
			},
			log,
		)
		startWorker(zeebeClient, cr.TaskType, cfg.Workers[cr.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[clr.TaskType].Enabled {
		handler := clr.NewHandler(
			&clr.Config{
				Timeout: config.GetDuration(cfg.Workers[clr.TaskType].Timeout),
			},
			pg.DB, log,
		)
		startWorker(zeebeClient, clr.TaskType, cfg.Workers[clr.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[rl.TaskType].Enabled {
		handler := rl.NewHandler(
			&rl.Config{
				Timeout:  config.GetDuration(cfg.Workers[rl.TaskType].Timeout),
				CacheTTL: 10 * time.Minute,
			},
			pg.DB, redis.Client, log,
		)
		startWorker(zeebeClient, rl.TaskType, cfg.Workers[rl.TaskType], handler.Handle, zapLog)
	}

	// --- 2. CRM Workers (1) ---
	if cfg.Workers[cls.TaskType].Enabled {
		handler := cls.NewHandler(
			&cls.Config{
				WebhookURL: cfg.Integrations.HighLevel.WebhookURL,
				Timeout:    config.GetDuration(cfg.Integrations.HighLevel.Timeout),
			},
			log,
		)
		startWorker(zeebeClient, cls.TaskType, cfg.Workers[cls.TaskType], handler.Handle, zapLog)
	}

	// --- 3. Communication Workers (1) ---
	if cfg.Workers[es.TaskType].Enabled {
		handler, err := es.NewHandler(es.LoadConfigFrom(cfg), log)
		if err != nil {
			zapLog.Fatal("failed to create email-send handler", zap.Error(err))
		}
		startWorker(zeebeClient, es.TaskType, cfg.Workers[es.TaskType], handler.Handle, zapLog)
	}

	// --- 4. AI Workers (1) ---
	if cfg.Workers[gs.TaskType].Enabled {
		handler := gs.NewHandler(gs.LoadConfigFrom(cfg), log)
		startWorker(zeebeClient, gs.TaskType, cfg.Workers[gs.TaskType], handler.Handle, zapLog)
	}

	// --- 5. Document Workers (2) ---
	if cfg.Workers[rr.TaskType].Enabled {
		handler := rr.NewHandler(rr.LoadConfigFrom(cfg), log)
		startWorker(zeebeClient, rr.TaskType, cfg.Workers[rr.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[em.TaskType].Enabled {
		handler := em.NewHandler(
			&em.Config{
				Timeout: config.GetDuration(cfg.Workers[em.TaskType].Timeout),
			},
			log,
		)
		startWorker(zeebeClient, em.TaskType, cfg.Workers[em.TaskType], handler.Handle, zapLog)
	}

	// --- 6. Data Access Workers (1) ---
	if cfg.Workers[il.TaskType].Enabled {
		handler := il.NewHandler(il.LoadConfig(), esClient.Client, log)
		startWorker(zeebeClient, il.TaskType, cfg.Workers[il.TaskType], handler.Handle, zapLog)
	}

	zapLog.Info("All 10 workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(handlerFunc).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
