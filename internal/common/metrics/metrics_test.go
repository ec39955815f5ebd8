package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestWorkerJobCounters(t *testing.T) {
	completed := WorkerJobsCompleted.WithLabelValues("counter-test-task")
	before := testutil.ToFloat64(completed)

	completed.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(completed))

	failed := WorkerJobsFailed.WithLabelValues("counter-test-task", "PARSE_ERROR")
	failedBefore := testutil.ToFloat64(failed)

	failed.Inc()
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
}

func TestWorkerJobsActiveGauge(t *testing.T) {
	active := WorkerJobsActive.WithLabelValues("gauge-test-task")

	active.Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(active))

	active.Dec()
	assert.Equal(t, float64(0), testutil.ToFloat64(active))
}

func TestWorkerJobDurationObserved(t *testing.T) {
	WorkerJobDuration.WithLabelValues("duration-test-task").Observe(0.25)

	count := testutil.CollectAndCount(WorkerJobDuration, "worker_job_duration_seconds")
	assert.GreaterOrEqual(t, count, 1)
}

func TestLeadsAssessedByLevel(t *testing.T) {
	ready := LeadsAssessed.WithLabelValues("metrics-test-level")
	before := testutil.ToFloat64(ready)

	ready.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(ready))
}
