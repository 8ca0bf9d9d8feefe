package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	WorkflowOperations *prometheus.CounterVec
	HistoryEvents      *prometheus.CounterVec
	JobRuns            *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics on reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		WorkflowOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "assurgest_workflow_operations_total",
			Help: "Workflow operations by name and outcome",
		}, []string{"operation", "outcome"}),
		HistoryEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "assurgest_history_events_total",
			Help: "History events written by entity and event type",
		}, []string{"entity", "event"}),
		JobRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "assurgest_job_runs_total",
			Help: "Scheduled job runs by job and outcome",
		}, []string{"job", "outcome"}),
	}
}

// ObserveWorkflow counts one workflow invocation
func (m *Metrics) ObserveWorkflow(operation string, err error) {
	if m == nil {
		return
	}
	m.WorkflowOperations.WithLabelValues(operation, outcome(err)).Inc()
}

// ObserveHistoryEvent counts one persisted history event
func (m *Metrics) ObserveHistoryEvent(entity, event string) {
	if m == nil {
		return
	}
	m.HistoryEvents.WithLabelValues(entity, event).Inc()
}

// ObserveJob counts one scheduled job run
func (m *Metrics) ObserveJob(job string, err error) {
	if m == nil {
		return
	}
	m.JobRuns.WithLabelValues(job, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
