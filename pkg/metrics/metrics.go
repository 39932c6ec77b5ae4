package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Reconciliation metrics
	ReconciliationCyclesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tempo_operator_reconciliation_cycles_total",
			Help: "Total number of reconciliation passes",
		},
	)

	ReconciliationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tempo_operator_reconciliation_duration_seconds",
			Help:    "Duration of reconciliation passes in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ReconciliationResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tempo_operator_reconciliation_results_total",
			Help: "Reconciliation outcomes by result",
		},
		[]string{"result"},
	)

	// Workload metrics
	WorkloadRestartsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tempo_operator_workload_restarts_total",
			Help: "Total number of workload restarts performed",
		},
	)

	WorkloadRestartAttempts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tempo_operator_workload_restart_attempts_total",
			Help: "Total restart attempts including retries",
		},
	)

	WorkloadReady = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tempo_operator_workload_ready",
			Help: "Whether the workload readiness probe reports ready (1 = ready)",
		},
	)

	// Negotiation metrics
	ActiveReceivers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tempo_operator_active_receivers",
			Help: "Number of receiver protocols currently active",
		},
	)

	LegacyRelations = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tempo_operator_legacy_relations",
			Help: "Number of connected legacy tracing clients",
		},
	)

	ConsistencyViolations = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tempo_operator_consistency_violations",
			Help: "Number of unmet deployment preconditions (0 = deployment sound)",
		},
	)
)

func init() {
	prometheus.MustRegister(ReconciliationCyclesTotal)
	prometheus.MustRegister(ReconciliationDuration)
	prometheus.MustRegister(ReconciliationResults)
	prometheus.MustRegister(WorkloadRestartsTotal)
	prometheus.MustRegister(WorkloadRestartAttempts)
	prometheus.MustRegister(WorkloadReady)
	prometheus.MustRegister(ActiveReceivers)
	prometheus.MustRegister(LegacyRelations)
	prometheus.MustRegister(ConsistencyViolations)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
