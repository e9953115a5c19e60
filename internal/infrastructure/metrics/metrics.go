package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Mutation metrics
	MutationsApplied *prometheus.CounterVec
	MutationErrors   *prometheus.CounterVec
	MutationDuration prometheus.Histogram
	StaleAggregates  prometheus.Counter

	// Report metrics
	ReportsGenerated *prometheus.CounterVec
	ReportDuration   prometheus.Histogram

	// Receivable metrics
	ReceivablesCreated  prometheus.Counter
	InterestEvaluations prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		MutationsApplied: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caixa_mutations_applied_total",
				Help: "Total number of ledger mutations applied",
			},
			[]string{"op"},
		),
		MutationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caixa_mutation_errors_total",
				Help: "Total number of rejected ledger mutations",
			},
			[]string{"op"},
		),
		MutationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "caixa_mutation_duration_seconds",
			Help:    "Duration of ledger mutations including recompute",
			Buckets: prometheus.DefBuckets,
		}),
		StaleAggregates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caixa_stale_aggregates_total",
			Help: "Total number of mutations acknowledged with stale aggregates",
		}),

		ReportsGenerated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caixa_reports_generated_total",
				Help: "Total number of reports generated",
			},
			[]string{"granularity"},
		),
		ReportDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "caixa_report_duration_seconds",
			Help:    "Duration of report generation",
			Buckets: prometheus.DefBuckets,
		}),

		ReceivablesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caixa_receivables_created_total",
			Help: "Total number of receivables created",
		}),
		InterestEvaluations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caixa_interest_evaluations_total",
			Help: "Total number of interest evaluations",
		}),
	}
}
