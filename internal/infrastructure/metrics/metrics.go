package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Posting metrics
	VouchersPosted        *prometheus.CounterVec
	VouchersReversed      prometheus.Counter
	VoucherPostDuration   prometheus.Histogram
	BalanceUpdateFailures prometheus.Counter
	BalanceUpdatesSkipped prometheus.Counter

	// Balance sheet metrics
	BalanceSheetBuilds    prometheus.Counter
	BalanceSheetDuration  prometheus.Histogram
	BalanceSheetCacheHits prometheus.Counter

	// Reconciliation metrics
	ReconciliationRuns          prometheus.Counter
	ReconciliationDiscrepancies prometheus.Gauge

	// Sequence metrics
	SequenceAllocations *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		VouchersPosted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradebooks_vouchers_posted_total",
				Help: "Total number of vouchers posted by type",
			},
			[]string{"type"},
		),
		VouchersReversed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tradebooks_vouchers_reversed_total",
			Help: "Total number of vouchers reversed",
		}),
		VoucherPostDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tradebooks_voucher_post_duration_seconds",
			Help:    "Duration of voucher posting including balance updates",
			Buckets: prometheus.DefBuckets,
		}),
		BalanceUpdateFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tradebooks_balance_update_failures_total",
			Help: "Total number of per-account balance updates that failed",
		}),
		BalanceUpdatesSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tradebooks_balance_updates_skipped_total",
			Help: "Total number of voucher lines skipped as unresolvable",
		}),

		BalanceSheetBuilds: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tradebooks_balance_sheet_builds_total",
			Help: "Total number of balance sheet reports computed by replay",
		}),
		BalanceSheetDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tradebooks_balance_sheet_duration_seconds",
			Help:    "Duration of balance sheet replay and rollup",
			Buckets: prometheus.DefBuckets,
		}),
		BalanceSheetCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tradebooks_balance_sheet_cache_hits_total",
			Help: "Total number of balance sheet reports served from cache",
		}),

		ReconciliationRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tradebooks_reconciliation_runs_total",
			Help: "Total number of reconciliation reports produced",
		}),
		ReconciliationDiscrepancies: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "tradebooks_reconciliation_discrepancies",
			Help: "Accounts whose live and replayed balances diverged in the last run",
		}),

		SequenceAllocations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradebooks_sequence_allocations_total",
				Help: "Total number of sequence values handed out by counter name",
			},
			[]string{"sequence"},
		),
	}
}
