package app

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Transaction outcomes reported by AppMetrics.
const (
	txOutcomeOK       = "ok"
	txOutcomeFailed   = "failed"   // fee paid, messages reverted
	txOutcomeRejected = "rejected" // fee not payable, no effect
)

// AppMetrics holds the Prometheus metrics of the block executor
type AppMetrics struct {
	BlocksTotal   prometheus.Counter
	BlockHeight   prometheus.Gauge
	BlockTxs      prometheus.Histogram
	TxsTotal      *prometheus.CounterVec
	TxGasUsed     prometheus.Histogram
	InvariantsRun prometheus.Counter
}

var (
	appMetricsOnce sync.Once
	appMetrics     *AppMetrics
)

// NewAppMetrics creates and registers app metrics (singleton pattern)
func NewAppMetrics() *AppMetrics {
	appMetricsOnce.Do(func() {
		appMetrics = &AppMetrics{
			BlocksTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "hydra",
					Subsystem: "app",
					Name:      "blocks_total",
					Help:      "Total number of blocks executed",
				},
			),
			BlockHeight: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "hydra",
					Subsystem: "app",
					Name:      "block_height",
					Help:      "Height of the last executed block",
				},
			),
			BlockTxs: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "hydra",
					Subsystem: "app",
					Name:      "block_txs",
					Help:      "Transactions per block",
					Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
				},
			),
			TxsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "hydra",
					Subsystem: "app",
					Name:      "txs_total",
					Help:      "Total transactions by outcome and codespace",
				},
				[]string{"outcome", "codespace"},
			),
			TxGasUsed: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "hydra",
					Subsystem: "app",
					Name:      "tx_gas_used",
					Help:      "Gas consumed per transaction",
					Buckets:   prometheus.ExponentialBuckets(1000, 2, 12),
				},
			),
			InvariantsRun: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "hydra",
					Subsystem: "app",
					Name:      "invariant_checks_total",
					Help:      "Total number of end-of-block invariant checks",
				},
			),
		}
	})
	return appMetrics
}
