package keeper

import (
	"math/big"
	"sync"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// FeepayMetrics holds all Prometheus metrics for the feepay module
type FeepayMetrics struct {
	FeesCharged    *prometheus.CounterVec
	FeeConversions *prometheus.CounterVec
	FeesFailed     *prometheus.CounterVec
}

var (
	feepayMetricsOnce sync.Once
	feepayMetrics     *FeepayMetrics
)

// NewFeepayMetrics creates and registers feepay metrics (singleton pattern)
func NewFeepayMetrics() *FeepayMetrics {
	feepayMetricsOnce.Do(func() {
		feepayMetrics = &FeepayMetrics{
			FeesCharged: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "hydra",
					Subsystem: "feepay",
					Name:      "fees_charged_total",
					Help:      "Total fees paid, in base units of the asset paid with",
				},
				[]string{"asset"},
			),
			FeeConversions: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "hydra",
					Subsystem: "feepay",
					Name:      "fee_conversions_total",
					Help:      "Fees converted into the reference asset through the pools",
				},
				[]string{"asset"},
			),
			FeesFailed: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "hydra",
					Subsystem: "feepay",
					Name:      "fees_failed_total",
					Help:      "Transactions rejected because their fee could not be paid",
				},
				[]string{"reason"},
			),
		}
	})
	return feepayMetrics
}

func toFloat(v math.Int) float64 {
	f, _ := new(big.Float).SetInt(v.BigInt()).Float64()
	return f
}
