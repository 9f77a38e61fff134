package keeper

import (
	"math/big"
	"strconv"
	"sync"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hydra-chain/hydra/x/xyk/types"
)

// XYKMetrics holds all Prometheus metrics for the xyk module
type XYKMetrics struct {
	// Swap metrics
	SwapsTotal    *prometheus.CounterVec
	SwapVolume    *prometheus.CounterVec
	FeesCollected *prometheus.CounterVec
	DiscountBurns *prometheus.CounterVec

	// Liquidity metrics
	LiquidityAdded   *prometheus.CounterVec
	LiquidityRemoved *prometheus.CounterVec
	PoolReserves     *prometheus.GaugeVec
	ShareSupply      *prometheus.GaugeVec
	PoolsTotal       prometheus.Counter

	// Router metrics
	RoutesTotal     *prometheus.CounterVec
	RouteHops       prometheus.Histogram
	RouteCandidates prometheus.Histogram

	// Safety metrics
	InvariantViolations *prometheus.CounterVec
}

var (
	xykMetricsOnce sync.Once
	xykMetrics     *XYKMetrics
)

// NewXYKMetrics creates and registers xyk metrics (singleton pattern)
func NewXYKMetrics() *XYKMetrics {
	xykMetricsOnce.Do(func() {
		xykMetrics = &XYKMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "hydra",
					Subsystem: "xyk",
					Name:      "swaps_total",
					Help:      "Total number of single-pool trades",
				},
				[]string{"direction", "status"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "hydra",
					Subsystem: "xyk",
					Name:      "swap_volume_total",
					Help:      "Total amount sold into pools in base units",
				},
				[]string{"asset"},
			),
			FeesCollected: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "hydra",
					Subsystem: "xyk",
					Name:      "fees_collected_total",
					Help:      "Total trading fees retained as reserves",
				},
				[]string{"asset"},
			),
			DiscountBurns: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "hydra",
					Subsystem: "xyk",
					Name:      "discount_burned_total",
					Help:      "Native asset burnt by discounted trades",
				},
				[]string{"asset"},
			),
			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "hydra",
					Subsystem: "xyk",
					Name:      "liquidity_added_total",
					Help:      "Total liquidity additions",
				},
				[]string{"pool"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "hydra",
					Subsystem: "xyk",
					Name:      "liquidity_removed_total",
					Help:      "Total liquidity removals",
				},
				[]string{"pool"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "hydra",
					Subsystem: "xyk",
					Name:      "pool_reserves",
					Help:      "Current pool reserves",
				},
				[]string{"pool", "asset"},
			),
			ShareSupply: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "hydra",
					Subsystem: "xyk",
					Name:      "share_supply",
					Help:      "Outstanding pool shares",
				},
				[]string{"pool"},
			),
			PoolsTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "hydra",
					Subsystem: "xyk",
					Name:      "pools_created_total",
					Help:      "Total number of pools created",
				},
			),
			RoutesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "hydra",
					Subsystem: "xyk",
					Name:      "routes_total",
					Help:      "Total number of routed trades",
				},
				[]string{"direction", "status"},
			),
			RouteHops: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "hydra",
					Subsystem: "xyk",
					Name:      "route_hops",
					Help:      "Number of hops of executed routes",
					Buckets:   []float64{1, 2, 3, 4},
				},
			),
			RouteCandidates: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "hydra",
					Subsystem: "xyk",
					Name:      "route_candidates",
					Help:      "Number of candidate paths found per route search",
					Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
				},
			),
			InvariantViolations: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "hydra",
					Subsystem: "xyk",
					Name:      "invariant_violations_total",
					Help:      "Product checks that failed and aborted an operation",
				},
				[]string{"pool"},
			),
		}
	})
	return xykMetrics
}

// toFloat converts an amount for metric export only.
func toFloat(v math.Int) float64 {
	if v.IsNil() {
		return 0
	}
	f, _ := new(big.Float).SetInt(v.BigInt()).Float64()
	return f
}

// RecordCommitted updates the success metrics from the events of a
// transaction whose effects were written to ctx, and refreshes the reserve
// gauges of every pool those events touched. Failed attempts are counted
// where they happen; nothing here runs for a discarded branch.
func (k Keeper) RecordCommitted(ctx sdk.Context, events sdk.Events) {
	touched := make(map[types.AssetPair]struct{})
	touch := func(a, b string) {
		idA, errA := strconv.ParseUint(a, 10, 64)
		idB, errB := strconv.ParseUint(b, 10, 64)
		if errA != nil || errB != nil {
			return
		}
		if pair, err := types.NewAssetPair(types.AssetID(idA), types.AssetID(idB)); err == nil {
			touched[pair] = struct{}{}
		}
	}

	for _, ev := range events {
		attrs := make(map[string]string, len(ev.Attributes))
		for _, attr := range ev.Attributes {
			attrs[attr.Key] = attr.Value
		}

		switch ev.Type {
		case types.EventTypePoolCreated:
			k.metrics.PoolsTotal.Inc()
			k.Logger(ctx).Info("pool created", "pool", attrs[types.AttributeKeyPool], "share_asset", attrs[types.AttributeKeyShareAsset])
			touch(attrs[types.AttributeKeyAssetA], attrs[types.AttributeKeyAssetB])

		case types.EventTypeLiquidityAdded:
			k.metrics.LiquidityAdded.WithLabelValues(attrs[types.AttributeKeyPool]).Inc()
			touch(attrs[types.AttributeKeyAssetA], attrs[types.AttributeKeyAssetB])

		case types.EventTypeLiquidityRemoved:
			k.metrics.LiquidityRemoved.WithLabelValues(attrs[types.AttributeKeyPool]).Inc()
			touch(attrs[types.AttributeKeyAssetA], attrs[types.AttributeKeyAssetB])

		case types.EventTypeSwapped:
			assetIn := attrs[types.AttributeKeyAssetIn]
			k.metrics.SwapsTotal.WithLabelValues(attrs[types.AttributeKeyDirection], "success").Inc()
			k.metrics.SwapVolume.WithLabelValues(assetIn).Add(attrFloat(attrs[types.AttributeKeyAmountIn]))
			k.metrics.FeesCollected.WithLabelValues(assetIn).Add(attrFloat(attrs[types.AttributeKeyFeeCharged]))
			touch(assetIn, attrs[types.AttributeKeyAssetOut])

		case types.EventTypeDiscountBurned:
			k.metrics.DiscountBurns.WithLabelValues(attrs[types.AttributeKeyNativeAsset]).Add(attrFloat(attrs[types.AttributeKeyBurned]))

		case types.EventTypeRouteExecuted:
			k.metrics.RoutesTotal.WithLabelValues(attrs[types.AttributeKeyDirection], "success").Inc()
			if hops, err := strconv.Atoi(attrs[types.AttributeKeyHops]); err == nil {
				k.metrics.RouteHops.Observe(float64(hops))
			}
		}
	}

	for pair := range touched {
		pool, found, err := k.getPool(ctx, pair)
		if err != nil || !found {
			continue
		}
		label := pair.String()
		k.metrics.PoolReserves.WithLabelValues(label, pool.AssetA.String()).Set(toFloat(pool.ReserveA))
		k.metrics.PoolReserves.WithLabelValues(label, pool.AssetB.String()).Set(toFloat(pool.ReserveB))
		k.metrics.ShareSupply.WithLabelValues(label).Set(toFloat(pool.TotalShares))
	}
}

func attrFloat(v string) float64 {
	amount, ok := math.NewIntFromString(v)
	if !ok {
		return 0
	}
	return toFloat(amount)
}
