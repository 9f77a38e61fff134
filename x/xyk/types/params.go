package types

import (
	"cosmossdk.io/math"

	"github.com/hydra-chain/hydra/pkg/fixedpoint"
	assetstypes "github.com/hydra-chain/hydra/x/assets/types"
)

// MaxHopsLimit is the hard cap on route length regardless of params.
const MaxHopsLimit = 4

// Params defines the parameters for the xyk module.
type Params struct {
	// ExchangeFee is charged on every trade.
	ExchangeFee Fee `json:"exchange_fee"`
	// DiscountedFee replaces ExchangeFee on trades that burn the native asset.
	DiscountedFee Fee `json:"discounted_fee"`
	// MinPoolLiquidity is the smallest per-side first deposit and the smallest
	// non-zero share supply a pool may be left with.
	MinPoolLiquidity math.Int `json:"min_pool_liquidity"`
	// MaxInRatio bounds a sell to reserveIn / MaxInRatio.
	MaxInRatio uint64 `json:"max_in_ratio"`
	// MaxOutRatio bounds a buy to reserveOut / MaxOutRatio.
	MaxOutRatio uint64 `json:"max_out_ratio"`
	// MaxHops bounds route length, at most MaxHopsLimit.
	MaxHops uint32 `json:"max_hops"`
	// MaxRouteCandidates bounds the number of paths the router enumerates.
	MaxRouteCandidates uint32 `json:"max_route_candidates"`
	// NativeAssetID is the asset burnt by discounted trades.
	NativeAssetID AssetID `json:"native_asset_id"`
}

// DefaultParams returns default parameters for the xyk module
func DefaultParams() Params {
	return Params{
		ExchangeFee:        NewFee(3, 1000),  // 0.3%
		DiscountedFee:      NewFee(7, 10000), // 0.07%
		MinPoolLiquidity:   math.NewInt(1000),
		MaxInRatio:         3,
		MaxOutRatio:        3,
		MaxHops:            3,
		MaxRouteCandidates: 64,
		NativeAssetID:      assetstypes.NativeAssetID,
	}
}

// Validate performs basic validation of xyk parameters
func (p Params) Validate() error {
	if err := p.ExchangeFee.Validate(); err != nil {
		return ErrInvalidParams.Wrapf("exchange fee: %v", err)
	}
	if err := p.DiscountedFee.Validate(); err != nil {
		return ErrInvalidParams.Wrapf("discounted fee: %v", err)
	}
	if p.MinPoolLiquidity.IsNil() {
		return ErrInvalidParams.Wrap("min pool liquidity cannot be nil")
	}
	if err := fixedpoint.Validate(p.MinPoolLiquidity); err != nil {
		return ErrInvalidParams.Wrapf("min pool liquidity: %v", err)
	}
	if p.MaxInRatio == 0 || p.MaxOutRatio == 0 {
		return ErrInvalidParams.Wrap("trade ratios must be positive")
	}
	if p.MaxHops == 0 || p.MaxHops > MaxHopsLimit {
		return ErrInvalidParams.Wrapf("max hops must be in [1, %d], got %d", MaxHopsLimit, p.MaxHops)
	}
	if p.MaxRouteCandidates == 0 {
		return ErrInvalidParams.Wrap("max route candidates must be positive")
	}
	return nil
}
