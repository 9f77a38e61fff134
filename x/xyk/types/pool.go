package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/hydra-chain/hydra/pkg/fixedpoint"
)

// Pool is the reserve record of one asset pair. Reserves are mirrored in the
// ledger under the pair account; the record is the pricing source of truth.
type Pool struct {
	AssetA      AssetID  `json:"asset_a"`
	AssetB      AssetID  `json:"asset_b"`
	ReserveA    math.Int `json:"reserve_a"`
	ReserveB    math.Int `json:"reserve_b"`
	TotalShares math.Int `json:"total_shares"`
	Fee         Fee      `json:"fee"`
}

// NewPool returns an empty pool for a canonical pair.
func NewPool(pair AssetPair, fee Fee) Pool {
	return Pool{
		AssetA:      pair.AssetA,
		AssetB:      pair.AssetB,
		ReserveA:    math.ZeroInt(),
		ReserveB:    math.ZeroInt(),
		TotalShares: math.ZeroInt(),
		Fee:         fee,
	}
}

// Pair returns the canonical pair of the pool.
func (p Pool) Pair() AssetPair {
	return AssetPair{AssetA: p.AssetA, AssetB: p.AssetB}
}

// ShareAsset returns the pool's share asset id.
func (p Pool) ShareAsset() AssetID {
	return p.Pair().ShareAsset()
}

// Account returns the ledger account holding the pool's reserves.
func (p Pool) Account() sdk.AccAddress {
	return p.Pair().Account()
}

// IsLive reports whether the pool has shares outstanding and can be traded.
func (p Pool) IsLive() bool {
	return p.TotalShares.IsPositive()
}

// Reserves returns (reserveIn, reserveOut) for a trade selling assetIn.
func (p Pool) Reserves(assetIn, assetOut AssetID) (math.Int, math.Int, error) {
	switch {
	case assetIn == p.AssetA && assetOut == p.AssetB:
		return p.ReserveA, p.ReserveB, nil
	case assetIn == p.AssetB && assetOut == p.AssetA:
		return p.ReserveB, p.ReserveA, nil
	default:
		return math.ZeroInt(), math.ZeroInt(), ErrPoolNotFound.Wrapf("pool %s does not trade %d -> %d", p.Pair(), assetIn, assetOut)
	}
}

// ReserveOf returns the reserve of one of the pool's assets.
func (p Pool) ReserveOf(id AssetID) math.Int {
	if id == p.AssetA {
		return p.ReserveA
	}
	return p.ReserveB
}

// WithTrade returns the pool after assetIn is deposited and assetOut paid out.
func (p Pool) WithTrade(assetIn AssetID, amountIn, amountOut math.Int) (Pool, error) {
	var err error
	next := p
	if assetIn == p.AssetA {
		if next.ReserveA, err = fixedpoint.CheckedAdd(p.ReserveA, amountIn); err != nil {
			return p, err
		}
		if next.ReserveB, err = fixedpoint.CheckedSub(p.ReserveB, amountOut); err != nil {
			return p, err
		}
	} else {
		if next.ReserveB, err = fixedpoint.CheckedAdd(p.ReserveB, amountIn); err != nil {
			return p, err
		}
		if next.ReserveA, err = fixedpoint.CheckedSub(p.ReserveA, amountOut); err != nil {
			return p, err
		}
	}
	return next, nil
}

// Validate checks the record's internal consistency.
func (p Pool) Validate() error {
	if err := p.Pair().Validate(); err != nil {
		return err
	}
	for _, v := range []math.Int{p.ReserveA, p.ReserveB, p.TotalShares} {
		if err := fixedpoint.Validate(v); err != nil {
			return err
		}
	}
	if err := p.Fee.Validate(); err != nil {
		return err
	}
	if p.IsLive() && (p.ReserveA.IsZero() || p.ReserveB.IsZero()) {
		return ErrInsufficientLiquidity.Wrapf("pool %s has shares but a zero reserve", p.Pair())
	}
	return nil
}

func (p Pool) String() string {
	return fmt.Sprintf("pool %s reserves=%s/%s shares=%s fee=%s",
		p.Pair(), p.ReserveA, p.ReserveB, p.TotalShares, p.Fee)
}
