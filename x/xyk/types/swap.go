package types

import (
	"fmt"
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/hydra-chain/hydra/pkg/fixedpoint"
)

// Direction selects which side of a trade is fixed.
type Direction uint8

const (
	// DirectionSell fixes the amount sold (exact in).
	DirectionSell Direction = iota
	// DirectionBuy fixes the amount bought (exact out).
	DirectionBuy
)

func (d Direction) String() string {
	if d == DirectionBuy {
		return "buy"
	}
	return "sell"
}

// SwapIntent describes one trade against a single pool. Limit is the minimum
// amount bought for a sell and the maximum amount sold for a buy.
type SwapIntent struct {
	Trader    sdk.AccAddress
	AssetIn   AssetID
	AssetOut  AssetID
	Amount    math.Int
	Direction Direction
	Limit     math.Int
	Discount  bool
}

// Validate performs stateless checks on the intent.
func (s SwapIntent) Validate() error {
	if len(s.Trader) == 0 {
		return ErrInvalidAddress.Wrap("trader cannot be empty")
	}
	if s.AssetIn == s.AssetOut {
		return ErrSameAssets.Wrapf("asset %d", s.AssetIn)
	}
	if err := fixedpoint.Validate(s.Amount); err != nil {
		return ErrInvalidAmount.Wrapf("amount: %v", err)
	}
	if s.Amount.IsZero() {
		return ErrInvalidAmount.Wrap("amount must be positive")
	}
	if err := fixedpoint.Validate(s.Limit); err != nil {
		return ErrInvalidAmount.Wrapf("limit: %v", err)
	}
	return nil
}

// SwapResult is the settled (or quoted) outcome of a single-pool trade.
type SwapResult struct {
	AmountIn   math.Int
	AmountOut  math.Int
	FeeCharged math.Int
	// DiscountBurn is the native amount burnt by a discounted trade.
	DiscountBurn math.Int
	// PoolAfter is the pool record after the trade is applied.
	PoolAfter Pool
}

// Route is a path of assets; consecutive assets name the pools traversed.
type Route []AssetID

// Hops returns the number of pools on the route.
func (r Route) Hops() int {
	if len(r) < 2 {
		return 0
	}
	return len(r) - 1
}

// Validate requires a simple path of 1..maxHops hops. A simple path never
// visits a pool twice.
func (r Route) Validate(maxHops uint32) error {
	if len(r) < 2 {
		return ErrInvalidRoute.Wrap("route needs at least two assets")
	}
	if r.Hops() > int(maxHops) {
		return ErrInvalidRoute.Wrapf("route has %d hops, max %d", r.Hops(), maxHops)
	}
	seen := make(map[AssetID]struct{}, len(r))
	for _, id := range r {
		if _, dup := seen[id]; dup {
			return ErrInvalidRoute.Wrapf("asset %d visited twice", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func (r Route) String() string {
	parts := make([]string, len(r))
	for i, id := range r {
		parts[i] = id.String()
	}
	return strings.Join(parts, ">")
}

// RouteQuote is the simulated outcome of a route. Amounts[i] is the amount of
// Route[i] flowing through the route, so Amounts[0] is paid in and the last
// entry is received.
type RouteQuote struct {
	Route   Route
	Amounts []math.Int
}

// AmountIn returns the amount paid into the first pool.
func (q RouteQuote) AmountIn() math.Int {
	return q.Amounts[0]
}

// AmountOut returns the amount received from the last pool.
func (q RouteQuote) AmountOut() math.Int {
	return q.Amounts[len(q.Amounts)-1]
}

func (q RouteQuote) String() string {
	return fmt.Sprintf("%s in=%s out=%s", q.Route, q.AmountIn(), q.AmountOut())
}
