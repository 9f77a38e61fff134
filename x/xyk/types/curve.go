package types

import (
	"cosmossdk.io/math"

	"github.com/hydra-chain/hydra/pkg/fixedpoint"
)

// Constant-product curve math. Every function is pure and rounds in the
// pool's favour: amounts paid out round down, amounts required in round up.

// CalculateOutGivenIn returns the amount bought by selling amountIn, and the
// part of amountIn retained as fee.
//
//	feeAdjusted = floor(amountIn * (den - num) / den)
//	amountOut   = reserveOut - ceil(reserveIn * reserveOut / (reserveIn + feeAdjusted))
func CalculateOutGivenIn(reserveIn, reserveOut, amountIn math.Int, fee Fee) (amountOut, feeCharged math.Int, err error) {
	if reserveIn.IsZero() || reserveOut.IsZero() {
		return math.ZeroInt(), math.ZeroInt(), ErrInsufficientLiquidity.Wrap("pool reserves must be positive")
	}
	if amountIn.IsZero() {
		return math.ZeroInt(), math.ZeroInt(), ErrInvalidAmount.Wrap("amount in must be positive")
	}

	feeAdjusted, feeCharged, err := fee.ApplyTo(amountIn)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	denom, err := fixedpoint.CheckedAdd(reserveIn, feeAdjusted)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	remaining, err := fixedpoint.MulDivCeil(reserveIn, reserveOut, denom)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	amountOut, err = fixedpoint.CheckedSub(reserveOut, remaining)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	if amountOut.IsZero() {
		return math.ZeroInt(), math.ZeroInt(), ErrInsufficientTradingAmount.Wrapf("selling %s yields nothing", amountIn)
	}
	return amountOut, feeCharged, nil
}

// CalculateInGivenOut returns the amount that must be sold to buy amountOut,
// fee included, and the fee part of it.
//
//	feeAdjusted = ceil(reserveIn * amountOut / (reserveOut - amountOut))
//	amountIn    = ceil(feeAdjusted * den / (den - num))
func CalculateInGivenOut(reserveIn, reserveOut, amountOut math.Int, fee Fee) (amountIn, feeCharged math.Int, err error) {
	if reserveIn.IsZero() || reserveOut.IsZero() {
		return math.ZeroInt(), math.ZeroInt(), ErrInsufficientLiquidity.Wrap("pool reserves must be positive")
	}
	if amountOut.IsZero() {
		return math.ZeroInt(), math.ZeroInt(), ErrInvalidAmount.Wrap("amount out must be positive")
	}
	if amountOut.GTE(reserveOut) {
		return math.ZeroInt(), math.ZeroInt(), ErrInsufficientLiquidity.Wrapf("cannot buy %s of reserve %s", amountOut, reserveOut)
	}

	left := reserveOut.Sub(amountOut)
	feeAdjusted, err := fixedpoint.MulDivCeil(reserveIn, amountOut, left)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	amountIn, err = fee.GrossUp(feeAdjusted)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	return amountIn, amountIn.Sub(feeAdjusted), nil
}

// CalculateLiquidityIn returns the amount of asset B required to deposit
// amountA at the current ratio, rounded up.
func CalculateLiquidityIn(reserveA, reserveB, amountA math.Int) (math.Int, error) {
	if reserveA.IsZero() {
		return math.ZeroInt(), ErrInsufficientLiquidity.Wrap("reserve cannot be zero")
	}
	return fixedpoint.MulDivCeil(amountA, reserveB, reserveA)
}

// CalculateSharesMinted returns min(amountA*S/reserveA, amountB*S/reserveB),
// both rounded down.
func CalculateSharesMinted(reserveA, reserveB, totalShares, amountA, amountB math.Int) (math.Int, error) {
	if reserveA.IsZero() || reserveB.IsZero() {
		return math.ZeroInt(), ErrInsufficientLiquidity.Wrap("reserves cannot be zero")
	}
	byA, err := fixedpoint.MulDivFloor(amountA, totalShares, reserveA)
	if err != nil {
		return math.ZeroInt(), err
	}
	byB, err := fixedpoint.MulDivFloor(amountB, totalShares, reserveB)
	if err != nil {
		return math.ZeroInt(), err
	}
	return math.MinInt(byA, byB), nil
}

// CalculateLiquidityOut returns floor(reserve*shares/totalShares) of both
// reserves.
func CalculateLiquidityOut(reserveA, reserveB, totalShares, shares math.Int) (outA, outB math.Int, err error) {
	if totalShares.IsZero() {
		return math.ZeroInt(), math.ZeroInt(), ErrInsufficientLiquidity.Wrap("pool has no shares")
	}
	if shares.GT(totalShares) {
		return math.ZeroInt(), math.ZeroInt(), ErrInsufficientLiquidity.Wrapf("shares %s exceed supply %s", shares, totalShares)
	}
	if outA, err = fixedpoint.MulDivFloor(reserveA, shares, totalShares); err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	if outB, err = fixedpoint.MulDivFloor(reserveB, shares, totalShares); err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	return outA, outB, nil
}

// CalculateSpotPrice returns floor(amount * reserveOut / reserveIn).
func CalculateSpotPrice(reserveIn, reserveOut, amount math.Int) (math.Int, error) {
	if reserveIn.IsZero() {
		return math.ZeroInt(), ErrInsufficientLiquidity.Wrap("reserve cannot be zero")
	}
	return fixedpoint.MulDivFloor(amount, reserveOut, reserveIn)
}
