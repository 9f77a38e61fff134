package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/hydra-chain/hydra/pkg/fixedpoint"
	sharedkeeper "github.com/hydra-chain/hydra/x/shared/keeper"
	"github.com/hydra-chain/hydra/x/xyk/types"
)

// Trades run in two steps. quoteTrade validates the intent against a pool
// snapshot and computes every amount without touching state; settleTrade
// applies a quote. Quotes never mutate state, so quoting the same intent twice
// against the same state returns the same result.

// QuoteSell returns the amount of assetOut bought by selling amountIn.
func (k Keeper) QuoteSell(ctx context.Context, assetIn, assetOut types.AssetID, amountIn math.Int) (math.Int, error) {
	res, err := k.quote(ctx, types.SwapIntent{
		Trader:    quoteAccount,
		AssetIn:   assetIn,
		AssetOut:  assetOut,
		Amount:    amountIn,
		Direction: types.DirectionSell,
		Limit:     math.ZeroInt(),
	})
	if err != nil {
		return math.ZeroInt(), err
	}
	return res.AmountOut, nil
}

// QuoteBuy returns the amount of assetIn required to buy amountOut.
func (k Keeper) QuoteBuy(ctx context.Context, assetIn, assetOut types.AssetID, amountOut math.Int) (math.Int, error) {
	res, err := k.quote(ctx, types.SwapIntent{
		Trader:    quoteAccount,
		AssetIn:   assetIn,
		AssetOut:  assetOut,
		Amount:    amountOut,
		Direction: types.DirectionBuy,
		Limit:     fixedpoint.MaxBalance,
	})
	if err != nil {
		return math.ZeroInt(), err
	}
	return res.AmountIn, nil
}

// quoteAccount stands in for the trader when only prices are requested.
var quoteAccount = sdk.AccAddress(make([]byte, 20))

// Sell sells exactly amount of assetIn for at least minBought of assetOut.
func (k Keeper) Sell(
	ctx context.Context,
	trader sdk.AccAddress,
	assetIn, assetOut types.AssetID,
	amount, minBought math.Int,
	discount bool,
) (types.SwapResult, error) {
	return k.Swap(ctx, types.SwapIntent{
		Trader:    trader,
		AssetIn:   assetIn,
		AssetOut:  assetOut,
		Amount:    amount,
		Direction: types.DirectionSell,
		Limit:     minBought,
		Discount:  discount,
	})
}

// Buy buys exactly amount of assetOut for at most maxSold of assetIn.
func (k Keeper) Buy(
	ctx context.Context,
	trader sdk.AccAddress,
	assetOut, assetIn types.AssetID,
	amount, maxSold math.Int,
	discount bool,
) (types.SwapResult, error) {
	return k.Swap(ctx, types.SwapIntent{
		Trader:    trader,
		AssetIn:   assetIn,
		AssetOut:  assetOut,
		Amount:    amount,
		Direction: types.DirectionBuy,
		Limit:     maxSold,
		Discount:  discount,
	})
}

// Swap executes a single-pool trade. Either every transfer and the pool update
// are committed, or nothing is.
func (k Keeper) Swap(ctx context.Context, intent types.SwapIntent) (types.SwapResult, error) {
	return k.swapTo(ctx, intent, intent.Trader)
}

func (k Keeper) swapTo(ctx context.Context, intent types.SwapIntent, recipient sdk.AccAddress) (types.SwapResult, error) {
	var res types.SwapResult
	err := sharedkeeper.RunAtomic(sdk.UnwrapSDKContext(ctx), func(ctx sdk.Context) error {
		var err error
		if res, err = k.quote(ctx, intent); err != nil {
			return err
		}
		return k.settleTrade(ctx, intent, recipient, res)
	})

	if err != nil {
		k.metrics.SwapsTotal.WithLabelValues(intent.Direction.String(), "failed").Inc()
		return types.SwapResult{}, err
	}
	return res, nil
}

// quote validates an intent against current state and prices it.
func (k Keeper) quote(ctx context.Context, intent types.SwapIntent) (types.SwapResult, error) {
	if err := intent.Validate(); err != nil {
		return types.SwapResult{}, err
	}
	for _, id := range []types.AssetID{intent.AssetIn, intent.AssetOut} {
		if !k.registry.Exists(ctx, id) {
			return types.SwapResult{}, types.ErrUnknownAsset.Wrapf("asset %d", id)
		}
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return types.SwapResult{}, err
	}
	pool, err := k.getLivePool(ctx, intent.AssetIn, intent.AssetOut)
	if err != nil {
		return types.SwapResult{}, err
	}

	res, err := quoteTrade(pool, params, intent)
	if err != nil {
		return types.SwapResult{}, err
	}

	if intent.Discount {
		if res.DiscountBurn, err = k.discountBurn(ctx, params, intent, res.FeeCharged); err != nil {
			return types.SwapResult{}, err
		}
	}
	return res, nil
}

// quoteTrade prices an intent against a pool snapshot. It enforces the trade
// ratio bounds and the intent's limit.
func quoteTrade(pool types.Pool, params types.Params, intent types.SwapIntent) (types.SwapResult, error) {
	reserveIn, reserveOut, err := pool.Reserves(intent.AssetIn, intent.AssetOut)
	if err != nil {
		return types.SwapResult{}, err
	}

	fee := pool.Fee
	if intent.Discount {
		fee = params.DiscountedFee
	}

	res := types.SwapResult{DiscountBurn: math.ZeroInt()}
	switch intent.Direction {
	case types.DirectionSell:
		if intent.Amount.GT(reserveIn.Quo(math.NewIntFromUint64(params.MaxInRatio))) {
			return types.SwapResult{}, types.ErrMaxInRatioExceeded.Wrapf(
				"sell %s exceeds 1/%d of reserve %s", intent.Amount, params.MaxInRatio, reserveIn)
		}
		out, feeCharged, err := types.CalculateOutGivenIn(reserveIn, reserveOut, intent.Amount, fee)
		if err != nil {
			return types.SwapResult{}, err
		}
		if out.LT(intent.Limit) {
			return types.SwapResult{}, types.ErrSlippageExceeded.Wrapf("bought %s, minimum %s", out, intent.Limit)
		}
		res.AmountIn, res.AmountOut, res.FeeCharged = intent.Amount, out, feeCharged

	case types.DirectionBuy:
		if intent.Amount.GT(reserveOut.Quo(math.NewIntFromUint64(params.MaxOutRatio))) {
			return types.SwapResult{}, types.ErrMaxOutRatioExceeded.Wrapf(
				"buy %s exceeds 1/%d of reserve %s", intent.Amount, params.MaxOutRatio, reserveOut)
		}
		in, feeCharged, err := types.CalculateInGivenOut(reserveIn, reserveOut, intent.Amount, fee)
		if err != nil {
			return types.SwapResult{}, err
		}
		if in.GT(intent.Limit) {
			return types.SwapResult{}, types.ErrSlippageExceeded.Wrapf("sold %s, maximum %s", in, intent.Limit)
		}
		res.AmountIn, res.AmountOut, res.FeeCharged = in, intent.Amount, feeCharged

	default:
		return types.SwapResult{}, types.ErrInvalidAmount.Wrapf("unknown direction %d", intent.Direction)
	}

	if res.PoolAfter, err = pool.WithTrade(intent.AssetIn, res.AmountIn, res.AmountOut); err != nil {
		return types.SwapResult{}, err
	}
	return res, nil
}

// discountBurn prices the fee in the native asset through the assetIn/native
// pool and checks the trader can pay it.
func (k Keeper) discountBurn(ctx context.Context, params types.Params, intent types.SwapIntent, fee math.Int) (math.Int, error) {
	if intent.AssetIn == params.NativeAssetID {
		return math.ZeroInt(), types.ErrCannotApplyDiscount.Wrap("native asset cannot be discounted against itself")
	}
	nativePool, err := k.getLivePool(ctx, intent.AssetIn, params.NativeAssetID)
	if err != nil {
		return math.ZeroInt(), types.ErrCannotApplyDiscount.Wrapf("no pool %d/%d", intent.AssetIn, params.NativeAssetID)
	}

	burn, err := types.CalculateSpotPrice(nativePool.ReserveOf(intent.AssetIn), nativePool.ReserveOf(params.NativeAssetID), fee)
	if err != nil {
		return math.ZeroInt(), types.ErrCannotApplyDiscount.Wrap(err.Error())
	}
	if held := k.ledger.GetBalance(ctx, intent.Trader, params.NativeAssetID); held.LT(burn) {
		return math.ZeroInt(), types.ErrInsufficientBalance.Wrapf("discount needs %s of native asset, account holds %s", burn, held)
	}
	return burn, nil
}

// settleTrade applies a quoted trade: burns the discount, moves assetIn into
// the pool account and assetOut to the recipient, then stores the new pool.
func (k Keeper) settleTrade(ctx sdk.Context, intent types.SwapIntent, recipient sdk.AccAddress, res types.SwapResult) error {
	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	before, err := k.getLivePool(ctx, intent.AssetIn, intent.AssetOut)
	if err != nil {
		return err
	}
	if err := k.checkProduct(ctx, before, res.PoolAfter); err != nil {
		return err
	}

	if res.DiscountBurn.IsPositive() {
		if err := k.ledger.Debit(ctx, intent.Trader, params.NativeAssetID, res.DiscountBurn); err != nil {
			return err
		}
		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeDiscountBurned,
				sdk.NewAttribute(types.AttributeKeyTrader, intent.Trader.String()),
				sdk.NewAttribute(types.AttributeKeyNativeAsset, params.NativeAssetID.String()),
				sdk.NewAttribute(types.AttributeKeyBurned, res.DiscountBurn.String()),
			),
		)
	}

	account := before.Account()
	if err := k.ledger.Transfer(ctx, intent.Trader, account, intent.AssetIn, res.AmountIn); err != nil {
		return err
	}
	if err := k.ledger.Transfer(ctx, account, recipient, intent.AssetOut, res.AmountOut); err != nil {
		return err
	}
	if err := k.setPool(ctx, res.PoolAfter); err != nil {
		return err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSwapped,
			sdk.NewAttribute(types.AttributeKeyPool, before.Pair().String()),
			sdk.NewAttribute(types.AttributeKeyTrader, intent.Trader.String()),
			sdk.NewAttribute(types.AttributeKeyDirection, intent.Direction.String()),
			sdk.NewAttribute(types.AttributeKeyAssetIn, intent.AssetIn.String()),
			sdk.NewAttribute(types.AttributeKeyAssetOut, intent.AssetOut.String()),
			sdk.NewAttribute(types.AttributeKeyAmountIn, res.AmountIn.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, res.AmountOut.String()),
			sdk.NewAttribute(types.AttributeKeyFeeCharged, res.FeeCharged.String()),
		),
	)
	return nil
}

// checkProduct aborts when a pool update would decrease reserveA * reserveB.
// The products are compared at full 256-bit width. A failure is a defect in
// the curve math, so it is logged loudly before the operation is rejected.
func (k Keeper) checkProduct(ctx context.Context, before, after types.Pool) error {
	oldK, err := fixedpoint.Product(before.ReserveA, before.ReserveB)
	if err != nil {
		return err
	}
	newK, err := fixedpoint.Product(after.ReserveA, after.ReserveB)
	if err != nil {
		return err
	}
	if newK.Lt(oldK) {
		k.metrics.InvariantViolations.WithLabelValues(before.Pair().String()).Inc()
		k.Logger(ctx).Error("constant product invariant violated",
			"pool", before.Pair().String(),
			"old_product", oldK.Dec(),
			"new_product", newK.Dec(),
		)
		return types.ErrInvariantViolation.Wrapf("pool %s: product %s -> %s", before.Pair(), oldK.Dec(), newK.Dec())
	}
	return nil
}

// SpotPrice returns floor(amount * reserveOut / reserveIn) for the pool of
// assetIn and assetOut.
func (k Keeper) SpotPrice(ctx context.Context, assetIn, assetOut types.AssetID, amount math.Int) (math.Int, error) {
	pool, err := k.getLivePool(ctx, assetIn, assetOut)
	if err != nil {
		return math.ZeroInt(), err
	}
	reserveIn, reserveOut, err := pool.Reserves(assetIn, assetOut)
	if err != nil {
		return math.ZeroInt(), err
	}
	return types.CalculateSpotPrice(reserveIn, reserveOut, amount)
}
