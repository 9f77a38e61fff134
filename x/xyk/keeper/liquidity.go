package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/hydra-chain/hydra/pkg/fixedpoint"
	sharedkeeper "github.com/hydra-chain/hydra/x/shared/keeper"
	"github.com/hydra-chain/hydra/x/xyk/types"
)

// CreatePool seeds the pool of {assetA, assetB} with amount of assetA and
// floor(amount * initialPrice) of assetB. A pool that was drained to zero
// shares may be seeded again; a live pool may not.
func (k Keeper) CreatePool(
	ctx context.Context,
	creator sdk.AccAddress,
	assetA, assetB types.AssetID,
	amount math.Int,
	initialPrice math.LegacyDec,
) (shares, amountB math.Int, err error) {
	if assetA == assetB {
		return math.ZeroInt(), math.ZeroInt(), types.ErrSameAssets.Wrapf("asset %d", assetA)
	}
	if amount.IsNil() || amount.IsZero() {
		return math.ZeroInt(), math.ZeroInt(), types.ErrZeroLiquidity.Wrap("amount cannot be zero")
	}
	if initialPrice.IsNil() || !initialPrice.IsPositive() {
		return math.ZeroInt(), math.ZeroInt(), types.ErrZeroInitialPrice.Wrapf("price %s", initialPrice)
	}

	if pool, err := k.GetPool(ctx, assetA, assetB); err == nil && pool.IsLive() {
		return math.ZeroInt(), math.ZeroInt(), types.ErrPoolAlreadyExists.Wrapf("pool %s", pool.Pair())
	}

	amountB = initialPrice.MulInt(amount).TruncateInt()
	if amountB.IsZero() {
		return math.ZeroInt(), math.ZeroInt(), types.ErrZeroLiquidity.Wrapf("price %s gives no %d for %s", initialPrice, assetB, amount)
	}
	if err := fixedpoint.Validate(amountB); err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}

	amountB, shares, err = k.AddLiquidity(ctx, creator, assetA, assetB, amount, amountB)
	return shares, amountB, err
}

// AddLiquidity deposits amountA of assetA and the matching amount of assetB,
// at most amountBMax, and mints shares to the provider.
//
// The first deposit into a pool without shares sets the reserves to
// (amountA, amountBMax) and mints as many shares as the amount of the pair's
// lower asset id. Later deposits pay ceil(amountA * rB / rA) of assetB and mint
// min(amountA * S / rA, amountB * S / rB).
func (k Keeper) AddLiquidity(
	ctx context.Context,
	provider sdk.AccAddress,
	assetA, assetB types.AssetID,
	amountA, amountBMax math.Int,
) (amountB, shares math.Int, err error) {
	if err := fixedpoint.Validate(amountA); err != nil {
		return math.ZeroInt(), math.ZeroInt(), errorsmod.Wrap(err, "amount a")
	}
	if amountA.IsZero() {
		return math.ZeroInt(), math.ZeroInt(), types.ErrZeroLiquidity.Wrap("amount a is zero")
	}
	if err := fixedpoint.Validate(amountBMax); err != nil {
		return math.ZeroInt(), math.ZeroInt(), errorsmod.Wrap(err, "amount b limit")
	}
	if amountBMax.IsZero() {
		return math.ZeroInt(), math.ZeroInt(), types.ErrZeroLiquidity.Wrap("amount b limit is zero")
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}

	err = sharedkeeper.RunAtomic(sdk.UnwrapSDKContext(ctx), func(ctx sdk.Context) error {
		pool, _, err := k.GetOrCreatePool(ctx, assetA, assetB)
		if err != nil {
			return err
		}

		if !pool.IsLive() {
			amountB, shares, err = firstDeposit(pool, params, assetA, amountA, amountBMax)
		} else {
			amountB, shares, err = proportionalDeposit(pool, assetA, assetB, amountA, amountBMax)
		}
		if err != nil {
			return err
		}

		account := pool.Account()
		if err := k.ledger.Transfer(ctx, provider, account, assetA, amountA); err != nil {
			return err
		}
		if err := k.ledger.Transfer(ctx, provider, account, assetB, amountB); err != nil {
			return err
		}
		if err := k.ledger.Credit(ctx, provider, pool.ShareAsset(), shares); err != nil {
			return err
		}

		canonA, canonB := amountA, amountB
		if assetA != pool.AssetA {
			canonA, canonB = amountB, amountA
		}
		if pool.ReserveA, err = fixedpoint.CheckedAdd(pool.ReserveA, canonA); err != nil {
			return err
		}
		if pool.ReserveB, err = fixedpoint.CheckedAdd(pool.ReserveB, canonB); err != nil {
			return err
		}
		if pool.TotalShares, err = fixedpoint.CheckedAdd(pool.TotalShares, shares); err != nil {
			return err
		}
		if err := k.setPool(ctx, pool); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeLiquidityAdded,
				sdk.NewAttribute(types.AttributeKeyPool, pool.Pair().String()),
				sdk.NewAttribute(types.AttributeKeyAccount, provider.String()),
				sdk.NewAttribute(types.AttributeKeyAssetA, assetA.String()),
				sdk.NewAttribute(types.AttributeKeyAssetB, assetB.String()),
				sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
				sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
				sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
			),
		)
		return nil
	})
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	return amountB, shares, nil
}

func firstDeposit(pool types.Pool, params types.Params, assetA types.AssetID, amountA, amountB math.Int) (math.Int, math.Int, error) {
	if amountA.LT(params.MinPoolLiquidity) || amountB.LT(params.MinPoolLiquidity) {
		return math.ZeroInt(), math.ZeroInt(), types.ErrInsufficientLiquidity.Wrapf(
			"initial deposit %s/%s below minimum %s", amountA, amountB, params.MinPoolLiquidity)
	}
	shares := amountA
	if assetA != pool.AssetA {
		shares = amountB
	}
	return amountB, shares, nil
}

func proportionalDeposit(pool types.Pool, assetA, assetB types.AssetID, amountA, amountBMax math.Int) (math.Int, math.Int, error) {
	reserveA, reserveB := pool.ReserveOf(assetA), pool.ReserveOf(assetB)

	amountB, err := types.CalculateLiquidityIn(reserveA, reserveB, amountA)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	if amountB.GT(amountBMax) {
		return math.ZeroInt(), math.ZeroInt(), types.ErrSlippageExceeded.Wrapf(
			"deposit requires %s of asset %d, limit %s", amountB, assetB, amountBMax)
	}

	shares, err := types.CalculateSharesMinted(reserveA, reserveB, pool.TotalShares, amountA, amountB)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	if shares.IsZero() {
		return math.ZeroInt(), math.ZeroInt(), types.ErrInsufficientTradingAmount.Wrapf("deposit of %s mints no shares", amountA)
	}
	return amountB, shares, nil
}

// RemoveLiquidity burns shares of the provider and pays out
// floor(reserve * shares / S) of both assets. Amounts are returned in the
// caller's (assetA, assetB) order.
//
// A withdrawal may drain the pool completely, but may not leave a share supply
// below MinPoolLiquidity or a live pool with an empty reserve.
func (k Keeper) RemoveLiquidity(
	ctx context.Context,
	provider sdk.AccAddress,
	assetA, assetB types.AssetID,
	shares math.Int,
) (amountA, amountB math.Int, err error) {
	if err := fixedpoint.Validate(shares); err != nil {
		return math.ZeroInt(), math.ZeroInt(), errorsmod.Wrap(err, "shares")
	}
	if shares.IsZero() {
		return math.ZeroInt(), math.ZeroInt(), types.ErrZeroLiquidity.Wrap("shares are zero")
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}

	err = sharedkeeper.RunAtomic(sdk.UnwrapSDKContext(ctx), func(ctx sdk.Context) error {
		pool, err := k.GetPool(ctx, assetA, assetB)
		if err != nil {
			return err
		}

		held := k.ledger.GetBalance(ctx, provider, pool.ShareAsset())
		if shares.GT(held) {
			return types.ErrInsufficientLiquidity.Wrapf("account holds %s shares of %s, requested %s", held, pool.Pair(), shares)
		}

		remaining, err := fixedpoint.CheckedSub(pool.TotalShares, shares)
		if err != nil {
			return types.ErrInsufficientLiquidity.Wrapf("shares %s exceed supply %s", shares, pool.TotalShares)
		}
		if remaining.IsPositive() && remaining.LT(params.MinPoolLiquidity) {
			return types.ErrInsufficientLiquidity.Wrapf(
				"withdrawal leaves %s shares, below minimum %s", remaining, params.MinPoolLiquidity)
		}

		outA, outB, err := types.CalculateLiquidityOut(pool.ReserveA, pool.ReserveB, pool.TotalShares, shares)
		if err != nil {
			return err
		}
		pool.ReserveA = pool.ReserveA.Sub(outA)
		pool.ReserveB = pool.ReserveB.Sub(outB)
		pool.TotalShares = remaining
		if pool.IsLive() && (pool.ReserveA.IsZero() || pool.ReserveB.IsZero()) {
			return types.ErrInsufficientLiquidity.Wrapf("withdrawal empties a reserve of live pool %s", pool.Pair())
		}

		if err := k.ledger.Debit(ctx, provider, pool.ShareAsset(), shares); err != nil {
			return err
		}
		account := pool.Account()
		if err := k.ledger.Transfer(ctx, account, provider, pool.AssetA, outA); err != nil {
			return err
		}
		if err := k.ledger.Transfer(ctx, account, provider, pool.AssetB, outB); err != nil {
			return err
		}
		if err := k.setPool(ctx, pool); err != nil {
			return err
		}

		amountA, amountB = outA, outB
		if assetA != pool.AssetA {
			amountA, amountB = outB, outA
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeLiquidityRemoved,
				sdk.NewAttribute(types.AttributeKeyPool, pool.Pair().String()),
				sdk.NewAttribute(types.AttributeKeyAccount, provider.String()),
				sdk.NewAttribute(types.AttributeKeyAssetA, assetA.String()),
				sdk.NewAttribute(types.AttributeKeyAssetB, assetB.String()),
				sdk.NewAttribute(types.AttributeKeyAmountA, amountA.String()),
				sdk.NewAttribute(types.AttributeKeyAmountB, amountB.String()),
				sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
			),
		)
		return nil
	})
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	return amountA, amountB, nil
}
