package keeper

import (
	"context"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/hydra-chain/hydra/x/xyk/types"
)

// GetOrCreatePool returns the pool of the unordered pair {a, b}, creating an
// empty record (and registering its share asset) when none exists yet.
func (k Keeper) GetOrCreatePool(ctx context.Context, a, b types.AssetID) (types.Pool, bool, error) {
	pair, err := k.poolablePair(ctx, a, b)
	if err != nil {
		return types.Pool{}, false, err
	}

	if pool, found, err := k.getPool(ctx, pair); err != nil || found {
		return pool, false, err
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return types.Pool{}, false, err
	}
	pool := types.NewPool(pair, params.ExchangeFee)
	if err := k.registry.EnsureAsset(ctx, pair.ShareAsset(), pair.ShareAssetName()); err != nil {
		return types.Pool{}, false, fmt.Errorf("register share asset of %s: %w", pair, err)
	}
	if err := k.setPool(ctx, pool); err != nil {
		return types.Pool{}, false, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePoolCreated,
			sdk.NewAttribute(types.AttributeKeyPool, pair.String()),
			sdk.NewAttribute(types.AttributeKeyAssetA, pair.AssetA.String()),
			sdk.NewAttribute(types.AttributeKeyAssetB, pair.AssetB.String()),
			sdk.NewAttribute(types.AttributeKeyShareAsset, pair.ShareAsset().String()),
			sdk.NewAttribute(types.AttributeKeyAccount, pair.Account().String()),
		),
	)
	return pool, true, nil
}

// GetPool returns the pool of the unordered pair {a, b}.
func (k Keeper) GetPool(ctx context.Context, a, b types.AssetID) (types.Pool, error) {
	pair, err := types.NewAssetPair(a, b)
	if err != nil {
		return types.Pool{}, err
	}
	pool, found, err := k.getPool(ctx, pair)
	if err != nil {
		return types.Pool{}, err
	}
	if !found {
		return types.Pool{}, types.ErrPoolNotFound.Wrapf("pool %s", pair)
	}
	return pool, nil
}

// HasPool reports whether a pool record exists for {a, b}.
func (k Keeper) HasPool(ctx context.Context, a, b types.AssetID) bool {
	pair, err := types.NewAssetPair(a, b)
	if err != nil {
		return false
	}
	return k.getStore(ctx).Has(types.PoolKey(pair))
}

// getLivePool returns the pool of {a, b} if it can be traded. A pool whose
// shares were all withdrawn is reported as missing.
func (k Keeper) getLivePool(ctx context.Context, a, b types.AssetID) (types.Pool, error) {
	pool, err := k.GetPool(ctx, a, b)
	if err != nil {
		return types.Pool{}, err
	}
	if !pool.IsLive() {
		return types.Pool{}, types.ErrPoolNotFound.Wrapf("pool %s has no liquidity", pool.Pair())
	}
	return pool, nil
}

func (k Keeper) getPool(ctx context.Context, pair types.AssetPair) (types.Pool, bool, error) {
	bz := k.getStore(ctx).Get(types.PoolKey(pair))
	if bz == nil {
		return types.Pool{}, false, nil
	}
	var pool types.Pool
	if err := k.cdc.Unmarshal(bz, &pool); err != nil {
		return types.Pool{}, false, fmt.Errorf("getPool: unmarshal %s: %w", pair, err)
	}
	return pool, true, nil
}

func (k Keeper) setPool(ctx context.Context, pool types.Pool) error {
	bz, err := k.cdc.Marshal(pool)
	if err != nil {
		return fmt.Errorf("setPool: marshal %s: %w", pool.Pair(), err)
	}
	k.getStore(ctx).Set(types.PoolKey(pool.Pair()), bz)
	return nil
}

// IteratePools iterates over all pools in canonical pair order.
func (k Keeper) IteratePools(ctx context.Context, cb func(pool types.Pool) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.PoolKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pool types.Pool
		if err := k.cdc.Unmarshal(iterator.Value(), &pool); err != nil {
			return fmt.Errorf("IteratePools: unmarshal: %w", err)
		}
		if cb(pool) {
			break
		}
	}
	return nil
}

// GetAllPools returns every pool record, including drained ones.
func (k Keeper) GetAllPools(ctx context.Context) ([]types.Pool, error) {
	var pools []types.Pool
	err := k.IteratePools(ctx, func(pool types.Pool) bool {
		pools = append(pools, pool)
		return false
	})
	return pools, err
}

// poolablePair canonicalizes {a, b} and checks both assets can be pooled.
func (k Keeper) poolablePair(ctx context.Context, a, b types.AssetID) (types.AssetPair, error) {
	pair, err := types.NewAssetPair(a, b)
	if err != nil {
		return types.AssetPair{}, err
	}
	if err := pair.Validate(); err != nil {
		return types.AssetPair{}, err
	}
	for _, id := range []types.AssetID{pair.AssetA, pair.AssetB} {
		if !k.registry.Exists(ctx, id) {
			return types.AssetPair{}, types.ErrUnknownAsset.Wrapf("asset %d", id)
		}
	}
	return pair, nil
}
