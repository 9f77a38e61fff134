package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/hydra-chain/hydra/x/xyk/types"
)

// PoolByShareAsset returns the pool whose share asset is id.
func (k Keeper) PoolByShareAsset(ctx context.Context, id types.AssetID) (types.Pool, error) {
	pair, ok := types.PairFromShareAsset(id)
	if !ok {
		return types.Pool{}, types.ErrPoolNotFound.Wrapf("asset %d is not a share asset", id)
	}
	return k.GetPool(ctx, pair.AssetA, pair.AssetB)
}

// SharesOf returns the pool shares held by addr.
func (k Keeper) SharesOf(ctx context.Context, addr sdk.AccAddress, a, b types.AssetID) (math.Int, error) {
	pool, err := k.GetPool(ctx, a, b)
	if err != nil {
		return math.ZeroInt(), err
	}
	return k.ledger.GetBalance(ctx, addr, pool.ShareAsset()), nil
}
