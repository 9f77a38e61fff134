package keeper

import (
	"testing"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	assetskeeper "github.com/hydra-chain/hydra/x/assets/keeper"
	assetstypes "github.com/hydra-chain/hydra/x/assets/types"
	"github.com/hydra-chain/hydra/x/xyk/keeper"
	"github.com/hydra-chain/hydra/x/xyk/types"
)

// LiquidityProvider seeds pools created through SeedPool.
var LiquidityProvider = sdk.AccAddress([]byte("liquidity_provider__"))

// XykKeeper creates an xyk keeper backed by a real assets keeper on the same
// multistore. Genesis of both modules is initialized with defaults.
func XykKeeper(t testing.TB) (keeper.Keeper, assetskeeper.Keeper, sdk.Context) {
	assetsKey := storetypes.NewKVStoreKey(assetstypes.StoreKey)
	xykKey := storetypes.NewKVStoreKey(types.StoreKey)
	ctx := NewTestContext(t, assetsKey, xykKey)

	ak := assetskeeper.NewKeeper(assetstypes.ModuleCdc, assetsKey)
	require.NoError(t, ak.InitGenesis(ctx, *assetstypes.DefaultGenesis()))

	k := keeper.NewKeeper(types.ModuleCdc, xykKey, ak, ak)
	require.NoError(t, k.InitGenesis(ctx, *types.DefaultGenesis()))

	return k, ak, ctx
}

// SeedPool registers both assets, funds LiquidityProvider and deposits
// amountA/amountB as the first liquidity of the pool.
func SeedPool(
	t TestingT,
	k keeper.Keeper,
	ak assetskeeper.Keeper,
	ctx sdk.Context,
	assetA, assetB types.AssetID,
	amountA, amountB int64,
) types.Pool {
	t.Helper()

	RegisterAssets(t, ak, ctx, assetA, assetB)
	FundAccount(t, ak, ctx, LiquidityProvider, assetA, amountA)
	FundAccount(t, ak, ctx, LiquidityProvider, assetB, amountB)

	_, _, err := k.AddLiquidity(ctx, LiquidityProvider, assetA, assetB, math.NewInt(amountA), math.NewInt(amountB))
	require.NoError(t, err)

	pool, err := k.GetPool(ctx, assetA, assetB)
	require.NoError(t, err)
	return pool
}
