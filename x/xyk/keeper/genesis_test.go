package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/hydra-chain/hydra/testutil/keeper"
	assetskeeper "github.com/hydra-chain/hydra/x/assets/keeper"
	assetstypes "github.com/hydra-chain/hydra/x/assets/types"
	"github.com/hydra-chain/hydra/x/xyk/keeper"
	"github.com/hydra-chain/hydra/x/xyk/types"
)

func TestGenesisRoundTrip(t *testing.T) {
	k, ak, ctx := keepertest.XykKeeper(t)
	keepertest.SeedPool(t, k, ak, ctx, assetA, assetB, 10_000, 20_000)
	keepertest.SeedPool(t, k, ak, ctx, assetB, assetC, 5000, 5000)

	params := types.DefaultParams()
	params.MaxHops = 2
	require.NoError(t, k.SetParams(ctx, params))

	xykGen, err := k.ExportGenesis(ctx)
	require.NoError(t, err)
	require.Len(t, xykGen.Pools, 2)
	require.Equal(t, uint32(2), xykGen.Params.MaxHops)

	assetsGen, err := ak.ExportGenesis(ctx)
	require.NoError(t, err)

	assetsKey := storetypes.NewKVStoreKey(assetstypes.StoreKey)
	xykKey := storetypes.NewKVStoreKey(types.StoreKey)
	ctx2 := keepertest.NewTestContext(t, assetsKey, xykKey)
	ak2 := assetskeeper.NewKeeper(assetstypes.ModuleCdc, assetsKey)
	k2 := keeper.NewKeeper(types.ModuleCdc, xykKey, ak2, ak2)

	require.NoError(t, ak2.InitGenesis(ctx2, *assetsGen))
	require.NoError(t, k2.InitGenesis(ctx2, *xykGen))

	exported, err := k2.ExportGenesis(ctx2)
	require.NoError(t, err)
	require.Equal(t, xykGen, exported)

	_, broken := keeper.AllInvariants(k2)(ctx2)
	require.False(t, broken)

	out, err := k2.QuoteSell(ctx2, assetA, assetB, math.NewInt(100))
	require.NoError(t, err)
	expected, err := k.QuoteSell(ctx, assetA, assetB, math.NewInt(100))
	require.NoError(t, err)
	require.Equal(t, expected, out)
}

func TestInitGenesisRejectsUnknownAssets(t *testing.T) {
	k, _, ctx := keepertest.XykKeeper(t)

	pair, err := types.NewAssetPair(assetA, assetB)
	require.NoError(t, err)
	pool := types.NewPool(pair, types.DefaultParams().ExchangeFee)
	pool.ReserveA, pool.ReserveB, pool.TotalShares = math.NewInt(1000), math.NewInt(1000), math.NewInt(1000)

	gen := types.DefaultGenesis()
	gen.Pools = []types.Pool{pool}
	require.ErrorIs(t, k.InitGenesis(ctx, *gen), types.ErrUnknownAsset)
}
