package keeper

import (
	"testing"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	"github.com/stretchr/testify/require"

	assetskeeper "github.com/hydra-chain/hydra/x/assets/keeper"
	assetstypes "github.com/hydra-chain/hydra/x/assets/types"
	"github.com/hydra-chain/hydra/x/feepay/keeper"
	"github.com/hydra-chain/hydra/x/feepay/types"
	xykkeeper "github.com/hydra-chain/hydra/x/xyk/keeper"
	xyktypes "github.com/hydra-chain/hydra/x/xyk/types"
)

// FeepayAuthority is the authority of keepers built by FeepayKeeper.
var FeepayAuthority = authtypes.NewModuleAddress(govtypes.ModuleName).String()

// FeepayKeeper creates a feepay keeper routing through a real xyk keeper, all
// on one multistore.
func FeepayKeeper(t testing.TB) (keeper.Keeper, xykkeeper.Keeper, assetskeeper.Keeper, sdk.Context) {
	assetsKey := storetypes.NewKVStoreKey(assetstypes.StoreKey)
	xykKey := storetypes.NewKVStoreKey(xyktypes.StoreKey)
	feepayKey := storetypes.NewKVStoreKey(types.StoreKey)
	ctx := NewTestContext(t, assetsKey, xykKey, feepayKey)

	ak := assetskeeper.NewKeeper(assetstypes.ModuleCdc, assetsKey)
	require.NoError(t, ak.InitGenesis(ctx, *assetstypes.DefaultGenesis()))

	xk := xykkeeper.NewKeeper(xyktypes.ModuleCdc, xykKey, ak, ak)
	require.NoError(t, xk.InitGenesis(ctx, *xyktypes.DefaultGenesis()))

	k := keeper.NewKeeper(types.ModuleCdc, feepayKey, ak, ak, xk, FeepayAuthority)
	require.NoError(t, k.InitGenesis(ctx, *types.DefaultGenesis()))

	return k, xk, ak, ctx
}
