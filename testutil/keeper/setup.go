package keeper

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	assetskeeper "github.com/hydra-chain/hydra/x/assets/keeper"
	assetstypes "github.com/hydra-chain/hydra/x/assets/types"
)

// NewTestContext mounts every key on one in-memory multistore and returns a
// context over it.
func NewTestContext(t testing.TB, keys ...storetypes.StoreKey) sdk.Context {
	t.Helper()

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	for _, key := range keys {
		stateStore.MountStoreWithDB(key, storetypes.StoreTypeIAVL, db)
	}
	require.NoError(t, stateStore.LoadLatestVersion())

	return sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())
}

// AssetsKeeper creates an assets keeper whose registry holds the native asset
func AssetsKeeper(t testing.TB) (assetskeeper.Keeper, sdk.Context) {
	k, ctx := EmptyAssetsKeeper(t)
	require.NoError(t, k.InitGenesis(ctx, *assetstypes.DefaultGenesis()))
	return k, ctx
}

// EmptyAssetsKeeper creates an assets keeper without running genesis
func EmptyAssetsKeeper(t testing.TB) (assetskeeper.Keeper, sdk.Context) {
	storeKey := storetypes.NewKVStoreKey(assetstypes.StoreKey)
	ctx := NewTestContext(t, storeKey)
	return assetskeeper.NewKeeper(assetstypes.ModuleCdc, storeKey), ctx
}

// TestingT is implemented by *testing.T and *rapid.T.
type TestingT interface {
	require.TestingT
	Helper()
}

// RegisterAssets registers test assets named after their ids.
func RegisterAssets(t TestingT, ak assetskeeper.Keeper, ctx sdk.Context, ids ...assetstypes.AssetID) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, ak.EnsureAsset(ctx, id, "T"+id.String()))
	}
}

// FundAccount credits amount of asset id to addr.
func FundAccount(t TestingT, ak assetskeeper.Keeper, ctx sdk.Context, addr sdk.AccAddress, id assetstypes.AssetID, amount int64) {
	t.Helper()
	require.NoError(t, ak.Credit(ctx, addr, id, math.NewInt(amount)))
}
