package keeper

import (
	"context"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/hydra-chain/hydra/x/feepay/types"
)

// Keeper of the feepay store
type Keeper struct {
	cdc       *codec.LegacyAmino
	storeKey  storetypes.StoreKey
	ledger    types.LedgerKeeper
	registry  types.AssetRegistry
	router    types.Router
	authority string
	metrics   *FeepayMetrics
}

// NewKeeper creates a new feepay Keeper instance
func NewKeeper(
	cdc *codec.LegacyAmino,
	key storetypes.StoreKey,
	ledger types.LedgerKeeper,
	registry types.AssetRegistry,
	router types.Router,
	authority string,
) Keeper {
	return Keeper{
		cdc:       cdc,
		storeKey:  key,
		ledger:    ledger,
		registry:  registry,
		router:    router,
		authority: authority,
		metrics:   NewFeepayMetrics(),
	}
}

// GetAuthority returns the address allowed to manage fee currencies
func (k Keeper) GetAuthority() string {
	return k.authority
}

// FeeCollector returns the account fees are paid into
func (k Keeper) FeeCollector() sdk.AccAddress {
	return authtypes.NewModuleAddress(types.FeeCollectorName)
}

// getStore returns the KVStore for the feepay module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}
