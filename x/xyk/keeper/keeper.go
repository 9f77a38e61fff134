package keeper

import (
	"context"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/hydra-chain/hydra/x/xyk/types"
)

// Keeper of the xyk store
type Keeper struct {
	cdc      *codec.LegacyAmino
	storeKey storetypes.StoreKey
	ledger   types.LedgerKeeper
	registry types.AssetRegistry
	metrics  *XYKMetrics
}

// NewKeeper creates a new xyk Keeper instance
func NewKeeper(
	cdc *codec.LegacyAmino,
	key storetypes.StoreKey,
	ledger types.LedgerKeeper,
	registry types.AssetRegistry,
) Keeper {
	return Keeper{
		cdc:      cdc,
		storeKey: key,
		ledger:   ledger,
		registry: registry,
		metrics:  NewXYKMetrics(),
	}
}

// getStore returns the KVStore for the xyk module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}
