package keeper

import (
	"context"
	"fmt"

	"github.com/hydra-chain/hydra/x/xyk/types"
)

// InitGenesis initializes the xyk module's state from a genesis state. The
// ledger genesis must already hold the reserves and share balances.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid xyk genesis: %w", err)
	}

	if err := k.SetParams(ctx, genState.Params); err != nil {
		return fmt.Errorf("failed to set params: %w", err)
	}

	for _, pool := range genState.Pools {
		pair := pool.Pair()
		if _, err := k.poolablePair(ctx, pair.AssetA, pair.AssetB); err != nil {
			return fmt.Errorf("invalid pool %s: %w", pair, err)
		}
		if err := k.registry.EnsureAsset(ctx, pair.ShareAsset(), pair.ShareAssetName()); err != nil {
			return fmt.Errorf("failed to register share asset of %s: %w", pair, err)
		}
		if err := k.setPool(ctx, pool); err != nil {
			return fmt.Errorf("failed to set pool %s: %w", pair, err)
		}
	}

	return nil
}

// ExportGenesis returns the xyk module's exported genesis
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get params: %w", err)
	}

	pools, err := k.GetAllPools(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export pools: %w", err)
	}
	if pools == nil {
		pools = []types.Pool{}
	}

	return &types.GenesisState{
		Params: params,
		Pools:  pools,
	}, nil
}
