package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/hydra-chain/hydra/x/assets/types"
)

// InitGenesis initializes the registry and the ledger from a genesis state
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid assets genesis: %w", err)
	}

	for _, asset := range genState.Assets {
		if err := k.RegisterAsset(ctx, asset.ID, asset.Name); err != nil {
			return fmt.Errorf("failed to register asset %d: %w", asset.ID, err)
		}
	}

	for _, b := range genState.Balances {
		addr, err := sdk.AccAddressFromBech32(b.Address)
		if err != nil {
			return fmt.Errorf("invalid balance address %s: %w", b.Address, err)
		}
		if err := k.Credit(ctx, addr, b.AssetID, b.Amount); err != nil {
			return fmt.Errorf("failed to fund %s with asset %d: %w", b.Address, b.AssetID, err)
		}
	}

	return nil
}

// ExportGenesis returns the registry and every non-zero balance
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	genesis := &types.GenesisState{}

	if err := k.IterateAssets(ctx, func(asset types.Asset) bool {
		genesis.Assets = append(genesis.Assets, asset)
		return false
	}); err != nil {
		return nil, err
	}

	if err := k.IterateBalances(ctx, func(addr sdk.AccAddress, id types.AssetID, amount math.Int) bool {
		genesis.Balances = append(genesis.Balances, types.Balance{
			Address: addr.String(),
			AssetID: id,
			Amount:  amount,
		})
		return false
	}); err != nil {
		return nil, err
	}

	return genesis, nil
}
