package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/hydra-chain/hydra/x/feepay/types"
)

// InitGenesis initializes the feepay module's state from a genesis state
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid feepay genesis: %w", err)
	}
	if err := k.SetParams(ctx, genState.Params); err != nil {
		return fmt.Errorf("failed to set params: %w", err)
	}

	for _, id := range genState.Currencies {
		if err := k.AddCurrency(ctx, id); err != nil {
			return fmt.Errorf("failed to add currency %d: %w", id, err)
		}
	}
	for _, ac := range genState.AccountCurrencies {
		addr, err := sdk.AccAddressFromBech32(ac.Address)
		if err != nil {
			return fmt.Errorf("invalid account %s: %w", ac.Address, err)
		}
		if err := k.SetCurrency(ctx, addr, ac.AssetID); err != nil {
			return fmt.Errorf("failed to set currency of %s: %w", ac.Address, err)
		}
	}
	return nil
}

// ExportGenesis returns the feepay module's exported genesis
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get params: %w", err)
	}

	gen := &types.GenesisState{
		Params:            params,
		Currencies:        []types.AssetID{},
		AccountCurrencies: []types.AccountCurrency{},
	}
	k.IterateCurrencies(ctx, func(id types.AssetID) bool {
		gen.Currencies = append(gen.Currencies, id)
		return false
	})
	k.IterateAccountCurrencies(ctx, func(addr sdk.AccAddress, id types.AssetID) bool {
		if k.IsAccepted(ctx, id) {
			gen.AccountCurrencies = append(gen.AccountCurrencies, types.AccountCurrency{Address: addr.String(), AssetID: id})
		}
		return false
	})
	return gen, nil
}
