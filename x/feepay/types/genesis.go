package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// AccountCurrency records the fee currency chosen by an account.
type AccountCurrency struct {
	Address string  `json:"address"`
	AssetID AssetID `json:"asset_id"`
}

// GenesisState defines the feepay module's genesis state
type GenesisState struct {
	Params            Params            `json:"params"`
	Currencies        []AssetID         `json:"currencies"`
	AccountCurrencies []AccountCurrency `json:"account_currencies"`
}

// DefaultGenesis returns default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:            DefaultParams(),
		Currencies:        []AssetID{},
		AccountCurrencies: []AccountCurrency{},
	}
}

// Validate performs basic genesis state validation
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}

	accepted := make(map[AssetID]struct{}, len(gs.Currencies))
	for _, id := range gs.Currencies {
		if id == gs.Params.ReferenceAsset {
			return ErrInvalidGenesis.Wrapf("reference asset %d listed as currency", id)
		}
		if _, dup := accepted[id]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate currency %d", id)
		}
		accepted[id] = struct{}{}
	}

	seen := make(map[string]struct{}, len(gs.AccountCurrencies))
	for _, ac := range gs.AccountCurrencies {
		if _, err := sdk.AccAddressFromBech32(ac.Address); err != nil {
			return ErrInvalidGenesis.Wrapf("invalid address %q: %v", ac.Address, err)
		}
		if _, dup := seen[ac.Address]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate account %s", ac.Address)
		}
		seen[ac.Address] = struct{}{}
		if _, ok := accepted[ac.AssetID]; !ok {
			return ErrInvalidGenesis.Wrapf("account %s uses unaccepted currency %d", ac.Address, ac.AssetID)
		}
	}
	return nil
}
