package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/hydra-chain/hydra/pkg/fixedpoint"
)

// Balance is a genesis balance entry.
type Balance struct {
	Address string   `json:"address"`
	AssetID AssetID  `json:"asset_id"`
	Amount  math.Int `json:"amount"`
}

// GenesisState defines the assets module's genesis state.
type GenesisState struct {
	Assets   []Asset   `json:"assets"`
	Balances []Balance `json:"balances"`
}

// DefaultGenesis returns a registry holding only the native asset.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Assets: []Asset{{ID: NativeAssetID, Name: NativeAssetName}},
	}
}

const (
	// NativeAssetID is the id of the chain's native asset.
	NativeAssetID AssetID = 0
	// NativeAssetName is the registry name of the native asset.
	NativeAssetName = "HDX"
)

// Validate performs basic genesis state validation.
func (gs GenesisState) Validate() error {
	seen := make(map[AssetID]struct{}, len(gs.Assets))
	for _, a := range gs.Assets {
		if err := a.Validate(); err != nil {
			return err
		}
		if _, dup := seen[a.ID]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate asset id %d", a.ID)
		}
		seen[a.ID] = struct{}{}
	}

	for i, b := range gs.Balances {
		if _, err := sdk.AccAddressFromBech32(b.Address); err != nil {
			return ErrInvalidGenesis.Wrapf("balance %d: invalid address %q: %v", i, b.Address, err)
		}
		if _, ok := seen[b.AssetID]; !ok {
			return ErrInvalidGenesis.Wrapf("balance %d: asset %d not registered", i, b.AssetID)
		}
		if err := fixedpoint.Validate(b.Amount); err != nil {
			return ErrInvalidGenesis.Wrapf("balance %d: %v", i, err)
		}
	}
	return nil
}
