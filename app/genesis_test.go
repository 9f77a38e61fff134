package app_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/stretchr/testify/require"

	"github.com/hydra-chain/hydra/app"
	assetstypes "github.com/hydra-chain/hydra/x/assets/types"
	feepaytypes "github.com/hydra-chain/hydra/x/feepay/types"
	xyktypes "github.com/hydra-chain/hydra/x/xyk/types"
)

func TestDefaultGenesis(t *testing.T) {
	doc := app.NewDefaultGenesisDoc("")
	require.Equal(t, app.DefaultChainID, doc.ChainID)
	require.NoError(t, doc.AppState.Validate())

	assets, err := doc.AppState.Assets()
	require.NoError(t, err)
	require.Len(t, assets.Assets, 1)
	require.Equal(t, assetstypes.NativeAssetName, assets.Assets[0].Name)

	xyk, err := doc.AppState.XYK()
	require.NoError(t, err)
	require.Empty(t, xyk.Pools)
}

func TestGenesisStateMissingModulesDefault(t *testing.T) {
	gs := app.GenesisState{}
	require.NoError(t, gs.Validate())

	feepay, err := gs.Feepay()
	require.NoError(t, err)
	require.Equal(t, feepaytypes.DefaultParams().BaseFee, feepay.Params.BaseFee)
}

func TestGenesisStateValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(gs app.GenesisState)
		errMsg string
	}{
		{
			name:   "unknown module",
			mutate: func(gs app.GenesisState) { gs["staking"] = json.RawMessage(`{}`) },
			errMsg: "unknown module",
		},
		{
			name:   "malformed module genesis",
			mutate: func(gs app.GenesisState) { gs[xyktypes.ModuleName] = json.RawMessage(`{"pools": 3}`) },
			errMsg: "xyk genesis",
		},
		{
			name: "balance of unregistered asset",
			mutate: func(gs app.GenesisState) {
				gs[assetstypes.ModuleName] = mustJSON(assetstypes.GenesisState{
					Assets:   []assetstypes.Asset{{ID: native, Name: assetstypes.NativeAssetName}},
					Balances: []assetstypes.Balance{{Address: alice.String(), AssetID: dot, Amount: math.NewInt(1)}},
				})
			},
			errMsg: "assets genesis",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gs := app.NewDefaultGenesisState()
			tc.mutate(gs)
			err := gs.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestDecodeGenesisDoc(t *testing.T) {
	doc := fmt.Sprintf(`
chain_id: hydra-yaml
genesis_time: "2024-01-01T00:00:00Z"
app_state:
  assets:
    assets:
      - id: 0
        name: HDX
      - id: 1
        name: DOT
    balances:
      - address: %s
        asset_id: 1
        amount: "500"
`, alice)

	parsed, err := app.DecodeGenesisDoc([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, "hydra-yaml", parsed.ChainID)
	require.Equal(t, 2024, parsed.GenesisTime.Year())
	require.NoError(t, parsed.AppState.Validate())

	hydra, err := app.NewHydraApp(log.NewNopLogger(), dbm.NewMemDB(), true)
	require.NoError(t, err)
	require.NoError(t, hydra.InitChain(*parsed))
	deliver(t, hydra)
	require.Equal(t, math.NewInt(500), hydra.QueryBalance(alice, dot))
}

func TestDecodeGenesisDocDefaults(t *testing.T) {
	parsed, err := app.DecodeGenesisDoc([]byte(`{}`))
	require.NoError(t, err)
	require.Equal(t, app.DefaultChainID, parsed.ChainID)
	require.Contains(t, parsed.AppState, xyktypes.ModuleName)
}
