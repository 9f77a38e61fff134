package types_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/hydra-chain/hydra/x/feepay/types"
)

func TestParamsValidate(t *testing.T) {
	require.NoError(t, types.DefaultParams().Validate())

	p := types.DefaultParams()
	p.Tolerance = math.LegacyNewDec(-1)
	require.ErrorIs(t, p.Validate(), types.ErrInvalidParams)

	p = types.DefaultParams()
	p.Tolerance = math.LegacyNewDec(2)
	require.ErrorIs(t, p.Validate(), types.ErrInvalidParams)

	p = types.DefaultParams()
	p.BaseFee = math.NewInt(-5)
	require.ErrorIs(t, p.Validate(), types.ErrInvalidParams)
}

func TestFeeFor(t *testing.T) {
	p := types.DefaultParams()

	fee, err := p.FeeFor(3)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1300), fee)

	require.Equal(t, math.NewInt(1050), p.MaxAmountIn(math.NewInt(1000)))
	require.Equal(t, math.NewInt(1052), p.MaxAmountIn(math.NewInt(1001)))

	p.Tolerance = math.LegacyZeroDec()
	require.Equal(t, math.NewInt(1001), p.MaxAmountIn(math.NewInt(1001)))
}

func TestGenesisValidate(t *testing.T) {
	addr := sdk.AccAddress([]byte("alice_______________")).String()

	tests := []struct {
		name string
		gen  types.GenesisState
		err  error
	}{
		{"default", *types.DefaultGenesis(), nil},
		{
			"valid",
			types.GenesisState{
				Params:            types.DefaultParams(),
				Currencies:        []types.AssetID{1, 2},
				AccountCurrencies: []types.AccountCurrency{{Address: addr, AssetID: 2}},
			},
			nil,
		},
		{
			"reference listed",
			types.GenesisState{Params: types.DefaultParams(), Currencies: []types.AssetID{0}},
			types.ErrInvalidGenesis,
		},
		{
			"duplicate currency",
			types.GenesisState{Params: types.DefaultParams(), Currencies: []types.AssetID{1, 1}},
			types.ErrInvalidGenesis,
		},
		{
			"unaccepted account currency",
			types.GenesisState{
				Params:            types.DefaultParams(),
				Currencies:        []types.AssetID{1},
				AccountCurrencies: []types.AccountCurrency{{Address: addr, AssetID: 3}},
			},
			types.ErrInvalidGenesis,
		},
		{
			"bad address",
			types.GenesisState{
				Params:            types.DefaultParams(),
				Currencies:        []types.AssetID{1},
				AccountCurrencies: []types.AccountCurrency{{Address: "nope", AssetID: 1}},
			},
			types.ErrInvalidGenesis,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.gen.Validate()
			if tc.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestMsgValidateBasic(t *testing.T) {
	addr := sdk.AccAddress([]byte("alice_______________")).String()

	require.NoError(t, types.NewMsgAddCurrency(addr, 1).ValidateBasic())
	require.ErrorIs(t, types.NewMsgRemoveCurrency("", 1).ValidateBasic(), types.ErrInvalidAddress)
	require.ErrorIs(t, types.NewMsgSetCurrency("bad", 1).ValidateBasic(), types.ErrInvalidAddress)

	params := types.DefaultParams()
	params.Tolerance = math.LegacyNewDec(-1)
	require.ErrorIs(t, types.NewMsgUpdateParams(addr, params).ValidateBasic(), types.ErrInvalidParams)
}
