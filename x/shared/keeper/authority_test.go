package keeper_test

import (
	"testing"

	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	"github.com/stretchr/testify/require"

	"github.com/hydra-chain/hydra/x/shared/keeper"
)

func TestValidateAuthority(t *testing.T) {
	const authority = "hydra10d07y265gmmuvt4z0w9aw880jnsr700jqgk3wq"

	tests := []struct {
		name     string
		expected string
		actual   string
		wantErr  bool
	}{
		{name: "valid authority match", expected: authority, actual: authority},
		{name: "authority mismatch", expected: authority, actual: "hydra1other", wantErr: true},
		{name: "empty actual authority", expected: authority, actual: "", wantErr: true},
		{name: "unset expected authority", expected: "", actual: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := keeper.ValidateAuthority(tt.expected, tt.actual)
			if tt.wantErr {
				require.ErrorIs(t, err, govtypes.ErrInvalidSigner)
				return
			}
			require.NoError(t, err)
		})
	}
}
