package ante

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/require"

	assetstypes "github.com/hydra-chain/hydra/x/assets/types"
	sharedkeeper "github.com/hydra-chain/hydra/x/shared/keeper"
)

// mockMemoTx is a minimal tx carrying only a memo.
type mockMemoTx struct {
	memo string
}

func (m mockMemoTx) GetMsgs() []sharedkeeper.Msg        { return nil }
func (m mockMemoTx) GetSigner() sdk.AccAddress          { return nil }
func (m mockMemoTx) GetFeeAsset() *assetstypes.AssetID { return nil }
func (m mockMemoTx) GetMemo() string                    { return m.memo }

func TestMemoLimitDecorator(t *testing.T) {
	dec := NewMemoLimitDecorator(10)

	txExact := mockMemoTx{memo: "0123456789"}
	txOver := mockMemoTx{memo: "0123456789a"}

	ctx := sdk.Context{}
	ante := ChainDecorators(dec)

	// exact size passes
	_, err := ante(ctx, txExact, false)
	require.NoError(t, err)

	// oversize fails
	_, err = ante(ctx, txOver, false)
	require.ErrorIs(t, err, sdkerrors.ErrMemoTooLarge)
}
