package ante_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/require"

	"github.com/hydra-chain/hydra/app/ante"
	keepertest "github.com/hydra-chain/hydra/testutil/keeper"
	assetstypes "github.com/hydra-chain/hydra/x/assets/types"
	sharedkeeper "github.com/hydra-chain/hydra/x/shared/keeper"
	xyktypes "github.com/hydra-chain/hydra/x/xyk/types"
)

var alice = sdk.AccAddress([]byte("alice_______________"))

type mockTx struct {
	signer   sdk.AccAddress
	msgs     []sharedkeeper.Msg
	feeAsset *assetstypes.AssetID
	memo     string
}

func (m mockTx) GetMsgs() []sharedkeeper.Msg        { return m.msgs }
func (m mockTx) GetSigner() sdk.AccAddress          { return m.signer }
func (m mockTx) GetFeeAsset() *assetstypes.AssetID { return m.feeAsset }
func (m mockTx) GetMemo() string                    { return m.memo }

func sellMsgs(n int) []sharedkeeper.Msg {
	msgs := make([]sharedkeeper.Msg, n)
	for i := range msgs {
		msgs[i] = xyktypes.NewMsgSell(alice.String(), 1, 0, math.NewInt(10), math.ZeroInt(), false)
	}
	return msgs
}

// recordingDecorator appends its name to a shared log.
type recordingDecorator struct {
	name string
	log  *[]string
}

func (d recordingDecorator) AnteHandle(ctx sdk.Context, tx ante.Tx, simulate bool, next ante.AnteHandler) (sdk.Context, error) {
	*d.log = append(*d.log, d.name)
	return next(ctx, tx, simulate)
}

func TestNewAnteHandler_MissingFeeKeeper(t *testing.T) {
	handler, err := ante.NewAnteHandler(ante.HandlerOptions{})
	require.Error(t, err)
	require.Nil(t, handler)
	require.Contains(t, err.Error(), "fee keeper is required")
}

func TestChainDecoratorsOrder(t *testing.T) {
	var calls []string
	handler := ante.ChainDecorators(
		recordingDecorator{name: "first", log: &calls},
		recordingDecorator{name: "second", log: &calls},
		recordingDecorator{name: "third", log: &calls},
	)

	_, err := handler(sdk.Context{}, mockTx{}, false)
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second", "third"}, calls)
}

func TestValidateTxDecorator(t *testing.T) {
	handler := ante.ChainDecorators(ante.NewValidateTxDecorator(2))

	tests := []struct {
		name string
		tx   mockTx
		err  error
	}{
		{"valid", mockTx{signer: alice, msgs: sellMsgs(2)}, nil},
		{"no signer", mockTx{msgs: sellMsgs(1)}, sdkerrors.ErrNoSignatures},
		{"no messages", mockTx{signer: alice}, sdkerrors.ErrInvalidRequest},
		{"too many messages", mockTx{signer: alice, msgs: sellMsgs(3)}, sdkerrors.ErrInvalidRequest},
		{"nil message", mockTx{signer: alice, msgs: []sharedkeeper.Msg{nil}}, sdkerrors.ErrInvalidRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := handler(sdk.Context{}, tc.tx, false)
			if tc.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestFeeDecoratorCharges(t *testing.T) {
	fk, _, ak, ctx := keepertest.FeepayKeeper(t)
	keepertest.FundAccount(t, ak, ctx, alice, assetstypes.NativeAssetID, 5000)

	handler, err := ante.NewAnteHandler(ante.HandlerOptions{FeeKeeper: fk})
	require.NoError(t, err)

	_, err = handler(ctx, mockTx{signer: alice, msgs: sellMsgs(2)}, false)
	require.NoError(t, err)

	// 1000 base + 2 * 100 per message
	require.Equal(t, math.NewInt(3800), ak.GetBalance(ctx, alice, assetstypes.NativeAssetID))
	require.Equal(t, math.NewInt(1200), ak.GetBalance(ctx, fk.FeeCollector(), assetstypes.NativeAssetID))
}

func TestFeeDecoratorRejectsUnpaidFee(t *testing.T) {
	fk, _, ak, ctx := keepertest.FeepayKeeper(t)
	keepertest.FundAccount(t, ak, ctx, alice, assetstypes.NativeAssetID, 500)

	var calls []string
	handler := ante.ChainDecorators(
		ante.NewFeeDecorator(fk),
		recordingDecorator{name: "after", log: &calls},
	)
	_, err := handler(ctx, mockTx{signer: alice, msgs: sellMsgs(1)}, false)
	require.ErrorIs(t, err, assetstypes.ErrInsufficientBalance)
	require.Empty(t, calls)

	require.Equal(t, math.NewInt(500), ak.GetBalance(ctx, alice, assetstypes.NativeAssetID))
	require.True(t, ak.GetBalance(ctx, fk.FeeCollector(), assetstypes.NativeAssetID).IsZero())
}

func TestAnteHandlerChecksBeforeFee(t *testing.T) {
	fk, _, ak, ctx := keepertest.FeepayKeeper(t)
	keepertest.FundAccount(t, ak, ctx, alice, assetstypes.NativeAssetID, 5000)

	handler, err := ante.NewAnteHandler(ante.HandlerOptions{FeeKeeper: fk, MaxMemoBytes: 4})
	require.NoError(t, err)

	_, err = handler(ctx, mockTx{signer: alice, msgs: sellMsgs(1), memo: "too long"}, false)
	require.ErrorIs(t, err, sdkerrors.ErrMemoTooLarge)
	require.Equal(t, math.NewInt(5000), ak.GetBalance(ctx, alice, assetstypes.NativeAssetID))
}
