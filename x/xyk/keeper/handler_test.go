package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/stretchr/testify/require"

	keepertest "github.com/hydra-chain/hydra/testutil/keeper"
	"github.com/hydra-chain/hydra/x/xyk/keeper"
	"github.com/hydra-chain/hydra/x/xyk/types"
)

func TestHandlerLifecycle(t *testing.T) {
	k, ak, ctx := keepertest.XykKeeper(t)
	keepertest.RegisterAssets(t, ak, ctx, assetA, assetB)
	keepertest.FundAccount(t, ak, ctx, alice, assetA, 5000)
	keepertest.FundAccount(t, ak, ctx, alice, assetB, 5000)
	handler := keeper.NewHandler(k)

	res, err := handler(ctx, types.NewMsgCreatePool(alice.String(), assetA, assetB, math.NewInt(2000), math.LegacyOneDec()))
	require.NoError(t, err)
	created := res.(*types.MsgCreatePoolResponse)
	require.Equal(t, math.NewInt(2000), created.Shares)
	require.Equal(t, math.NewInt(2000), created.AmountB)

	pair, err := types.NewAssetPair(assetA, assetB)
	require.NoError(t, err)
	require.Equal(t, pair.ShareAsset(), created.ShareAsset)

	res, err = handler(ctx, types.NewMsgAddLiquidity(alice.String(), assetA, assetB, math.NewInt(1000), math.NewInt(1000)))
	require.NoError(t, err)
	added := res.(*types.MsgAddLiquidityResponse)
	require.Equal(t, math.NewInt(1000), added.AmountB)
	require.Equal(t, math.NewInt(1000), added.Shares)

	res, err = handler(ctx, types.NewMsgSell(alice.String(), assetA, assetB, math.NewInt(100), math.NewInt(1), false))
	require.NoError(t, err)
	sold := res.(*types.MsgSwapResponse)
	require.Equal(t, math.NewInt(100), sold.AmountIn)
	require.True(t, sold.AmountOut.IsPositive())

	res, err = handler(ctx, types.NewMsgBuy(alice.String(), assetA, assetB, math.NewInt(50), math.NewInt(100), false))
	require.NoError(t, err)
	bought := res.(*types.MsgSwapResponse)
	require.Equal(t, math.NewInt(50), bought.AmountOut)

	res, err = handler(ctx, types.NewMsgRouteSell(alice.String(), assetB, assetA, math.NewInt(100), math.OneInt(), nil))
	require.NoError(t, err)
	routed := res.(*types.MsgSwapResponse)
	require.Equal(t, types.Route{assetB, assetA}, routed.Route)

	res, err = handler(ctx, types.NewMsgRouteBuy(alice.String(), assetA, assetB, math.NewInt(10), math.NewInt(100), types.Route{assetA, assetB}))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(10), res.(*types.MsgSwapResponse).AmountOut)

	res, err = handler(ctx, types.NewMsgRemoveLiquidity(alice.String(), assetA, assetB, math.NewInt(3000)))
	require.NoError(t, err)
	removed := res.(*types.MsgRemoveLiquidityResponse)
	require.True(t, removed.AmountA.IsPositive())
	require.True(t, removed.AmountB.IsPositive())

	_, broken := keeper.AllInvariants(k)(ctx)
	require.False(t, broken)
}

func TestHandlerRejects(t *testing.T) {
	k, _, ctx := keepertest.XykKeeper(t)
	handler := keeper.NewHandler(k)

	_, err := handler(ctx, types.NewMsgSell("not-an-address", assetA, assetB, math.NewInt(100), math.ZeroInt(), false))
	require.ErrorIs(t, err, types.ErrInvalidAddress)

	_, err = handler(ctx, types.NewMsgSell(alice.String(), assetA, assetB, math.NewInt(100), math.ZeroInt(), false))
	require.ErrorIs(t, err, types.ErrUnknownAsset)

	_, err = handler(ctx, fakeMsg{})
	require.ErrorIs(t, err, sdkerrors.ErrUnknownRequest)
}

type fakeMsg struct{ types.MsgSell }
