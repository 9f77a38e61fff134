package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	sharedkeeper "github.com/hydra-chain/hydra/x/shared/keeper"
	"github.com/hydra-chain/hydra/x/xyk/types"
)

// NewHandler returns a handler routing xyk messages to the msg server.
func NewHandler(k Keeper) sharedkeeper.Handler {
	ms := NewMsgServerImpl(k)

	return func(ctx sdk.Context, msg sharedkeeper.Msg) (any, error) {
		switch msg := msg.(type) {
		case *types.MsgCreatePool:
			return ms.CreatePool(ctx, msg)
		case *types.MsgAddLiquidity:
			return ms.AddLiquidity(ctx, msg)
		case *types.MsgRemoveLiquidity:
			return ms.RemoveLiquidity(ctx, msg)
		case *types.MsgSell:
			return ms.Sell(ctx, msg)
		case *types.MsgBuy:
			return ms.Buy(ctx, msg)
		case *types.MsgRouteSell:
			return ms.RouteSell(ctx, msg)
		case *types.MsgRouteBuy:
			return ms.RouteBuy(ctx, msg)
		default:
			return nil, sdkerrors.ErrUnknownRequest.Wrapf("unrecognized %s message type: %T", types.ModuleName, msg)
		}
	}
}
