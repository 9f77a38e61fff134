package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/hydra-chain/hydra/x/feepay/types"
	sharedkeeper "github.com/hydra-chain/hydra/x/shared/keeper"
)

// NewHandler returns a handler routing feepay messages to the msg server.
func NewHandler(k Keeper) sharedkeeper.Handler {
	ms := NewMsgServerImpl(k)

	return func(ctx sdk.Context, msg sharedkeeper.Msg) (any, error) {
		switch msg := msg.(type) {
		case *types.MsgAddCurrency:
			return ms.AddCurrency(ctx, msg)
		case *types.MsgRemoveCurrency:
			return ms.RemoveCurrency(ctx, msg)
		case *types.MsgSetCurrency:
			return ms.SetCurrency(ctx, msg)
		case *types.MsgUpdateParams:
			return ms.UpdateParams(ctx, msg)
		default:
			return nil, sdkerrors.ErrUnknownRequest.Wrapf("unrecognized %s message type: %T", types.ModuleName, msg)
		}
	}
}
