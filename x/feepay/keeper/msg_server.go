package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/hydra-chain/hydra/x/feepay/types"
	sharedkeeper "github.com/hydra-chain/hydra/x/shared/keeper"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the feepay MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// AddCurrency handles governance additions to the accepted currencies
func (ms msgServer) AddCurrency(goCtx context.Context, msg *types.MsgAddCurrency) (*types.MsgAddCurrencyResponse, error) {
	if err := sharedkeeper.ValidateAuthority(ms.authority, msg.Authority); err != nil {
		return nil, err
	}
	if err := ms.Keeper.AddCurrency(goCtx, msg.AssetID); err != nil {
		return nil, fmt.Errorf("AddCurrency: %w", err)
	}
	return &types.MsgAddCurrencyResponse{}, nil
}

// RemoveCurrency handles governance removals from the accepted currencies
func (ms msgServer) RemoveCurrency(goCtx context.Context, msg *types.MsgRemoveCurrency) (*types.MsgRemoveCurrencyResponse, error) {
	if err := sharedkeeper.ValidateAuthority(ms.authority, msg.Authority); err != nil {
		return nil, err
	}
	if err := ms.Keeper.RemoveCurrency(goCtx, msg.AssetID); err != nil {
		return nil, fmt.Errorf("RemoveCurrency: %w", err)
	}
	return &types.MsgRemoveCurrencyResponse{}, nil
}

// SetCurrency records the fee currency of the sender
func (ms msgServer) SetCurrency(goCtx context.Context, msg *types.MsgSetCurrency) (*types.MsgSetCurrencyResponse, error) {
	account, err := sdk.AccAddressFromBech32(msg.Account)
	if err != nil {
		return nil, fmt.Errorf("SetCurrency: invalid account address: %w", err)
	}
	if err := ms.Keeper.SetCurrency(goCtx, account, msg.AssetID); err != nil {
		return nil, fmt.Errorf("SetCurrency: %w", err)
	}
	return &types.MsgSetCurrencyResponse{}, nil
}

// UpdateParams handles governance parameter updates
func (ms msgServer) UpdateParams(goCtx context.Context, msg *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
	if err := sharedkeeper.ValidateAuthority(ms.authority, msg.Authority); err != nil {
		return nil, err
	}
	if err := ms.SetParams(goCtx, msg.Params); err != nil {
		return nil, fmt.Errorf("UpdateParams: %w", err)
	}
	return &types.MsgUpdateParamsResponse{}, nil
}
