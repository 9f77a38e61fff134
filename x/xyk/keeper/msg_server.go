package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/hydra-chain/hydra/x/xyk/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the xyk MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// CreatePool handles explicit pool creation with an initial price
func (ms msgServer) CreatePool(goCtx context.Context, msg *types.MsgCreatePool) (*types.MsgCreatePoolResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("CreatePool: validate: %w", err)
	}
	creator, err := sdk.AccAddressFromBech32(msg.Creator)
	if err != nil {
		return nil, fmt.Errorf("CreatePool: invalid creator address: %w", err)
	}

	shares, amountB, err := ms.Keeper.CreatePool(goCtx, creator, msg.AssetA, msg.AssetB, msg.Amount, msg.InitialPrice)
	if err != nil {
		return nil, fmt.Errorf("CreatePool: %w", err)
	}

	pair, _ := types.NewAssetPair(msg.AssetA, msg.AssetB)
	return &types.MsgCreatePoolResponse{
		ShareAsset: pair.ShareAsset(),
		Shares:     shares,
		AmountB:    amountB,
	}, nil
}

// AddLiquidity handles deposits, creating the pool on first deposit
func (ms msgServer) AddLiquidity(goCtx context.Context, msg *types.MsgAddLiquidity) (*types.MsgAddLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("AddLiquidity: validate: %w", err)
	}
	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		return nil, fmt.Errorf("AddLiquidity: invalid provider address: %w", err)
	}

	amountB, shares, err := ms.Keeper.AddLiquidity(goCtx, provider, msg.AssetA, msg.AssetB, msg.AmountA, msg.AmountBMaxLimit)
	if err != nil {
		return nil, fmt.Errorf("AddLiquidity: %w", err)
	}
	return &types.MsgAddLiquidityResponse{AmountB: amountB, Shares: shares}, nil
}

// RemoveLiquidity handles withdrawals
func (ms msgServer) RemoveLiquidity(goCtx context.Context, msg *types.MsgRemoveLiquidity) (*types.MsgRemoveLiquidityResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: validate: %w", err)
	}
	provider, err := sdk.AccAddressFromBech32(msg.Provider)
	if err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: invalid provider address: %w", err)
	}

	amountA, amountB, err := ms.Keeper.RemoveLiquidity(goCtx, provider, msg.AssetA, msg.AssetB, msg.Shares)
	if err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: %w", err)
	}
	return &types.MsgRemoveLiquidityResponse{AmountA: amountA, AmountB: amountB}, nil
}

// Sell handles exact-in trades against one pool
func (ms msgServer) Sell(goCtx context.Context, msg *types.MsgSell) (*types.MsgSwapResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Sell: validate: %w", err)
	}
	res, err := ms.Keeper.Swap(goCtx, msg.Intent())
	if err != nil {
		return nil, fmt.Errorf("Sell: %w", err)
	}
	return &types.MsgSwapResponse{AmountIn: res.AmountIn, AmountOut: res.AmountOut}, nil
}

// Buy handles exact-out trades against one pool
func (ms msgServer) Buy(goCtx context.Context, msg *types.MsgBuy) (*types.MsgSwapResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Buy: validate: %w", err)
	}
	res, err := ms.Keeper.Swap(goCtx, msg.Intent())
	if err != nil {
		return nil, fmt.Errorf("Buy: %w", err)
	}
	return &types.MsgSwapResponse{AmountIn: res.AmountIn, AmountOut: res.AmountOut}, nil
}

// RouteSell handles exact-in trades across up to MaxHops pools
func (ms msgServer) RouteSell(goCtx context.Context, msg *types.MsgRouteSell) (*types.MsgSwapResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("RouteSell: validate: %w", err)
	}
	trader, err := sdk.AccAddressFromBech32(msg.Trader)
	if err != nil {
		return nil, fmt.Errorf("RouteSell: invalid trader address: %w", err)
	}

	q, err := ms.Keeper.RouteSell(goCtx, trader, trader, msg.AssetIn, msg.AssetOut, msg.AmountIn, msg.MinAmountOut, msg.Path)
	if err != nil {
		return nil, fmt.Errorf("RouteSell: %w", err)
	}
	return &types.MsgSwapResponse{AmountIn: q.AmountIn(), AmountOut: q.AmountOut(), Route: q.Route}, nil
}

// RouteBuy handles exact-out trades across up to MaxHops pools
func (ms msgServer) RouteBuy(goCtx context.Context, msg *types.MsgRouteBuy) (*types.MsgSwapResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("RouteBuy: validate: %w", err)
	}
	trader, err := sdk.AccAddressFromBech32(msg.Trader)
	if err != nil {
		return nil, fmt.Errorf("RouteBuy: invalid trader address: %w", err)
	}

	q, err := ms.Keeper.RouteBuy(goCtx, trader, trader, msg.AssetIn, msg.AssetOut, msg.AmountOut, msg.MaxAmountIn, msg.Path)
	if err != nil {
		return nil, fmt.Errorf("RouteBuy: %w", err)
	}
	return &types.MsgSwapResponse{AmountIn: q.AmountIn(), AmountOut: q.AmountOut(), Route: q.Route}, nil
}
