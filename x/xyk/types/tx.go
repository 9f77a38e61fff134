package types

import (
	"context"

	"cosmossdk.io/math"
)

// Response types

// MsgCreatePoolResponse defines the response for CreatePool
type MsgCreatePoolResponse struct {
	ShareAsset AssetID  `json:"share_asset"`
	Shares     math.Int `json:"shares"`
	AmountB    math.Int `json:"amount_b"`
}

// MsgAddLiquidityResponse defines the response for AddLiquidity
type MsgAddLiquidityResponse struct {
	AmountB math.Int `json:"amount_b"`
	Shares  math.Int `json:"shares"`
}

// MsgRemoveLiquidityResponse defines the response for RemoveLiquidity
type MsgRemoveLiquidityResponse struct {
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
}

// MsgSwapResponse defines the response for Sell, Buy and the routed trades
type MsgSwapResponse struct {
	AmountIn  math.Int `json:"amount_in"`
	AmountOut math.Int `json:"amount_out"`
	Route     Route    `json:"route,omitempty"`
}

// MsgServer defines the message server interface
type MsgServer interface {
	CreatePool(context.Context, *MsgCreatePool) (*MsgCreatePoolResponse, error)
	AddLiquidity(context.Context, *MsgAddLiquidity) (*MsgAddLiquidityResponse, error)
	RemoveLiquidity(context.Context, *MsgRemoveLiquidity) (*MsgRemoveLiquidityResponse, error)
	Sell(context.Context, *MsgSell) (*MsgSwapResponse, error)
	Buy(context.Context, *MsgBuy) (*MsgSwapResponse, error)
	RouteSell(context.Context, *MsgRouteSell) (*MsgSwapResponse, error)
	RouteBuy(context.Context, *MsgRouteBuy) (*MsgSwapResponse, error)
}
