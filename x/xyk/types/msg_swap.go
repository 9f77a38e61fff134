package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgSell sells exactly Amount of AssetIn for at least MinBought of AssetOut.
type MsgSell struct {
	Trader    string   `json:"trader"`
	AssetIn   AssetID  `json:"asset_in"`
	AssetOut  AssetID  `json:"asset_out"`
	Amount    math.Int `json:"amount"`
	MinBought math.Int `json:"min_bought"`
	Discount  bool     `json:"discount"`
}

// NewMsgSell creates a new MsgSell instance
func NewMsgSell(trader string, assetIn, assetOut AssetID, amount, minBought math.Int, discount bool) *MsgSell {
	return &MsgSell{
		Trader:    trader,
		AssetIn:   assetIn,
		AssetOut:  assetOut,
		Amount:    amount,
		MinBought: minBought,
		Discount:  discount,
	}
}

// Route implements the Msg interface
func (msg MsgSell) Route() string { return RouterKey }

// Type implements the Msg interface
func (msg MsgSell) Type() string { return TypeMsgSell }

// GetSigners implements the Msg interface
func (msg MsgSell) GetSigners() []sdk.AccAddress { return mustSigner(msg.Trader) }

// ValidateBasic implements the Msg interface
func (msg MsgSell) ValidateBasic() error {
	if err := validateAccount(msg.Trader, "trader"); err != nil {
		return err
	}
	if err := validateTradePair(msg.AssetIn, msg.AssetOut); err != nil {
		return err
	}
	if err := validatePositive(msg.Amount, "amount"); err != nil {
		return err
	}
	return validateLimit(msg.MinBought, "min bought")
}

// Intent converts the message into a single-pool swap intent.
func (msg MsgSell) Intent() SwapIntent {
	return SwapIntent{
		Trader:    mustSigner(msg.Trader)[0],
		AssetIn:   msg.AssetIn,
		AssetOut:  msg.AssetOut,
		Amount:    msg.Amount,
		Direction: DirectionSell,
		Limit:     msg.MinBought,
		Discount:  msg.Discount,
	}
}

// MsgBuy buys exactly Amount of AssetOut for at most MaxSold of AssetIn.
type MsgBuy struct {
	Trader   string   `json:"trader"`
	AssetOut AssetID  `json:"asset_out"`
	AssetIn  AssetID  `json:"asset_in"`
	Amount   math.Int `json:"amount"`
	MaxSold  math.Int `json:"max_sold"`
	Discount bool     `json:"discount"`
}

// NewMsgBuy creates a new MsgBuy instance
func NewMsgBuy(trader string, assetOut, assetIn AssetID, amount, maxSold math.Int, discount bool) *MsgBuy {
	return &MsgBuy{
		Trader:   trader,
		AssetOut: assetOut,
		AssetIn:  assetIn,
		Amount:   amount,
		MaxSold:  maxSold,
		Discount: discount,
	}
}

// Route implements the Msg interface
func (msg MsgBuy) Route() string { return RouterKey }

// Type implements the Msg interface
func (msg MsgBuy) Type() string { return TypeMsgBuy }

// GetSigners implements the Msg interface
func (msg MsgBuy) GetSigners() []sdk.AccAddress { return mustSigner(msg.Trader) }

// ValidateBasic implements the Msg interface
func (msg MsgBuy) ValidateBasic() error {
	if err := validateAccount(msg.Trader, "trader"); err != nil {
		return err
	}
	if err := validateTradePair(msg.AssetIn, msg.AssetOut); err != nil {
		return err
	}
	if err := validatePositive(msg.Amount, "amount"); err != nil {
		return err
	}
	return validateLimit(msg.MaxSold, "max sold")
}

// Intent converts the message into a single-pool swap intent.
func (msg MsgBuy) Intent() SwapIntent {
	return SwapIntent{
		Trader:    mustSigner(msg.Trader)[0],
		AssetIn:   msg.AssetIn,
		AssetOut:  msg.AssetOut,
		Amount:    msg.Amount,
		Direction: DirectionBuy,
		Limit:     msg.MaxSold,
		Discount:  msg.Discount,
	}
}
