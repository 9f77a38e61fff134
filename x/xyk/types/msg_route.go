package types

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgRouteSell sells AmountIn of AssetIn through up to MaxHops pools. An empty
// Path lets the router pick the path with the largest output.
type MsgRouteSell struct {
	Trader       string   `json:"trader"`
	AssetIn      AssetID  `json:"asset_in"`
	AssetOut     AssetID  `json:"asset_out"`
	AmountIn     math.Int `json:"amount_in"`
	MinAmountOut math.Int `json:"min_amount_out"`
	Path         Route    `json:"path,omitempty"`
}

// NewMsgRouteSell creates a new MsgRouteSell instance
func NewMsgRouteSell(trader string, assetIn, assetOut AssetID, amountIn, minAmountOut math.Int, path Route) *MsgRouteSell {
	return &MsgRouteSell{
		Trader:       trader,
		AssetIn:      assetIn,
		AssetOut:     assetOut,
		AmountIn:     amountIn,
		MinAmountOut: minAmountOut,
		Path:         path,
	}
}

// Route implements the Msg interface
func (msg MsgRouteSell) Route() string { return RouterKey }

// Type implements the Msg interface
func (msg MsgRouteSell) Type() string { return TypeMsgRouteSell }

// GetSigners implements the Msg interface
func (msg MsgRouteSell) GetSigners() []sdk.AccAddress { return mustSigner(msg.Trader) }

// ValidateBasic implements the Msg interface
func (msg MsgRouteSell) ValidateBasic() error {
	if err := validateAccount(msg.Trader, "trader"); err != nil {
		return err
	}
	if err := validateTradePair(msg.AssetIn, msg.AssetOut); err != nil {
		return err
	}
	if err := validatePositive(msg.AmountIn, "amount in"); err != nil {
		return err
	}
	if err := validateLimit(msg.MinAmountOut, "min amount out"); err != nil {
		return err
	}
	return validateExplicitRoute(msg.Path, msg.AssetIn, msg.AssetOut)
}

// MsgRouteBuy buys AmountOut of AssetOut through up to MaxHops pools, paying at
// most MaxAmountIn. An empty Path picks the path with the smallest input.
type MsgRouteBuy struct {
	Trader      string   `json:"trader"`
	AssetIn     AssetID  `json:"asset_in"`
	AssetOut    AssetID  `json:"asset_out"`
	AmountOut   math.Int `json:"amount_out"`
	MaxAmountIn math.Int `json:"max_amount_in"`
	Path        Route    `json:"path,omitempty"`
}

// NewMsgRouteBuy creates a new MsgRouteBuy instance
func NewMsgRouteBuy(trader string, assetIn, assetOut AssetID, amountOut, maxAmountIn math.Int, path Route) *MsgRouteBuy {
	return &MsgRouteBuy{
		Trader:      trader,
		AssetIn:     assetIn,
		AssetOut:    assetOut,
		AmountOut:   amountOut,
		MaxAmountIn: maxAmountIn,
		Path:        path,
	}
}

// Route implements the Msg interface
func (msg MsgRouteBuy) Route() string { return RouterKey }

// Type implements the Msg interface
func (msg MsgRouteBuy) Type() string { return TypeMsgRouteBuy }

// GetSigners implements the Msg interface
func (msg MsgRouteBuy) GetSigners() []sdk.AccAddress { return mustSigner(msg.Trader) }

// ValidateBasic implements the Msg interface
func (msg MsgRouteBuy) ValidateBasic() error {
	if err := validateAccount(msg.Trader, "trader"); err != nil {
		return err
	}
	if err := validateTradePair(msg.AssetIn, msg.AssetOut); err != nil {
		return err
	}
	if err := validatePositive(msg.AmountOut, "amount out"); err != nil {
		return err
	}
	if err := validateLimit(msg.MaxAmountIn, "max amount in"); err != nil {
		return err
	}
	return validateExplicitRoute(msg.Path, msg.AssetIn, msg.AssetOut)
}

func validateExplicitRoute(route Route, assetIn, assetOut AssetID) error {
	if len(route) == 0 {
		return nil
	}
	if err := route.Validate(MaxHopsLimit); err != nil {
		return err
	}
	if route[0] != assetIn || route[len(route)-1] != assetOut {
		return sdkerrors.Wrapf(ErrInvalidRoute, "route %s does not connect %d to %d", route, assetIn, assetOut)
	}
	return nil
}
