package types

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/hydra-chain/hydra/pkg/fixedpoint"
)

// Message types for the xyk module
const (
	TypeMsgCreatePool      = "create_pool"
	TypeMsgAddLiquidity    = "add_liquidity"
	TypeMsgRemoveLiquidity = "remove_liquidity"
	TypeMsgSell            = "sell"
	TypeMsgBuy             = "buy"
	TypeMsgRouteSell       = "route_sell"
	TypeMsgRouteBuy        = "route_buy"
)

func validateAccount(addr, field string) error {
	if _, err := sdk.AccAddressFromBech32(addr); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAddress, "invalid %s address: %s", field, err)
	}
	return nil
}

func mustSigner(addr string) []sdk.AccAddress {
	acc, err := sdk.AccAddressFromBech32(addr)
	if err != nil {
		panic(err)
	}
	return []sdk.AccAddress{acc}
}

func validatePositive(amount math.Int, field string) error {
	if amount.IsNil() || !amount.IsPositive() {
		return sdkerrors.Wrapf(ErrInvalidAmount, "%s must be positive", field)
	}
	if err := fixedpoint.Validate(amount); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAmount, "%s: %s", field, err)
	}
	return nil
}

func validateLimit(amount math.Int, field string) error {
	if amount.IsNil() {
		return sdkerrors.Wrapf(ErrInvalidAmount, "%s cannot be nil", field)
	}
	if err := fixedpoint.Validate(amount); err != nil {
		return sdkerrors.Wrapf(ErrInvalidAmount, "%s: %s", field, err)
	}
	return nil
}

func validateTradePair(assetIn, assetOut AssetID) error {
	if assetIn == assetOut {
		return sdkerrors.Wrap(ErrSameAssets, "cannot trade an asset for itself")
	}
	return nil
}
