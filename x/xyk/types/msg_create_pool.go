package types

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgCreatePool seeds a pool with Amount of AssetA and Amount*InitialPrice of
// AssetB. InitialPrice is quoted as units of AssetB per unit of AssetA.
type MsgCreatePool struct {
	Creator      string         `json:"creator"`
	AssetA       AssetID        `json:"asset_a"`
	AssetB       AssetID        `json:"asset_b"`
	Amount       math.Int       `json:"amount"`
	InitialPrice math.LegacyDec `json:"initial_price"`
}

// NewMsgCreatePool creates a new MsgCreatePool instance
func NewMsgCreatePool(creator string, assetA, assetB AssetID, amount math.Int, initialPrice math.LegacyDec) *MsgCreatePool {
	return &MsgCreatePool{
		Creator:      creator,
		AssetA:       assetA,
		AssetB:       assetB,
		Amount:       amount,
		InitialPrice: initialPrice,
	}
}

// Route implements the Msg interface
func (msg MsgCreatePool) Route() string { return RouterKey }

// Type implements the Msg interface
func (msg MsgCreatePool) Type() string { return TypeMsgCreatePool }

// GetSigners implements the Msg interface
func (msg MsgCreatePool) GetSigners() []sdk.AccAddress { return mustSigner(msg.Creator) }

// ValidateBasic implements the Msg interface
func (msg MsgCreatePool) ValidateBasic() error {
	if err := validateAccount(msg.Creator, "creator"); err != nil {
		return err
	}
	if msg.AssetA == msg.AssetB {
		return sdkerrors.Wrap(ErrSameAssets, "pool assets must differ")
	}
	if msg.Amount.IsNil() || msg.Amount.IsZero() {
		return sdkerrors.Wrap(ErrZeroLiquidity, "amount cannot be zero")
	}
	if err := validatePositive(msg.Amount, "amount"); err != nil {
		return err
	}
	if msg.InitialPrice.IsNil() || !msg.InitialPrice.IsPositive() {
		return sdkerrors.Wrap(ErrZeroInitialPrice, "initial price must be positive")
	}
	return nil
}
