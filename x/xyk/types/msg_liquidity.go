package types

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgAddLiquidity deposits AmountA of AssetA and at most AmountBMaxLimit of
// AssetB. Into an empty pool both amounts are deposited as given.
type MsgAddLiquidity struct {
	Provider        string   `json:"provider"`
	AssetA          AssetID  `json:"asset_a"`
	AssetB          AssetID  `json:"asset_b"`
	AmountA         math.Int `json:"amount_a"`
	AmountBMaxLimit math.Int `json:"amount_b_max_limit"`
}

// NewMsgAddLiquidity creates a new MsgAddLiquidity instance
func NewMsgAddLiquidity(provider string, assetA, assetB AssetID, amountA, amountBMax math.Int) *MsgAddLiquidity {
	return &MsgAddLiquidity{
		Provider:        provider,
		AssetA:          assetA,
		AssetB:          assetB,
		AmountA:         amountA,
		AmountBMaxLimit: amountBMax,
	}
}

// Route implements the Msg interface
func (msg MsgAddLiquidity) Route() string { return RouterKey }

// Type implements the Msg interface
func (msg MsgAddLiquidity) Type() string { return TypeMsgAddLiquidity }

// GetSigners implements the Msg interface
func (msg MsgAddLiquidity) GetSigners() []sdk.AccAddress { return mustSigner(msg.Provider) }

// ValidateBasic implements the Msg interface
func (msg MsgAddLiquidity) ValidateBasic() error {
	if err := validateAccount(msg.Provider, "provider"); err != nil {
		return err
	}
	if msg.AssetA == msg.AssetB {
		return sdkerrors.Wrap(ErrSameAssets, "pool assets must differ")
	}
	if err := validatePositive(msg.AmountA, "amount a"); err != nil {
		return sdkerrors.Wrap(ErrZeroLiquidity, err.Error())
	}
	if err := validatePositive(msg.AmountBMaxLimit, "amount b max limit"); err != nil {
		return sdkerrors.Wrap(ErrZeroLiquidity, err.Error())
	}
	return nil
}

// MsgRemoveLiquidity burns Shares of the pool's share asset and pays out the
// proportional reserves.
type MsgRemoveLiquidity struct {
	Provider string   `json:"provider"`
	AssetA   AssetID  `json:"asset_a"`
	AssetB   AssetID  `json:"asset_b"`
	Shares   math.Int `json:"shares"`
}

// NewMsgRemoveLiquidity creates a new MsgRemoveLiquidity instance
func NewMsgRemoveLiquidity(provider string, assetA, assetB AssetID, shares math.Int) *MsgRemoveLiquidity {
	return &MsgRemoveLiquidity{
		Provider: provider,
		AssetA:   assetA,
		AssetB:   assetB,
		Shares:   shares,
	}
}

// Route implements the Msg interface
func (msg MsgRemoveLiquidity) Route() string { return RouterKey }

// Type implements the Msg interface
func (msg MsgRemoveLiquidity) Type() string { return TypeMsgRemoveLiquidity }

// GetSigners implements the Msg interface
func (msg MsgRemoveLiquidity) GetSigners() []sdk.AccAddress { return mustSigner(msg.Provider) }

// ValidateBasic implements the Msg interface
func (msg MsgRemoveLiquidity) ValidateBasic() error {
	if err := validateAccount(msg.Provider, "provider"); err != nil {
		return err
	}
	if msg.AssetA == msg.AssetB {
		return sdkerrors.Wrap(ErrSameAssets, "pool assets must differ")
	}
	if err := validatePositive(msg.Shares, "shares"); err != nil {
		return sdkerrors.Wrap(ErrZeroLiquidity, err.Error())
	}
	return nil
}
