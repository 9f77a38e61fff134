package types

import (
	"context"

	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types for the feepay module
const (
	TypeMsgAddCurrency    = "add_currency"
	TypeMsgRemoveCurrency = "remove_currency"
	TypeMsgSetCurrency    = "set_currency"
	TypeMsgUpdateParams   = "update_params"
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

// MsgAddCurrency accepts an asset for fee payment. Authority only.
type MsgAddCurrency struct {
	Authority string  `json:"authority"`
	AssetID   AssetID `json:"asset_id"`
}

// NewMsgAddCurrency creates a new MsgAddCurrency instance
func NewMsgAddCurrency(authority string, id AssetID) *MsgAddCurrency {
	return &MsgAddCurrency{Authority: authority, AssetID: id}
}

func (msg MsgAddCurrency) Route() string                { return RouterKey }
func (msg MsgAddCurrency) Type() string                 { return TypeMsgAddCurrency }
func (msg MsgAddCurrency) GetSigners() []sdk.AccAddress { return mustSigner(msg.Authority) }

// ValidateBasic implements the Msg interface
func (msg MsgAddCurrency) ValidateBasic() error {
	return validateAccount(msg.Authority, "authority")
}

// MsgRemoveCurrency withdraws an asset from fee payment. Authority only.
type MsgRemoveCurrency struct {
	Authority string  `json:"authority"`
	AssetID   AssetID `json:"asset_id"`
}

// NewMsgRemoveCurrency creates a new MsgRemoveCurrency instance
func NewMsgRemoveCurrency(authority string, id AssetID) *MsgRemoveCurrency {
	return &MsgRemoveCurrency{Authority: authority, AssetID: id}
}

func (msg MsgRemoveCurrency) Route() string                { return RouterKey }
func (msg MsgRemoveCurrency) Type() string                 { return TypeMsgRemoveCurrency }
func (msg MsgRemoveCurrency) GetSigners() []sdk.AccAddress { return mustSigner(msg.Authority) }

// ValidateBasic implements the Msg interface
func (msg MsgRemoveCurrency) ValidateBasic() error {
	return validateAccount(msg.Authority, "authority")
}

// MsgSetCurrency selects the asset an account pays its fees in.
type MsgSetCurrency struct {
	Account string  `json:"account"`
	AssetID AssetID `json:"asset_id"`
}

// NewMsgSetCurrency creates a new MsgSetCurrency instance
func NewMsgSetCurrency(account string, id AssetID) *MsgSetCurrency {
	return &MsgSetCurrency{Account: account, AssetID: id}
}

func (msg MsgSetCurrency) Route() string                { return RouterKey }
func (msg MsgSetCurrency) Type() string                 { return TypeMsgSetCurrency }
func (msg MsgSetCurrency) GetSigners() []sdk.AccAddress { return mustSigner(msg.Account) }

// ValidateBasic implements the Msg interface
func (msg MsgSetCurrency) ValidateBasic() error {
	return validateAccount(msg.Account, "account")
}

// MsgUpdateParams replaces the module parameters. Authority only.
type MsgUpdateParams struct {
	Authority string `json:"authority"`
	Params    Params `json:"params"`
}

// NewMsgUpdateParams creates a new MsgUpdateParams instance
func NewMsgUpdateParams(authority string, params Params) *MsgUpdateParams {
	return &MsgUpdateParams{Authority: authority, Params: params}
}

func (msg MsgUpdateParams) Route() string                { return RouterKey }
func (msg MsgUpdateParams) Type() string                 { return TypeMsgUpdateParams }
func (msg MsgUpdateParams) GetSigners() []sdk.AccAddress { return mustSigner(msg.Authority) }

// ValidateBasic implements the Msg interface
func (msg MsgUpdateParams) ValidateBasic() error {
	if err := validateAccount(msg.Authority, "authority"); err != nil {
		return err
	}
	return msg.Params.Validate()
}

// Response types

type MsgAddCurrencyResponse struct{}

type MsgRemoveCurrencyResponse struct{}

type MsgSetCurrencyResponse struct{}

type MsgUpdateParamsResponse struct{}

// MsgServer defines the message server interface
type MsgServer interface {
	AddCurrency(context.Context, *MsgAddCurrency) (*MsgAddCurrencyResponse, error)
	RemoveCurrency(context.Context, *MsgRemoveCurrency) (*MsgRemoveCurrencyResponse, error)
	SetCurrency(context.Context, *MsgSetCurrency) (*MsgSetCurrencyResponse, error)
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
}
