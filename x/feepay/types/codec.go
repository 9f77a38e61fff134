package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
)

// RegisterLegacyAminoCodec registers the module's messages on the provided
// codec.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgAddCurrency{}, "feepay/MsgAddCurrency", nil)
	cdc.RegisterConcrete(&MsgRemoveCurrency{}, "feepay/MsgRemoveCurrency", nil)
	cdc.RegisterConcrete(&MsgSetCurrency{}, "feepay/MsgSetCurrency", nil)
	cdc.RegisterConcrete(&MsgUpdateParams{}, "feepay/MsgUpdateParams", nil)
}

var (
	amino     = codec.NewLegacyAmino()
	ModuleCdc = amino
)

func init() {
	RegisterLegacyAminoCodec(amino)
	amino.Seal()
}
