package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
)

// RegisterLegacyAminoCodec registers the module's messages on the provided
// codec under their "xyk/Msg..." names.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&MsgCreatePool{}, "xyk/MsgCreatePool", nil)
	cdc.RegisterConcrete(&MsgAddLiquidity{}, "xyk/MsgAddLiquidity", nil)
	cdc.RegisterConcrete(&MsgRemoveLiquidity{}, "xyk/MsgRemoveLiquidity", nil)
	cdc.RegisterConcrete(&MsgSell{}, "xyk/MsgSell", nil)
	cdc.RegisterConcrete(&MsgBuy{}, "xyk/MsgBuy", nil)
	cdc.RegisterConcrete(&MsgRouteSell{}, "xyk/MsgRouteSell", nil)
	cdc.RegisterConcrete(&MsgRouteBuy{}, "xyk/MsgRouteBuy", nil)
}

var (
	amino = codec.NewLegacyAmino()
	// ModuleCdc encodes pools and params in the store.
	ModuleCdc = amino
)

func init() {
	RegisterLegacyAminoCodec(amino)
	amino.Seal()
}
