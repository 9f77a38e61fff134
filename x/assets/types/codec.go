package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
)

// ModuleCdc encodes registry records and balances in the store. The module
// has no messages.
var ModuleCdc = codec.NewLegacyAmino()

func init() {
	ModuleCdc.Seal()
}
