package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	assetstypes "github.com/hydra-chain/hydra/x/assets/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "feepay"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey is the message route for the feepay module
	RouterKey = ModuleName

	// FeeCollectorName is the module account receiving transaction fees
	FeeCollectorName = "fee_collector"
)

var (
	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x01}

	// CurrencyKeyPrefix is the prefix for accepted fee currencies
	CurrencyKeyPrefix = []byte{0x02}

	// AccountCurrencyKeyPrefix is the prefix for per-account fee currencies
	AccountCurrencyKeyPrefix = []byte{0x03}
)

// CurrencyKey returns the store key marking id as an accepted currency
func CurrencyKey(id AssetID) []byte {
	return append(append([]byte{}, CurrencyKeyPrefix...), id.Bytes()...)
}

// AccountCurrencyKey returns the store key of an account's fee currency
func AccountCurrencyKey(addr sdk.AccAddress) []byte {
	return append(append([]byte{}, AccountCurrencyKeyPrefix...), address.MustLengthPrefix(addr)...)
}

// AssetID is the ledger asset identifier.
type AssetID = assetstypes.AssetID
