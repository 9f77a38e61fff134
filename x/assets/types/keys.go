package types

import (
	"encoding/binary"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "assets"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

var (
	// AssetKeyPrefix is the prefix for registered asset metadata
	AssetKeyPrefix = []byte{0x01}

	// BalanceKeyPrefix is the prefix for account balances, keyed by account then asset
	BalanceKeyPrefix = []byte{0x02}

	// IssuanceKeyPrefix is the prefix for the total issuance of each asset
	IssuanceKeyPrefix = []byte{0x03}
)

// AssetKey returns the store key for an asset's metadata
func AssetKey(id AssetID) []byte {
	return append(append([]byte{}, AssetKeyPrefix...), id.Bytes()...)
}

// BalanceKey returns the store key for an account balance of one asset
func BalanceKey(addr sdk.AccAddress, id AssetID) []byte {
	key := append(append([]byte{}, BalanceKeyPrefix...), byte(len(addr)))
	key = append(key, addr.Bytes()...)
	return append(key, id.Bytes()...)
}

// BalanceKeyAccountPrefix returns the prefix for all balances of an account
func BalanceKeyAccountPrefix(addr sdk.AccAddress) []byte {
	key := append(append([]byte{}, BalanceKeyPrefix...), byte(len(addr)))
	return append(key, addr.Bytes()...)
}

// IssuanceKey returns the store key for the total issuance of an asset
func IssuanceKey(id AssetID) []byte {
	return append(append([]byte{}, IssuanceKeyPrefix...), id.Bytes()...)
}

// AssetIDFromBytes decodes a big-endian asset id
func AssetIDFromBytes(bz []byte) AssetID {
	return AssetID(binary.BigEndian.Uint64(bz))
}
