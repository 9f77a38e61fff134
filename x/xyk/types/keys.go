package types

import (
	assetstypes "github.com/hydra-chain/hydra/x/assets/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "xyk"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey is the message route for the xyk module
	RouterKey = ModuleName
)

var (
	// PoolKeyPrefix is the prefix for pool records, keyed by the canonical pair
	PoolKeyPrefix = []byte{0x01}

	// ParamsKey is the key for module parameters
	ParamsKey = []byte{0x02}
)

// PoolKey returns the store key for the pool of a canonical pair. Both ids are
// big-endian so prefix iteration visits pools in (assetA, assetB) order.
func PoolKey(pair AssetPair) []byte {
	key := append([]byte{}, PoolKeyPrefix...)
	key = append(key, pair.AssetA.Bytes()...)
	return append(key, pair.AssetB.Bytes()...)
}

// PairFromPoolKey decodes the pair from a pool store key without the prefix.
func PairFromPoolKey(key []byte) AssetPair {
	return AssetPair{
		AssetA: assetstypes.AssetIDFromBytes(key[:8]),
		AssetB: assetstypes.AssetIDFromBytes(key[8:16]),
	}
}
