package types

import (
	"fmt"
	"math/big"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	assetstypes "github.com/hydra-chain/hydra/x/assets/types"
)

// AssetID is the ledger asset identifier.
type AssetID = assetstypes.AssetID

const (
	// MaxPoolAssetID is the largest asset id that can join a pool. Share asset
	// ids are packed from two pool asset ids, so both must fit in 32 bits.
	MaxPoolAssetID AssetID = 1<<32 - 1

	// ShareAssetFlag marks an id as a pool share asset. No registered base
	// asset that can be pooled ever has this bit set.
	ShareAssetFlag AssetID = 1 << 63
)

// AssetPair is an unordered pair of assets in canonical (ascending) order.
type AssetPair struct {
	AssetA AssetID `json:"asset_a"`
	AssetB AssetID `json:"asset_b"`
}

// NewAssetPair canonicalizes two asset ids. The result does not depend on
// argument order.
func NewAssetPair(a, b AssetID) (AssetPair, error) {
	if a == b {
		return AssetPair{}, ErrSameAssets.Wrapf("asset %d", a)
	}
	if a > b {
		a, b = b, a
	}
	return AssetPair{AssetA: a, AssetB: b}, nil
}

// Validate checks that the pair is canonical and poolable.
func (p AssetPair) Validate() error {
	if p.AssetA >= p.AssetB {
		return ErrSameAssets.Wrapf("pair %s is not canonical", p)
	}
	if p.AssetB > MaxPoolAssetID {
		return ErrAssetNotPoolable.Wrapf("asset %d exceeds %d", p.AssetB, MaxPoolAssetID)
	}
	return nil
}

// Contains reports whether id is one of the pair's assets.
func (p AssetPair) Contains(id AssetID) bool {
	return p.AssetA == id || p.AssetB == id
}

// Other returns the asset opposite to id.
func (p AssetPair) Other(id AssetID) AssetID {
	if id == p.AssetA {
		return p.AssetB
	}
	return p.AssetA
}

// Bytes returns the fixed-width encoding of the pair.
func (p AssetPair) Bytes() []byte {
	return append(p.AssetA.Bytes(), p.AssetB.Bytes()...)
}

func (p AssetPair) String() string {
	return fmt.Sprintf("%d/%d", p.AssetA, p.AssetB)
}

// Account returns the ledger account that holds the pool's reserves.
func (p AssetPair) Account() sdk.AccAddress {
	return sdk.AccAddress(address.Module(ModuleName, p.Bytes()))
}

// ShareAsset returns the share asset id of the pair.
func (p AssetPair) ShareAsset() AssetID {
	return ShareAssetID(p.AssetA, p.AssetB)
}

// ShareAssetName is the registry name given to a pool's share asset.
func (p AssetPair) ShareAssetName() string {
	return fmt.Sprintf("XYK-%d-%d", p.AssetA, p.AssetB)
}

// ShareAssetID derives the share asset id of the pool holding a and b.
//
// With lo < hi the id is ShareAssetFlag | (hi*(hi-1)/2 + lo): the triangular
// index enumerates every pair with hi <= MaxPoolAssetID exactly once and stays
// below 2^63, so distinct pairs never share an id and share ids never collide
// with poolable base assets. The result is undefined for ids above
// MaxPoolAssetID; callers validate the pair first.
func ShareAssetID(a, b AssetID) AssetID {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	return ShareAssetFlag | (hi*(hi-1)/2 + lo)
}

// IsShareAsset reports whether id is in the share asset range.
func IsShareAsset(id AssetID) bool {
	return id&ShareAssetFlag != 0
}

// PairFromShareAsset inverts ShareAssetID.
func PairFromShareAsset(id AssetID) (AssetPair, bool) {
	if !IsShareAsset(id) {
		return AssetPair{}, false
	}
	idx := uint64(id &^ ShareAssetFlag)

	// hi = floor((1 + sqrt(8*idx + 1)) / 2), computed exactly.
	n := new(big.Int).SetUint64(idx)
	n.Lsh(n, 3).Add(n, big.NewInt(1))
	s := new(big.Int).Sqrt(n)
	s.Add(s, big.NewInt(1)).Rsh(s, 1)
	if !s.IsUint64() || s.Uint64() > uint64(MaxPoolAssetID) || s.Uint64() == 0 {
		return AssetPair{}, false
	}

	hi := AssetID(s.Uint64())
	lo := AssetID(idx) - hi*(hi-1)/2
	if lo >= hi {
		return AssetPair{}, false
	}
	return AssetPair{AssetA: lo, AssetB: hi}, true
}
