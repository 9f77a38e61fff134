package types

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// AssetID identifies an asset in the registry and the ledger. The runtime only
// compares and orders ids; metadata lives in the registry.
type AssetID uint64

// Bytes returns the big-endian encoding, which preserves numeric order in
// store keys.
func (id AssetID) Bytes() []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(id))
	return bz
}

func (id AssetID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// MarshalJSON encodes the id as a JSON number.
func (id AssetID) MarshalJSON() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string, so ids
// written either way in genesis, block and message files decode alike.
func (id *AssetID) UnmarshalJSON(bz []byte) error {
	s := string(bz)
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid asset id %s: %w", bz, err)
	}
	*id = AssetID(v)
	return nil
}

// Asset is the registry record of an asset.
type Asset struct {
	ID   AssetID `json:"id"`
	Name string  `json:"name"`
}

// Validate performs stateless validation of an asset record.
func (a Asset) Validate() error {
	if a.Name == "" {
		return ErrInvalidAsset.Wrapf("asset %d has empty name", a.ID)
	}
	if len(a.Name) > MaxAssetNameLength {
		return ErrInvalidAsset.Wrapf("asset %d name longer than %d bytes", a.ID, MaxAssetNameLength)
	}
	return nil
}

func (a Asset) String() string {
	return fmt.Sprintf("%d:%s", a.ID, a.Name)
}

// MaxAssetNameLength bounds registry names.
const MaxAssetNameLength = 64
