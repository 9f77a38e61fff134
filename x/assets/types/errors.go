package types

import (
	"cosmossdk.io/errors"
)

// Assets module sentinel errors
var (
	ErrUnknownAsset        = errors.Register(ModuleName, 2, "unknown asset")
	ErrAssetAlreadyExists  = errors.Register(ModuleName, 3, "asset already registered")
	ErrInvalidAsset        = errors.Register(ModuleName, 4, "invalid asset")
	ErrInsufficientBalance = errors.Register(ModuleName, 5, "insufficient balance")
	ErrInvalidAmount       = errors.Register(ModuleName, 6, "invalid amount")
	ErrInvalidGenesis      = errors.Register(ModuleName, 7, "invalid genesis state")
)
