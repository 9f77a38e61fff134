package types

import (
	"cosmossdk.io/errors"
)

// feepay module sentinel errors
var (
	ErrCurrencyNotAccepted     = errors.Register(ModuleName, 2, "currency not accepted for fees")
	ErrCurrencyAlreadyAccepted = errors.Register(ModuleName, 3, "currency already accepted")
	ErrInvalidParams           = errors.Register(ModuleName, 4, "invalid params")
	ErrInvalidAddress          = errors.Register(ModuleName, 5, "invalid address")
	ErrInvalidGenesis          = errors.Register(ModuleName, 6, "invalid genesis state")
	ErrReferenceCurrency       = errors.Register(ModuleName, 7, "reference asset is always accepted")
)
