package types

import (
	"cosmossdk.io/errors"

	"github.com/hydra-chain/hydra/pkg/fixedpoint"
	assetstypes "github.com/hydra-chain/hydra/x/assets/types"
)

// xyk module sentinel errors
var (
	ErrPoolNotFound              = errors.Register(ModuleName, 2, "pool not found")
	ErrPoolAlreadyExists         = errors.Register(ModuleName, 3, "pool already exists")
	ErrInsufficientLiquidity     = errors.Register(ModuleName, 4, "insufficient liquidity")
	ErrSlippageExceeded          = errors.Register(ModuleName, 5, "slippage limit exceeded")
	ErrNoRouteFound              = errors.Register(ModuleName, 6, "no route found")
	ErrSameAssets                = errors.Register(ModuleName, 7, "assets must differ")
	ErrZeroLiquidity             = errors.Register(ModuleName, 8, "liquidity amount cannot be zero")
	ErrZeroInitialPrice          = errors.Register(ModuleName, 9, "initial price cannot be zero")
	ErrInvariantViolation        = errors.Register(ModuleName, 10, "constant product invariant violated")
	ErrMaxInRatioExceeded        = errors.Register(ModuleName, 11, "trade exceeds max in ratio")
	ErrMaxOutRatioExceeded       = errors.Register(ModuleName, 12, "trade exceeds max out ratio")
	ErrCannotApplyDiscount       = errors.Register(ModuleName, 13, "discount requires a pool with the native asset")
	ErrInvalidAddress            = errors.Register(ModuleName, 14, "invalid address")
	ErrInvalidAmount             = errors.Register(ModuleName, 15, "invalid amount")
	ErrInsufficientTradingAmount = errors.Register(ModuleName, 16, "trading amount too small")
	ErrInvalidRoute              = errors.Register(ModuleName, 17, "invalid route")
	ErrInvalidParams             = errors.Register(ModuleName, 18, "invalid params")
	ErrInvalidGenesis            = errors.Register(ModuleName, 19, "invalid genesis state")
	ErrAssetNotPoolable          = errors.Register(ModuleName, 20, "asset id cannot be pooled")
	ErrInvalidFee                = errors.Register(ModuleName, 21, "invalid fee")
)

// Errors owned by collaborators, re-exported so callers of this module can
// classify every failure from one package.
var (
	ErrOverflow            = fixedpoint.ErrOverflow
	ErrDivisionByZero      = fixedpoint.ErrDivisionByZero
	ErrUnknownAsset        = assetstypes.ErrUnknownAsset
	ErrInsufficientBalance = assetstypes.ErrInsufficientBalance
)
