// Package keeper provides shared keeper interfaces and utilities for cross-module communication.
package keeper

import (
	"context"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	assetstypes "github.com/hydra-chain/hydra/x/assets/types"
)

// =============================================================================
// Ledger Interfaces (Versioned)
// =============================================================================

// LedgerKeeperV1 is the multi-currency balance ledger seen by other modules.
// Debit fails with ErrInsufficientBalance and leaves the balance untouched.
type LedgerKeeperV1 interface {
	GetBalance(ctx context.Context, addr sdk.AccAddress, id assetstypes.AssetID) sdkmath.Int
	Debit(ctx context.Context, addr sdk.AccAddress, id assetstypes.AssetID, amount sdkmath.Int) error
	Credit(ctx context.Context, addr sdk.AccAddress, id assetstypes.AssetID, amount sdkmath.Int) error
	Transfer(ctx context.Context, from, to sdk.AccAddress, id assetstypes.AssetID, amount sdkmath.Int) error
}

// LedgerKeeperV1Extended adds supply queries.
type LedgerKeeperV1Extended interface {
	LedgerKeeperV1

	// GetTotalIssuance returns the sum of all balances of an asset.
	GetTotalIssuance(ctx context.Context, id assetstypes.AssetID) sdkmath.Int
}

// =============================================================================
// Asset Registry Interfaces (Versioned)
// =============================================================================

// AssetRegistryV1 answers whether an asset id is known.
type AssetRegistryV1 interface {
	Exists(ctx context.Context, id assetstypes.AssetID) bool
}

// AssetRegistryV1Extended lets a module register derived assets.
type AssetRegistryV1Extended interface {
	AssetRegistryV1

	// EnsureAsset registers id under name unless it already exists.
	EnsureAsset(ctx context.Context, id assetstypes.AssetID, name string) error
}

// =============================================================================
// Version Constants
// =============================================================================

const (
	// LedgerKeeperVersion is the current ledger interface version.
	LedgerKeeperVersion = "v1.0.0"

	// AssetRegistryVersion is the current asset registry interface version.
	AssetRegistryVersion = "v1.0.0"
)
