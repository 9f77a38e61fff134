package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/hydra-chain/hydra/x/xyk/types"
)

// RegisterInvariants registers all xyk invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "pool-reserves", PoolReservesInvariant(k))
	ir.RegisterRoute(types.ModuleName, "pool-shares", PoolSharesInvariant(k))
	ir.RegisterRoute(types.ModuleName, "positive-reserves", PositiveReservesInvariant(k))
}

// AllInvariants runs all invariants of the xyk module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := PoolReservesInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = PoolSharesInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		return PositiveReservesInvariant(k)(ctx)
	}
}

// PoolReservesInvariant checks that every pool record matches the ledger
// balances of its pair account exactly.
func PoolReservesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "pool-reserves", err.Error()), true
		}
		for _, pool := range pools {
			account := pool.Account()
			balanceA := k.ledger.GetBalance(ctx, account, pool.AssetA)
			balanceB := k.ledger.GetBalance(ctx, account, pool.AssetB)

			if !balanceA.Equal(pool.ReserveA) {
				count++
				msg += fmt.Sprintf("pool %s: ledger balance of %d (%s) != reserve (%s)\n",
					pool.Pair(), pool.AssetA, balanceA, pool.ReserveA)
			}
			if !balanceB.Equal(pool.ReserveB) {
				count++
				msg += fmt.Sprintf("pool %s: ledger balance of %d (%s) != reserve (%s)\n",
					pool.Pair(), pool.AssetB, balanceB, pool.ReserveB)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "pool-reserves",
			fmt.Sprintf("found %d reserves out of sync with the ledger\n%s", count, msg),
		), broken
	}
}

// PoolSharesInvariant checks that total shares equal the share asset issuance
func PoolSharesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "pool-shares", err.Error()), true
		}
		for _, pool := range pools {
			issued := k.ledger.GetTotalIssuance(ctx, pool.ShareAsset())
			if !issued.Equal(pool.TotalShares) {
				count++
				msg += fmt.Sprintf("pool %s: total shares (%s) != share issuance (%s)\n",
					pool.Pair(), pool.TotalShares, issued)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "pool-shares",
			fmt.Sprintf("found %d pools with inconsistent shares\n%s", count, msg),
		), broken
	}
}

// PositiveReservesInvariant checks that pools with shares have both reserves
func PositiveReservesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		pools, err := k.GetAllPools(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "positive-reserves", err.Error()), true
		}
		for _, pool := range pools {
			if pool.IsLive() && (!pool.ReserveA.IsPositive() || !pool.ReserveB.IsPositive()) {
				count++
				msg += fmt.Sprintf("pool %s: %s shares but reserves %s/%s\n",
					pool.Pair(), pool.TotalShares, pool.ReserveA, pool.ReserveB)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "positive-reserves",
			fmt.Sprintf("found %d live pools with an empty reserve\n%s", count, msg),
		), broken
	}
}
