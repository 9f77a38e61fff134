package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RunAtomic executes fn against a cached branch of ctx. The branch and the
// events fn emitted are written back only when fn succeeds; on error the
// parent context is left exactly as it was.
func RunAtomic(ctx sdk.Context, fn func(ctx sdk.Context) error) error {
	cacheCtx, write := ctx.CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}
	write()
	return nil
}
