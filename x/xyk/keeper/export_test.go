package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/hydra-chain/hydra/x/xyk/types"
)

func (k Keeper) CheckProduct(ctx context.Context, before, after types.Pool) error {
	return k.checkProduct(ctx, before, after)
}

func (k Keeper) SettleTrade(ctx sdk.Context, intent types.SwapIntent, recipient sdk.AccAddress, res types.SwapResult) error {
	return k.settleTrade(ctx, intent, recipient, res)
}
