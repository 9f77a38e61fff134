package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	sharedkeeper "github.com/hydra-chain/hydra/x/shared/keeper"
	xyktypes "github.com/hydra-chain/hydra/x/xyk/types"
)

// LedgerKeeper moves fees paid in the reference asset.
type LedgerKeeper = sharedkeeper.LedgerKeeperV1

// AssetRegistry validates fee currencies.
type AssetRegistry = sharedkeeper.AssetRegistryV1

// Router converts fees paid in other assets through the xyk pools.
type Router interface {
	BestBuyRoute(ctx context.Context, assetIn, assetOut AssetID, amountOut math.Int) (xyktypes.RouteQuote, error)
	RouteBuy(
		ctx context.Context,
		trader, recipient sdk.AccAddress,
		assetIn, assetOut AssetID,
		amountOut, maxAmountIn math.Int,
		path xyktypes.Route,
	) (xyktypes.RouteQuote, error)
}
