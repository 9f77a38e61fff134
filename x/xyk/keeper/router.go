package keeper

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/hydra-chain/hydra/pkg/fixedpoint"
	sharedkeeper "github.com/hydra-chain/hydra/x/shared/keeper"
	"github.com/hydra-chain/hydra/x/xyk/types"
)

// FindRoutes enumerates simple paths from assetIn to assetOut over live pools,
// breadth first, up to MaxHops hops and MaxRouteCandidates paths. Pools are
// read in store order and neighbours are visited in ascending id order, so the
// result is the same on every replica. Shorter paths come first.
func (k Keeper) FindRoutes(ctx context.Context, assetIn, assetOut types.AssetID) ([]types.Route, error) {
	if assetIn == assetOut {
		return nil, types.ErrSameAssets.Wrapf("asset %d", assetIn)
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}

	graph, err := k.liquidityGraph(ctx)
	if err != nil {
		return nil, err
	}

	maxHops := int(min(params.MaxHops, types.MaxHopsLimit))
	limit := int(params.MaxRouteCandidates)

	var routes []types.Route
	queue := []types.Route{{assetIn}}
	for len(queue) > 0 && len(routes) < limit {
		path := queue[0]
		queue = queue[1:]

		for _, next := range graph[path[len(path)-1]] {
			if slices.Contains(path, next) {
				continue
			}
			extended := append(slices.Clone(path), next)
			if next == assetOut {
				routes = append(routes, extended)
				if len(routes) == limit {
					break
				}
				continue
			}
			if extended.Hops() < maxHops {
				queue = append(queue, extended)
			}
		}
	}

	k.metrics.RouteCandidates.Observe(float64(len(routes)))
	if len(routes) == 0 {
		return nil, types.ErrNoRouteFound.Wrapf("no path from %d to %d within %d hops", assetIn, assetOut, maxHops)
	}
	return routes, nil
}

// liquidityGraph returns the adjacency lists of assets connected by a pool
// with non-zero reserves.
func (k Keeper) liquidityGraph(ctx context.Context) (map[types.AssetID][]types.AssetID, error) {
	graph := make(map[types.AssetID][]types.AssetID)
	err := k.IteratePools(ctx, func(pool types.Pool) bool {
		if !pool.IsLive() || pool.ReserveA.IsZero() || pool.ReserveB.IsZero() {
			return false
		}
		graph[pool.AssetA] = append(graph[pool.AssetA], pool.AssetB)
		graph[pool.AssetB] = append(graph[pool.AssetB], pool.AssetA)
		return false
	})
	if err != nil {
		return nil, err
	}
	for id := range graph {
		slices.Sort(graph[id])
	}
	return graph, nil
}

// QuoteRouteSell simulates selling amountIn along route.
func (k Keeper) QuoteRouteSell(ctx context.Context, route types.Route, amountIn math.Int) (types.RouteQuote, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return types.RouteQuote{}, err
	}
	if err := route.Validate(params.MaxHops); err != nil {
		return types.RouteQuote{}, err
	}

	amounts := make([]math.Int, len(route))
	amounts[0] = amountIn
	for i := 0; i < route.Hops(); i++ {
		res, err := k.quote(ctx, types.SwapIntent{
			Trader:    quoteAccount,
			AssetIn:   route[i],
			AssetOut:  route[i+1],
			Amount:    amounts[i],
			Direction: types.DirectionSell,
			Limit:     math.ZeroInt(),
		})
		if err != nil {
			return types.RouteQuote{}, fmt.Errorf("hop %d (%d -> %d): %w", i+1, route[i], route[i+1], err)
		}
		amounts[i+1] = res.AmountOut
	}
	return types.RouteQuote{Route: route, Amounts: amounts}, nil
}

// QuoteRouteBuy simulates buying amountOut at the end of route, pricing the
// hops from last to first.
func (k Keeper) QuoteRouteBuy(ctx context.Context, route types.Route, amountOut math.Int) (types.RouteQuote, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return types.RouteQuote{}, err
	}
	if err := route.Validate(params.MaxHops); err != nil {
		return types.RouteQuote{}, err
	}

	amounts := make([]math.Int, len(route))
	amounts[len(route)-1] = amountOut
	for i := route.Hops() - 1; i >= 0; i-- {
		res, err := k.quote(ctx, types.SwapIntent{
			Trader:    quoteAccount,
			AssetIn:   route[i],
			AssetOut:  route[i+1],
			Amount:    amounts[i+1],
			Direction: types.DirectionBuy,
			Limit:     fixedpoint.MaxBalance,
		})
		if err != nil {
			return types.RouteQuote{}, fmt.Errorf("hop %d (%d -> %d): %w", i+1, route[i], route[i+1], err)
		}
		amounts[i] = res.AmountIn
	}
	return types.RouteQuote{Route: route, Amounts: amounts}, nil
}

// BestSellRoute returns the candidate route with the largest output. Among
// equal outputs the first found, and therefore shortest, route wins.
func (k Keeper) BestSellRoute(ctx context.Context, assetIn, assetOut types.AssetID, amountIn math.Int) (types.RouteQuote, error) {
	routes, err := k.FindRoutes(ctx, assetIn, assetOut)
	if err != nil {
		return types.RouteQuote{}, err
	}

	var (
		best    types.RouteQuote
		found   bool
		lastErr error
	)
	for _, route := range routes {
		q, err := k.QuoteRouteSell(ctx, route, amountIn)
		if err != nil {
			lastErr = err
			continue
		}
		if !found || q.AmountOut().GT(best.AmountOut()) {
			best, found = q, true
		}
	}
	if !found {
		return types.RouteQuote{}, errorsmod.Wrapf(lastErr, "no route from %d to %d can be priced", assetIn, assetOut)
	}
	return best, nil
}

// BestBuyRoute returns the candidate route with the smallest input. Among
// equal inputs the shortest route wins.
func (k Keeper) BestBuyRoute(ctx context.Context, assetIn, assetOut types.AssetID, amountOut math.Int) (types.RouteQuote, error) {
	routes, err := k.FindRoutes(ctx, assetIn, assetOut)
	if err != nil {
		return types.RouteQuote{}, err
	}

	var (
		best    types.RouteQuote
		found   bool
		lastErr error
	)
	for _, route := range routes {
		q, err := k.QuoteRouteBuy(ctx, route, amountOut)
		if err != nil {
			lastErr = err
			continue
		}
		if !found || q.AmountIn().LT(best.AmountIn()) {
			best, found = q, true
		}
	}
	if !found {
		return types.RouteQuote{}, errorsmod.Wrapf(lastErr, "no route from %d to %d can be priced", assetIn, assetOut)
	}
	return best, nil
}

// RouteSell sells amountIn of assetIn for at least minAmountOut of assetOut and
// pays the output to recipient. An empty path selects the best route. The
// route is fully simulated first; execution is atomic across all hops.
func (k Keeper) RouteSell(
	ctx context.Context,
	trader, recipient sdk.AccAddress,
	assetIn, assetOut types.AssetID,
	amountIn, minAmountOut math.Int,
	path types.Route,
) (types.RouteQuote, error) {
	q, err := k.routeSellQuote(ctx, assetIn, assetOut, amountIn, path)
	if err == nil && q.AmountOut().LT(minAmountOut) {
		err = types.ErrSlippageExceeded.Wrapf("route %s yields %s, minimum %s", q.Route, q.AmountOut(), minAmountOut)
	}
	if err == nil {
		err = k.executeRoute(ctx, trader, recipient, types.DirectionSell, q)
	}
	return q, k.recordRoute(types.DirectionSell, err)
}

// RouteBuy buys amountOut of assetOut for at most maxAmountIn of assetIn and
// pays the output to recipient.
func (k Keeper) RouteBuy(
	ctx context.Context,
	trader, recipient sdk.AccAddress,
	assetIn, assetOut types.AssetID,
	amountOut, maxAmountIn math.Int,
	path types.Route,
) (types.RouteQuote, error) {
	q, err := k.routeBuyQuote(ctx, assetIn, assetOut, amountOut, path)
	if err == nil && q.AmountIn().GT(maxAmountIn) {
		err = types.ErrSlippageExceeded.Wrapf("route %s costs %s, maximum %s", q.Route, q.AmountIn(), maxAmountIn)
	}
	if err == nil {
		err = k.executeRoute(ctx, trader, recipient, types.DirectionBuy, q)
	}
	return q, k.recordRoute(types.DirectionBuy, err)
}

func (k Keeper) routeSellQuote(ctx context.Context, assetIn, assetOut types.AssetID, amountIn math.Int, path types.Route) (types.RouteQuote, error) {
	if len(path) == 0 {
		return k.BestSellRoute(ctx, assetIn, assetOut, amountIn)
	}
	if err := checkEndpoints(path, assetIn, assetOut); err != nil {
		return types.RouteQuote{}, err
	}
	return k.QuoteRouteSell(ctx, path, amountIn)
}

func (k Keeper) routeBuyQuote(ctx context.Context, assetIn, assetOut types.AssetID, amountOut math.Int, path types.Route) (types.RouteQuote, error) {
	if len(path) == 0 {
		return k.BestBuyRoute(ctx, assetIn, assetOut, amountOut)
	}
	if err := checkEndpoints(path, assetIn, assetOut); err != nil {
		return types.RouteQuote{}, err
	}
	return k.QuoteRouteBuy(ctx, path, amountOut)
}

func checkEndpoints(path types.Route, assetIn, assetOut types.AssetID) error {
	if len(path) < 2 || path[0] != assetIn || path[len(path)-1] != assetOut {
		return types.ErrInvalidRoute.Wrapf("route %s does not connect %d to %d", path, assetIn, assetOut)
	}
	return nil
}

// executeRoute commits a simulated route hop by hop. Each hop's limit is the
// simulated amount, so any divergence from the simulation aborts the whole
// route. Intermediate assets pass through the trader's account.
func (k Keeper) executeRoute(ctx context.Context, trader, recipient sdk.AccAddress, dir types.Direction, q types.RouteQuote) error {
	return sharedkeeper.RunAtomic(sdk.UnwrapSDKContext(ctx), func(ctx sdk.Context) error {
		for i := 0; i < q.Route.Hops(); i++ {
			intent := types.SwapIntent{
				Trader:    trader,
				AssetIn:   q.Route[i],
				AssetOut:  q.Route[i+1],
				Direction: dir,
			}
			if dir == types.DirectionSell {
				intent.Amount, intent.Limit = q.Amounts[i], q.Amounts[i+1]
			} else {
				intent.Amount, intent.Limit = q.Amounts[i+1], q.Amounts[i]
			}

			to := trader
			if i == q.Route.Hops()-1 {
				to = recipient
			}
			if _, err := k.swapTo(ctx, intent, to); err != nil {
				return fmt.Errorf("hop %d (%d -> %d): %w", i+1, intent.AssetIn, intent.AssetOut, err)
			}
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeRouteExecuted,
				sdk.NewAttribute(types.AttributeKeyTrader, trader.String()),
				sdk.NewAttribute(types.AttributeKeyDirection, dir.String()),
				sdk.NewAttribute(types.AttributeKeyRoute, q.Route.String()),
				sdk.NewAttribute(types.AttributeKeyHops, strconv.Itoa(q.Route.Hops())),
				sdk.NewAttribute(types.AttributeKeyAmountIn, q.AmountIn().String()),
				sdk.NewAttribute(types.AttributeKeyAmountOut, q.AmountOut().String()),
			),
		)
		return nil
	})
}

func (k Keeper) recordRoute(dir types.Direction, err error) error {
	if err != nil {
		k.metrics.RoutesTotal.WithLabelValues(dir.String(), "failed").Inc()
	}
	return err
}
