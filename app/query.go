package app

import (
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	assetstypes "github.com/hydra-chain/hydra/x/assets/types"
	feepaytypes "github.com/hydra-chain/hydra/x/feepay/types"
	xyktypes "github.com/hydra-chain/hydra/x/xyk/types"
)

// queryContext returns a context over a throwaway branch of the last
// committed state.
func (app *HydraApp) queryContext() sdk.Context {
	header := cmtproto.Header{ChainID: app.chainID, Height: app.LastBlockHeight(), Time: app.lastBlockTime}
	return sdk.NewContext(app.cms.CacheMultiStore(), header, false, app.logger).
		WithGasMeter(storetypes.NewInfiniteGasMeter())
}

// QueryBalance returns the committed balance of addr in asset id.
func (app *HydraApp) QueryBalance(addr sdk.AccAddress, id assetstypes.AssetID) math.Int {
	return app.AssetsKeeper.GetBalance(app.queryContext(), addr, id)
}

// QueryPool returns the committed pool of {a, b}.
func (app *HydraApp) QueryPool(a, b assetstypes.AssetID) (xyktypes.Pool, error) {
	return app.XYKKeeper.GetPool(app.queryContext(), a, b)
}

// QueryPools returns every committed pool in pair order.
func (app *HydraApp) QueryPools() ([]xyktypes.Pool, error) {
	return app.XYKKeeper.GetAllPools(app.queryContext())
}

// QuerySpotPrice returns the value of amount of assetIn in assetOut at the
// committed reserves.
func (app *HydraApp) QuerySpotPrice(assetIn, assetOut assetstypes.AssetID, amount math.Int) (math.Int, error) {
	return app.XYKKeeper.SpotPrice(app.queryContext(), assetIn, assetOut, amount)
}

// QuerySellQuote returns the best route selling amountIn of assetIn.
func (app *HydraApp) QuerySellQuote(assetIn, assetOut assetstypes.AssetID, amountIn math.Int) (xyktypes.RouteQuote, error) {
	return app.XYKKeeper.BestSellRoute(app.queryContext(), assetIn, assetOut, amountIn)
}

// QueryBuyQuote returns the best route buying amountOut of assetOut.
func (app *HydraApp) QueryBuyQuote(assetIn, assetOut assetstypes.AssetID, amountOut math.Int) (xyktypes.RouteQuote, error) {
	return app.XYKKeeper.BestBuyRoute(app.queryContext(), assetIn, assetOut, amountOut)
}

// QueryFee returns the fee in the reference asset of a tx with numMsgs
// messages.
func (app *HydraApp) QueryFee(numMsgs int) (math.Int, error) {
	return app.FeepayKeeper.QuoteFee(app.queryContext(), numMsgs)
}

// QueryFeeCurrency returns the asset addr pays fees in.
func (app *HydraApp) QueryFeeCurrency(addr sdk.AccAddress) (assetstypes.AssetID, error) {
	return app.FeepayKeeper.GetCurrency(app.queryContext(), addr)
}

// ExportGenesis exports the committed state of every module.
func (app *HydraApp) ExportGenesis() (GenesisState, error) {
	ctx := app.queryContext()

	assets, err := app.AssetsKeeper.ExportGenesis(ctx)
	if err != nil {
		return nil, err
	}
	xyk, err := app.XYKKeeper.ExportGenesis(ctx)
	if err != nil {
		return nil, err
	}
	feepay, err := app.FeepayKeeper.ExportGenesis(ctx)
	if err != nil {
		return nil, err
	}

	return GenesisState{
		assetstypes.ModuleName: mustMarshalJSON(assets),
		xyktypes.ModuleName:    mustMarshalJSON(xyk),
		feepaytypes.ModuleName: mustMarshalJSON(feepay),
	}, nil
}
