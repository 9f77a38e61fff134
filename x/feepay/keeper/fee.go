package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/hydra-chain/hydra/x/feepay/types"
	sharedkeeper "github.com/hydra-chain/hydra/x/shared/keeper"
)

// QuoteFee returns the fee in the reference asset of a transaction carrying
// numMsgs messages.
func (k Keeper) QuoteFee(ctx context.Context, numMsgs int) (math.Int, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return math.ZeroInt(), err
	}
	return params.FeeFor(numMsgs)
}

// ChargeFee collects the fee of a transaction from payer into the fee
// collector. The fee is paid in feeAsset when given, otherwise in the payer's
// selected currency. A fee in a non-reference asset is bought through the
// best route at its quoted price plus Tolerance. Nothing is charged on error.
func (k Keeper) ChargeFee(ctx context.Context, payer sdk.AccAddress, numMsgs int, feeAsset *types.AssetID) (types.FeeCharge, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return types.FeeCharge{}, err
	}
	fee, err := params.FeeFor(numMsgs)
	if err != nil {
		return types.FeeCharge{}, err
	}

	asset, err := k.feeCurrency(ctx, params, payer, feeAsset)
	if err != nil {
		k.metrics.FeesFailed.WithLabelValues("currency").Inc()
		return types.FeeCharge{}, err
	}

	charge := types.FeeCharge{Payer: payer, Asset: asset, Amount: fee, Fee: fee}
	if fee.IsZero() {
		return charge, nil
	}

	err = sharedkeeper.RunAtomic(sdk.UnwrapSDKContext(ctx), func(ctx sdk.Context) error {
		if asset == params.ReferenceAsset {
			return k.ledger.Transfer(ctx, payer, k.FeeCollector(), asset, fee)
		}

		quote, err := k.router.BestBuyRoute(ctx, asset, params.ReferenceAsset, fee)
		if err != nil {
			return fmt.Errorf("price fee of %s in asset %d: %w", fee, asset, err)
		}
		maxIn := params.MaxAmountIn(quote.AmountIn())
		paid, err := k.router.RouteBuy(ctx, payer, k.FeeCollector(), asset, params.ReferenceAsset, fee, maxIn, quote.Route)
		if err != nil {
			return fmt.Errorf("convert fee of %s from asset %d: %w", fee, asset, err)
		}
		charge.Amount, charge.Route = paid.AmountIn(), paid.Route

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeFeePaidInAsset,
				sdk.NewAttribute(types.AttributeKeyPayer, payer.String()),
				sdk.NewAttribute(types.AttributeKeyAsset, asset.String()),
				sdk.NewAttribute(types.AttributeKeyAmount, charge.Amount.String()),
				sdk.NewAttribute(types.AttributeKeyFee, fee.String()),
				sdk.NewAttribute(types.AttributeKeyRoute, paid.Route.String()),
			),
		)
		return nil
	})
	if err != nil {
		k.metrics.FeesFailed.WithLabelValues("payment").Inc()
		k.Logger(ctx).Debug("fee payment failed", "payer", payer.String(), "asset", asset, "fee", fee.String(), "error", err)
		return types.FeeCharge{}, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeFeePaid,
			sdk.NewAttribute(types.AttributeKeyPayer, payer.String()),
			sdk.NewAttribute(types.AttributeKeyAsset, asset.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, charge.Amount.String()),
			sdk.NewAttribute(types.AttributeKeyFee, fee.String()),
		),
	)
	k.metrics.FeesCharged.WithLabelValues(asset.String()).Add(toFloat(charge.Amount))
	if len(charge.Route) > 0 {
		k.metrics.FeeConversions.WithLabelValues(asset.String()).Inc()
	}
	return charge, nil
}

// feeCurrency resolves the asset a payer settles in.
func (k Keeper) feeCurrency(ctx context.Context, params types.Params, payer sdk.AccAddress, override *types.AssetID) (types.AssetID, error) {
	if override == nil {
		return k.GetCurrency(ctx, payer)
	}
	if *override != params.ReferenceAsset && !k.IsAccepted(ctx, *override) {
		return 0, types.ErrCurrencyNotAccepted.Wrapf("asset %d", *override)
	}
	return *override, nil
}
