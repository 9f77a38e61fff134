package ante

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	feepaytypes "github.com/hydra-chain/hydra/x/feepay/types"
)

// FeeKeeper charges transaction fees.
type FeeKeeper interface {
	ChargeFee(ctx context.Context, payer sdk.AccAddress, numMsgs int, feeAsset *feepaytypes.AssetID) (feepaytypes.FeeCharge, error)
}

// FeeDecorator charges the signer BaseFee + FeePerMsg * len(msgs) in the
// reference asset, converting through the pools when the signer pays in
// another accepted currency. A transaction whose fee cannot be paid is
// rejected with no effect.
type FeeDecorator struct {
	fk FeeKeeper
}

// NewFeeDecorator creates a new FeeDecorator
func NewFeeDecorator(fk FeeKeeper) FeeDecorator {
	return FeeDecorator{fk: fk}
}

// AnteHandle implements Decorator.
func (d FeeDecorator) AnteHandle(ctx sdk.Context, tx Tx, simulate bool, next AnteHandler) (sdk.Context, error) {
	charge, err := d.fk.ChargeFee(ctx, tx.GetSigner(), len(tx.GetMsgs()), tx.GetFeeAsset())
	if err != nil {
		return ctx, errorsmod.Wrap(err, "insufficient fee")
	}

	ctx.Logger().Debug("fee charged", "payer", charge.Payer.String(), "asset", charge.Asset, "amount", charge.Amount.String())
	return next(ctx, tx, simulate)
}
