package ante

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// DefaultMaxMsgsPerTx is the message cap used when none is configured.
const DefaultMaxMsgsPerTx = 10

// ValidateTxDecorator performs the stateless checks that must pass before a
// fee can be charged: a payer, at least one message and at most maxMsgs.
// Message-level ValidateBasic runs later, after the fee.
type ValidateTxDecorator struct {
	maxMsgs int
}

// NewValidateTxDecorator creates a new ValidateTxDecorator
func NewValidateTxDecorator(maxMsgs int) ValidateTxDecorator {
	return ValidateTxDecorator{maxMsgs: maxMsgs}
}

// AnteHandle implements Decorator.
func (d ValidateTxDecorator) AnteHandle(ctx sdk.Context, tx Tx, simulate bool, next AnteHandler) (sdk.Context, error) {
	signer := tx.GetSigner()
	if len(signer) == 0 {
		return ctx, errorsmod.Wrap(sdkerrors.ErrNoSignatures, "transaction has no signer")
	}
	if err := sdk.VerifyAddressFormat(signer); err != nil {
		return ctx, errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "signer: %v", err)
	}

	msgs := tx.GetMsgs()
	if len(msgs) == 0 {
		return ctx, errorsmod.Wrap(sdkerrors.ErrInvalidRequest, "transaction has no messages")
	}
	if len(msgs) > d.maxMsgs {
		return ctx, sdkerrors.ErrInvalidRequest.Wrapf(
			"transaction contains too many messages: %d > %d", len(msgs), d.maxMsgs,
		)
	}
	for i, msg := range msgs {
		if msg == nil {
			return ctx, sdkerrors.ErrInvalidRequest.Wrapf("message %d is empty", i)
		}
	}

	return next(ctx, tx, simulate)
}
