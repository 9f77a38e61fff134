package ante

import (
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// DefaultMaxMemoBytes is the memo cap used when none is configured.
const DefaultMaxMemoBytes = 256

// MemoLimitDecorator enforces a hard cap on memo size (bytes).
type MemoLimitDecorator struct {
	maxBytes int
}

// NewMemoLimitDecorator returns a decorator that rejects memos exceeding maxBytes.
func NewMemoLimitDecorator(maxBytes int) MemoLimitDecorator {
	return MemoLimitDecorator{maxBytes: maxBytes}
}

// AnteHandle implements Decorator.
func (d MemoLimitDecorator) AnteHandle(ctx sdk.Context, tx Tx, simulate bool, next AnteHandler) (sdk.Context, error) {
	if memo := tx.GetMemo(); len(memo) > d.maxBytes {
		return ctx, errorsmod.Wrapf(sdkerrors.ErrMemoTooLarge, "memo too large: %d bytes (max %d)", len(memo), d.maxBytes)
	}

	return next(ctx, tx, simulate)
}
