package ante

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	assetstypes "github.com/hydra-chain/hydra/x/assets/types"
	sharedkeeper "github.com/hydra-chain/hydra/x/shared/keeper"
)

// Tx is the view of a transaction the ante chain works on.
type Tx interface {
	GetMsgs() []sharedkeeper.Msg
	// GetSigner returns the account that signed the transaction and pays its fee.
	GetSigner() sdk.AccAddress
	// GetFeeAsset returns the asset the fee is paid in, or nil to use the
	// signer's selected currency.
	GetFeeAsset() *assetstypes.AssetID
	GetMemo() string
}

// AnteHandler checks a transaction before its messages run. Any state it
// writes (the fee) is kept even when the messages fail afterwards.
type AnteHandler func(ctx sdk.Context, tx Tx, simulate bool) (sdk.Context, error)

// Decorator is one step of the ante chain.
type Decorator interface {
	AnteHandle(ctx sdk.Context, tx Tx, simulate bool, next AnteHandler) (sdk.Context, error)
}

// HandlerOptions are the options required for constructing the ante chain.
type HandlerOptions struct {
	FeeKeeper    FeeKeeper
	MaxMemoBytes int
	MaxMsgsPerTx int
}

// NewAnteHandler returns an AnteHandler that bounds the transaction size and
// then charges its fee.
func NewAnteHandler(options HandlerOptions) (AnteHandler, error) {
	if options.FeeKeeper == nil {
		return nil, fmt.Errorf("fee keeper is required for ante builder")
	}
	if options.MaxMemoBytes <= 0 {
		options.MaxMemoBytes = DefaultMaxMemoBytes
	}
	if options.MaxMsgsPerTx <= 0 {
		options.MaxMsgsPerTx = DefaultMaxMsgsPerTx
	}

	anteDecorators := []Decorator{
		NewValidateTxDecorator(options.MaxMsgsPerTx),
		NewMemoLimitDecorator(options.MaxMemoBytes),
		NewFeeDecorator(options.FeeKeeper), // must be last: nothing may fail after the fee is taken
	}

	return ChainDecorators(anteDecorators...), nil
}

// ChainDecorators links decorators so that each one calls the next. The
// terminal handler returns the context unchanged.
func ChainDecorators(chain ...Decorator) AnteHandler {
	handlers := make([]AnteHandler, len(chain)+1)
	handlers[len(chain)] = func(ctx sdk.Context, _ Tx, _ bool) (sdk.Context, error) {
		return ctx, nil
	}
	for i := len(chain) - 1; i >= 0; i-- {
		dec, next := chain[i], handlers[i+1]
		handlers[i] = func(ctx sdk.Context, tx Tx, simulate bool) (sdk.Context, error) {
			return dec.AnteHandle(ctx, tx, simulate, next)
		}
	}
	return handlers[0]
}
