package types

import (
	"cosmossdk.io/math"

	"github.com/hydra-chain/hydra/pkg/fixedpoint"
	assetstypes "github.com/hydra-chain/hydra/x/assets/types"
)

// Params defines the parameters for the feepay module.
type Params struct {
	// ReferenceAsset is the asset fees are denominated in.
	ReferenceAsset AssetID `json:"reference_asset"`
	// BaseFee is charged once per transaction.
	BaseFee math.Int `json:"base_fee"`
	// FeePerMsg is charged for every message of a transaction.
	FeePerMsg math.Int `json:"fee_per_msg"`
	// Tolerance is the extra fraction of the quoted price a payer accepts
	// when the fee is converted from another asset.
	Tolerance math.LegacyDec `json:"tolerance"`
}

// DefaultParams returns default parameters for the feepay module
func DefaultParams() Params {
	return Params{
		ReferenceAsset: assetstypes.NativeAssetID,
		BaseFee:        math.NewInt(1000),
		FeePerMsg:      math.NewInt(100),
		Tolerance:      math.LegacyNewDecWithPrec(5, 2), // 5%
	}
}

// Validate performs basic validation of feepay parameters
func (p Params) Validate() error {
	if p.BaseFee.IsNil() || p.FeePerMsg.IsNil() {
		return ErrInvalidParams.Wrap("fees cannot be nil")
	}
	if err := fixedpoint.Validate(p.BaseFee); err != nil {
		return ErrInvalidParams.Wrapf("base fee: %v", err)
	}
	if err := fixedpoint.Validate(p.FeePerMsg); err != nil {
		return ErrInvalidParams.Wrapf("fee per msg: %v", err)
	}
	if p.Tolerance.IsNil() || p.Tolerance.IsNegative() {
		return ErrInvalidParams.Wrap("tolerance must be non-negative")
	}
	if p.Tolerance.GT(math.LegacyOneDec()) {
		return ErrInvalidParams.Wrapf("tolerance %s above 1", p.Tolerance)
	}
	return nil
}

// FeeFor returns BaseFee + FeePerMsg * numMsgs.
func (p Params) FeeFor(numMsgs int) (math.Int, error) {
	perMsg, err := fixedpoint.CheckedMul(p.FeePerMsg, math.NewInt(int64(numMsgs)))
	if err != nil {
		return math.ZeroInt(), err
	}
	return fixedpoint.CheckedAdd(p.BaseFee, perMsg)
}

// MaxAmountIn returns ceil(quoted * (1 + Tolerance)), the most a payer may
// be charged for a fee conversion quoted at quoted.
func (p Params) MaxAmountIn(quoted math.Int) math.Int {
	return math.LegacyOneDec().Add(p.Tolerance).MulInt(quoted).Ceil().TruncateInt()
}
