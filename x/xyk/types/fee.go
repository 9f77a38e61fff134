package types

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/hydra-chain/hydra/pkg/fixedpoint"
)

// Fee is a trading fee rate expressed as Numerator/Denominator.
type Fee struct {
	Numerator   uint32 `json:"numerator"`
	Denominator uint32 `json:"denominator"`
}

// NewFee returns the rate num/den.
func NewFee(num, den uint32) Fee {
	return Fee{Numerator: num, Denominator: den}
}

// Validate requires a non-zero denominator and a rate below 100%.
func (f Fee) Validate() error {
	if f.Denominator == 0 {
		return ErrInvalidFee.Wrap("denominator cannot be zero")
	}
	if f.Numerator >= f.Denominator {
		return ErrInvalidFee.Wrapf("rate %s must be below 1", f)
	}
	return nil
}

// IsZero reports whether the fee charges nothing.
func (f Fee) IsZero() bool {
	return f.Numerator == 0
}

// ApplyTo splits amount into the part that trades against the curve and the
// fee retained by the pool. The net part is floor(amount*(den-num)/den), so
// any rounding remainder is charged as fee.
func (f Fee) ApplyTo(amount math.Int) (net, fee math.Int, err error) {
	if err := f.Validate(); err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	net, err = fixedpoint.MulDivFloor(amount, math.NewInt(int64(f.Denominator-f.Numerator)), math.NewInt(int64(f.Denominator)))
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	return net, amount.Sub(net), nil
}

// GrossUp returns the smallest amount whose net part under ApplyTo is at
// least net: ceil(net*den/(den-num)).
func (f Fee) GrossUp(net math.Int) (math.Int, error) {
	if err := f.Validate(); err != nil {
		return math.ZeroInt(), err
	}
	return fixedpoint.MulDivCeil(net, math.NewInt(int64(f.Denominator)), math.NewInt(int64(f.Denominator-f.Numerator)))
}

func (f Fee) String() string {
	return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
}
