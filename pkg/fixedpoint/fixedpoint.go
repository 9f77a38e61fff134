// Package fixedpoint provides overflow-checked integer arithmetic over the
// unsigned 128-bit balance domain used by the runtime.
//
// All values are cosmossdk.io/math.Int restricted to [0, 2^128-1]. Products
// that feed a division are computed in 256 bits with holiman/uint256 and are
// narrowed back only when the quotient fits the balance domain. No operation
// wraps, clamps or truncates silently: it either returns an exact (or
// explicitly rounded) result or an error wrapping ErrOverflow or
// ErrDivisionByZero.
package fixedpoint

import (
	"math/big"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/holiman/uint256"
)

// Codespace is the error codespace of the arithmetic library.
const Codespace = "fixedpoint"

var (
	ErrOverflow       = errorsmod.Register(Codespace, 2, "arithmetic overflow")
	ErrDivisionByZero = errorsmod.Register(Codespace, 3, "division by zero")
	ErrNegative       = errorsmod.Register(Codespace, 4, "negative balance value")
)

// BalanceBits is the width of the balance domain.
const BalanceBits = 128

// MaxBalance is the largest representable balance, 2^128 - 1.
var MaxBalance = math.NewIntFromBigInt(
	new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), BalanceBits), big.NewInt(1)),
)

// Rounding selects the direction in which an inexact quotient is rounded.
type Rounding uint8

const (
	// RoundDown is used for amounts paid out by the protocol.
	RoundDown Rounding = iota
	// RoundUp is used for amounts the protocol requires in.
	RoundUp
)

func (r Rounding) String() string {
	if r == RoundUp {
		return "up"
	}
	return "down"
}

// Validate reports whether v is a well-formed balance.
func Validate(v math.Int) error {
	if v.IsNil() {
		return ErrNegative.Wrap("nil value")
	}
	if v.IsNegative() {
		return ErrNegative.Wrapf("%s", v)
	}
	if v.GT(MaxBalance) {
		return ErrOverflow.Wrapf("%s exceeds 128 bits", v)
	}
	return nil
}

// CheckedAdd returns a + b or ErrOverflow if the sum leaves the balance domain.
func CheckedAdd(a, b math.Int) (math.Int, error) {
	if err := validatePair(a, b); err != nil {
		return math.ZeroInt(), err
	}
	sum := a.Add(b)
	if sum.GT(MaxBalance) {
		return math.ZeroInt(), ErrOverflow.Wrapf("%s + %s", a, b)
	}
	return sum, nil
}

// CheckedSub returns a - b or ErrOverflow if b > a.
func CheckedSub(a, b math.Int) (math.Int, error) {
	if err := validatePair(a, b); err != nil {
		return math.ZeroInt(), err
	}
	if b.GT(a) {
		return math.ZeroInt(), ErrOverflow.Wrapf("underflow: %s - %s", a, b)
	}
	return a.Sub(b), nil
}

// CheckedMul returns a * b or ErrOverflow if the product leaves the balance domain.
func CheckedMul(a, b math.Int) (math.Int, error) {
	p, err := Product(a, b)
	if err != nil {
		return math.ZeroInt(), err
	}
	return narrow(p, "mul")
}

// CheckedDiv returns floor(a / b).
func CheckedDiv(a, b math.Int) (math.Int, error) {
	if err := validatePair(a, b); err != nil {
		return math.ZeroInt(), err
	}
	if b.IsZero() {
		return math.ZeroInt(), ErrDivisionByZero.Wrapf("%s / 0", a)
	}
	return a.Quo(b), nil
}

// CeilDiv returns ceil(a / b).
func CeilDiv(a, b math.Int) (math.Int, error) {
	return MulDiv(a, math.OneInt(), b, RoundUp)
}

// MulDiv returns a * b / c rounded in the given direction. The product is
// formed in 256 bits so that two full-width balances never overflow before
// the division; the quotient must fit back into 128 bits.
func MulDiv(a, b, c math.Int, rounding Rounding) (math.Int, error) {
	if err := validatePair(a, b); err != nil {
		return math.ZeroInt(), err
	}
	if err := Validate(c); err != nil {
		return math.ZeroInt(), err
	}
	if c.IsZero() {
		return math.ZeroInt(), ErrDivisionByZero.Wrapf("%s * %s / 0", a, b)
	}

	x, y, d := toU256(a), toU256(b), toU256(c)
	prod, overflow := new(uint256.Int).MulOverflow(x, y)
	if overflow {
		// unreachable for 128-bit operands
		return math.ZeroInt(), ErrOverflow.Wrapf("%s * %s exceeds 256 bits", a, b)
	}

	quo, rem := new(uint256.Int).DivMod(prod, d, new(uint256.Int))
	if rounding == RoundUp && !rem.IsZero() {
		quo.AddUint64(quo, 1)
	}
	return narrow(quo, "muldiv")
}

// MulDivFloor is MulDiv rounding down.
func MulDivFloor(a, b, c math.Int) (math.Int, error) {
	return MulDiv(a, b, c, RoundDown)
}

// MulDivCeil is MulDiv rounding up.
func MulDivCeil(a, b, c math.Int) (math.Int, error) {
	return MulDiv(a, b, c, RoundUp)
}

// Product returns the full 256-bit product of two balances. It is used for
// constant-product comparisons where narrowing would be wrong.
func Product(a, b math.Int) (*uint256.Int, error) {
	if err := validatePair(a, b); err != nil {
		return nil, err
	}
	p, overflow := new(uint256.Int).MulOverflow(toU256(a), toU256(b))
	if overflow {
		return nil, ErrOverflow.Wrapf("%s * %s exceeds 256 bits", a, b)
	}
	return p, nil
}

func validatePair(a, b math.Int) error {
	if err := Validate(a); err != nil {
		return err
	}
	return Validate(b)
}

// toU256 converts a validated balance. Callers validate first, so the value
// is known to be non-negative and below 2^128.
func toU256(v math.Int) *uint256.Int {
	u, _ := uint256.FromBig(v.BigInt())
	return u
}

func narrow(u *uint256.Int, op string) (math.Int, error) {
	if u.BitLen() > BalanceBits {
		return math.ZeroInt(), ErrOverflow.Wrapf("%s result %s exceeds 128 bits", op, u.Dec())
	}
	return math.NewIntFromBigInt(u.ToBig()), nil
}
