package fixedpoint_test

import (
	"math/big"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/hydra-chain/hydra/pkg/fixedpoint"
)

func TestCheckedAdd(t *testing.T) {
	sum, err := fixedpoint.CheckedAdd(math.NewInt(7), math.NewInt(5))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(12), sum)

	_, err = fixedpoint.CheckedAdd(fixedpoint.MaxBalance, math.OneInt())
	require.ErrorIs(t, err, fixedpoint.ErrOverflow)

	sum, err = fixedpoint.CheckedAdd(fixedpoint.MaxBalance, math.ZeroInt())
	require.NoError(t, err)
	require.True(t, sum.Equal(fixedpoint.MaxBalance))
}

func TestCheckedSub(t *testing.T) {
	diff, err := fixedpoint.CheckedSub(math.NewInt(7), math.NewInt(7))
	require.NoError(t, err)
	require.True(t, diff.IsZero())

	_, err = fixedpoint.CheckedSub(math.NewInt(7), math.NewInt(8))
	require.ErrorIs(t, err, fixedpoint.ErrOverflow)
	require.Contains(t, err.Error(), "underflow")
}

func TestCheckedMul(t *testing.T) {
	two64 := math.NewIntFromBigInt(new(big.Int).Lsh(big.NewInt(1), 64))

	p, err := fixedpoint.CheckedMul(two64, two64.SubRaw(1))
	require.NoError(t, err)
	require.Equal(t, 128, p.BigInt().BitLen())

	_, err = fixedpoint.CheckedMul(two64, two64)
	require.ErrorIs(t, err, fixedpoint.ErrOverflow)
}

func TestCheckedDiv(t *testing.T) {
	q, err := fixedpoint.CheckedDiv(math.NewInt(10), math.NewInt(3))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(3), q)

	_, err = fixedpoint.CheckedDiv(math.NewInt(10), math.ZeroInt())
	require.ErrorIs(t, err, fixedpoint.ErrDivisionByZero)
}

func TestMulDivRounding(t *testing.T) {
	down, err := fixedpoint.MulDivFloor(math.NewInt(10), math.NewInt(10), math.NewInt(3))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(33), down)

	up, err := fixedpoint.MulDivCeil(math.NewInt(10), math.NewInt(10), math.NewInt(3))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(34), up)

	exact, err := fixedpoint.MulDivCeil(math.NewInt(10), math.NewInt(9), math.NewInt(3))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(30), exact)

	ceil, err := fixedpoint.CeilDiv(math.NewInt(1000000), math.NewInt(1099))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(910), ceil)
}

func TestMulDivWideIntermediate(t *testing.T) {
	// MaxBalance * MaxBalance / MaxBalance needs the 256-bit intermediate.
	v, err := fixedpoint.MulDivFloor(fixedpoint.MaxBalance, fixedpoint.MaxBalance, fixedpoint.MaxBalance)
	require.NoError(t, err)
	require.True(t, v.Equal(fixedpoint.MaxBalance))

	_, err = fixedpoint.MulDivFloor(fixedpoint.MaxBalance, fixedpoint.MaxBalance, math.NewInt(2))
	require.ErrorIs(t, err, fixedpoint.ErrOverflow)

	_, err = fixedpoint.MulDivCeil(math.OneInt(), math.OneInt(), math.ZeroInt())
	require.ErrorIs(t, err, fixedpoint.ErrDivisionByZero)
}

func TestValidate(t *testing.T) {
	require.NoError(t, fixedpoint.Validate(math.ZeroInt()))
	require.ErrorIs(t, fixedpoint.Validate(math.NewInt(-1)), fixedpoint.ErrNegative)
	require.ErrorIs(t, fixedpoint.Validate(fixedpoint.MaxBalance.AddRaw(1)), fixedpoint.ErrOverflow)
	require.ErrorIs(t, fixedpoint.Validate(math.Int{}), fixedpoint.ErrNegative)
}

func TestProductIsExact(t *testing.T) {
	p, err := fixedpoint.Product(fixedpoint.MaxBalance, fixedpoint.MaxBalance)
	require.NoError(t, err)

	want := new(big.Int).Mul(fixedpoint.MaxBalance.BigInt(), fixedpoint.MaxBalance.BigInt())
	require.Equal(t, 0, want.Cmp(p.ToBig()))
}

func balanceGen() *rapid.Generator[math.Int] {
	return rapid.Custom(func(t *rapid.T) math.Int {
		hi := rapid.Uint64().Draw(t, "hi")
		lo := rapid.Uint64().Draw(t, "lo")
		v := new(big.Int).Lsh(new(big.Int).SetUint64(hi), 64)
		return math.NewIntFromBigInt(v.Or(v, new(big.Int).SetUint64(lo)))
	})
}

func TestMulDivMatchesBigIntProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := balanceGen().Draw(t, "a")
		b := balanceGen().Draw(t, "b")
		c := balanceGen().Draw(t, "c")
		if c.IsZero() {
			c = math.OneInt()
		}

		prod := new(big.Int).Mul(a.BigInt(), b.BigInt())
		quo, rem := new(big.Int).QuoRem(prod, c.BigInt(), new(big.Int))

		down, err := fixedpoint.MulDivFloor(a, b, c)
		if quo.BitLen() > fixedpoint.BalanceBits {
			if err == nil {
				t.Fatalf("expected overflow for %s*%s/%s", a, b, c)
			}
			return
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if down.BigInt().Cmp(quo) != 0 {
			t.Fatalf("floor mismatch: got %s want %s", down, quo)
		}

		up, err := fixedpoint.MulDivCeil(a, b, c)
		if err != nil {
			// only possible when rounding up crosses 2^128
			return
		}
		want := new(big.Int).Set(quo)
		if rem.Sign() != 0 {
			want.Add(want, big.NewInt(1))
		}
		if up.BigInt().Cmp(want) != 0 {
			t.Fatalf("ceil mismatch: got %s want %s", up, want)
		}
	})
}

func TestAddSubRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := balanceGen().Draw(t, "a")
		b := balanceGen().Draw(t, "b")

		sum, err := fixedpoint.CheckedAdd(a, b)
		if err != nil {
			if new(big.Int).Add(a.BigInt(), b.BigInt()).BitLen() <= fixedpoint.BalanceBits {
				t.Fatalf("spurious overflow for %s + %s", a, b)
			}
			return
		}
		back, err := fixedpoint.CheckedSub(sum, b)
		if err != nil {
			t.Fatalf("sub failed: %v", err)
		}
		if !back.Equal(a) {
			t.Fatalf("round trip mismatch: %s != %s", back, a)
		}
	})
}
