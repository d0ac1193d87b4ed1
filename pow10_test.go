package atod

import (
	"math/big"
	"testing"
)

// Re-derive every table entry with exact arbitrary-precision
// arithmetic: 10^(±2^k) rounded to a 65-bit significand must reproduce
// the stored mantissa and exponent bit for bit.
func TestPow10Table(t *testing.T) {
	for k := 0; k < 9; k++ {
		n := int64(1) << k
		pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(n), nil)

		x := new(big.Float).SetPrec(65).SetInt(pow)
		checkPow10Entry(t, n, x, pow10pos[k])

		inv := new(big.Float).SetPrec(65).Quo(big.NewFloat(1), new(big.Float).SetInt(pow))
		checkPow10Entry(t, -n, inv, pow10neg[k])
	}
}

func checkPow10Entry(t *testing.T, n int64, x *big.Float, entry extFloat) {
	t.Helper()

	mant := new(big.Float)
	exp := x.MantExp(mant) // x = mant * 2^exp, mant in [0.5, 1)
	mant.SetMantExp(mant, 65)
	mi, acc := mant.Int(nil)
	if acc != big.Exact {
		t.Fatalf("10^%d: 65-bit significand not exact", n)
	}
	frac := new(big.Int).Sub(mi, new(big.Int).Lsh(big.NewInt(1), 64))
	if !frac.IsUint64() {
		t.Fatalf("10^%d: significand out of range", n)
	}
	if got, want := frac.Uint64(), entry.mant; got != want {
		t.Errorf("10^%d: mantissa %016x, table has %016x", n, got, want)
	}
	if got, want := exp-1, entry.exp; got != want {
		t.Errorf("10^%d: exponent %d, table has %d", n, got, want)
	}
}
