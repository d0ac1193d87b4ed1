package atod

import "github.com/shogo82148/int128"

// An extFloat is a normalized unsigned floating-point number
// 2^exp * (1 + mant/2^64). The leading 1 bit is implicit; the full
// 64 bits of mant are fraction.
type extFloat struct {
	mant uint64
	exp  int
}

// mul multiplies f by g in place.
//
// The exact fraction of the product is mx + my + mx*my/2^64, which can
// reach almost 2^65 + 2^64; the integer overflow count is therefore in
// {0, 1, 2} and renormalizing shifts the fraction right by one with the
// overflow carried into the top bit and the exponent. The low 64 bits of
// the 128-bit product are discarded, so each call loses less than 2^-64
// of relative precision; a scale pass performs at most nine of them.
func (f *extFloat) mul(g extFloat) {
	p := int128.Uint128{L: f.mant}.Mul(int128.Uint128{L: g.mant})
	f.exp += g.exp

	overflow := 0
	m := f.mant + g.mant
	if m < g.mant {
		overflow++
	}
	m += p.H
	if m < p.H {
		overflow++
	}
	if overflow != 0 {
		f.exp++
		m = m>>1 | uint64(overflow+1)<<63
	}
	f.mant = m
}

// scale multiplies f by the product of the table entries selected by
// the bits of e, highest power first. e must be below 512.
func (f *extFloat) scale(e uint64, tab *[9]extFloat) {
	for k := 8; k >= 0; k-- {
		if e&(1<<uint(k)) != 0 {
			f.mul(tab[k])
		}
	}
}
