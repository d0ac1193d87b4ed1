package atod

// IEEE 754 binary64 layout: sign(1) | exponent(11) | fraction(52).
const (
	shift64    = 52
	bias64     = 1023
	mask64     = 0x7ff
	fracMask64 = 1<<shift64 - 1
	signMask64 = 1 << 63

	uvinf    = 0x7FF0000000000000
	uvneginf = 0xFFF0000000000000

	// The canonical NaN of this parser sets every value bit. All NaN
	// spellings collapse to this pattern (plus the sign bit for "-nan").
	uvnan = 0x7FFFFFFFFFFFFFFF
)

func zeroBits(neg bool) uint64 {
	if neg {
		return signMask64
	}
	return 0
}

func infBits(neg bool) uint64 {
	if neg {
		return uvneginf
	}
	return uvinf
}

func nanBits(neg bool) uint64 {
	if neg {
		return uvnan | signMask64
	}
	return uvnan
}
