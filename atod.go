// Package atod parses decimal floating-point literals into IEEE 754
// binary64 values using integer arithmetic only.
//
// Input is pulled through a Stream, a byte cursor with a single byte of
// lookahead, so a literal can be read out of a larger input without
// buffering more than the cursor window. The mantissa is accumulated in
// a uint64 and frozen after its 19th (occasionally 20th) significant
// digit; the outstanding power of ten is then applied with
// extended-precision multiplies against an exact table of 10^(±2^k).
// Results are correctly rounded except that ties truncate rather than
// round to nearest even, a deliberate trade-off with a small, bounded
// worst-case error.
package atod

import (
	"io"
	"math"
	"math/bits"
)

// mantCutoff is the largest accumulator value that can always take one
// more decimal digit without overflowing a uint64: 10*mantCutoff+5 is
// the largest uint64, so at the cutoff a digit of six or more no longer
// fits.
const mantCutoff = (1<<64 - 1) / 10

// expClamp replaces a decimal exponent whose digits overflow a uint64.
// Any magnitude past the 512 saturation threshold behaves the same, so
// the clamp only has to be comfortably above it while leaving exp10
// arithmetic far from the int64 edge.
const expClamp = 1 << 40

// A literal is the transient accumulator for one parse: the sign, the
// frozen decimal mantissa, and the net decimal shift such that the
// value is mant * 10^exp10. Folded fraction digits decrement exp10,
// dropped integer digits increment it, and an explicit exponent adds
// into it, so the two shift directions cannot disagree.
type literal struct {
	neg    bool
	mant   uint64
	digits int // digits seen, including insignificant ones
	sig    int // significant digits folded into mant
	sawDot bool
	exp10  int64
}

// Parse converts the decimal floating-point literal s to a float64.
// The entire string must be consumed by the literal; see ParseStream
// for the streaming form that stops at the first foreign byte.
func Parse(s string) (float64, error) {
	st := NewBytesStream([]byte(s))
	f, err := ParseStream(st)
	if err != nil {
		return 0, err
	}
	if b, err := st.Peek(); err == nil {
		return 0, errUnexpected(b, " after numeric literal")
	}
	return f, nil
}

// ParseStream reads one decimal floating-point literal from st and
// leaves st positioned at the first byte past it. Accepted forms are
//
//	[+|-] digits [. digits] [ (e|E) [+|-] digits ]
//	[+|-] . digits [ (e|E) [+|-] digits ]
//	[+|-] inf
//	[+|-] nan
//
// Decimal exponents too large for binary64 saturate silently to a
// signed infinity or a signed zero. On failure the result is zero and
// the error wraps one of the sentinel errors of this package.
func ParseStream(st *Stream) (float64, error) {
	b, err := parseBits(st)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(b), nil
}

func parseBits(s *Stream) (uint64, error) {
	var l literal

	b, err := s.Next()
	if err != nil {
		if err == io.EOF {
			return 0, errExhausted("decimal floating-point number")
		}
		return 0, err
	}
	switch {
	case b == '-':
		l.neg = true
	case b == '+':
		// ignore
	case b == '.':
		l.sawDot = true
	case b == '0':
		l.digits = 1
	case '1' <= b && b <= '9':
		l.mant = uint64(b - '0')
		l.digits = 1
		l.sig = 1
	case b == 'i':
		s.Unread()
		if err := consumeWord(s, "inf"); err != nil {
			return 0, err
		}
		return infBits(l.neg), nil
	case b == 'n':
		s.Unread()
		if err := consumeWord(s, "nan"); err != nil {
			return 0, err
		}
		return nanBits(l.neg), nil
	default:
		return 0, errUnexpected(b, " in numeric literal")
	}

loop:
	for {
		b, err := s.Next()
		if err != nil {
			if err == io.EOF {
				break loop
			}
			return 0, err
		}
		switch {
		case '0' <= b && b <= '9':
			d := uint64(b - '0')
			l.digits++
			if l.mant > mantCutoff-overSix(d) {
				// One more significant digit would overflow the
				// mantissa. Freeze it and track magnitude only:
				// this digit and any further integer digits shift
				// the decimal point, fraction digits are already
				// paid for by the frozen mantissa.
				if !l.sawDot {
					l.exp10++
				}
				if err := l.scanTail(s); err != nil {
					return 0, err
				}
				break loop
			}
			l.mant = 10*l.mant + d
			if d != 0 || l.sig > 0 {
				l.sig++
			}
			if l.sawDot {
				l.exp10--
			}
		case b == '.':
			if l.sawDot {
				s.Unread()
				break loop
			}
			l.sawDot = true
		case (b == 'e' || b == 'E') && l.digits > 0:
			if err := l.scanExponent(s); err != nil {
				return 0, err
			}
			break loop
		case b == 'i' && l.digits == 0:
			s.Unread()
			if err := consumeWord(s, "inf"); err != nil {
				return 0, err
			}
			return infBits(l.neg), nil
		case b == 'n' && l.digits == 0:
			s.Unread()
			if err := consumeWord(s, "nan"); err != nil {
				return 0, err
			}
			return nanBits(l.neg), nil
		default:
			// not part of the literal; the number ends here
			s.Unread()
			break loop
		}
	}

	if l.digits == 0 {
		return 0, &ParseError{Err: ErrNoDigits, Msg: "numeric literal without digits"}
	}
	return l.floatBits(), nil
}

// scanTail consumes the remainder of a literal whose mantissa is
// frozen. Digits before the decimal point still count toward the
// decimal exponent; digits after it are discarded.
func (l *literal) scanTail(s *Stream) error {
	for {
		b, err := s.Next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		switch {
		case b == '.' && !l.sawDot:
			l.sawDot = true
		case b == 'e' || b == 'E':
			return l.scanExponent(s)
		case b < '0' || b > '9':
			s.Unread()
			return nil
		default:
			if !l.sawDot {
				l.exp10++
			}
		}
	}
}

// scanExponent parses the digits following an exponent marker and folds
// them into exp10. At least one digit must follow the marker and its
// optional sign. An exponent whose own digits overflow a uint64 is
// clamped to a value that saturates downstream, and the remaining
// digits are still consumed so that the stream ends up positioned past
// the literal.
func (l *literal) scanExponent(s *Stream) error {
	b, err := s.Next()
	if err != nil {
		if err == io.EOF {
			return &ParseError{Err: ErrMalformedExponent, Msg: "incomplete exponent in decimal floating-point number"}
		}
		return err
	}
	negExp := false
	switch b {
	case '-':
		negExp = true
	case '+':
		// ignore
	default:
		s.Unread()
	}

	var abs uint64
	ndigits := 0
	clamped := false
	for {
		b, err := s.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		d := uint64(b - '0')
		if d > 9 {
			s.Unread()
			break
		}
		ndigits++
		if clamped {
			continue
		}
		if abs > mantCutoff-overSix(d) {
			abs = expClamp
			clamped = true
			continue
		}
		abs = 10*abs + d
	}
	if ndigits == 0 {
		return &ParseError{Err: ErrMalformedExponent, Msg: "exponent in decimal floating-point number has no digits"}
	}

	if abs > expClamp {
		abs = expClamp
	}
	if negExp {
		l.exp10 -= int64(abs)
	} else {
		l.exp10 += int64(abs)
	}
	return nil
}

// consumeWord consumes the literal word w from s, failing on the first
// byte that does not match.
func consumeWord(s *Stream, w string) error {
	for i := 0; i < len(w); i++ {
		b, err := s.Next()
		if err != nil {
			if err == io.EOF {
				return errExhausted("character '" + string(w[i]) + "'")
			}
			return err
		}
		if b != w[i] {
			return errUnexpected(b, "; expected '"+string(w[i])+"'")
		}
	}
	return nil
}

// overSix is 1 when the digit d cannot be folded into an accumulator
// sitting exactly at mantCutoff, 0 otherwise.
func overSix(d uint64) uint64 {
	if d >= 6 {
		return 1
	}
	return 0
}

// floatBits assembles the scanned literal into binary64 bits:
// normalize the decimal mantissa, scale it by the outstanding power of
// ten, then round to 52 fraction bits.
func (l *literal) floatBits() uint64 {
	if l.sig == 0 {
		// digits present but all insignificant, e.g. "0" or "0.000"
		return zeroBits(l.neg)
	}

	// normalize: old mant == 2^exp + new mant * 2^(exp-64)
	lz := bits.LeadingZeros64(l.mant)
	f := extFloat{
		mant: l.mant << uint(lz+1), // shifts out the leading 1 bit
		exp:  63 - lz,
	}

	switch {
	case l.exp10 > 0:
		if l.exp10 >= 512 {
			return infBits(l.neg) // overflow
		}
		f.scale(uint64(l.exp10), &pow10pos)
	case l.exp10 < 0:
		if l.exp10 <= -512 {
			return zeroBits(l.neg) // underflow
		}
		f.scale(uint64(-l.exp10), &pow10neg)
	}

	if f.exp <= -bias64 {
		// subnormal
		if f.exp <= -bias64-64 {
			return zeroBits(l.neg) // shifted out entirely
		}
		// the implicit leading 1 becomes explicit and the fraction is
		// shifted until the exponent reaches the representable range
		f.mant = f.mant>>1 | 1<<63
		f.mant >>= uint(-f.exp - bias64)
		f.exp = -bias64
	}

	// Round before truncating to 52 bits. A value exactly halfway,
	// low twelve bits 0x800, truncates; ties are not rounded to even.
	if f.mant&0xFFF > 0x800 {
		f.mant += 1 << 11
		if f.mant < 1<<11 {
			// the carry ran off the top; the implicit 1 absorbs it
			f.exp++
			f.mant >>= 1
		}
	}

	if f.exp > bias64 {
		return infBits(l.neg) // overflow
	}

	b := f.mant >> 12
	b |= uint64(f.exp+bias64) << shift64
	if l.neg {
		b |= signMask64
	}
	return b
}
