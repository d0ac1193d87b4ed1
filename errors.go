package atod

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every failed parse wraps exactly one of these
// sentinels in a *ParseError; match with errors.Is. Decimal-exponent
// overflow and underflow are not errors: they saturate to a signed
// infinity or a signed zero.
var (
	ErrStreamExhausted     = errors.New("unexpected end of stream")
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrMalformedExponent   = errors.New("malformed exponent")
	ErrNoDigits            = errors.New("numeric literal without digits")
)

// A ParseError describes why a parse failed and at what point in the
// literal the failure happened.
type ParseError struct {
	Err error // one of the sentinel errors above
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

func (e *ParseError) Unwrap() error { return e.Err }

func errExhausted(expected string) error {
	return &ParseError{Err: ErrStreamExhausted, Msg: "unexpected end of stream; expected " + expected}
}

func errUnexpected(b byte, detail string) error {
	return &ParseError{Err: ErrUnexpectedCharacter, Msg: fmt.Sprintf("unexpected character (%s)%s", quoteByte(b), detail)}
}

// quoteByte renders b for an error message: quoted when printable,
// hex-escaped always.
func quoteByte(b byte) string {
	if b >= 0x20 && b < 0x7f {
		return fmt.Sprintf("'%c' 0x%02x", b, b)
	}
	return fmt.Sprintf("0x%02x", b)
}
