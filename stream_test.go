package atod

import (
	"errors"
	"io"
	"math"
	"strings"
	"testing"
	"testing/iotest"
)

// windowed returns a Stream that serves src in windows of at most n
// bytes, counting fetch invocations.
func windowed(src string, n int, calls *int) *Stream {
	rest := []byte(src)
	return NewStream(func() ([]byte, error) {
		*calls++
		if len(rest) == 0 {
			return nil, io.EOF
		}
		w := rest
		if len(w) > n {
			w = w[:n]
		}
		rest = rest[len(w):]
		return w, nil
	})
}

// The parser must behave identically no matter how the input is cut
// into windows, down to one byte at a time.
func TestStream_windowing(t *testing.T) {
	inputs := []string{
		"0", "-0", "1", ".5", "5.", "3.25", "12.5e-3", "1.5E+3",
		"-inf", "nan", "1e400", "1e-400",
		"1.0000000000000000000000000000000000000000000000000000",
		"123456789012345678901234e-10",
		"", ".", "abc", "1e", "in",
	}
	for _, in := range inputs {
		want, wantErr := Parse(in)
		for _, n := range []int{1, 2, 3, 7} {
			var calls int
			got, err := ParseStream(windowed(in, n, &calls))
			if (err == nil) != (wantErr == nil) {
				t.Errorf("%q window %d: error mismatch: %v vs %v", in, n, err, wantErr)
				continue
			}
			if err != nil {
				if !errors.Is(err, errors.Unwrap(wantErr.(*ParseError))) {
					t.Errorf("%q window %d: error %v, whole-string parse gave %v", in, n, err, wantErr)
				}
				continue
			}
			if math.Float64bits(got) != math.Float64bits(want) {
				t.Errorf("%q window %d: got %016x, want %016x", in, n, math.Float64bits(got), math.Float64bits(want))
			}
		}
	}
}

func TestStream_fetchOncePerExhaustion(t *testing.T) {
	const in = "2.5"
	var calls int
	s := windowed(in, 1, &calls)
	f, err := ParseStream(s)
	if err != nil {
		t.Fatal(err)
	}
	if f != 2.5 {
		t.Errorf("expected 2.5, got %v", f)
	}
	// one fetch per byte plus the fetch that reported end-of-input
	if calls != len(in)+1 {
		t.Errorf("expected %d fetch calls, got %d", len(in)+1, calls)
	}

	// end-of-input is sticky; no further fetches happen
	if _, err := s.Next(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
	if calls != len(in)+1 {
		t.Errorf("fetch called again after end of input: %d calls", calls)
	}
}

// ParseStream leaves the stream at the first byte past the literal.
func TestStream_positionAfterLiteral(t *testing.T) {
	tests := []struct {
		in   string
		f    float64
		rest string
	}{
		{"3.25rest", 3.25, "rest"},
		{"1e5x", 100000, "x"},
		{"1..5", 1, ".5"},
		{"5.e2,next", 500, ",next"},
		{"infinity", math.Inf(1), "inity"},
		{"1 2", 1, " 2"},
		// the exponent-overflow shortcut still consumes the whole
		// literal so that the stream stays usable
		{"1e99999999999999999999,tail", math.Inf(1), ",tail"},
	}
	for _, tt := range tests {
		s := NewBytesStream([]byte(tt.in))
		f, err := ParseStream(s)
		if err != nil {
			t.Errorf("%q: unexpected error %v", tt.in, err)
			continue
		}
		if math.Float64bits(f) != math.Float64bits(tt.f) {
			t.Errorf("%q: expected %v, got %v", tt.in, tt.f, f)
		}
		var rest []byte
		for {
			b, err := s.Next()
			if err != nil {
				break
			}
			rest = append(rest, b)
		}
		if string(rest) != tt.rest {
			t.Errorf("%q: expected %q left on the stream, got %q", tt.in, tt.rest, rest)
		}
	}
}

func TestStream_reader(t *testing.T) {
	readers := []struct {
		name string
		r    io.Reader
	}{
		{"plain", strings.NewReader("6.022e23")},
		{"oneByte", iotest.OneByteReader(strings.NewReader("6.022e23"))},
		{"dataErr", iotest.DataErrReader(strings.NewReader("6.022e23"))},
	}
	for _, tt := range readers {
		f, err := ParseStream(NewReaderStream(tt.r))
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
			continue
		}
		if f != 6.022e23 {
			t.Errorf("%s: expected 6.022e23, got %v", tt.name, f)
		}
	}
}

// A fetch failure other than end-of-input surfaces as-is.
func TestStream_fetchError(t *testing.T) {
	fail := errors.New("connection lost")
	s := NewReaderStream(io.MultiReader(
		strings.NewReader("12."),
		iotest.ErrReader(fail),
	))
	_, err := ParseStream(s)
	if !errors.Is(err, fail) {
		t.Errorf("expected fetch error to surface, got %v", err)
	}
}

func TestStream_peek(t *testing.T) {
	s := NewBytesStream([]byte("ab"))
	if b, err := s.Peek(); err != nil || b != 'a' {
		t.Fatalf("Peek: %c, %v", b, err)
	}
	if b, err := s.Next(); err != nil || b != 'a' {
		t.Fatalf("Next: %c, %v", b, err)
	}
	s.Unread()
	if b, err := s.Next(); err != nil || b != 'a' {
		t.Fatalf("Next after Unread: %c, %v", b, err)
	}
	if b, err := s.Next(); err != nil || b != 'b' {
		t.Fatalf("Next: %c, %v", b, err)
	}
	if _, err := s.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestStream_unreadPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected Unread on a fresh stream to panic")
		}
	}()
	NewBytesStream([]byte("1")).Unread()
}

// Multiple literals can be pulled from one stream back to back.
func TestStream_sequentialLiterals(t *testing.T) {
	s := NewBytesStream([]byte("1.5 -2e3 nan"))
	want := []float64{1.5, -2000, math.Float64frombits(uvnan)}
	for i, w := range want {
		f, err := ParseStream(s)
		if err != nil {
			t.Fatalf("literal %d: %v", i, err)
		}
		if math.Float64bits(f) != math.Float64bits(w) {
			t.Errorf("literal %d: expected %016x, got %016x", i, math.Float64bits(w), math.Float64bits(f))
		}
		// skip the separating space
		if b, err := s.Next(); err == nil && b != ' ' {
			t.Fatalf("literal %d: unexpected separator %q", i, b)
		}
	}
}
