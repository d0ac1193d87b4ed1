// pull-based byte source with single-byte lookahead

package atod

import "io"

// A Stream is a pull cursor over a sequence of byte windows. The parser
// reads it one byte at a time and never looks more than one byte ahead.
//
// The current window is owned by whoever produced it; the fetch callback
// is invoked exactly once each time the window is exhausted and either
// supplies the next window or reports that the input has ended. Once the
// end (or a fetch failure) has been seen it is sticky: fetch is not
// called again.
type Stream struct {
	buf   []byte
	pos   int
	fetch func() ([]byte, error)
	err   error
}

// NewStream returns a Stream that pulls windows from fetch.
// fetch reports end-of-input by returning an empty window or io.EOF.
func NewStream(fetch func() ([]byte, error)) *Stream {
	return &Stream{fetch: fetch}
}

// NewBytesStream returns a Stream reading from b.
func NewBytesStream(b []byte) *Stream {
	return &Stream{buf: b}
}

// NewReaderStream returns a Stream that pulls windows from r.
func NewReaderStream(r io.Reader) *Stream {
	buf := make([]byte, 512)
	return NewStream(func() ([]byte, error) {
		for {
			n, err := r.Read(buf)
			if n > 0 {
				return buf[:n], nil
			}
			if err != nil {
				return nil, err
			}
		}
	})
}

func (s *Stream) refill() error {
	if s.err != nil {
		return s.err
	}
	if s.fetch == nil {
		s.err = io.EOF
		return s.err
	}
	buf, err := s.fetch()
	if err != nil {
		s.err = err
		return err
	}
	if len(buf) == 0 {
		s.err = io.EOF
		return s.err
	}
	s.buf, s.pos = buf, 0
	return nil
}

// Next consumes and returns the next byte.
// It returns io.EOF when the input is exhausted.
func (s *Stream) Next() (byte, error) {
	if s.pos >= len(s.buf) {
		if err := s.refill(); err != nil {
			return 0, err
		}
	}
	b := s.buf[s.pos]
	s.pos++
	return b, nil
}

// Peek returns the next byte without consuming it.
func (s *Stream) Peek() (byte, error) {
	if s.pos >= len(s.buf) {
		if err := s.refill(); err != nil {
			return 0, err
		}
	}
	return s.buf[s.pos], nil
}

// Unread puts back the most recently consumed byte. Only the single
// byte returned by the last call to Next may be put back; Unread panics
// if there is nothing to put back in the current window.
func (s *Stream) Unread() {
	if s.pos == 0 {
		panic("atod: Unread with no byte to put back")
	}
	s.pos--
}
