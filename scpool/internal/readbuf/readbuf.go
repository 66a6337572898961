package readbuf

import (
	"errors"
	"io"
)

var ErrTooLarge = errors.New("readbuf: too large")

// Buffer accumulates stream data until a full frame is available.
// It grows by doubling up to max and compacts consumed space first.
type Buffer struct {
	reader io.Reader
	buf    []byte
	max    int
	begin  int // data begin, [)
	end    int // data end, [)
}

func New(reader io.Reader, size, max int) *Buffer {
	return &Buffer{
		reader: reader,
		buf:    make([]byte, size),
		max:    max,
	}
}

func (b *Buffer) Release() {
	b.reader = nil
	b.buf = nil
}

func (b *Buffer) Len() int {
	return b.end - b.begin
}

func (b *Buffer) Data() []byte {
	return b.buf[b.begin:b.end]
}

// Take discards offset bytes, then copies n bytes into out.
// Requires b.Len() >= offset+n.
func (b *Buffer) Take(offset, n int, out []byte) {
	b.begin += offset
	copy(out, b.buf[b.begin:b.begin+n])
	b.begin += n
}

// Fill reads once from the underlying reader into the spare capacity.
func (b *Buffer) Fill() (int, error) {
	if !b.grow() {
		return 0, ErrTooLarge
	}
	n, err := b.reader.Read(b.buf[b.end:])
	if err != nil {
		return n, err
	}
	b.end += n
	return n, nil
}

func (b *Buffer) grow() bool {
	if b.begin == b.end {
		b.begin, b.end = 0, 0
	}
	if b.begin > 0 && b.end == len(b.buf) {
		copy(b.buf, b.buf[b.begin:b.end])
		b.end -= b.begin
		b.begin = 0
	}
	if b.end < len(b.buf) {
		return true
	}
	if b.end >= b.max {
		return false
	}
	double := len(b.buf) * 2
	if double > b.max {
		double = b.max
	}
	buf := make([]byte, double)
	copy(buf, b.buf[b.begin:b.end])
	b.end -= b.begin
	b.begin = 0
	b.buf = buf
	return true
}
