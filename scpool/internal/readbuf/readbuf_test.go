package readbuf

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestFillAndTake(t *testing.T) {
	b := New(strings.NewReader("hello world"), 4, 64)
	for b.Len() < 11 {
		if _, err := b.Fill(); err != nil {
			t.Fatal(err)
		}
	}
	out := make([]byte, 5)
	b.Take(6, 5, out) // skip "hello "
	if !bytes.Equal(out, []byte("world")) {
		t.Fatalf("got %q", out)
	}
	if b.Len() != 0 {
		t.Fatalf("leftover %d bytes", b.Len())
	}
}

func TestGrowCompacts(t *testing.T) {
	b := New(strings.NewReader("abcdefgh"), 4, 8)
	if _, err := b.Fill(); err != nil {
		t.Fatal(err)
	}
	out := make([]byte, 2)
	b.Take(0, 2, out)
	// consumed prefix must be reclaimed before growing
	for b.Len() < 6 {
		if _, err := b.Fill(); err != nil {
			t.Fatal(err)
		}
	}
	rest := make([]byte, 6)
	b.Take(0, 6, rest)
	if !bytes.Equal(rest, []byte("cdefgh")) {
		t.Fatalf("got %q", rest)
	}
}

func TestFillTooLarge(t *testing.T) {
	b := New(strings.NewReader(strings.Repeat("x", 32)), 4, 8)
	var err error
	for i := 0; i < 8; i++ {
		if _, err = b.Fill(); err != nil {
			break
		}
	}
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("err = %v, want ErrTooLarge", err)
	}
}
