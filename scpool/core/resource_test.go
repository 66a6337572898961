package core

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sjy-dv/scpool/scpool/driver"
)

func TestResourceExecute(t *testing.T) {
	p, _ := newTestPool(t, Options{Capacity: 1})
	defer p.Close()

	r, err := p.Acquire(0)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Release(r)

	resp, err := r.Execute([]byte("ping"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(resp, []byte("ok:ping")) {
		t.Fatalf("resp = %q", resp)
	}
	if r.Target() != "fake:6727" {
		t.Fatalf("target = %q", r.Target())
	}
}

func TestResourceExecuteAfterClose(t *testing.T) {
	p, _ := newTestPool(t, Options{Capacity: 1})
	defer p.Close()

	r, err := p.Acquire(0)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Release(r)

	if !r.Alive() {
		t.Fatal("freshly acquired resource must be alive")
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal("close must be idempotent")
	}
	if r.Alive() {
		t.Fatal("closed resource must not report alive")
	}
	// deterministically, every time
	for i := 0; i < 100; i++ {
		if _, err := r.Execute([]byte("ping")); !errors.Is(err, driver.ErrConnClosed) {
			t.Fatalf("attempt %d: err = %v, want ErrConnClosed", i, err)
		}
	}
}

func TestResourceReleaseShortcut(t *testing.T) {
	p, _ := newTestPool(t, Options{Capacity: 1})
	defer p.Close()

	r, err := p.Acquire(0)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Release(); err != nil {
		t.Fatal(err)
	}
	if err := r.Release(); !errors.Is(err, ErrDoubleRelease) {
		t.Fatalf("err = %v, want ErrDoubleRelease", err)
	}
	if p.Available() != 1 {
		t.Fatalf("Available = %d, want 1", p.Available())
	}
}
