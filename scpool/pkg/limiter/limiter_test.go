package limiter

import (
	"testing"
	"time"
)

func TestDefaultLimiter(t *testing.T) {
	l := NewLimiter(2)
	if !l.Allow() {
		t.Fatal("first token should be granted")
	}
	if !l.Allow() {
		t.Fatal("second token should be granted")
	}
	if l.Allow() {
		t.Fatal("third token should be denied")
	}
	l.Revert()
	if !l.Allow() {
		t.Fatal("token should be granted after revert")
	}
}

func TestTimeoutLimiterWaits(t *testing.T) {
	l := NewTimeoutLimiter(1, 500*time.Millisecond)
	if !l.Allow() {
		t.Fatal("first token should be granted")
	}
	go func() {
		time.Sleep(50 * time.Millisecond)
		l.Revert()
	}()
	start := time.Now()
	if !l.Allow() {
		t.Fatal("token should be granted once reverted")
	}
	if time.Since(start) > 400*time.Millisecond {
		t.Fatal("waited past the revert")
	}
}

func TestTimeoutLimiterExpires(t *testing.T) {
	l := NewTimeoutLimiter(1, 30*time.Millisecond)
	if !l.Allow() {
		t.Fatal("first token should be granted")
	}
	if l.Allow() {
		t.Fatal("second token should time out")
	}
}
