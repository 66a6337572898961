package limiter

import "time"

type timeoutLimiter struct {
	c       chan struct{}
	timeout time.Duration
}

// NewTimeoutLimiter behaves like the default limiter, except that Allow
// waits up to timeout for a token instead of failing immediately.
// timeout <= 0 degrades to the non-blocking behavior.
func NewTimeoutLimiter(n uint32, timeout time.Duration) Limiter {
	return &timeoutLimiter{
		c:       make(chan struct{}, n),
		timeout: timeout,
	}
}

func (l *timeoutLimiter) Allow() bool {
	select {
	case l.c <- struct{}{}:
		return true
	default:
	}
	if l.timeout <= 0 {
		return false
	}
	t := time.NewTimer(l.timeout)
	defer t.Stop()
	select {
	case l.c <- struct{}{}:
		return true
	case <-t.C:
		return false
	}
}

func (l *timeoutLimiter) Revert() {
	<-l.c
}
