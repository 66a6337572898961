package limiter

// Limiter is a token-based concurrency limiter.
// Allow takes a token, Revert returns one.
type Limiter interface {
	Allow() bool
	Revert()
}
