package core

import (
	"sync/atomic"

	"github.com/sjy-dv/scpool/scpool/driver"
)

// Resource is one pooled connection handle. It is created by the pool,
// checked out by exactly one caller at a time, and reused as-is on release.
type Resource struct {
	target string
	conn   driver.Conn
	pool   *Pool
	idx    int
	gen    uint64
	closed int32
}

// Alive reports liveness without side effects. Once the resource or its
// underlying connection has been closed it stays false forever.
func (r *Resource) Alive() bool {
	return atomic.LoadInt32(&r.closed) == 0 && !r.conn.Closed()
}

// Execute passes the request through to the driver connection.
func (r *Resource) Execute(req []byte) ([]byte, error) {
	if !r.Alive() {
		return nil, driver.ErrConnClosed
	}
	return r.conn.Exec(req)
}

// Close transitions the resource to closed. Safe to call more than once.
func (r *Resource) Close() error {
	if !atomic.CompareAndSwapInt32(&r.closed, 0, 1) {
		return nil
	}
	return r.conn.Close()
}

func (r *Resource) Target() string {
	return r.target
}

// Release returns the resource to its owning pool.
func (r *Resource) Release() error {
	return r.pool.Release(r)
}
