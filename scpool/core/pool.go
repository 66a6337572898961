package core

import (
	"errors"
	"fmt"
	"hash/crc32"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"github.com/sjy-dv/scpool/scpool/driver"
	"github.com/sjy-dv/scpool/scpool/pkg/delay"
	"github.com/sjy-dv/scpool/scpool/pkg/limiter"
	"github.com/sjy-dv/scpool/scpool/pkg/log"
)

const fileLockSuffix = ".FLOCK"

// Pool owns a fixed set of resources and serializes checkout among callers.
// The arena slice owns every resource; the free channel holds the indices of
// the ones not checked out, and doubles as the wait/notify primitive.
type Pool struct {
	opts      Options
	factory   driver.Factory
	mu        sync.Mutex
	resources []*Resource    // arena, owner
	out       map[int]uint64 // checked-out index -> generation
	free      chan int
	fileLock  *flock.Flock
	repairLim limiter.Limiter
	closeChan chan struct{}
	closed    int32
}

type Stat struct {
	Target    string
	Capacity  int
	Available int
	InUse     int
}

// Open eagerly dials opts.Capacity connections through factory.
// Any failure tears the whole pool down again; no partial pool survives.
func Open(opts Options, factory driver.Factory) (*Pool, error) {
	if err := checkOptions(&opts); err != nil {
		return nil, err
	}
	if factory == nil {
		return nil, fmt.Errorf("%w:%w", ErrPoolInit, errors.New("nil factory"))
	}

	p := &Pool{
		opts:      opts,
		factory:   factory,
		resources: make([]*Resource, 0, opts.Capacity),
		out:       make(map[int]uint64),
		free:      make(chan int, opts.Capacity),
		repairLim: limiter.NewLimiter(opts.RepairParallel),
		closeChan: make(chan struct{}),
	}

	if opts.LockDir != "" {
		fileLock := flock.New(filepath.Join(opts.LockDir, lockName(opts.Target)))
		hold, err := fileLock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("%w:%w", ErrPoolInit, err)
		}
		if !hold {
			return nil, fmt.Errorf("%w:%w", ErrPoolInit, errors.New("target is already held"))
		}
		p.fileLock = fileLock
	}

	for i := 0; i < opts.Capacity; i++ {
		conn, err := factory()
		if err != nil {
			p.destroy()
			return nil, fmt.Errorf("%w:%w", ErrPoolInit, err)
		}
		p.resources = append(p.resources, &Resource{
			target: opts.Target,
			conn:   conn,
			pool:   p,
			idx:    i,
			gen:    1,
		})
		p.free <- i
	}
	return p, nil
}

func checkOptions(opts *Options) error {
	if opts.Target == "" {
		return ErrPoolInvalidTarget
	}
	if opts.Capacity < 0 {
		return errors.New("pool:capacity must be >= 1")
	}
	if opts.Capacity == 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.RepairParallel == 0 {
		opts.RepairParallel = DefaultOptions.RepairParallel
	}
	return nil
}

func lockName(target string) string {
	return fmt.Sprintf("%08x%s", crc32.ChecksumIEEE([]byte(target)), fileLockSuffix)
}

// Acquire hands out a free resource. timeout == 0 blocks until one is
// released; timeout > 0 waits at most that long and then fails with
// ErrPoolTimeout, leaving the pool untouched.
func (p *Pool) Acquire(timeout time.Duration) (*Resource, error) {
	select {
	case <-p.closeChan:
		return nil, ErrPoolClosed
	default:
	}

	var idx int
	if timeout <= 0 {
		select {
		case idx = <-p.free:
		case <-p.closeChan:
			return nil, ErrPoolClosed
		}
	} else {
		t := time.NewTimer(timeout)
		defer t.Stop()
		select {
		case idx = <-p.free:
		case <-t.C:
			return nil, ErrPoolTimeout
		case <-p.closeChan:
			return nil, ErrPoolClosed
		}
	}

	p.mu.Lock()
	r := p.resources[idx]
	p.out[idx] = r.gen
	p.mu.Unlock()
	return r, nil
}

// Release returns r to the free set and wakes one waiter, if any.
// The resource itself is not touched; reuse is the whole point.
// A resource that comes back dead is retired (and redialed when
// ReplaceClosed is set) instead of being handed out again.
func (p *Pool) Release(r *Resource) error {
	if r == nil {
		return ErrNilResource
	}
	if r.pool != p {
		return ErrForeignResource
	}

	p.mu.Lock()
	gen, ok := p.out[r.idx]
	if !ok || gen != r.gen || p.resources[r.idx] != r {
		p.mu.Unlock()
		return ErrDoubleRelease
	}
	delete(p.out, r.idx)
	p.mu.Unlock()

	if !r.Alive() {
		p.retire(r)
		return nil
	}
	p.free <- r.idx
	return nil
}

func (p *Pool) retire(r *Resource) {
	_ = r.Close()
	if !p.opts.ReplaceClosed {
		log.Warn("pool: retired dead resource for ", p.opts.Target)
		return
	}
	go p.repair(r.idx, r.gen)
}

// repair redials the slot with backoff until it succeeds or the pool closes.
// The slot index stays out of the free set for the whole time, so the repair
// never collides with a checkout.
func (p *Pool) repair(idx int, gen uint64) {
	d := delay.NewRedialDelay(0, 0)
	for {
		select {
		case <-p.closeChan:
			return
		default:
		}
		if !p.repairLim.Allow() {
			time.Sleep(d.GetDelay())
			continue
		}
		conn, err := p.factory()
		p.repairLim.Revert()
		if err != nil {
			log.Warn("pool: redial failed for ", p.opts.Target, ": ", err)
			time.Sleep(d.GetDelay())
			continue
		}

		p.mu.Lock()
		if atomic.LoadInt32(&p.closed) == 1 {
			p.mu.Unlock()
			_ = conn.Close()
			return
		}
		p.resources[idx] = &Resource{
			target: p.opts.Target,
			conn:   conn,
			pool:   p,
			idx:    idx,
			gen:    gen + 1,
		}
		p.mu.Unlock()
		p.free <- idx
		log.Debug("pool: repaired slot for ", p.opts.Target)
		return
	}
}

// Available is advisory; it may be stale the moment it returns.
func (p *Pool) Available() int {
	return len(p.free)
}

func (p *Pool) Capacity() int {
	return p.opts.Capacity
}

func (p *Pool) Target() string {
	return p.opts.Target
}

func (p *Pool) Stat() Stat {
	p.mu.Lock()
	inUse := len(p.out)
	p.mu.Unlock()
	return Stat{
		Target:    p.opts.Target,
		Capacity:  p.opts.Capacity,
		Available: len(p.free),
		InUse:     inUse,
	}
}

// Close closes every owned connection and releases the target lock.
// Closing while resources are checked out is a caller error and is
// refused with ErrPoolBusy.
func (p *Pool) Close() error {
	p.mu.Lock()
	if len(p.out) > 0 {
		p.mu.Unlock()
		return ErrPoolBusy
	}
	if !atomic.CompareAndSwapInt32(&p.closed, 0, 1) {
		p.mu.Unlock()
		return nil
	}
	close(p.closeChan)
	p.mu.Unlock()

	return p.destroy()
}

func (p *Pool) destroy() error {
	var firstErr error
	for _, r := range p.resources {
		if err := r.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if p.fileLock != nil {
		if err := p.fileLock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
