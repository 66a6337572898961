package tcp

import (
	"net"

	lru "github.com/hashicorp/golang-lru/v2"
)

// resolver caches resolved TCP addresses per target so that pools
// redialing the same target skip repeated lookups.
type resolver struct {
	cache *lru.Cache[string, *net.TCPAddr]
}

func newResolver(size int) (*resolver, error) {
	if size <= 0 {
		size = 128
	}
	cache, err := lru.New[string, *net.TCPAddr](size)
	if err != nil {
		return nil, err
	}
	return &resolver{cache: cache}, nil
}

func (r *resolver) Resolve(target string) (*net.TCPAddr, error) {
	if addr, ok := r.cache.Get(target); ok {
		return addr, nil
	}
	addr, err := net.ResolveTCPAddr("tcp", target)
	if err != nil {
		return nil, err
	}
	r.cache.Add(target, addr)
	return addr, nil
}

func (r *resolver) Invalidate(target string) {
	r.cache.Remove(target)
}
