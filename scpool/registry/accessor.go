package registry

import "github.com/sjy-dv/scpool/scpool/core"

// Accessor keeps the process-wide set of named pools, keyed by target.
// Pools must be registered before use and drained through CloseAll on
// teardown.
type Accessor interface {
	Save(target string, pool *core.Pool) *core.Pool
	Get(target string) *core.Pool
	Del(target string) (*core.Pool, bool)
	Size() int
	FindAsc(callback func(target string, pool *core.Pool) (bool, error))
	FindDesc(callback func(target string, pool *core.Pool) (bool, error))
	CloseAll() error
}

type AccessorType = byte

const (
	BTree AccessorType = iota
)

var accessorType = BTree

func NewAccessor() Accessor {
	switch accessorType {
	case BTree:
		return newBTree()
	default:
		panic("unsupported accessor type")
	}
}
