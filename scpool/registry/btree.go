package registry

import (
	"strings"
	"sync"

	"github.com/google/btree"

	"github.com/sjy-dv/scpool/scpool/core"
)

type MemBTree struct {
	tree *btree.BTree
	lock *sync.RWMutex
}

type item struct {
	target string
	pool   *core.Pool
}

func newBTree() *MemBTree {
	return &MemBTree{
		tree: btree.New(32),
		lock: new(sync.RWMutex),
	}
}

func (i *item) Less(bi btree.Item) bool {
	return strings.Compare(i.target, bi.(*item).target) < 0
}

func (m *MemBTree) Save(target string, pool *core.Pool) *core.Pool {
	m.lock.Lock()
	defer m.lock.Unlock()
	oldVal := m.tree.ReplaceOrInsert(&item{target: target, pool: pool})
	if oldVal != nil {
		return oldVal.(*item).pool
	}
	return nil
}

func (m *MemBTree) Get(target string) *core.Pool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	val := m.tree.Get(&item{target: target})
	if val != nil {
		return val.(*item).pool
	}
	return nil
}

func (m *MemBTree) Del(target string) (*core.Pool, bool) {
	m.lock.Lock()
	defer m.lock.Unlock()
	val := m.tree.Delete(&item{target: target})
	if val != nil {
		return val.(*item).pool, true
	}
	return nil, false
}

func (m *MemBTree) Size() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.tree.Len()
}

func (m *MemBTree) FindAsc(callback func(target string, pool *core.Pool) (bool, error)) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	m.tree.Ascend(func(i btree.Item) bool {
		cont, err := callback(i.(*item).target, i.(*item).pool)
		if err != nil {
			return false
		}
		return cont
	})
}

func (m *MemBTree) FindDesc(callback func(target string, pool *core.Pool) (bool, error)) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	m.tree.Descend(func(i btree.Item) bool {
		cont, err := callback(i.(*item).target, i.(*item).pool)
		if err != nil {
			return false
		}
		return cont
	})
}

// CloseAll drains every registered pool in target order and empties the
// registry. The first close error is reported, but the walk continues.
func (m *MemBTree) CloseAll() error {
	m.lock.Lock()
	defer m.lock.Unlock()

	var firstErr error
	m.tree.Ascend(func(i btree.Item) bool {
		if err := i.(*item).pool.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		return true
	})
	m.tree.Clear(false)
	return firstErr
}
