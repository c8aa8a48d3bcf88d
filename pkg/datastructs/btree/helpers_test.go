package btree

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/huynhanx03/go-bptree/pkg/settings"
)

func newTestTree(t *testing.T, order, nodesPerLevel, maxLevels int, opts ...Option) *Tree {
	t.Helper()
	tr, err := New(&settings.BTree{Order: order, NodesPerLevel: nodesPerLevel, MaxLevels: maxLevels}, opts...)
	require.NoError(t, err)
	return tr
}

func insertAll(t *testing.T, tr *Tree, keys ...Key) {
	t.Helper()
	for _, k := range keys {
		require.NoError(t, tr.Insert(k, Data(k)*10), "insert %d", k)
	}
}

func keyRange(lo, hi Key) []Key {
	out := make([]Key, 0, hi-lo+1)
	for k := lo; k <= hi; k++ {
		out = append(out, k)
	}
	return out
}

// occupied returns the keys of addr without padding.
func occupied(tr *Tree, addr Addr) []Key {
	n := tr.arena.Read(addr)
	return append([]Key(nil), n.Keys[:n.Len()]...)
}

func children(tr *Tree, addr Addr) []Addr {
	n := tr.arena.Read(addr)
	out := make([]Addr, n.Len())
	for i := range out {
		out[i] = n.Values[i].Addr()
	}
	return out
}

// writeNode stores a node directly, bypassing the insert path.
func writeNode(tr *Tree, addr Addr, keys []Key, vals []uint32, next Addr) {
	n := tr.arena.ReadLock(addr)
	n.clear(tr.arena.IsLeaf(addr))
	for i, k := range keys {
		n.Keys[i] = k
		n.Values[i] = rawValue(vals[i], tr.arena.IsLeaf(addr))
	}
	n.Next = next
	tr.arena.WriteUnlock(addr, n)
}

func requireHealthy(t *testing.T, tr *Tree) {
	t.Helper()
	require.NoError(t, tr.Check())
	require.True(t, tr.IsUnlocked(), "locks left behind")
}

// keySet is a mutex-guarded key list for concurrent tests.
type keySet struct {
	mu   sync.Mutex
	list []Key
}

func (s *keySet) add(k Key) {
	s.mu.Lock()
	s.list = append(s.list, k)
	s.mu.Unlock()
}

func (s *keySet) keys() []Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Key(nil), s.list...)
}
