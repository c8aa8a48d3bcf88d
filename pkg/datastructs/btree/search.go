package btree

import (
	"github.com/pkg/errors"

	"github.com/huynhanx03/go-bptree/pkg/metrics"
)

// Search returns the data stored under key. It never takes a node lock and is
// not held up by writers that merely hold one; it only spins for the short
// window in which a node it reads is being written back. A result may miss an
// insert that commits concurrently.
func (t *Tree) Search(key Key) (Data, error) {
	d, err := t.search(key)
	if err != nil {
		t.metrics.RecordSearch(metrics.ResultNotFound)
		return 0, err
	}
	t.metrics.RecordSearch(metrics.ResultOK)
	return d, nil
}

func (t *Tree) search(key Key) (Data, error) {
	if key == InvalidKey {
		return 0, errors.Wrap(ErrNotFound, "invalid key")
	}
	lin, err := t.traceLineage(key)
	if err != nil {
		return 0, err
	}

	addr := lin.Leaf()
	for hops := 0; hops < t.arena.NodesPerLevel(); hops++ {
		n := t.arena.Read(addr)
		if i, ok := n.find(key); ok {
			return n.Values[i].Data(), nil
		}
		// A leaf split after the trace may have moved the key to the right sibling.
		if n.IsEmpty() || key < n.MaxKey() || n.Next == InvalidAddr || !t.arena.IsLeaf(n.Next) {
			break
		}
		addr = n.Next
	}
	return 0, errors.Wrapf(ErrNotFound, "key %d", key)
}
