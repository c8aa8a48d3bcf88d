package btree

import "github.com/pkg/errors"

// traceLineage records the path from the current root to the leaf responsible
// for key. It reads without locking, so the path may be stale by the time the
// caller locks it.
func (t *Tree) traceLineage(key Key) (Lineage, error) {
	lin := t.newLineage()
	cur := t.Root()
	depth := 0
	lin[depth] = cur

	for steps := 0; steps < t.arena.Size(); steps++ {
		if t.arena.IsLeaf(cur) {
			return lin, nil
		}

		n := t.arena.Read(cur)
		i := n.childIndex(key)
		if i < 0 {
			if n.Next != InvalidAddr {
				if !t.arena.Contains(n.Next) || t.arena.Level(n.Next) != t.arena.Level(cur) {
					break
				}
				// The key is beyond this node; a concurrent split moved it right.
				cur = n.Next
				lin[depth] = cur
				continue
			}
			// Rightmost node of its level: the key extends the top of the key space.
			i = n.Len() - 1
			if i < 0 {
				break
			}
		}

		child := n.Values[i].Addr()
		if !t.arena.Contains(child) || t.arena.Level(child) != t.arena.Level(cur)-1 {
			break
		}
		depth++
		lin[depth] = child
		cur = child
	}
	return nil, errors.Wrapf(ErrNotFound, "no leaf for key %d", key)
}
