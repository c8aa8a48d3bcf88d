package btree

import "github.com/pkg/errors"

// allocSibling locks the first free slot on cur's level.
func (t *Tree) allocSibling(tx *latchSet, cur Addr) (*latched, error) {
	start := t.arena.LevelStart(t.arena.Level(cur))
	end := start + Addr(t.arena.NodesPerLevel())

	for a := start; a < end; a++ {
		if a == cur || !t.arena.isFree(a) {
			continue
		}
		l := tx.lock(a)
		if l.node.IsEmpty() {
			return l, nil
		}
		// Taken by a concurrent split between the peek and the lock.
		tx.release(l)
	}
	return nil, errors.Wrapf(ErrOutOfMemory, "level %d has no free node", t.arena.Level(cur))
}

// splitResult describes the nodes a split added.
type splitResult struct {
	sib  *latched
	root *latched
}

// splitNode splits the full cur into cur and a new right sibling, placing the
// pending entry in whichever half it belongs to. With no parent a new root is
// built above both halves. With a parent the sibling is linked into it, unless
// the parent is full, in which case errParentFull is returned and the caller
// pushes the sibling one level up.
func (t *Tree) splitNode(tx *latchSet, cur, parent *latched, key Key, val Value) (splitResult, error) {
	sib, err := t.allocSibling(tx, cur.addr)
	if err != nil {
		return splitResult{}, err
	}

	next := cur.node.Next
	cur.node.distribute(&sib.node, key, val)
	sib.node.Next = next
	cur.node.Next = sib.addr
	cur.dirty, sib.dirty = true, true
	res := splitResult{sib: sib}

	if parent == nil {
		rootAddr := t.arena.LevelStart(t.arena.Level(cur.addr) + 1)
		if !t.arena.Contains(rootAddr) {
			return res, errors.Wrapf(ErrOutOfMemory, "no level above root %d", cur.addr)
		}
		root := tx.lock(rootAddr)
		if !root.node.IsEmpty() {
			return res, errStalePath
		}
		root.node.Keys[0], root.node.Values[0] = cur.node.MaxKey(), Pointer(cur.addr)
		root.node.Keys[1], root.node.Values[1] = sib.node.MaxKey(), Pointer(sib.addr)
		root.dirty = true
		res.root = root
		return res, nil
	}

	if parent.node.IsFull() {
		return res, errParentFull
	}
	s := parent.node.slotOf(cur.addr)
	if s < 0 {
		return res, errStalePath
	}
	parent.node.Keys[s] = cur.node.MaxKey()
	parent.node.insertAt(s+1, sib.node.MaxKey(), Pointer(sib.addr))
	parent.dirty = true
	return res, nil
}
