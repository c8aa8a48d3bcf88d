package btree

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-bptree/pkg/metrics"
	pkgRuntime "github.com/huynhanx03/go-bptree/pkg/runtime"
)

// Insert stores data under key. It fails with ErrKeyExists for a present key
// and with ErrOutOfMemory when a split needs a node the arena cannot supply;
// in both cases the tree is left unchanged.
func (t *Tree) Insert(key Key, data Data) (err error) {
	start := pkgRuntime.NanoTime()
	defer func() {
		t.metrics.RecordInsert(insertResult(err), start)
	}()

	if key == InvalidKey {
		return errors.Wrapf(ErrInvalidArgument, "key %d is reserved", key)
	}

	for attempt := 0; ; attempt++ {
		err = t.insert(key, Payload(data))
		if !errors.Is(err, errStalePath) {
			if errors.Is(err, ErrOutOfMemory) {
				t.log.Warn("insert rejected, arena exhausted", zap.Uint32("key", uint32(key)), zap.Error(err))
			}
			return err
		}
		t.metrics.RecordRetry()
		pkgRuntime.Backoff(attempt)
	}
}

// insert makes one attempt. Every lock taken is released before it returns.
func (t *Tree) insert(key Key, val Value) error {
	lin, err := t.traceLineage(key)
	if err != nil {
		return err
	}

	tx := newLatchSet(t.arena)
	depth := lin.Depth()
	cur, parent := t.lockStep(tx, lin, depth)
	if err := t.verifyLeaf(cur, parent, key); err != nil {
		tx.abort()
		return err
	}
	if _, ok := cur.node.find(key); ok {
		tx.abort()
		return errors.Wrapf(ErrKeyExists, "key %d", key)
	}

	var splits []string
	for {
		if !cur.node.IsFull() {
			if err := cur.node.insertSorted(key, val); err != nil {
				tx.abort()
				return err
			}
			cur.dirty = true
			t.commit(tx, nil, splits)
			return nil
		}

		res, err := t.splitNode(tx, cur, parent, key, val)
		if err == nil {
			splits = append(splits, t.splitKind(cur.addr))
			if res.root != nil {
				splits = append(splits, metrics.SplitRoot)
			}
			t.commit(tx, res.root, splits)
			return nil
		}
		if !errors.Is(err, errParentFull) {
			tx.abort()
			return err
		}
		splits = append(splits, t.splitKind(cur.addr))

		// Push the new sibling into the parent, which splits in turn.
		parent.node.rekeyChild(cur.addr, cur.node.MaxKey())
		parent.dirty = true
		key, val = res.sib.node.MaxKey(), Pointer(res.sib.addr)

		depth--
		cur, parent = parent, nil
		if depth > 0 {
			parent = tx.lock(lin[depth-1])
		}
		if err := t.verifyLink(cur, parent); err != nil {
			tx.abort()
			return err
		}
	}
}

// lockStep locks the node at depth and then its lineage parent.
func (t *Tree) lockStep(tx *latchSet, lin Lineage, depth int) (cur, parent *latched) {
	cur = tx.lock(lin[depth])
	if depth > 0 {
		parent = tx.lock(lin[depth-1])
	}
	return cur, parent
}

// verifyLink checks under the locks that parent still points at cur, or, with
// no parent, that cur is still the root.
func (t *Tree) verifyLink(cur, parent *latched) error {
	if parent == nil {
		if t.Root() != cur.addr {
			return errStalePath
		}
		return nil
	}
	if parent.node.slotOf(cur.addr) < 0 {
		return errStalePath
	}
	return nil
}

// verifyLeaf is verifyLink plus a check that key still falls in the leaf's range.
func (t *Tree) verifyLeaf(cur, parent *latched, key Key) error {
	if err := t.verifyLink(cur, parent); err != nil || parent == nil {
		return err
	}
	p := &parent.node
	s := p.slotOf(cur.addr)
	if s > 0 && key <= p.Keys[s-1] {
		return errStalePath
	}
	if key > p.Keys[s] && (s != p.Len()-1 || p.Next != InvalidAddr) {
		return errStalePath
	}
	return nil
}

func (t *Tree) commit(tx *latchSet, newRoot *latched, splits []string) {
	if newRoot == nil {
		tx.commit(nil, nil)
	} else {
		oldRoot := newRoot.node.Values[0].Addr()
		var old *latched
		for _, l := range tx.held {
			if l.addr == oldRoot {
				old = l
				break
			}
		}
		tx.commit(old, func() {
			t.root.Store(uint32(newRoot.addr))
		})
		level := t.arena.Level(newRoot.addr)
		t.metrics.SetRootLevel(level)
		t.log.Debug("root grew", zap.Uint32("root", uint32(newRoot.addr)), zap.Int("level", level))
	}

	for _, kind := range splits {
		t.metrics.RecordSplit(kind)
	}
}

func (t *Tree) splitKind(addr Addr) string {
	if t.arena.IsLeaf(addr) {
		return metrics.SplitLeaf
	}
	return metrics.SplitInner
}

func insertResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, ErrKeyExists):
		return metrics.ResultExists
	case errors.Is(err, ErrOutOfMemory):
		return metrics.ResultOOM
	case errors.Is(err, ErrNotFound):
		return metrics.ResultNotFound
	default:
		return metrics.ResultInvalid
	}
}
