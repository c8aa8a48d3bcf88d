package btree

import (
	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/huynhanx03/go-bptree/pkg/utils"
)

// Validate audits the whole tree, logs every violation and reports whether
// there were none. It reads without locking and is meant for quiescent trees.
func (t *Tree) Validate() bool {
	err := t.Check()
	for _, v := range multierr.Errors(err) {
		t.log.Warn("tree invariant violated", zap.Error(v))
	}
	return err == nil
}

// Check is Validate returning the violations, combined with multierr.
func (t *Tree) Check() error {
	a := &audit{t: t, seen: make([]bool, t.arena.Size())}
	a.visit(t.Root(), true, span{open: true})
	return a.errs
}

// span is the key range a node may hold: (lo, hi], where hasLo=false drops
// the lower bound and open drops the upper one.
type span struct {
	lo, hi Key
	hasLo  bool
	open   bool
}

func (s span) admits(k Key) bool {
	if s.hasLo && k <= s.lo {
		return false
	}
	return s.open || k <= s.hi
}

type audit struct {
	t    *Tree
	seen []bool
	errs error
}

func (a *audit) fail(addr Addr, format string, args ...any) {
	a.errs = multierr.Append(a.errs, errors.Errorf("node %d: "+format, append([]any{addr}, args...)...))
}

func (a *audit) visit(addr Addr, isRoot bool, s span) {
	arena := a.t.arena
	if a.seen[addr] {
		a.fail(addr, "reachable more than once")
		return
	}
	a.seen[addr] = true

	n := arena.Read(addr)
	cnt := n.Len()
	for i := 1; i < cnt; i++ {
		if n.Keys[i] <= n.Keys[i-1] {
			a.fail(addr, "key %d at slot %d not above %d", n.Keys[i], i, n.Keys[i-1])
		}
	}
	for i := cnt; i < len(n.Keys); i++ {
		if n.Keys[i] != InvalidKey {
			a.fail(addr, "key %d at slot %d follows an empty slot", n.Keys[i], i)
		}
	}
	for i := 0; i < cnt; i++ {
		if !s.admits(n.Keys[i]) {
			a.fail(addr, "key %d outside parent range", n.Keys[i])
		}
	}
	if n.Next != InvalidAddr {
		switch {
		case !arena.Contains(n.Next):
			a.fail(addr, "sibling %d outside arena", n.Next)
		case arena.Level(n.Next) != arena.Level(addr):
			a.fail(addr, "sibling %d on level %d", n.Next, arena.Level(n.Next))
		}
	}

	if arena.IsLeaf(addr) {
		return
	}
	if isRoot && cnt < 2 {
		a.fail(addr, "inner root has %d children", cnt)
	}
	if want := utils.HalfCeil(arena.Order()); !isRoot && cnt < want {
		a.fail(addr, "%d children, want at least %d", cnt, want)
	}

	for i := 0; i < cnt; i++ {
		child := n.Values[i].Addr()
		if !arena.Contains(child) {
			a.fail(addr, "child %d outside arena", child)
			continue
		}
		if arena.Level(child) != arena.Level(addr)-1 {
			a.fail(addr, "child %d on level %d", child, arena.Level(child))
			continue
		}
		cs := span{lo: s.lo, hasLo: s.hasLo, hi: n.Keys[i], open: s.open && i == cnt-1}
		if i > 0 {
			cs.lo, cs.hasLo = n.Keys[i-1], true
		}
		a.visit(child, false, cs)
	}
}

// IsUnlocked reports whether no node reachable from the root is locked.
func (t *Tree) IsUnlocked() bool {
	unlocked := true
	t.walk(func(addr Addr, _ *Node) {
		if t.arena.IsLocked(addr) {
			t.log.Warn("node left locked", zap.Uint32("addr", uint32(addr)))
			unlocked = false
		}
	})
	return unlocked
}

// Fingerprint hashes every reachable node. Equal fingerprints mean the
// reachable structure is identical.
func (t *Tree) Fingerprint() uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 8*(t.arena.Order()+1))
	t.walk(func(addr Addr, n *Node) {
		buf = utils.AppendUint32(buf[:0], uint32(addr))
		for i := range n.Keys {
			buf = utils.AppendUint32(buf, uint32(n.Keys[i]))
			buf = utils.AppendUint32(buf, n.Values[i].raw)
		}
		buf = utils.AppendUint32(buf, uint32(n.Next))
		_, _ = d.Write(buf)
	})
	return d.Sum64()
}

// walk visits every node reachable from the root through child and sibling
// pointers, each once, in depth-first order.
func (t *Tree) walk(fn func(addr Addr, n *Node)) {
	seen := make([]bool, t.arena.Size())
	stack := []Addr{t.Root()}
	for len(stack) > 0 {
		addr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !t.arena.Contains(addr) || seen[addr] {
			continue
		}
		seen[addr] = true

		n := t.arena.Read(addr)
		fn(addr, &n)

		if n.Next != InvalidAddr {
			stack = append(stack, n.Next)
		}
		if t.arena.IsLeaf(addr) {
			continue
		}
		for i := n.Len() - 1; i >= 0; i-- {
			stack = append(stack, n.Values[i].Addr())
		}
	}
}
