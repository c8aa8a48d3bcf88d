package btree

import (
	"fmt"
	"sync/atomic"

	"github.com/huynhanx03/go-bptree/pkg/common/locks"
	pkgRuntime "github.com/huynhanx03/go-bptree/pkg/runtime"
	"github.com/huynhanx03/go-bptree/pkg/settings"
)

// slot is the per-node header. seq is odd while a write-back is in flight.
type slot struct {
	lock locks.SpinLock
	seq  atomic.Uint32
	next atomic.Uint32
}

// Arena is the fixed pool of node slots. Level l owns addresses
// [l*NodesPerLevel, (l+1)*NodesPerLevel); level 0 holds the leaves.
// Key and value words live in flat arrays indexed by addr*order+i.
type Arena struct {
	order         int
	nodesPerLevel int
	maxLevels     int

	slots []slot
	keys  []atomic.Uint32
	vals  []atomic.Uint32
}

func newArena(cfg *settings.BTree) *Arena {
	size := cfg.MemSize()
	a := &Arena{
		order:         cfg.Order,
		nodesPerLevel: cfg.NodesPerLevel,
		maxLevels:     cfg.MaxLevels,
		slots:         make([]slot, size),
		keys:          make([]atomic.Uint32, size*cfg.Order),
		vals:          make([]atomic.Uint32, size*cfg.Order),
	}
	a.Reset()
	return a
}

// Size returns the number of slots (MemSize).
func (a *Arena) Size() int { return len(a.slots) }

func (a *Arena) Order() int { return a.order }

func (a *Arena) NodesPerLevel() int { return a.nodesPerLevel }

func (a *Arena) MaxLevels() int { return a.maxLevels }

// Contains reports whether addr names a slot.
func (a *Arena) Contains(addr Addr) bool { return int64(addr) < int64(len(a.slots)) }

// Level returns the tree level addr belongs to.
func (a *Arena) Level(addr Addr) int { return int(addr) / a.nodesPerLevel }

// IsLeaf reports whether addr is in the leaf level.
func (a *Arena) IsLeaf(addr Addr) bool { return int(addr) < a.nodesPerLevel }

// LevelStart returns the first address of level l.
func (a *Arena) LevelStart(l int) Addr { return Addr(l * a.nodesPerLevel) }

func (a *Arena) mustContain(addr Addr) {
	if !a.Contains(addr) {
		panic(fmt.Sprintf("btree: address %d outside arena of %d slots", addr, len(a.slots)))
	}
}

// Read returns an unlocked copy of the node at addr. The copy is internally
// consistent but may be outdated as soon as it is returned.
func (a *Arena) Read(addr Addr) Node {
	a.mustContain(addr)
	s := &a.slots[addr]
	n := newNode(a.order)

	for spin := 0; ; spin++ {
		seq := s.seq.Load()
		if seq&1 == 0 {
			a.load(addr, &n)
			if s.seq.Load() == seq {
				return n
			}
		}
		pkgRuntime.Backoff(spin)
	}
}

// ReadLock acquires the lock of addr and returns a copy the caller owns
// until WriteUnlock or Unlock.
func (a *Arena) ReadLock(addr Addr) Node {
	a.mustContain(addr)
	a.slots[addr].lock.Lock()

	n := newNode(a.order)
	a.load(addr, &n)
	return n
}

// WriteUnlock stores n at addr and releases the lock taken by ReadLock.
func (a *Arena) WriteUnlock(addr Addr, n Node) {
	a.mustContain(addr)
	s := &a.slots[addr]
	if !s.lock.IsHeld() {
		panic(fmt.Sprintf("btree: write-back of unlocked node %d", addr))
	}

	base := int(addr) * a.order
	s.seq.Add(1)
	for i := 0; i < a.order; i++ {
		a.keys[base+i].Store(uint32(n.Keys[i]))
		a.vals[base+i].Store(n.Values[i].raw)
	}
	s.next.Store(uint32(n.Next))
	s.seq.Add(1)
	s.lock.Unlock()
}

// Unlock releases addr without writing.
func (a *Arena) Unlock(addr Addr) {
	a.mustContain(addr)
	a.slots[addr].lock.Unlock()
}

// IsLocked reports whether addr is currently locked.
func (a *Arena) IsLocked(addr Addr) bool {
	a.mustContain(addr)
	return a.slots[addr].lock.IsHeld()
}

// isFree peeks at the first key of addr without any synchronization beyond the atomic load.
func (a *Arena) isFree(addr Addr) bool {
	a.mustContain(addr)
	return Key(a.keys[int(addr)*a.order].Load()) == InvalidKey
}

// Reset empties every slot and releases every lock. It must not run concurrently
// with any other arena operation.
func (a *Arena) Reset() {
	for i := range a.slots {
		s := &a.slots[i]
		s.lock.Init()
		s.seq.Store(0)
		s.next.Store(uint32(InvalidAddr))
	}
	for i := range a.keys {
		a.keys[i].Store(uint32(InvalidKey))
		a.vals[i].Store(invalidRaw)
	}
}

func (a *Arena) load(addr Addr, n *Node) {
	base := int(addr) * a.order
	leaf := a.IsLeaf(addr)
	for i := 0; i < a.order; i++ {
		n.Keys[i] = Key(a.keys[base+i].Load())
		n.Values[i] = rawValue(a.vals[base+i].Load(), leaf)
	}
	n.Next = Addr(a.slots[addr].next.Load())
}
