package btree

import "sort"

// latched is a node locked by the running insert together with its private copy.
type latched struct {
	addr  Addr
	node  Node
	dirty bool
	seq   int
}

// latchSet tracks every node an insert holds. Nothing reaches the arena until
// commit; abort drops all copies.
type latchSet struct {
	arena *Arena
	held  []*latched
	taken int
}

func newLatchSet(a *Arena) *latchSet {
	return &latchSet{arena: a}
}

// lock blocks on addr and adds it to the set.
func (s *latchSet) lock(addr Addr) *latched {
	l := &latched{addr: addr, node: s.arena.ReadLock(addr), seq: s.taken}
	s.taken++
	s.held = append(s.held, l)
	return l
}

// release unlocks a single unmodified member.
func (s *latchSet) release(l *latched) {
	for i, h := range s.held {
		if h == l {
			s.held = append(s.held[:i], s.held[i+1:]...)
			break
		}
	}
	s.arena.Unlock(l.addr)
}

// abort releases every lock without writing.
func (s *latchSet) abort() {
	for i := len(s.held) - 1; i >= 0; i-- {
		s.arena.Unlock(s.held[i].addr)
	}
	s.held = nil
}

// commit writes dirty copies back and releases everything. Lower levels go
// first so a node is visible before anything points at it, and within a level
// later locks go first so a new sibling lands before its left neighbour links it.
// publish, when set, runs after everything but oldRoot has been written, and
// oldRoot is released last.
func (s *latchSet) commit(oldRoot *latched, publish func()) {
	sort.SliceStable(s.held, func(i, j int) bool {
		li, lj := s.arena.Level(s.held[i].addr), s.arena.Level(s.held[j].addr)
		if li != lj {
			return li < lj
		}
		return s.held[i].seq > s.held[j].seq
	})

	for _, l := range s.held {
		if l == oldRoot {
			continue
		}
		s.flush(l)
	}
	if publish != nil {
		publish()
	}
	if oldRoot != nil {
		s.flush(oldRoot)
	}
	s.held = nil
}

func (s *latchSet) flush(l *latched) {
	if l.dirty {
		s.arena.WriteUnlock(l.addr, l.node)
		return
	}
	s.arena.Unlock(l.addr)
}
