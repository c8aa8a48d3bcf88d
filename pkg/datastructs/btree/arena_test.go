package btree

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Access Tests
// =============================================================================

func TestArena_Geometry(t *testing.T) {
	tr := newTestTree(t, 4, 10, 4)
	a := tr.Arena()

	tests := []struct {
		addr  Addr
		level int
		leaf  bool
	}{
		{0, 0, true},
		{9, 0, true},
		{10, 1, false},
		{39, 3, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.level, a.Level(tt.addr), "addr %d", tt.addr)
		assert.Equal(t, tt.leaf, a.IsLeaf(tt.addr), "addr %d", tt.addr)
	}
	assert.True(t, a.Contains(39))
	assert.False(t, a.Contains(40))
	assert.Equal(t, Addr(20), a.LevelStart(2))
}

func TestArena_ReadLockWriteUnlock(t *testing.T) {
	tr := newTestTree(t, 4, 10, 4)
	a := tr.Arena()

	n := a.ReadLock(3)
	assert.True(t, a.IsLocked(3))
	n.Keys[0], n.Values[0] = 7, Payload(70)
	n.Next = 4

	// Unlocked reads do not see the private copy.
	assert.True(t, a.Read(3).IsEmpty())

	a.WriteUnlock(3, n)
	assert.False(t, a.IsLocked(3))
	got := a.Read(3)
	assert.Equal(t, Key(7), got.Keys[0])
	assert.Equal(t, Data(70), got.Values[0].Data())
	assert.Equal(t, Addr(4), got.Next)
}

func TestArena_UnlockDiscards(t *testing.T) {
	tr := newTestTree(t, 4, 10, 4)
	a := tr.Arena()

	n := a.ReadLock(12)
	n.Keys[0] = 1
	a.Unlock(12)

	assert.False(t, a.IsLocked(12))
	assert.True(t, a.Read(12).IsEmpty())
	assert.True(t, a.Read(12).Values[0].IsPointer(), "inner slots decode as pointers")
}

func TestArena_OutOfRangePanics(t *testing.T) {
	tr := newTestTree(t, 4, 10, 4)
	a := tr.Arena()
	n := newNode(4)

	tests := []struct {
		name string
		fn   func()
	}{
		{"read", func() { a.Read(40) }},
		{"read_lock", func() { a.ReadLock(40) }},
		{"write_unlock", func() { a.WriteUnlock(InvalidAddr, n) }},
		{"unlock", func() { a.Unlock(100) }},
		{"is_locked", func() { a.IsLocked(40) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, tt.fn)
		})
	}
}

func TestArena_WriteWithoutLockPanics(t *testing.T) {
	tr := newTestTree(t, 4, 10, 4)
	a := tr.Arena()
	assert.Panics(t, func() { a.WriteUnlock(1, a.Read(1)) })
	assert.Panics(t, func() { a.Unlock(1) })
}

func TestArena_Reset(t *testing.T) {
	tr := newTestTree(t, 4, 10, 4)
	a := tr.Arena()
	writeNode(tr, 5, []Key{1, 2}, []uint32{10, 20}, 6)
	a.ReadLock(7)

	a.Reset()
	assert.True(t, a.Read(5).IsEmpty())
	assert.Equal(t, InvalidAddr, a.Read(5).Next)
	assert.False(t, a.IsLocked(7))
}

// =============================================================================
// Concurrency Tests
// =============================================================================

// Readers must never observe a half-written node.
func TestArena_ReadIsConsistent(t *testing.T) {
	const rounds = 5000
	tr := newTestTree(t, 4, 10, 4)
	a := tr.Arena()
	writeNode(tr, 2, []Key{1, 2, 3, 4}, []uint32{1, 2, 3, 4}, InvalidAddr)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= rounds; i++ {
			n := a.ReadLock(2)
			base := Key(i * 10)
			for j := range n.Keys {
				n.Keys[j] = base + Key(j)
				n.Values[j] = Payload(Data(base))
			}
			a.WriteUnlock(2, n)
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				n := a.Read(2)
				for j := 1; j < len(n.Keys); j++ {
					if n.Keys[j] != n.Keys[0]+Key(j) {
						t.Errorf("torn read: %v", n.Keys)
						return
					}
				}
			}
		}()
	}
	wg.Wait()
	require.False(t, a.IsLocked(2))
}
