package btree

import "fmt"

type (
	// Key orders entries. InvalidKey is reserved.
	Key uint32
	// Data is the payload stored next to a key in a leaf.
	Data int32
	// Addr is the index of a node slot in the arena.
	Addr uint32
)

// Value is either a child pointer (inner nodes) or a payload (leaves).
// The arena stores only the raw bits; which one it is depends on the owning node.
type Value struct {
	raw     uint32
	pointer bool
}

// Pointer wraps a child address.
func Pointer(a Addr) Value {
	return Value{raw: uint32(a), pointer: true}
}

// Payload wraps leaf data.
func Payload(d Data) Value {
	return Value{raw: uint32(d)}
}

func rawValue(raw uint32, leaf bool) Value {
	return Value{raw: raw, pointer: !leaf}
}

func (v Value) IsPointer() bool { return v.pointer }

// Addr returns the child address. It panics on a payload.
func (v Value) Addr() Addr {
	if !v.pointer {
		panic("btree: payload value read as pointer")
	}
	return Addr(v.raw)
}

// Data returns the payload. It panics on a pointer.
func (v Value) Data() Data {
	if v.pointer {
		panic("btree: pointer value read as payload")
	}
	return Data(int32(v.raw))
}

func (v Value) String() string {
	if v.pointer {
		if Addr(v.raw) == InvalidAddr {
			return "-"
		}
		return fmt.Sprintf("@%d", v.raw)
	}
	return fmt.Sprintf("%d", int32(v.raw))
}

// Entry is one key/data pair for batch loading.
type Entry struct {
	Key  Key
	Data Data
}

// Lineage is the root-to-leaf path of one descent. Unused tail entries are InvalidAddr.
type Lineage []Addr

// Leaf returns the last valid address, or InvalidAddr for an empty lineage.
func (l Lineage) Leaf() Addr {
	d := l.Depth()
	if d < 0 {
		return InvalidAddr
	}
	return l[d]
}

// Depth returns the index of the leaf entry, or -1 for an empty lineage.
func (l Lineage) Depth() int {
	for i := len(l) - 1; i >= 0; i-- {
		if l[i] != InvalidAddr {
			return i
		}
	}
	return -1
}
