package btree

import "github.com/pkg/errors"

// Node is a private copy of one arena slot. Keys is a strictly ascending prefix
// followed by InvalidKey padding, Values[i] belongs to Keys[i].
type Node struct {
	Keys   []Key
	Values []Value
	Next   Addr
}

func newNode(order int) Node {
	n := Node{
		Keys:   make([]Key, order),
		Values: make([]Value, order),
	}
	n.clear(false)
	return n
}

func (n *Node) clear(leaf bool) {
	for i := range n.Keys {
		n.Keys[i] = InvalidKey
		n.Values[i] = rawValue(invalidRaw, leaf)
	}
	n.Next = InvalidAddr
}

// Len returns the number of occupied slots.
func (n Node) Len() int {
	for i, k := range n.Keys {
		if k == InvalidKey {
			return i
		}
	}
	return len(n.Keys)
}

func (n Node) IsEmpty() bool { return n.Keys[0] == InvalidKey }

func (n Node) IsFull() bool { return n.Keys[len(n.Keys)-1] != InvalidKey }

// MaxKey returns the last occupied key, or Keys[0] for an empty node.
func (n Node) MaxKey() Key {
	for i := len(n.Keys) - 1; i > 0; i-- {
		if n.Keys[i] != InvalidKey {
			return n.Keys[i]
		}
	}
	return n.Keys[0]
}

// find returns the slot holding key.
func (n Node) find(key Key) (int, bool) {
	for i, k := range n.Keys {
		if k == key {
			return i, true
		}
		if k > key {
			break
		}
	}
	return -1, false
}

// childIndex returns the first slot whose separator is not below key, or -1.
func (n Node) childIndex(key Key) int {
	for i, k := range n.Keys {
		if k == InvalidKey {
			break
		}
		if key <= k {
			return i
		}
	}
	return -1
}

// slotOf returns the slot pointing at child, or -1.
func (n Node) slotOf(child Addr) int {
	for i := 0; i < n.Len(); i++ {
		if n.Values[i].IsPointer() && n.Values[i].Addr() == child {
			return i
		}
	}
	return -1
}

// insertAt shifts slots [i, Len) right by one and stores the entry at i.
func (n *Node) insertAt(i int, key Key, val Value) {
	copy(n.Keys[i+1:], n.Keys[i:len(n.Keys)-1])
	copy(n.Values[i+1:], n.Values[i:len(n.Values)-1])
	n.Keys[i] = key
	n.Values[i] = val
}

// insertSorted places the entry at its ordered position.
func (n *Node) insertSorted(key Key, val Value) error {
	if n.IsFull() {
		return ErrOutOfMemory
	}
	i := 0
	for ; n.Keys[i] != InvalidKey; i++ {
		if n.Keys[i] == key {
			return errors.WithStack(ErrKeyExists)
		}
		if n.Keys[i] > key {
			break
		}
	}
	n.insertAt(i, key, val)
	return nil
}

// rekeyChild replaces the separator of child and reports whether child was found.
func (n *Node) rekeyChild(child Addr, key Key) bool {
	i := n.slotOf(child)
	if i < 0 {
		return false
	}
	n.Keys[i] = key
	return true
}

// distribute moves the entries of a full n plus one pending entry into n and
// the empty right. For an even order the left half keeps order/2 entries and
// takes the pending one when it sorts before its maximum; for an odd order both
// halves end up with (order+1)/2 entries.
func (n *Node) distribute(right *Node, key Key, val Value) {
	order := len(n.Keys)
	keys := make([]Key, 0, order+1)
	vals := make([]Value, 0, order+1)

	pos := order
	for i := 0; i < order; i++ {
		if pos == order && key < n.Keys[i] {
			pos = i
			keys = append(keys, key)
			vals = append(vals, val)
		}
		keys = append(keys, n.Keys[i])
		vals = append(vals, n.Values[i])
	}
	if pos == order {
		keys = append(keys, key)
		vals = append(vals, val)
	}

	left := (order + 1) / 2
	if order%2 == 0 && pos < order/2 {
		left++
	}

	leaf := !val.IsPointer()
	n.clear(leaf)
	right.clear(leaf)
	copy(n.Keys, keys[:left])
	copy(n.Values, vals[:left])
	copy(right.Keys, keys[left:])
	copy(right.Values, vals[left:])
}
