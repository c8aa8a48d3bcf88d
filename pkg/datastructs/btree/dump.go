package btree

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Dump writes every occupied slot, leaves first, one line per node.
func (t *Tree) Dump(w io.Writer) error {
	var b bytes.Buffer
	rootLevel := t.arena.Level(t.Root())
	fmt.Fprintf(&b, "root %d (level %d)\n", t.Root(), rootLevel)

	for lvl := 0; lvl <= rootLevel; lvl++ {
		fmt.Fprintf(&b, "level %d\n", lvl)
		start := t.arena.LevelStart(lvl)
		for addr := start; addr < start+Addr(t.arena.NodesPerLevel()); addr++ {
			n := t.arena.Read(addr)
			if n.IsEmpty() {
				continue
			}
			cnt := n.Len()
			fmt.Fprintf(&b, "  %4d keys=%v vals=%v", addr, n.Keys[:cnt], n.Values[:cnt])
			if n.Next != InvalidAddr {
				fmt.Fprintf(&b, " next=%d", n.Next)
			}
			if t.arena.IsLocked(addr) {
				b.WriteString(" locked")
			}
			b.WriteByte('\n')
		}
	}

	if _, err := w.Write(b.Bytes()); err != nil {
		return errors.Wrap(err, "write dump")
	}
	return nil
}
