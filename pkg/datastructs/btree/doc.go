// Package btree implements a fixed-capacity B+ tree whose nodes live in a
// preallocated arena partitioned by level.
//
// The arena holds NodesPerLevel slots for every one of MaxLevels levels.
// Leaves occupy level 0, the root starts at address 0 and only ever moves up a
// level. A node's level and kind follow from its address alone, so a value slot
// stores raw bits and is read as a child pointer or a payload depending on
// where it lives.
//
// Every slot carries its own spinlock. Readers never lock: they copy a node
// under a per-slot sequence counter and treat the copy as a snapshot.
// Writers lock the traced leaf and its parent, work on private copies and
// publish them only when the whole insert, including every split it cascades
// into, has succeeded. A failed insert leaves the arena untouched.
//
// Separators are the largest key of the child they bound, and descent takes
// the first child whose separator is not below the key. Nodes on the same
// level are chained left to right through Next.
package btree
