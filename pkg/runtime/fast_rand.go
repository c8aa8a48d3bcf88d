package runtime

import (
	_ "unsafe" // for go:linkname
)

// Uint32n returns a fast random uint32 value in [0, n).
//
//go:linkname Uint32n runtime.fastrandn
func Uint32n(n uint32) uint32

// Shuffle permutes the first n elements in place through swap.
func Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, int(Uint32n(uint32(i+1))))
	}
}
