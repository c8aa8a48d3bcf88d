package runtime

import (
	_ "unsafe" // for go:linkname
)

// NanoTime returns the current time in nanoseconds from a monotonic clock.
//
//go:linkname NanoTime runtime.nanotime
func NanoTime() int64

// SinceSeconds returns the seconds elapsed since start, a NanoTime reading.
func SinceSeconds(start int64) float64 {
	return float64(NanoTime()-start) / 1e9
}
