package runtime

import (
	goruntime "runtime"
	_ "unsafe" // for go:linkname
)

const (
	// Active spin: PAUSE instruction keeps the core warm.
	// Passive spin: yield the processor to the scheduler.
	activeSpinCycles = 4
	activeSpinTries  = 30
)

// Procyield spins for a given number of cycles without yielding to the scheduler.
// It uses the CPU PAUSE instruction on x86 to reduce power consumption during spinning.
// cycles: number of spin iterations (typically 4-30 for short waits).
//
//go:linkname Procyield runtime.procyield
func Procyield(cycles uint32)

// Backoff waits a little before the caller's next attempt. The first
// activeSpinTries attempts spin with PAUSE, later ones yield to the scheduler.
func Backoff(attempt int) {
	if attempt < activeSpinTries {
		Procyield(activeSpinCycles)
		return
	}
	goruntime.Gosched()
}
