package io

import (
	"fmt"
	"iter"
	"maps"
)

const (
	TIMER_HZ = 60 // Decrement cadence, decoupled from instruction rate.
)

var _timers_defines = map[string]string{
	"TIMER_HZ": fmt.Sprintf("%v", TIMER_HZ),
}

// Timers holds the delay and sound timers. Both decrement once per
// Tick and floor at zero; only instructions ever raise them.
type Timers struct {
	Delay uint8
	Sound uint8
}

// Defines for the timers
func (tm *Timers) Defines() iter.Seq2[string, string] {
	return maps.All(_timers_defines)
}

// Reset zeroes both timers.
func (tm *Timers) Reset() {
	tm.Delay = 0
	tm.Sound = 0
}

// Tick decrements each nonzero timer by one. The host calls this at a
// fixed TIMER_HZ cadence, independent of instruction throughput.
func (tm *Timers) Tick() {
	if tm.Delay > 0 {
		tm.Delay--
	}
	if tm.Sound > 0 {
		tm.Sound--
	}
}

// Sounding reports whether the sound timer is running. This is the
// only signal exposed to an audio collaborator.
func (tm *Timers) Sounding() bool {
	return tm.Sound > 0
}

// String returns the current timer state, for debugging.
func (tm *Timers) String() string {
	return fmt.Sprintf("delay: %3d sound: %3d", tm.Delay, tm.Sound)
}
