package io

import (
	"fmt"
	"iter"
	"maps"
)

const (
	KEY_COUNT = 16 // Keys 0x0 through 0xF.
)

var _keypad_defines = map[string]string{
	"KEY_COUNT": fmt.Sprintf("%v", KEY_COUNT),
}

// Keypad is the 16-key logical keypad of the CHIP-8 machine.
//
// The host mirrors physical key state into it with SetKey; the core
// only reads. Press-edges (false to true transitions) are latched
// separately from held state so a wait-for-key never completes on a
// key that was already down.
type Keypad struct {
	Down [KEY_COUNT]bool

	edge [KEY_COUNT]bool
}

// Defines for the keypad
func (kp *Keypad) Defines() iter.Seq2[string, string] {
	return maps.All(_keypad_defines)
}

// Reset releases all keys and drops latched press-edges.
func (kp *Keypad) Reset() {
	clear(kp.Down[:])
	clear(kp.edge[:])
}

// SetKey records the host-observed state of a key. A false to true
// transition latches a press-edge.
func (kp *Keypad) SetKey(key uint8, down bool) (err error) {
	if key >= KEY_COUNT {
		err = ErrKeyInvalid
		return
	}

	if down && !kp.Down[key] {
		kp.edge[key] = true
	}
	kp.Down[key] = down

	return
}

// IsDown reports whether a key is currently held. Out-of-range keys
// report not held.
func (kp *Keypad) IsDown(key uint8) bool {
	return key < KEY_COUNT && kp.Down[key]
}

// TakePress consumes and returns the lowest latched press-edge.
func (kp *Keypad) TakePress() (key uint8, ok bool) {
	for k := range uint8(KEY_COUNT) {
		if kp.edge[k] {
			kp.edge[k] = false
			key = k
			ok = true
			return
		}
	}

	return
}

// DropPresses discards all latched press-edges. The machine calls this
// when a wait-for-key begins, so only presses made while waiting count.
func (kp *Keypad) DropPresses() {
	clear(kp.edge[:])
}
