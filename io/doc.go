// Package io provides the host-facing devices of the CHIP-8 machine:
// the monochrome display, the 16-key keypad, and the delay/sound timers.
//
// Devices hold state only. The host mutates the keypad and reads the
// display around each frame; the cpu package mutates the display and
// timers and reads the keypad while executing instructions. No device
// performs any presentation, audio, or input polling itself.
package io
