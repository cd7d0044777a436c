// Package cpu implements the CHIP-8 machine core and its assembler.
//
// The machine consists of a 4 KB memory with a reserved interpreter
// region holding the hex-digit font, sixteen 8-bit registers plus the
// 16-bit index register and program counter, a 16-deep return stack,
// and the fetch-decode-execute engine. Display, keypad, and timer
// devices are owned by the Cpu but live in the io package; the host
// drives Step() at its own rate and Timers.Tick() at 60Hz.
//
// The assembler provides a small assembly language for the CHIP-8
// instruction set, supporting labels, equates, raw data rows, and
// compile-time expression evaluation.
package cpu
