package cpu

import (
	"errors"
)

const (
	MEMORY_SIZE   = 0x1000                      // 4 KB address space, 0x000-0xFFF.
	PROGRAM_START = 0x200                       // Programs load here.
	PROGRAM_LIMIT = MEMORY_SIZE - PROGRAM_START // Maximum program image size.

	FONT_START  = 0x000 // Font table base in the reserved region.
	FONT_HEIGHT = 5     // Bytes (rows) per font sprite.
	FONT_DIGITS = 16    // Digits 0x0-0xF.
)

// The canonical CHIP-8 hex-digit font, 4x5 pixels per digit.
var fontset = [FONT_DIGITS * FONT_HEIGHT]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the flat 4 KB byte store of the machine.
//
// Addresses below PROGRAM_START are the interpreter region: readable
// (the font lives there) but never writable through WriteByte, which
// is the path every executing instruction uses.
type Memory struct {
	Data [MEMORY_SIZE]uint8
}

// Reset clears all of memory and reloads the font table.
func (m *Memory) Reset() {
	clear(m.Data[:])
	copy(m.Data[FONT_START:], fontset[:])
}

// ReadByte reads one byte, validating the address range.
func (m *Memory) ReadByte(addr uint16) (value uint8, err error) {
	if addr >= MEMORY_SIZE {
		err = errors.Join(ErrMemoryRange, ErrAddress(addr))
		return
	}

	value = m.Data[addr]
	return
}

// ReadWord reads a big-endian 16-bit word, high byte first.
func (m *Memory) ReadWord(addr uint16) (word uint16, err error) {
	if int(addr)+1 >= MEMORY_SIZE {
		err = errors.Join(ErrMemoryRange, ErrAddress(addr))
		return
	}

	word = uint16(m.Data[addr])<<8 | uint16(m.Data[addr+1])
	return
}

// WriteByte writes one byte, validating the address range and
// rejecting the reserved interpreter region.
func (m *Memory) WriteByte(addr uint16, value uint8) (err error) {
	if addr >= MEMORY_SIZE {
		err = errors.Join(ErrMemoryRange, ErrAddress(addr))
		return
	}
	if addr < PROGRAM_START {
		err = errors.Join(ErrMemoryReserved, ErrAddress(addr))
		return
	}

	m.Data[addr] = value
	return
}

// Load copies a program image into memory at PROGRAM_START.
func (m *Memory) Load(rom []byte) (err error) {
	if len(rom) > PROGRAM_LIMIT {
		err = ErrProgramSize
		return
	}

	copy(m.Data[PROGRAM_START:], rom)
	return
}

// SpriteAddress returns the font sprite address for a hex digit.
func (m *Memory) SpriteAddress(digit uint8) (addr uint16, err error) {
	if digit >= FONT_DIGITS {
		err = ErrFontDigit
		return
	}

	addr = FONT_START + uint16(digit)*FONT_HEIGHT
	return
}
