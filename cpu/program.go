package cpu

import (
	"iter"
)

// Program is an assembled listing: encoded opcodes with the source
// line each came from.
type Program struct {
	Opcodes []Opcode
}

// Binary flattens the listing into a ROM image, loadable at
// PROGRAM_START.
func (prog *Program) Binary() (rom []byte) {
	size := 0
	for _, op := range prog.Opcodes {
		end := op.Addr - PROGRAM_START + len(op.Bytes)
		if end > size {
			size = end
		}
	}

	rom = make([]byte, size)
	for _, op := range prog.Opcodes {
		copy(rom[op.Addr-PROGRAM_START:], op.Bytes)
	}

	return
}

// LineAt maps a machine address back to the source line number that
// produced it, or 0 if the address is outside the listing.
func (prog *Program) LineAt(addr uint16) (lineno int) {
	for _, op := range prog.Opcodes {
		if int(addr) >= op.Addr && int(addr) < op.Addr+len(op.Bytes) {
			lineno = op.LineNo
			return
		}
	}

	return
}

// Codes iterates over the instruction words of the listing, keyed by
// address. Data rows (.db) are skipped.
func (prog *Program) Codes() iter.Seq2[uint16, Code] {
	return func(yield func(addr uint16, code Code) bool) {
		for _, op := range prog.Opcodes {
			if len(op.Bytes) != 2 || op.Data {
				continue
			}
			code := Code(uint16(op.Bytes[0])<<8 | uint16(op.Bytes[1]))
			if !yield(uint16(op.Addr), code) {
				return
			}
		}
	}
}
