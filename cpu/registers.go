package cpu

const (
	V_COUNT = 16  // General purpose registers V0-VF.
	V_FLAG  = 0xF // VF doubles as the carry/borrow/collision flag.
)

// Registers holds the register file: sixteen 8-bit general registers,
// the 16-bit index register I, and the 16-bit program counter.
//
// VF is written as a flag by the arithmetic, shift, and draw
// instructions, even when it was an operand of the same instruction.
type Registers struct {
	V  [V_COUNT]uint8
	I  uint16
	PC uint16
}

// Reset clears the register file and points PC at the program region.
func (r *Registers) Reset() {
	clear(r.V[:])
	r.I = 0
	r.PC = PROGRAM_START
}
