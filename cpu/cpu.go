package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"math/rand/v2"

	"github.com/ezrec/chip8/io"
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":   fmt.Sprintf("%v", MEMORY_SIZE),
	"PROGRAM_START": fmt.Sprintf("%#v", PROGRAM_START),
	"FONT_START":    fmt.Sprintf("%#v", FONT_START),
	"STACK_LIMIT":   fmt.Sprintf("%v", STACK_LIMIT),
}

// Cpu is the CHIP-8 machine: the memory, register file, stack, and
// devices, together with the fetch-decode-execute engine that mutates
// them. The Cpu owns every component for its lifetime; the host talks
// to the devices only between steps.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory    Memory    // 4 KB address space.
	Registers Registers // V0-VF, I, PC.
	Stack     Stack     // Return address stack.

	Display *io.Display // Pixel grid, written by drw/cls.
	Keypad  *io.Keypad  // Key state, host-mutated, core-read.
	Timers  *io.Timers  // Delay/sound, ticked by the host at 60Hz.

	Rand func() uint8 // Random source for rnd. Replaceable in tests.

	Cycles int // Instruction cycles since reset.

	waiting bool // A wait-for-key is in progress.
}

// NewCpu creates a machine with cleared state and the font loaded.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Display: &io.Display{},
		Keypad:  &io.Keypad{},
		Timers:  &io.Timers{},
		Rand:    func() uint8 { return uint8(rand.Uint32()) },
	}
	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset returns every component to its power-on state: memory cleared
// with the font reloaded, registers zeroed with PC at PROGRAM_START,
// stack, timers, keypad, and display cleared.
func (cpu *Cpu) Reset() {
	cpu.Memory.Reset()
	cpu.Registers.Reset()
	cpu.Stack.Reset()
	cpu.Display.Reset()
	cpu.Keypad.Reset()
	cpu.Timers.Reset()
	cpu.Cycles = 0
	cpu.waiting = false
}

// Load copies a program image into memory at PROGRAM_START.
func (cpu *Cpu) Load(rom []byte) (err error) {
	return cpu.Memory.Load(rom)
}

// Sounding reports whether the sound timer is active.
func (cpu *Cpu) Sounding() bool {
	return cpu.Timers.Sounding()
}

// String returns the current machine state as a string.
func (cpu *Cpu) String() (text string) {
	for n, v := range cpu.Registers.V {
		text += fmt.Sprintf("  v%X: %02X\n", n, v)
	}
	text += fmt.Sprintf("   i: %03X\n", cpu.Registers.I)
	text += fmt.Sprintf("  pc: %03X\n", cpu.Registers.PC)

	top, ok := cpu.Stack.Peek()
	if ok {
		text += fmt.Sprintf("  sp: %d top: %03X\n", len(cpu.Stack.Data), top)
	} else {
		text += "  sp: 0 top: ---\n"
	}
	text += fmt.Sprintf("  dt: %02X st: %02X\n", cpu.Timers.Delay, cpu.Timers.Sound)

	return
}

// Fetch reads the instruction word at PC without advancing it.
func (cpu *Cpu) Fetch() (code Code, err error) {
	word, err := cpu.Memory.ReadWord(cpu.Registers.PC)
	if err != nil {
		return
	}

	code = Code(word)
	return
}

// Step performs exactly one instruction cycle: fetch the word at PC,
// advance PC by two, decode, and execute. Control flow instructions
// override PC themselves; a wait-for-key that observes no press-edge
// rewinds PC so the host's next Step re-issues it.
//
// Any fault (decode, memory, stack) is returned to the host verbatim;
// the machine never skips or recovers on its own.
func (cpu *Cpu) Step() (err error) {
	code, err := cpu.Fetch()
	if err != nil {
		return
	}

	cpu.Registers.PC += 2

	err = cpu.Execute(code)
	if err != nil {
		return
	}

	cpu.Cycles += 1
	return
}

// Execute applies a single decoded instruction to the machine state.
//
// Flag-producing handlers write the destination register first and VF
// last, so VF-as-operand reads see the pre-instruction value even when
// x or y is 0xF.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()

	kind, err := code.Kind()
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("%03x: %-4v %v", cpu.Registers.PC-2, kind, code)
	}

	reg := &cpu.Registers
	x := code.X()
	y := code.Y()

	switch kind {
	case KIND_SYS: // 0nnn
		// Machine-code call on the original COSMAC interpreter.
		// Decodes, does nothing.

	case KIND_CLS: // 00E0
		cpu.Display.Clear()

	case KIND_RET: // 00EE
		addr, ok := cpu.Stack.Pop()
		if !ok {
			err = ErrStackEmpty
			return
		}
		reg.PC = addr

	case KIND_JP: // 1nnn
		reg.PC = code.NNN()

	case KIND_CALL: // 2nnn
		if cpu.Stack.Full() {
			err = ErrStackFull
			return
		}
		cpu.Stack.Push(reg.PC)
		reg.PC = code.NNN()

	case KIND_SE_BYTE: // 3xkk
		if reg.V[x] == code.KK() {
			reg.PC += 2
		}

	case KIND_SNE_BYTE: // 4xkk
		if reg.V[x] != code.KK() {
			reg.PC += 2
		}

	case KIND_SE_REG: // 5xy0
		if reg.V[x] == reg.V[y] {
			reg.PC += 2
		}

	case KIND_LD_BYTE: // 6xkk
		reg.V[x] = code.KK()

	case KIND_ADD_BYTE: // 7xkk
		// No carry flag change.
		reg.V[x] += code.KK()

	case KIND_LD_REG: // 8xy0
		reg.V[x] = reg.V[y]

	case KIND_OR: // 8xy1
		reg.V[x] |= reg.V[y]

	case KIND_AND: // 8xy2
		reg.V[x] &= reg.V[y]

	case KIND_XOR: // 8xy3
		reg.V[x] ^= reg.V[y]

	case KIND_ADD_REG: // 8xy4
		sum := uint16(reg.V[x]) + uint16(reg.V[y])
		carry := uint8(0)
		if sum > 0xFF {
			carry = 1
		}
		reg.V[x] = uint8(sum)
		reg.V[V_FLAG] = carry

	case KIND_SUB: // 8xy5
		// VF = not borrow.
		flag := uint8(0)
		if reg.V[x] >= reg.V[y] {
			flag = 1
		}
		reg.V[x] -= reg.V[y]
		reg.V[V_FLAG] = flag

	case KIND_SHR: // 8xy6, shifts Vx itself
		bit := reg.V[x] & 0x01
		reg.V[x] >>= 1
		reg.V[V_FLAG] = bit

	case KIND_SUBN: // 8xy7
		flag := uint8(0)
		if reg.V[y] >= reg.V[x] {
			flag = 1
		}
		reg.V[x] = reg.V[y] - reg.V[x]
		reg.V[V_FLAG] = flag

	case KIND_SHL: // 8xyE, shifts Vx itself
		bit := reg.V[x] >> 7
		reg.V[x] <<= 1
		reg.V[V_FLAG] = bit

	case KIND_SNE_REG: // 9xy0
		if reg.V[x] != reg.V[y] {
			reg.PC += 2
		}

	case KIND_LD_I: // Annn
		reg.I = code.NNN()

	case KIND_JP_V0: // Bnnn
		// May leave PC out of range; the next fetch faults.
		reg.PC = code.NNN() + uint16(reg.V[0])

	case KIND_RND: // Cxkk
		reg.V[x] = cpu.Rand() & code.KK()

	case KIND_DRW: // Dxyn
		sprite := make([]byte, code.N())
		for row := range sprite {
			sprite[row], err = cpu.Memory.ReadByte(reg.I + uint16(row))
			if err != nil {
				return
			}
		}
		var collision bool
		collision, err = cpu.Display.Draw(reg.V[x], reg.V[y], sprite)
		if err != nil {
			return
		}
		if collision {
			reg.V[V_FLAG] = 1
		} else {
			reg.V[V_FLAG] = 0
		}

	case KIND_SKP: // Ex9E
		if reg.V[x] >= io.KEY_COUNT {
			err = io.ErrKeyInvalid
			return
		}
		if cpu.Keypad.IsDown(reg.V[x]) {
			reg.PC += 2
		}

	case KIND_SKNP: // ExA1
		if reg.V[x] >= io.KEY_COUNT {
			err = io.ErrKeyInvalid
			return
		}
		if !cpu.Keypad.IsDown(reg.V[x]) {
			reg.PC += 2
		}

	case KIND_LD_DT: // Fx07
		reg.V[x] = cpu.Timers.Delay

	case KIND_LD_KEY: // Fx0A
		// Cooperative suspension: re-issue until a press-edge made
		// while waiting arrives.
		if !cpu.waiting {
			cpu.Keypad.DropPresses()
			cpu.waiting = true
		}
		key, ok := cpu.Keypad.TakePress()
		if !ok {
			reg.PC -= 2
			return
		}
		reg.V[x] = key
		cpu.waiting = false

	case KIND_ST_DT: // Fx15
		cpu.Timers.Delay = reg.V[x]

	case KIND_ST_ST: // Fx18
		cpu.Timers.Sound = reg.V[x]

	case KIND_ADD_I: // Fx1E
		reg.I += uint16(reg.V[x])

	case KIND_LD_FONT: // Fx29
		reg.I, err = cpu.Memory.SpriteAddress(reg.V[x])
		if err != nil {
			return
		}

	case KIND_BCD: // Fx33
		v := reg.V[x]
		digits := [3]uint8{v / 100, (v / 10) % 10, v % 10}
		for n, digit := range digits {
			err = cpu.Memory.WriteByte(reg.I+uint16(n), digit)
			if err != nil {
				return
			}
		}

	case KIND_SAVE: // Fx55, I is left unmodified
		for n := uint16(0); n <= uint16(x); n++ {
			err = cpu.Memory.WriteByte(reg.I+n, reg.V[n])
			if err != nil {
				return
			}
		}

	case KIND_RESTORE: // Fx65, I is left unmodified
		for n := uint16(0); n <= uint16(x); n++ {
			reg.V[n], err = cpu.Memory.ReadByte(reg.I + n)
			if err != nil {
				return
			}
		}
	}

	return
}
