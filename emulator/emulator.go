// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"maps"
	"os"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/internal"
)

const (
	TICK_HZ         = 60 // Host tick rate, shared with the timers.
	CYCLES_PER_TICK = 10 // Instruction cycles per tick (600 cycles/s).
)

var _emulator_defines = map[string]string{
	"TICK_HZ":         fmt.Sprintf("%v", TICK_HZ),
	"CYCLES_PER_TICK": fmt.Sprintf("%v", CYCLES_PER_TICK),
}

// Emulator state. CPU + devices + the running program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the machine simulation.
	Program  *cpu.Program // Listing of the running program, if assembled here.

	CyclesPerTick int // Instruction cycles per Tick.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:           cpu.NewCpu(),
		Program:       &cpu.Program{},
		CyclesPerTick: CYCLES_PER_TICK,
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Cpu.Display.Defines(),
		emu.Cpu.Keypad.Defines(),
		emu.Cpu.Timers.Defines(),
	)
}

// Reset returns the machine to power-on state and reloads the current
// program listing, if any.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Reset()
	emu.Cpu.Verbose = emu.Verbose

	if len(emu.Program.Opcodes) > 0 {
		err = emu.Cpu.Load(emu.Program.Binary())
		if err != nil {
			return
		}
	}

	return
}

// Load resets the machine and copies a ROM image into program memory.
// Any previous listing is discarded.
func (emu *Emulator) Load(rom []byte) (err error) {
	emu.Program = &cpu.Program{}
	emu.Cpu.Reset()
	emu.Cpu.Verbose = emu.Verbose

	return emu.Cpu.Load(rom)
}

// LoadFile loads a ROM image from a file.
func (emu *Emulator) LoadFile(path string) (err error) {
	rom, err := os.ReadFile(path)
	if err != nil {
		return
	}

	return emu.Load(rom)
}

// LineNo returns the source line of the instruction at PC, or 0 when
// no listing covers it.
func (emu *Emulator) LineNo() int {
	return emu.Program.LineAt(emu.Cpu.Registers.PC)
}

// Step performs a single instruction cycle. A fault is annotated with
// the faulting address and, when a listing is present, the source line.
func (emu *Emulator) Step() (err error) {
	addr := emu.Cpu.Registers.PC

	err = emu.Cpu.Step()
	if err != nil {
		err = &ErrRuntime{Addr: addr, LineNo: emu.Program.LineAt(addr), Err: err}
		return
	}

	return
}

// Tick runs one host tick: CyclesPerTick instruction cycles followed
// by one 60Hz timer tick. The instruction rate and the timer rate stay
// decoupled; changing CyclesPerTick never changes timer decay.
func (emu *Emulator) Tick() (err error) {
	for range emu.CyclesPerTick {
		err = emu.Step()
		if err != nil {
			return
		}
	}

	emu.Cpu.Timers.Tick()

	return
}
