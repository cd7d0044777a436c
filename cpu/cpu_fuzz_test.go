package cpu

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/chip8/io"
)

func FuzzCpu(f *testing.F) {
	// Seed with one word per major pattern, plus known-bad encodings.
	seeds := []uint16{
		0x0123, 0x00E0, 0x00EE,
		0x1234, 0x2345, 0x3042, 0x4042, 0x5010,
		0x6023, 0x7045, 0x8014, 0x8056, 0x808E,
		0x9010, 0xA345, 0xB300, 0xC00F, 0xD125,
		0xE09E, 0xE0A1,
		0xF007, 0xF00A, 0xF015, 0xF018, 0xF01E,
		0xF029, 0xF033, 0xF255, 0xF265,
		0x5001, 0x8008, 0xD120, 0xE000, 0xF0BC, 0xFFFF,
	}
	for _, word := range seeds {
		f.Add(word, uint8(0), false)
		f.Add(word, uint8(0xFF), true)
	}

	f.Fuzz(func(t *testing.T, word uint16, vx uint8, key bool) {
		assert := assert.New(t)

		cpu := NewCpu()
		for n := range cpu.Registers.V {
			cpu.Registers.V[n] = vx
		}
		cpu.Registers.I = 0x300
		cpu.Rand = func() uint8 { return 0xA5 }
		if key {
			assert.NoError(cpu.Keypad.SetKey(vx&0xF, true))
		}

		code := Code(word)
		err := cpu.Execute(code)

		state := fmt.Sprintf("0x%04x vx:%#02x key:%v\ncpu:%v",
			word, vx, key, cpu.String())

		if err != nil {
			// Every fault names the opcode and wraps a sentinel.
			assert.ErrorIs(err, ErrOpcode(code), state)

			sentinels := []error{
				ErrOpcodeDecode, ErrMemoryRange, ErrMemoryReserved,
				ErrStackEmpty, ErrStackFull, ErrFontDigit,
				io.ErrKeyInvalid, io.ErrSpriteTooTall,
			}
			known := false
			for _, sentinel := range sentinels {
				if errors.Is(err, sentinel) {
					known = true
					break
				}
			}
			assert.True(known, state)
			return
		}

		// Successful execution keeps the machine well-formed.
		assert.LessOrEqual(len(cpu.Stack.Data), STACK_LIMIT, state)

		// The interpreter region is never written by an instruction.
		value, rerr := cpu.Memory.ReadByte(FONT_START)
		assert.NoError(rerr, state)
		assert.Equal(uint8(0xF0), value, state)
	})
}
