package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProgram(t *testing.T) (prog *Program) {
	assert := assert.New(t)

	asm := &Assembler{}

	source := []string{
		"ld i sprite",
		"drw v0 v1 3",
		"ret",
		"sprite: .db 0x3C 0x42 0x3C",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(source, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	return
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram(t)

	rom := prog.Binary()
	assert.Equal([]byte{
		0xA2, 0x06,
		0xD0, 0x13,
		0x00, 0xEE,
		0x3C, 0x42, 0x3C,
	}, rom)

	// The image loads and runs.
	cpu := NewCpu()
	assert.NoError(cpu.Load(rom))

	for range 2 {
		assert.NoError(cpu.Step())
	}
	assert.Equal(uint16(0x206), cpu.Registers.I)
	assert.True(cpu.Display.Pixel(2, 0))
}

func TestProgram_LineAt(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram(t)

	assert.Equal(1, prog.LineAt(0x200))
	assert.Equal(1, prog.LineAt(0x201))
	assert.Equal(2, prog.LineAt(0x202))
	assert.Equal(3, prog.LineAt(0x204))
	assert.Equal(4, prog.LineAt(0x207))
	assert.Equal(0, prog.LineAt(0x300))
	assert.Equal(0, prog.LineAt(0x1FF))
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram(t)

	addrs := []uint16{}
	codes := []Code{}
	for addr, code := range prog.Codes() {
		addrs = append(addrs, addr)
		codes = append(codes, code)
	}

	// Data rows are skipped.
	assert.Equal([]uint16{0x200, 0x202, 0x204}, addrs)
	assert.Equal([]Code{0xA206, 0xD013, 0x00EE}, codes)
}
