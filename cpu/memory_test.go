package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_ReadWrite(t *testing.T) {
	assert := assert.New(t)

	m := &Memory{}
	m.Reset()

	assert.NoError(m.WriteByte(0x300, 0xCD))

	value, err := m.ReadByte(0x300)
	assert.NoError(err)
	assert.Equal(uint8(0xCD), value)
}

func TestMemory_ReadByte_OutOfRange(t *testing.T) {
	assert := assert.New(t)

	m := &Memory{}
	_, err := m.ReadByte(MEMORY_SIZE)
	assert.ErrorIs(err, ErrMemoryRange)
	assert.ErrorIs(err, ErrAddress(MEMORY_SIZE))
}

func TestMemory_WriteByte_OutOfRange(t *testing.T) {
	assert := assert.New(t)

	m := &Memory{}
	err := m.WriteByte(0x5000, 0xEF)
	assert.ErrorIs(err, ErrMemoryRange)
}

func TestMemory_WriteByte_Reserved(t *testing.T) {
	assert := assert.New(t)

	m := &Memory{}
	m.Reset()

	// The interpreter region is read-only to instruction writes.
	err := m.WriteByte(PROGRAM_START-1, 0x01)
	assert.ErrorIs(err, ErrMemoryReserved)

	// Reading it is fine; the font lives there.
	value, err := m.ReadByte(FONT_START)
	assert.NoError(err)
	assert.Equal(uint8(0xF0), value)
}

func TestMemory_ReadWord(t *testing.T) {
	assert := assert.New(t)

	m := &Memory{}
	m.Data[0x200] = 0x12
	m.Data[0x201] = 0x34

	// High byte first.
	word, err := m.ReadWord(0x200)
	assert.NoError(err)
	assert.Equal(uint16(0x1234), word)

	_, err = m.ReadWord(MEMORY_SIZE - 1)
	assert.ErrorIs(err, ErrMemoryRange)
}

func TestMemory_Load(t *testing.T) {
	assert := assert.New(t)

	m := &Memory{}
	m.Reset()

	rom := []byte{0x12, 0x34, 0x56, 0x78}
	assert.NoError(m.Load(rom))

	for n, b := range rom {
		value, err := m.ReadByte(PROGRAM_START + uint16(n))
		assert.NoError(err)
		assert.Equal(b, value)
	}
}

func TestMemory_Load_TooLarge(t *testing.T) {
	assert := assert.New(t)

	m := &Memory{}
	m.Reset()

	assert.NoError(m.Load(make([]byte, PROGRAM_LIMIT)))
	assert.ErrorIs(m.Load(make([]byte, PROGRAM_LIMIT+1)), ErrProgramSize)
}

func TestMemory_Font(t *testing.T) {
	assert := assert.New(t)

	m := &Memory{}
	m.Reset()

	// Digit sprites are 5 bytes apart, starting at FONT_START.
	addr, err := m.SpriteAddress(0xA)
	assert.NoError(err)
	assert.Equal(uint16(FONT_START+0xA*FONT_HEIGHT), addr)

	// 0xA's first row.
	value, err := m.ReadByte(addr)
	assert.NoError(err)
	assert.Equal(uint8(0xF0), value)

	_, err = m.SpriteAddress(0x10)
	assert.ErrorIs(err, ErrFontDigit)
}
