package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_Fields(t *testing.T) {
	assert := assert.New(t)

	code := Code(0xD12A)
	assert.Equal(uint8(0x1), code.X())
	assert.Equal(uint8(0x2), code.Y())
	assert.Equal(uint8(0xA), code.N())
	assert.Equal(uint8(0x2A), code.KK())
	assert.Equal(uint16(0x12A), code.NNN())
	assert.Equal("D12A", code.String())
}

func TestCode_Kind(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		code Code
		kind CodeKind
	}){
		{"sys", 0x0123, KIND_SYS},
		{"cls", 0x00E0, KIND_CLS},
		{"ret", 0x00EE, KIND_RET},
		{"jp", 0x1234, KIND_JP},
		{"call", 0x2345, KIND_CALL},
		{"se_byte", 0x3012, KIND_SE_BYTE},
		{"sne_byte", 0x4034, KIND_SNE_BYTE},
		{"se_reg", 0x5040, KIND_SE_REG},
		{"ld_byte", 0x6023, KIND_LD_BYTE},
		{"add_byte", 0x7045, KIND_ADD_BYTE},
		{"ld_reg", 0x8010, KIND_LD_REG},
		{"or", 0x8021, KIND_OR},
		{"and", 0x8132, KIND_AND},
		{"xor", 0x8023, KIND_XOR},
		{"add_reg", 0x8034, KIND_ADD_REG},
		{"sub", 0x8045, KIND_SUB},
		{"shr", 0x8056, KIND_SHR},
		{"subn", 0x8067, KIND_SUBN},
		{"shl", 0x808E, KIND_SHL},
		{"sne_reg", 0x9050, KIND_SNE_REG},
		{"ld_i", 0xA012, KIND_LD_I},
		{"jp_v0", 0xB012, KIND_JP_V0},
		{"rnd", 0xC012, KIND_RND},
		{"drw", 0xD012, KIND_DRW},
		{"skp", 0xE09E, KIND_SKP},
		{"sknp", 0xE0A1, KIND_SKNP},
		{"ld_dt", 0xF107, KIND_LD_DT},
		{"ld_key", 0xF10A, KIND_LD_KEY},
		{"st_dt", 0xF015, KIND_ST_DT},
		{"st_st", 0xF018, KIND_ST_ST},
		{"add_i", 0xF01E, KIND_ADD_I},
		{"ld_font", 0xF029, KIND_LD_FONT},
		{"bcd", 0xF033, KIND_BCD},
		{"save", 0xF055, KIND_SAVE},
		{"restore", 0xF065, KIND_RESTORE},
	}

	for _, entry := range table {
		kind, err := entry.code.Kind()
		assert.NoError(err, entry.name)
		assert.Equal(entry.kind, kind, entry.name)
	}
}

func TestCode_Kind_Invalid(t *testing.T) {
	assert := assert.New(t)

	invalid := []Code{
		0x5001, // 5xyN, N != 0
		0x8008, // unassigned 8xyN sub-code
		0x800F,
		0x9001, // 9xyN, N != 0
		0xD120, // zero-row sprite (SCHIP only)
		0xE000, // unassigned Exkk
		0xE0A2,
		0xF000, // unassigned Fxkk
		0xF0BC,
		0xFABC,
	}

	for _, code := range invalid {
		_, err := code.Kind()
		assert.ErrorIs(err, ErrOpcodeDecode, code.String())
	}
}
