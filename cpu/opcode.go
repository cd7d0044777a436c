package cpu

import (
	"fmt"
)

// Code is one 16-bit instruction word, fetched big-endian.
type Code uint16

// X is the register index in the low nibble of the high byte.
func (c Code) X() uint8 {
	return uint8(c>>8) & 0x0F
}

// Y is the register index in the high nibble of the low byte.
func (c Code) Y() uint8 {
	return uint8(c>>4) & 0x0F
}

// N is the lowest nibble.
func (c Code) N() uint8 {
	return uint8(c) & 0x0F
}

// KK is the low byte immediate.
func (c Code) KK() uint8 {
	return uint8(c)
}

// NNN is the 12-bit address field.
func (c Code) NNN() uint16 {
	return uint16(c) & 0x0FFF
}

func (c Code) String() string {
	return fmt.Sprintf("%04X", uint16(c))
}

// CodeKind enumerates the instruction set. Every instruction family
// and sub-code of the original 35-opcode set decodes to exactly one
// kind; anything else is a decode fault.
type CodeKind int

//go:generate go tool stringer -linecomment -type=CodeKind
const (
	KIND_SYS      = CodeKind(0)  // sys
	KIND_CLS      = CodeKind(1)  // cls
	KIND_RET      = CodeKind(2)  // ret
	KIND_JP       = CodeKind(3)  // jp
	KIND_CALL     = CodeKind(4)  // call
	KIND_SE_BYTE  = CodeKind(5)  // se
	KIND_SNE_BYTE = CodeKind(6)  // sne
	KIND_SE_REG   = CodeKind(7)  // se
	KIND_LD_BYTE  = CodeKind(8)  // ld
	KIND_ADD_BYTE = CodeKind(9)  // add
	KIND_LD_REG   = CodeKind(10) // ld
	KIND_OR       = CodeKind(11) // or
	KIND_AND      = CodeKind(12) // and
	KIND_XOR      = CodeKind(13) // xor
	KIND_ADD_REG  = CodeKind(14) // add
	KIND_SUB      = CodeKind(15) // sub
	KIND_SHR      = CodeKind(16) // shr
	KIND_SUBN     = CodeKind(17) // subn
	KIND_SHL      = CodeKind(18) // shl
	KIND_SNE_REG  = CodeKind(19) // sne
	KIND_LD_I     = CodeKind(20) // ld
	KIND_JP_V0    = CodeKind(21) // jp
	KIND_RND      = CodeKind(22) // rnd
	KIND_DRW      = CodeKind(23) // drw
	KIND_SKP      = CodeKind(24) // skp
	KIND_SKNP     = CodeKind(25) // sknp
	KIND_LD_DT    = CodeKind(26) // ld
	KIND_LD_KEY   = CodeKind(27) // ld
	KIND_ST_DT    = CodeKind(28) // ld
	KIND_ST_ST    = CodeKind(29) // ld
	KIND_ADD_I    = CodeKind(30) // add
	KIND_LD_FONT  = CodeKind(31) // ld
	KIND_BCD      = CodeKind(32) // ld
	KIND_SAVE     = CodeKind(33) // ld
	KIND_RESTORE  = CodeKind(34) // ld
)

// Kind decodes the instruction word. Unassigned bit patterns within a
// family return ErrOpcodeDecode.
func (c Code) Kind() (kind CodeKind, err error) {
	switch uint16(c) >> 12 {
	case 0x0:
		switch c.KK() {
		case 0xE0:
			kind = KIND_CLS
		case 0xEE:
			kind = KIND_RET
		default:
			kind = KIND_SYS
		}
	case 0x1:
		kind = KIND_JP
	case 0x2:
		kind = KIND_CALL
	case 0x3:
		kind = KIND_SE_BYTE
	case 0x4:
		kind = KIND_SNE_BYTE
	case 0x5:
		if c.N() != 0x0 {
			err = ErrOpcodeDecode
			return
		}
		kind = KIND_SE_REG
	case 0x6:
		kind = KIND_LD_BYTE
	case 0x7:
		kind = KIND_ADD_BYTE
	case 0x8:
		switch c.N() {
		case 0x0:
			kind = KIND_LD_REG
		case 0x1:
			kind = KIND_OR
		case 0x2:
			kind = KIND_AND
		case 0x3:
			kind = KIND_XOR
		case 0x4:
			kind = KIND_ADD_REG
		case 0x5:
			kind = KIND_SUB
		case 0x6:
			kind = KIND_SHR
		case 0x7:
			kind = KIND_SUBN
		case 0xE:
			kind = KIND_SHL
		default:
			err = ErrOpcodeDecode
		}
	case 0x9:
		if c.N() != 0x0 {
			err = ErrOpcodeDecode
			return
		}
		kind = KIND_SNE_REG
	case 0xA:
		kind = KIND_LD_I
	case 0xB:
		kind = KIND_JP_V0
	case 0xC:
		kind = KIND_RND
	case 0xD:
		// Zero-row sprites belong to the SCHIP extension.
		if c.N() == 0x0 {
			err = ErrOpcodeDecode
			return
		}
		kind = KIND_DRW
	case 0xE:
		switch c.KK() {
		case 0x9E:
			kind = KIND_SKP
		case 0xA1:
			kind = KIND_SKNP
		default:
			err = ErrOpcodeDecode
		}
	case 0xF:
		switch c.KK() {
		case 0x07:
			kind = KIND_LD_DT
		case 0x0A:
			kind = KIND_LD_KEY
		case 0x15:
			kind = KIND_ST_DT
		case 0x18:
			kind = KIND_ST_ST
		case 0x1E:
			kind = KIND_ADD_I
		case 0x29:
			kind = KIND_LD_FONT
		case 0x33:
			kind = KIND_BCD
		case 0x55:
			kind = KIND_SAVE
		case 0x65:
			kind = KIND_RESTORE
		default:
			err = ErrOpcodeDecode
		}
	}

	return
}
