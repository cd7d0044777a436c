// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Opcode is one assembled listing entry.
type Opcode struct {
	LineNo    int      // Source line number.
	Addr      int      // Machine address of the first byte.
	Words     []string // Parsed source words.
	Bytes     []byte   // Encoded bytes.
	Data      bool     // Entry is a .db data row, not an instruction.
	LinkLabel string   // Label to backpatch into the address field.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Assembler is a single pass assembler for the CHIP-8 instruction set.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of jump labels to machine addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint16, err error) {
	v64, err := strconv.ParseInt(word, 0, 17)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}
	if v64 < 0 || v64 > 0xffff {
		err = ErrValueRange
		return
	}

	value = uint16(v64)
	return
}

// registerOf returns the register index of a v0-vf word.
func (asm *Assembler) registerOf(word string) (reg uint8, ok bool) {
	if len(word) != 2 || word[0] != 'v' {
		return
	}

	v64, err := strconv.ParseUint(word[1:], 16, 4)
	if err != nil {
		return
	}

	reg = uint8(v64)
	ok = true
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint16, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value16 uint16
		value16, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt(int(value16))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < 0 || st_int64 > 0xffff {
		err = ErrParseExpression(expr)
		return
	}
	value = uint16(st_int64)
	return
}

// parseLine parses a single line into opcode words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	// Operand commas are optional.
	line = strings.ReplaceAll(line, ",", " ")

	words = slices.DeleteFunc(strings.Split(line, " "), func(a string) bool { return len(a) == 0 })

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.currentAddr()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	return
}

// currentAddr gets the machine address of the next opcode.
func (asm *Assembler) currentAddr() int {
	if len(asm.Opcode) == 0 {
		return PROGRAM_START
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Addr + len(last.Bytes)
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	// Final linking of jump labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		label := op.LinkLabel
		addr, ok := asm.Label[label]
		if !ok {
			err = ErrLabelMissing(label)
			return
		}
		op.Bytes[0] |= uint8(addr>>8) & 0x0F
		op.Bytes[1] = uint8(addr)
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// emit appends an encoded instruction word to the listing.
func (asm *Assembler) emit(words []string, lineno int, word uint16, link string) {
	asm.Opcode = append(asm.Opcode, Opcode{
		LineNo:    lineno,
		Addr:      asm.currentAddr(),
		Words:     slices.Clone(words),
		Bytes:     []byte{uint8(word >> 8), uint8(word)},
		LinkLabel: link,
	})
}

// byteOf parses an 8-bit immediate.
func (asm *Assembler) byteOf(word string) (value uint8, err error) {
	v, err := asm.valueOf(word)
	if err != nil {
		return
	}
	if v > 0xff {
		err = ErrValueRange
		return
	}

	value = uint8(v)
	return
}

// nibbleOf parses a 4-bit immediate.
func (asm *Assembler) nibbleOf(word string) (value uint8, err error) {
	v, err := asm.valueOf(word)
	if err != nil {
		return
	}
	if v > 0xf {
		err = ErrValueRange
		return
	}

	value = uint8(v)
	return
}

// addrOf parses a 12-bit address, or defers to a label link.
func (asm *Assembler) addrOf(word string) (addr uint16, link string, err error) {
	addr, err = asm.valueOf(word)
	if err == nil {
		if addr > 0xfff {
			err = ErrValueRange
		}
		return
	}

	// Not a number: a label, linked after the full parse.
	err = nil
	link = word
	return
}

// regByte encodes a "mnemonic vx value" form.
func (asm *Assembler) regByte(base uint16, words []string) (word uint16, err error) {
	if len(words) != 3 {
		err = ErrOperandCount
		return
	}
	x, ok := asm.registerOf(words[1])
	if !ok {
		err = ErrOperandInvalid
		return
	}
	kk, err := asm.byteOf(words[2])
	if err != nil {
		return
	}

	word = base | uint16(x)<<8 | uint16(kk)
	return
}

// regReg encodes a "mnemonic vx vy" form.
func (asm *Assembler) regReg(base uint16, words []string) (word uint16, err error) {
	if len(words) != 3 {
		err = ErrOperandCount
		return
	}
	x, xok := asm.registerOf(words[1])
	y, yok := asm.registerOf(words[2])
	if !xok || !yok {
		err = ErrOperandInvalid
		return
	}

	word = base | uint16(x)<<8 | uint16(y)<<4
	return
}

// regOnly encodes a "mnemonic vx" form.
func (asm *Assembler) regOnly(base uint16, words []string) (word uint16, err error) {
	if len(words) != 2 {
		err = ErrOperandCount
		return
	}
	x, ok := asm.registerOf(words[1])
	if !ok {
		err = ErrOperandInvalid
		return
	}

	word = base | uint16(x)<<8
	return
}

// parseWords encodes a single statement into the listing.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	if len(words) == 0 {
		return
	}

	var word uint16
	var link string

	switch words[0] {
	case ".db":
		if len(words) < 2 {
			err = ErrOperandCount
			return
		}
		data := make([]byte, 0, len(words)-1)
		for _, w := range words[1:] {
			var b uint8
			b, err = asm.byteOf(w)
			if err != nil {
				return
			}
			data = append(data, b)
		}
		asm.Opcode = append(asm.Opcode, Opcode{
			LineNo: lineno,
			Addr:   asm.currentAddr(),
			Words:  slices.Clone(words),
			Bytes:  data,
			Data:   true,
		})
		return

	case "cls":
		if len(words) != 1 {
			err = ErrOperandCount
			return
		}
		word = 0x00E0

	case "ret":
		if len(words) != 1 {
			err = ErrOperandCount
			return
		}
		word = 0x00EE

	case "sys", "call":
		if len(words) != 2 {
			err = ErrOperandCount
			return
		}
		var addr uint16
		addr, link, err = asm.addrOf(words[1])
		if err != nil {
			return
		}
		base := uint16(0x0000)
		if words[0] == "call" {
			base = 0x2000
		}
		word = base | addr

	case "jp":
		// jp nnn, or jp v0 nnn
		target := 1
		base := uint16(0x1000)
		if len(words) == 3 && words[1] == "v0" {
			target = 2
			base = 0xB000
		}
		if len(words) != target+1 {
			err = ErrOperandCount
			return
		}
		var addr uint16
		addr, link, err = asm.addrOf(words[target])
		if err != nil {
			return
		}
		word = base | addr

	case "se", "sne":
		base := uint16(0x3000)
		baseReg := uint16(0x5000)
		if words[0] == "sne" {
			base = 0x4000
			baseReg = 0x9000
		}
		if len(words) == 3 {
			if _, ok := asm.registerOf(words[2]); ok {
				word, err = asm.regReg(baseReg, words)
			} else {
				word, err = asm.regByte(base, words)
			}
		} else {
			err = ErrOperandCount
		}
		if err != nil {
			return
		}

	case "or":
		word, err = asm.regReg(0x8001, words)

	case "and":
		word, err = asm.regReg(0x8002, words)

	case "xor":
		word, err = asm.regReg(0x8003, words)

	case "sub":
		word, err = asm.regReg(0x8005, words)

	case "subn":
		word, err = asm.regReg(0x8007, words)

	case "shr":
		word, err = asm.regOnly(0x8006, words)

	case "shl":
		word, err = asm.regOnly(0x800E, words)

	case "rnd":
		word, err = asm.regByte(0xC000, words)

	case "drw":
		if len(words) != 4 {
			err = ErrOperandCount
			return
		}
		x, xok := asm.registerOf(words[1])
		y, yok := asm.registerOf(words[2])
		if !xok || !yok {
			err = ErrOperandInvalid
			return
		}
		var n uint8
		n, err = asm.nibbleOf(words[3])
		if err != nil {
			return
		}
		word = 0xD000 | uint16(x)<<8 | uint16(y)<<4 | uint16(n)

	case "skp":
		word, err = asm.regOnly(0xE09E, words)

	case "sknp":
		word, err = asm.regOnly(0xE0A1, words)

	case "add":
		switch {
		case len(words) == 3 && words[1] == "i":
			x, ok := asm.registerOf(words[2])
			if !ok {
				err = ErrOperandInvalid
				return
			}
			word = 0xF01E | uint16(x)<<8
		case len(words) == 3:
			if _, ok := asm.registerOf(words[2]); ok {
				word, err = asm.regReg(0x8004, words)
			} else {
				word, err = asm.regByte(0x7000, words)
			}
		default:
			err = ErrOperandCount
		}

	case "ld":
		word, link, err = asm.parseLd(words)

	default:
		err = ErrOpcodeInvalid
	}

	if err != nil {
		return
	}

	asm.emit(words, lineno, word, link)
	return
}

// parseLd encodes the ld instruction family, discriminated by its
// operand forms.
func (asm *Assembler) parseLd(words []string) (word uint16, link string, err error) {
	if len(words) != 3 {
		err = ErrOperandCount
		return
	}

	dst := words[1]
	src := words[2]

	x, dstReg := asm.registerOf(dst)
	y, srcReg := asm.registerOf(src)

	switch {
	case dst == "i":
		var addr uint16
		addr, link, err = asm.addrOf(src)
		word = 0xA000 | addr

	case dst == "dt" && srcReg:
		word = 0xF015 | uint16(y)<<8

	case dst == "st" && srcReg:
		word = 0xF018 | uint16(y)<<8

	case dst == "f" && srcReg:
		word = 0xF029 | uint16(y)<<8

	case dst == "b" && srcReg:
		word = 0xF033 | uint16(y)<<8

	case dst == "[i]" && srcReg:
		word = 0xF055 | uint16(y)<<8

	case dstReg && src == "dt":
		word = 0xF007 | uint16(x)<<8

	case dstReg && src == "k":
		word = 0xF00A | uint16(x)<<8

	case dstReg && src == "[i]":
		word = 0xF065 | uint16(x)<<8

	case dstReg && srcReg:
		word = 0x8000 | uint16(x)<<8 | uint16(y)<<4

	case dstReg:
		var kk uint8
		kk, err = asm.byteOf(src)
		word = 0x6000 | uint16(x)<<8 | uint16(kk)

	default:
		err = ErrOperandInvalid
	}

	return
}
