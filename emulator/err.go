package emulator

import (
	"github.com/ezrec/chip8/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime fault.
type ErrRuntime struct {
	Addr   uint16 // Machine address of the faulting instruction.
	LineNo int    // Source line, or 0 without a listing.
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo != 0 {
		return f("line %d: %v", err.LineNo, err.Err)
	}
	return f("address 0x%03x: %v", err.Addr, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
