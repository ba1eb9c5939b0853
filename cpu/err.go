package cpu

import (
	"errors"

	"github.com/ezrec/scmulate/translate"
)

var f = translate.From

var (
	ErrInstructionUnknown   = errors.New(f("instruction unknown"))
	ErrBranchRange          = errors.New(f("branch target out of range"))
	ErrPcRange              = errors.New(f("program counter out of range"))
	ErrOffsetInvalid        = errors.New(f("branch offset invalid"))
	ErrRegisterSizeMismatch = errors.New(f("register size class mismatch"))
	ErrRegisterExpected     = errors.New(f("register operand expected"))
	ErrArithOverflow        = errors.New(f("arithmetic overflow"))
	ErrArithUnderflow       = errors.New(f("arithmetic underflow"))
	ErrUnimplemented        = errors.New(f("opcode unimplemented"))
	ErrExecuteImmediate     = errors.New(f("immediate operands are not supported by execute instructions"))
	ErrCycleLimit           = errors.New(f("cycle limit reached"))
)

// ErrLabelUnresolved reports a jump to an undefined label.
type ErrLabelUnresolved string

func (err ErrLabelUnresolved) Error() string {
	return f("label %v unresolved", string(err))
}

// ErrFatal halts the simulation. It identifies the unit, program counter
// and instruction text that failed.
type ErrFatal struct {
	Unit int
	Pc   int
	Text string
	Err  error
}

func (err *ErrFatal) Error() string {
	return f("su%d: pc %d '%v': %v", err.Unit, err.Pc, err.Text, err.Err)
}

func (err *ErrFatal) Unwrap() error {
	return err.Err
}
