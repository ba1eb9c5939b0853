package isa

import (
	"errors"

	"github.com/ezrec/scmulate/translate"
)

var f = translate.From

var (
	ErrTableEntry       = errors.New(f("instruction table entry malformed"))
	ErrExecuteOperands  = errors.New(f("too many operands for execute instruction"))
	ErrImmediateInvalid = errors.New(f("immediate invalid"))
	ErrOperandIndex     = errors.New(f("operand index out of range"))
)

// ErrEntry reports a malformed instruction table entry.
type ErrEntry struct {
	Opcode string
	Err    error
}

func (err *ErrEntry) Error() string {
	return f("table entry %v: %v", err.Opcode, err.Err)
}

func (err *ErrEntry) Unwrap() error {
	return err.Err
}

// ErrOperand reports an operand token that could not be resolved.
type ErrOperand struct {
	Index int
	Token string
	Err   error
}

func (err *ErrOperand) Error() string {
	return f("operand %d '%v' %v", err.Index+1, err.Token, err.Err)
}

func (err *ErrOperand) Unwrap() error {
	return err.Err
}
