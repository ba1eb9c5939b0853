package isa

import (
	"strconv"

	"github.com/ezrec/scmulate/register"
)

// OperandKind tells how an operand token was interpreted.
//
//go:generate go tool stringer -linecomment -type=OperandKind
type OperandKind int

const (
	OPERAND_NONE      = OperandKind(0) // none
	OPERAND_REGISTER  = OperandKind(1) // register
	OPERAND_IMMEDIATE = OperandKind(2) // immediate
)

// Operand is a resolved operand token.
type Operand struct {
	Kind      OperandKind
	Register  register.Handle
	Immediate uint64
}

// IsRegister returns true for register operands.
func (op Operand) IsRegister() bool {
	return op.Kind == OPERAND_REGISTER
}

// IsImmediate returns true for immediate operands.
func (op Operand) IsImmediate() bool {
	return op.Kind == OPERAND_IMMEDIATE
}

// ParseOperand resolves an operand token. Register syntax decodes into a
// register handle; anything else must be an unsigned 64-bit literal
// (decimal, 0x hex, 0b binary or 0o octal). The empty token is an absent
// operand.
func ParseOperand(token string) (op Operand, err error) {
	if len(token) == 0 {
		return
	}

	if register.IsRegister(token) {
		var h register.Handle
		h, err = register.Decode(token)
		if err != nil {
			return
		}
		op = Operand{Kind: OPERAND_REGISTER, Register: h}
		return
	}

	value, perr := strconv.ParseUint(token, 0, 64)
	if perr != nil {
		err = ErrImmediateInvalid
		return
	}

	op = Operand{Kind: OPERAND_IMMEDIATE, Immediate: value}
	return
}
