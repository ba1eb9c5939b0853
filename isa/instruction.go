package isa

import (
	"fmt"
	"strings"
)

// Instruction is a decoded line of program text. One is produced per
// fetch cycle and consumed by exactly one handler.
type Instruction struct {
	Kind   Kind      // Instruction category.
	Opcode string    // Mnemonic, or codelet name for execute instructions.
	Op     [3]string // Raw operand tokens; absent operands are empty.
	OpIO   OpIO      // Operand read/write flags from the instruction table.
	Text   string    // Source text the instruction was classified from.

	operand [3]*Operand
}

// NumOp returns the number of operand tokens present.
func (inst *Instruction) NumOp() (count int) {
	for _, op := range inst.Op {
		if len(op) != 0 {
			count++
		}
	}
	return
}

// Operand resolves operand n (0-based), caching the result.
func (inst *Instruction) Operand(n int) (op Operand, err error) {
	if n < 0 || n >= len(inst.Op) {
		err = ErrOperandIndex
		return
	}

	if inst.operand[n] != nil {
		op = *inst.operand[n]
		return
	}

	op, err = ParseOperand(inst.Op[n])
	if err != nil {
		err = &ErrOperand{Index: n, Token: inst.Op[n], Err: err}
		return
	}

	inst.operand[n] = &op
	return
}

// Operands resolves all three operand positions.
func (inst *Instruction) Operands() (ops [3]Operand, err error) {
	for n := range ops {
		ops[n], err = inst.Operand(n)
		if err != nil {
			return
		}
	}
	return
}

func (inst *Instruction) String() string {
	var ops []string
	for _, op := range inst.Op {
		if len(op) != 0 {
			ops = append(ops, op)
		}
	}

	switch inst.Kind {
	case KIND_UNKNOWN:
		return fmt.Sprintf("%v{%q}", inst.Kind, inst.Text)
	case KIND_COMMIT:
		return "COMMIT"
	case KIND_EXECUTE:
		return fmt.Sprintf("%v(%v)", inst.Opcode, strings.Join(ops, ", "))
	}

	if len(ops) == 0 {
		return inst.Opcode
	}
	return fmt.Sprintf("%v %v", inst.Opcode, strings.Join(ops, ", "))
}
