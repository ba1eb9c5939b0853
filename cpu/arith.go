package cpu

import (
	"github.com/ezrec/scmulate/isa"
)

// immediateBytes renders the low-order width bytes of value, big-endian.
func immediateBytes(value uint64, width int) (data []byte) {
	data = make([]byte, width)
	for n := width - 1; n >= 0 && value != 0; n-- {
		data[n] = byte(value)
		value >>= 8
	}
	return
}

// addBytes sets out = a + b, propagating the carry from the least
// significant byte. Returns the carry out of the most significant byte.
func addBytes(out, a, b []byte) (carry bool) {
	var c uint16
	for n := len(out) - 1; n >= 0; n-- {
		sum := uint16(a[n]) + uint16(b[n]) + c
		out[n] = byte(sum)
		c = sum >> 8
	}
	carry = c != 0
	return
}

// subBytes sets out = a - b, propagating the borrow from the least
// significant byte. Returns the borrow left past the most significant
// byte.
func subBytes(out, a, b []byte) (borrow bool) {
	var c int16
	for n := len(out) - 1; n >= 0; n-- {
		diff := int16(a[n]) - int16(b[n]) - c
		c = 0
		if diff < 0 {
			diff += 0x100
			c = 1
		}
		out[n] = byte(diff)
	}
	borrow = c != 0
	return
}

// arith executes dest = src OP rhs at the width of dest. The
// destination is only written when the operation succeeds.
func (su *Unit) arith(inst *isa.Instruction) (err error) {
	switch inst.Opcode {
	case "ADD", "SUB":
	case "SHFL", "SHFR":
		err = ErrUnimplemented
		return
	default:
		err = ErrInstructionUnknown
		return
	}

	hd, dest, err := su.operandBytes(inst, 0)
	if err != nil {
		return
	}
	hs, src, err := su.operandBytes(inst, 1)
	if err != nil {
		return
	}
	if !hd.SameClass(hs) {
		err = ErrRegisterSizeMismatch
		return
	}

	op, err := inst.Operand(2)
	if err != nil {
		return
	}

	var rhs []byte
	switch {
	case op.IsImmediate():
		rhs = immediateBytes(op.Immediate, len(dest))
	case op.IsRegister():
		if !hd.SameClass(op.Register) {
			err = ErrRegisterSizeMismatch
			return
		}
		rhs, err = su.Registers.Bytes(op.Register)
		if err != nil {
			return
		}
	default:
		err = ErrRegisterExpected
		return
	}

	result := make([]byte, len(dest))
	if inst.Opcode == "ADD" {
		if addBytes(result, src, rhs) {
			err = ErrArithOverflow
			return
		}
	} else {
		if subBytes(result, src, rhs) {
			err = ErrArithUnderflow
			return
		}
	}

	copy(dest, result)
	return
}
