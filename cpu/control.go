package cpu

import (
	"strconv"

	"github.com/ezrec/scmulate/isa"
)

// compareBytes compares two equal-width big-endian buffers, most
// significant byte first. Returns -1, 0 or 1.
func compareBytes(a, b []byte) int {
	for n := range a {
		if a[n] != b[n] {
			if a[n] > b[n] {
				return 1
			}
			return -1
		}
	}
	return 0
}

func parseOffset(token string) (offset int, err error) {
	value, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		err = ErrOffsetInvalid
		return
	}
	offset = int(value)
	return
}

// branchTaken evaluates a conditional branch.
func (su *Unit) branchTaken(inst *isa.Instruction) (taken bool, err error) {
	h1, r1, err := su.operandBytes(inst, 0)
	if err != nil {
		return
	}
	h2, r2, err := su.operandBytes(inst, 1)
	if err != nil {
		return
	}
	if !h1.SameClass(h2) {
		err = ErrRegisterSizeMismatch
		return
	}

	cmp := compareBytes(r1, r2)
	switch inst.Opcode {
	case "BREQ":
		taken = cmp == 0
	case "BGT":
		taken = cmp > 0
	case "BGET":
		taken = cmp >= 0
	case "BLT":
		taken = cmp < 0
	case "BLET":
		taken = cmp <= 0
	default:
		err = ErrInstructionUnknown
	}
	return
}

// control executes a control-flow instruction. The target is stored
// minus one, since every cycle ends with Pc++.
func (su *Unit) control(inst *isa.Instruction) (err error) {
	var target int

	switch inst.Opcode {
	case "JMPLBL":
		var ok bool
		target, ok = su.Program.Label(inst.Op[0])
		if !ok {
			err = ErrLabelUnresolved(inst.Op[0])
			return
		}
	case "JMPPC":
		var offset int
		offset, err = parseOffset(inst.Op[0])
		if err != nil {
			return
		}
		target = su.Pc + offset
	default:
		var taken bool
		taken, err = su.branchTaken(inst)
		if err != nil || !taken {
			return
		}
		var offset int
		offset, err = parseOffset(inst.Op[2])
		if err != nil {
			return
		}
		target = su.Pc + offset
	}

	if target < 0 || target >= su.Program.Size() {
		err = ErrBranchRange
		return
	}

	su.Pc = target - 1
	return
}
