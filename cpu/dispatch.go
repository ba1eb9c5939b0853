package cpu

import (
	"log"
	"runtime"

	"github.com/ezrec/scmulate/codelet"
	"github.com/ezrec/scmulate/isa"
	"github.com/ezrec/scmulate/memory"
)

// execute resolves the register operands of an execute instruction,
// hands the codelet to the executor and waits until the executor slot
// is empty again. The invocation is released before returning.
func (su *Unit) execute(inst *isa.Instruction) (err error) {
	var ops [3][]byte
	for n := range ops {
		var op isa.Operand
		op, err = inst.Operand(n)
		if err != nil {
			return
		}
		switch op.Kind {
		case isa.OPERAND_NONE:
			continue
		case isa.OPERAND_IMMEDIATE:
			err = ErrExecuteImmediate
			return
		}
		ops[n], err = su.Registers.Bytes(op.Register)
		if err != nil {
			return
		}
	}

	inv := codelet.NewInvocation(inst.Opcode, ops)
	defer inv.Release()

	cl, err := su.Codelets.Create(inv)
	if err != nil {
		return
	}

	exec := &codelet.Execution{Codelet: cl, Invocation: inv}
	err = su.Executor.Submit(exec)
	if err != nil {
		return
	}

	if su.Verbose {
		log.Printf("su%d: %d: wait for %v", su.Id, su.Pc, inst.Opcode)
	}

	for !su.Executor.IsSlotEmpty() {
		runtime.Gosched()
	}

	err = exec.Err
	return
}

// memory hands a memory instruction to the memory interface and waits
// until the memory slot is empty again.
func (su *Unit) memory(inst *isa.Instruction) (err error) {
	req := &memory.Request{Inst: inst}
	err = su.Memory.Submit(req)
	if err != nil {
		return
	}

	for !su.Memory.IsSlotEmpty() {
		runtime.Gosched()
	}

	err = req.Err
	return
}
