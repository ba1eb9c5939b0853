package codelet

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/ezrec/scmulate/internal"
)

// Execution is one unit of work in the executor slot. Err is set by the
// executor before the slot is released.
type Execution struct {
	Codelet    Codelet
	Invocation *Invocation
	Err        error
}

// Executor runs codelets submitted through its single slot. Every
// scheduling unit shares the one slot, so executions serialize.
type Executor struct {
	Verbose bool // If set, verbosely logs each execution.

	slot     *internal.Slot[*Execution]
	executed atomic.Uint64
}

// NewExecutor creates an executor with an empty slot.
func NewExecutor() *Executor {
	return &Executor{slot: internal.NewSlot[*Execution]()}
}

// Submit places work into the slot, waiting while another execution
// occupies it.
func (ex *Executor) Submit(exec *Execution) (err error) {
	if !ex.slot.Put(exec) {
		err = ErrExecutorClosed
	}
	return
}

// IsSlotEmpty reports whether the slot has been released.
func (ex *Executor) IsSlotEmpty() bool {
	return ex.slot.IsEmpty()
}

// Executed returns the number of completed executions.
func (ex *Executor) Executed() uint64 {
	return ex.executed.Load()
}

// Run executes slot contents until the executor is closed or ctx is
// done. Work already in the slot is finished first.
func (ex *Executor) Run(ctx context.Context) {
	stop := context.AfterFunc(ctx, ex.slot.Close)
	defer stop()

	for {
		exec, ok := ex.slot.Take()
		if !ok {
			return
		}

		if ex.Verbose {
			log.Printf("exec: %v", exec.Invocation.Opcode)
		}

		exec.Err = exec.Codelet.Run(exec.Invocation.Params)
		if exec.Err != nil && ex.Verbose {
			log.Printf("exec: %v: %v", exec.Invocation.Opcode, exec.Err)
		}

		ex.executed.Add(1)
		ex.slot.Release()
	}
}

// Close stops Run once the slot is empty.
func (ex *Executor) Close() {
	ex.slot.Close()
}
