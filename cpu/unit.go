package cpu

import (
	"log"

	"github.com/ezrec/scmulate/codelet"
	"github.com/ezrec/scmulate/isa"
	"github.com/ezrec/scmulate/memory"
	"github.com/ezrec/scmulate/register"
)

// Instructions is the read-only instruction memory.
type Instructions interface {
	Fetch(pc int) string
	Label(name string) (pc int, ok bool)
	Size() int
}

// Registers is the register file.
type Registers interface {
	Bytes(h register.Handle) ([]byte, error)
	Width(class register.Class) int
}

// Codelets creates the codelet an invocation names.
type Codelets interface {
	Create(inv *codelet.Invocation) (codelet.Codelet, error)
}

// Executor is the shared codelet executor slot.
type Executor interface {
	Submit(exec *codelet.Execution) error
	IsSlotEmpty() bool
}

// Memory is the shared memory-interface slot.
type Memory interface {
	Submit(req *memory.Request) error
	IsSlotEmpty() bool
}

// Unit is a single scheduling unit.
type Unit struct {
	Verbose bool // If set, verbosely logs every cycle.

	Id        int    // Unit number, used in diagnostics.
	Pc        int    // Program counter.
	Cycles    uint64 // Cycles executed.
	MaxCycles uint64 // If non-zero, the cycle limit of the unit.

	Program    Instructions
	Registers  Registers
	Codelets   Codelets
	Executor   Executor
	Memory     Memory
	Alive      *Liveness
	Classifier *isa.Classifier // Classifier to use; nil for the default.
}

// fatal logs a fatal error, clears the liveness flag, and wraps the
// error with its location.
func (su *Unit) fatal(text string, err error) error {
	fatal := &ErrFatal{Unit: su.Id, Pc: su.Pc, Text: text, Err: err}
	log.Printf("%v", fatal)
	su.Alive.Kill()
	return fatal
}

// Tick runs one fetch, classify, dispatch and advance cycle.
func (su *Unit) Tick() (err error) {
	var text string

	defer func() {
		if err != nil {
			err = su.fatal(text, err)
		}
	}()

	if su.MaxCycles > 0 && su.Cycles >= su.MaxCycles {
		err = ErrCycleLimit
		return
	}

	if su.Pc < 0 || su.Pc >= su.Program.Size() {
		err = ErrPcRange
		return
	}

	su.Cycles++

	text = su.Program.Fetch(su.Pc)

	classifier := su.Classifier
	if classifier == nil {
		classifier = isa.Default()
	}

	inst, err := classifier.Classify(text)
	if err != nil {
		return
	}

	if su.Verbose {
		log.Printf("su%d: %d: %v", su.Id, su.Pc, inst)
	}

	switch inst.Kind {
	case isa.KIND_COMMIT:
		su.Alive.Kill()
	case isa.KIND_CONTROL:
		err = su.control(inst)
	case isa.KIND_ARITH:
		err = su.arith(inst)
	case isa.KIND_EXECUTE:
		err = su.execute(inst)
	case isa.KIND_MEMORY:
		err = su.memory(inst)
	default:
		err = ErrInstructionUnknown
	}
	if err != nil {
		return
	}

	su.Pc++

	return
}

// Run waits for the start barrier to close, then ticks until the
// liveness flag is cleared. Returns the first fatal error of this unit.
func (su *Unit) Run(start <-chan struct{}) (err error) {
	if start != nil {
		<-start
	}

	if su.Verbose {
		log.Printf("su%d: start at %d", su.Id, su.Pc)
	}

	for su.Alive.Alive() {
		err = su.Tick()
		if err != nil {
			return
		}
	}

	if su.Verbose {
		log.Printf("su%d: stop at %d after %d cycles", su.Id, su.Pc, su.Cycles)
	}

	return
}

// operandBytes resolves operand n, which must be a register.
func (su *Unit) operandBytes(inst *isa.Instruction, n int) (h register.Handle, data []byte, err error) {
	op, err := inst.Operand(n)
	if err != nil {
		return
	}
	if !op.IsRegister() {
		err = ErrRegisterExpected
		return
	}

	h = op.Register
	data, err = su.Registers.Bytes(h)
	return
}
