package memory

import (
	"context"
	"log"
	"math"
	"sync/atomic"

	"github.com/sarchlab/akita/v4/mem/mem"

	"github.com/ezrec/scmulate/internal"
	"github.com/ezrec/scmulate/isa"
	"github.com/ezrec/scmulate/register"
)

// Request is one memory instruction in the interface slot. Err is set
// before the slot is released.
type Request struct {
	Inst *isa.Instruction
	Err  error
}

// Interface services memory instructions against a backing store and
// the register file.
type Interface struct {
	Verbose   bool           // If set, verbosely logs each request.
	Registers *register.File // Register file data operands move to and from.

	size     uint64
	storage  *mem.Storage
	slot     *internal.Slot[*Request]
	requests atomic.Uint64
}

// NewInterface creates a zeroed memory of size bytes.
func NewInterface(size uint64, rf *register.File) (mi *Interface) {
	mi = &Interface{
		Registers: rf,
		size:      size,
		storage:   mem.NewStorage(size),
		slot:      internal.NewSlot[*Request](),
	}
	return
}

// Size returns the memory size in bytes.
func (mi *Interface) Size() uint64 {
	return mi.size
}

// Requests returns the number of serviced requests.
func (mi *Interface) Requests() uint64 {
	return mi.requests.Load()
}

// check validates the range [addr, addr+n).
func (mi *Interface) check(addr uint64, n uint64) (err error) {
	if n > mi.size || addr > mi.size-n {
		err = ErrAddressRange
	}
	return
}

// Load copies data into memory at addr.
func (mi *Interface) Load(addr uint64, data []byte) (err error) {
	err = mi.check(addr, uint64(len(data)))
	if err != nil {
		return
	}
	if len(data) == 0 {
		return
	}
	err = mi.storage.Write(addr, data)
	return
}

// Dump returns a copy of n bytes of memory at addr.
func (mi *Interface) Dump(addr uint64, n uint64) (data []byte, err error) {
	err = mi.check(addr, n)
	if err != nil {
		return
	}
	if n == 0 {
		data = []byte{}
		return
	}
	data, err = mi.storage.Read(addr, n)
	return
}

// Submit places a request into the slot, waiting while another request
// occupies it.
func (mi *Interface) Submit(req *Request) (err error) {
	if !mi.slot.Put(req) {
		err = ErrMemoryClosed
	}
	return
}

// IsSlotEmpty reports whether the slot has been released.
func (mi *Interface) IsSlotEmpty() bool {
	return mi.slot.IsEmpty()
}

// Run services slot contents until the interface is closed or ctx is
// done.
func (mi *Interface) Run(ctx context.Context) {
	stop := context.AfterFunc(ctx, mi.slot.Close)
	defer stop()

	for {
		req, ok := mi.slot.Take()
		if !ok {
			return
		}

		if mi.Verbose {
			log.Printf("mem: %v", req.Inst)
		}

		req.Err = mi.Execute(req.Inst)
		if req.Err != nil && mi.Verbose {
			log.Printf("mem: %v: %v", req.Inst, req.Err)
		}

		mi.requests.Add(1)
		mi.slot.Release()
	}
}

// Close stops Run once the slot is empty.
func (mi *Interface) Close() {
	mi.slot.Close()
}

// value resolves an address operand.
func (mi *Interface) value(inst *isa.Instruction, n int) (value uint64, err error) {
	op, err := inst.Operand(n)
	if err != nil {
		return
	}

	if op.IsImmediate() {
		value = op.Immediate
		return
	}

	data, err := mi.Registers.Bytes(op.Register)
	if err != nil {
		return
	}
	value = register.ToUint64(data)
	return
}

// address resolves the effective address of a memory instruction.
func (mi *Interface) address(inst *isa.Instruction) (addr uint64, err error) {
	addr, err = mi.value(inst, 1)
	if err != nil {
		return
	}

	switch inst.Opcode {
	case "LDOFF", "STOFF":
		var offset uint64
		offset, err = mi.value(inst, 2)
		if err != nil {
			return
		}
		if offset > math.MaxUint64-addr {
			err = ErrAddressRange
			return
		}
		addr += offset
	}

	return
}

// Execute performs one memory instruction directly.
func (mi *Interface) Execute(inst *isa.Instruction) (err error) {
	var load bool
	switch inst.Opcode {
	case "LDADR", "LDOFF":
		load = true
	case "STADR", "STOFF":
		load = false
	default:
		err = ErrOpcodeUnknown
		return
	}

	op, err := inst.Operand(0)
	if err != nil {
		return
	}
	if !op.IsRegister() {
		err = ErrOperandRegister
		return
	}

	data, err := mi.Registers.Bytes(op.Register)
	if err != nil {
		return
	}

	addr, err := mi.address(inst)
	if err != nil {
		return
	}

	if load {
		var buff []byte
		buff, err = mi.Dump(addr, uint64(len(data)))
		if err != nil {
			return
		}
		copy(data, buff)
	} else {
		err = mi.Load(addr, data)
	}

	return
}
