package isa

// Kind is the instruction category.
type Kind int

const (
	KIND_UNKNOWN = Kind(0) // unknown
	KIND_COMMIT  = Kind(1) // commit
	KIND_CONTROL = Kind(2) // control
	KIND_ARITH   = Kind(3) // arith
	KIND_EXECUTE = Kind(4) // execute
	KIND_MEMORY  = Kind(5) // memory
)

var kindName = [...]string{
	KIND_UNKNOWN: "unknown",
	KIND_COMMIT:  "commit",
	KIND_CONTROL: "control",
	KIND_ARITH:   "arith",
	KIND_EXECUTE: "execute",
	KIND_MEMORY:  "memory",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindName) {
		return "unknown"
	}
	return kindName[k]
}

// OpIO describes which operand positions an instruction reads and writes.
type OpIO uint16

const (
	OP_IO_NONE = OpIO(0)
	OP1_RD     = OpIO(1 << 0)
	OP1_WR     = OpIO(1 << 1)
	OP2_RD     = OpIO(1 << 2)
	OP2_WR     = OpIO(1 << 3)
	OP3_RD     = OpIO(1 << 4)
	OP3_WR     = OpIO(1 << 5)
)

// Reads returns true if operand n (0-based) is read.
func (io OpIO) Reads(n int) bool {
	return n >= 0 && n < 3 && io&(OP1_RD<<(2*n)) != 0
}

// Writes returns true if operand n (0-based) is written.
func (io OpIO) Writes(n int) bool {
	return n >= 0 && n < 3 && io&(OP1_WR<<(2*n)) != 0
}
