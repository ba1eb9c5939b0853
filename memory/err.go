package memory

import (
	"errors"

	"github.com/ezrec/scmulate/translate"
)

var f = translate.From

var (
	ErrAddressRange    = errors.New(f("address out of range"))
	ErrMemoryClosed    = errors.New(f("memory interface closed"))
	ErrOpcodeUnknown   = errors.New(f("memory opcode unknown"))
	ErrOperandRegister = errors.New(f("memory data operand must be a register"))
)
