package emulator

import (
	"errors"

	"github.com/ezrec/scmulate/translate"
)

var f = translate.From

var (
	ErrConfigUnits    = errors.New(f("units must be at least 1"))
	ErrConfigMemory   = errors.New(f("memory_size must be at least 1"))
	ErrConfigRead     = errors.New(f("config file unreadable"))
	ErrConfigWrite    = errors.New(f("config file unwritable"))
	ErrProgramMissing = errors.New(f("no program loaded"))
	ErrEmulatorDone   = errors.New(f("emulator already ran"))
)
