package codelet

import (
	"errors"

	"github.com/ezrec/scmulate/translate"
)

var f = translate.From

var (
	ErrCodeletOperand  = errors.New(f("codelet operand invalid"))
	ErrCodeletReleased = errors.New(f("codelet invocation released"))
	ErrExecutorClosed  = errors.New(f("executor closed"))
	ErrScriptRun       = errors.New(f("script has no run(op1, op2, op3) function"))
	ErrScriptResult    = errors.New(f("script result invalid"))
)

// ErrCodeletUnknown reports an execute instruction naming no registered
// codelet.
type ErrCodeletUnknown string

func (err ErrCodeletUnknown) Error() string {
	return f("codelet %v unknown", string(err))
}
