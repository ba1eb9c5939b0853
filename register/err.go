package register

import (
	"errors"

	"github.com/ezrec/scmulate/translate"
)

var f = translate.From

var (
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrRegisterRange   = errors.New(f("register index out of range"))
	ErrClassUnknown    = errors.New(f("size class unknown"))
)

// ErrRegisterToken reports a token that does not name a register.
type ErrRegisterToken string

func (err ErrRegisterToken) Error() string {
	return f("'%v' is not a register", string(err))
}

func (err ErrRegisterToken) Is(target error) bool {
	return target == ErrRegisterInvalid
}
