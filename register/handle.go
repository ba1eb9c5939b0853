package register

import (
	"fmt"
	"regexp"
	"strconv"
)

// Register token grammar, R<index>.<class>.
var (
	registerRegex      = regexp.MustCompile(`^R[0-9]+\.[A-Z]$`)
	registerSplitRegex = regexp.MustCompile(`^R([0-9]+)\.([A-Z])$`)
)

// Handle names a single register.
type Handle struct {
	Class Class
	Index uint
}

// String returns the canonical register token.
func (h Handle) String() string {
	return fmt.Sprintf("R%d.%v", h.Index, h.Class)
}

// Width of the register in bytes.
func (h Handle) Width() int {
	return h.Class.Width()
}

// SameClass returns true if both handles have the same size class.
func (h Handle) SameClass(other Handle) bool {
	return h.Class == other.Class
}

// IsRegister returns true if the token uses register syntax. It does not
// check that the size class or index exist.
func IsRegister(token string) bool {
	return registerRegex.MatchString(token)
}

// Decode splits a register token into its size class and index.
// Tokens that are not registers, or name an unknown size class, return
// an error; the returned handle is only valid when err is nil.
func Decode(token string) (h Handle, err error) {
	matches := registerSplitRegex.FindStringSubmatch(token)
	if matches == nil {
		err = ErrRegisterToken(token)
		return
	}

	index, err := strconv.ParseUint(matches[1], 10, 32)
	if err != nil {
		err = ErrRegisterToken(token)
		return
	}

	class, err := ParseClass(matches[2])
	if err != nil {
		err = ErrRegisterToken(token)
		return
	}

	h = Handle{Class: class, Index: uint(index)}
	return
}
