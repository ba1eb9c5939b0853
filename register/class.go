package register

import (
	"slices"
)

// Class is a register size class tag.
type Class byte

const (
	CLASS_NONE = Class(0)
	CLASS_B    = Class('B') // 1 byte
	CLASS_H    = Class('H') // 2 bytes
	CLASS_W    = Class('W') // 4 bytes
	CLASS_D    = Class('D') // 8 bytes
	CLASS_Q    = Class('Q') // 16 bytes
	CLASS_L    = Class('L') // 64 bytes
	CLASS_K    = Class('K') // 1024 bytes
)

var classWidth = map[Class]int{
	CLASS_B: 1,
	CLASS_H: 2,
	CLASS_W: 4,
	CLASS_D: 8,
	CLASS_Q: 16,
	CLASS_L: 64,
	CLASS_K: 1024,
}

// Classes returns all size classes, narrowest first.
func Classes() []Class {
	classes := make([]Class, 0, len(classWidth))
	for class := range classWidth {
		classes = append(classes, class)
	}
	slices.SortFunc(classes, func(a, b Class) int {
		return classWidth[a] - classWidth[b]
	})
	return classes
}

// Width returns the byte width of the class, or 0 if unknown.
func (c Class) Width() int {
	return classWidth[c]
}

// Valid returns true for a known size class.
func (c Class) Valid() bool {
	_, ok := classWidth[c]
	return ok
}

func (c Class) String() string {
	if !c.Valid() {
		return "?"
	}
	return string(rune(c))
}

// ParseClass converts a class letter.
func ParseClass(text string) (class Class, err error) {
	if len(text) != 1 {
		err = ErrClassUnknown
		return
	}
	class = Class(text[0])
	if !class.Valid() {
		class = CLASS_NONE
		err = ErrClassUnknown
	}
	return
}

// MarshalText renders the class letter, so layouts encode as
// {"W": 16}.
func (c Class) MarshalText() (text []byte, err error) {
	if !c.Valid() {
		err = ErrClassUnknown
		return
	}
	text = []byte{byte(c)}
	return
}

// UnmarshalText parses a class letter.
func (c *Class) UnmarshalText(text []byte) (err error) {
	*c, err = ParseClass(string(text))
	return
}
