package register

import (
	"iter"
	"maps"
	"slices"
)

// Layout is the number of registers in each size class.
type Layout map[Class]int

// DefaultLayout returns the register layout used when none is configured.
func DefaultLayout() Layout {
	return Layout{
		CLASS_B: 16,
		CLASS_H: 16,
		CLASS_W: 16,
		CLASS_D: 16,
		CLASS_Q: 8,
		CLASS_L: 8,
		CLASS_K: 4,
	}
}

// Validate checks that every class in the layout is known.
func (l Layout) Validate() (err error) {
	for class, count := range l {
		if !class.Valid() {
			return ErrClassUnknown
		}
		if count < 0 {
			return ErrRegisterRange
		}
	}
	return
}

// File is the register file. Each size class is a contiguous bank of
// big-endian byte buffers.
//
// The file does no locking: overlapping writes from several scheduling
// units to the same register are the program's responsibility.
type File struct {
	bank  map[Class][]byte
	count map[Class]int
}

// NewFile creates a zeroed register file.
func NewFile(layout Layout) (rf *File) {
	rf = &File{
		bank:  make(map[Class][]byte, len(layout)),
		count: make(map[Class]int, len(layout)),
	}

	for class, count := range layout {
		if !class.Valid() || count <= 0 {
			continue
		}
		rf.bank[class] = make([]byte, count*class.Width())
		rf.count[class] = count
	}

	return
}

// Width returns the byte width of a size class.
func (rf *File) Width(class Class) int {
	return class.Width()
}

// Count returns the number of registers of a size class.
func (rf *File) Count(class Class) int {
	return rf.count[class]
}

// Bytes returns the live storage of a register. Writes to the returned
// slice update the register.
func (rf *File) Bytes(h Handle) (data []byte, err error) {
	if !h.Class.Valid() {
		err = ErrClassUnknown
		return
	}
	if int(h.Index) >= rf.count[h.Class] {
		err = ErrRegisterRange
		return
	}

	width := h.Class.Width()
	start := int(h.Index) * width
	data = rf.bank[h.Class][start : start+width : start+width]
	return
}

// SetUint64 stores value into the register, big-endian, truncated to
// the register width. Wide registers are zero-extended.
func (rf *File) SetUint64(h Handle, value uint64) (err error) {
	data, err := rf.Bytes(h)
	if err != nil {
		return
	}

	for n := len(data) - 1; n >= 0; n-- {
		data[n] = byte(value & 0xff)
		value >>= 8
	}
	return
}

// Uint64 returns the low 64 bits of the register contents.
func (rf *File) Uint64(h Handle) (value uint64, err error) {
	data, err := rf.Bytes(h)
	if err != nil {
		return
	}

	value = ToUint64(data)
	return
}

// ToUint64 interprets the low 8 bytes of a big-endian buffer.
func ToUint64(data []byte) (value uint64) {
	start := max(len(data)-8, 0)
	for _, b := range data[start:] {
		value = (value << 8) | uint64(b)
	}
	return
}

// Reset zeros every register.
func (rf *File) Reset() {
	for _, bank := range rf.bank {
		clear(bank)
	}
}

// All iterates every register handle and its contents, grouped by class
// from narrowest to widest.
func (rf *File) All() iter.Seq2[Handle, []byte] {
	return func(yield func(Handle, []byte) bool) {
		classes := slices.Collect(maps.Keys(rf.bank))
		slices.SortFunc(classes, func(a, b Class) int {
			return a.Width() - b.Width()
		})
		for _, class := range classes {
			for n := range rf.count[class] {
				h := Handle{Class: class, Index: uint(n)}
				data, _ := rf.Bytes(h)
				if !yield(h, data) {
					return
				}
			}
		}
	}
}
