package program

import (
	"iter"
	"maps"
)

// Line is one instruction with its source line number.
type Line struct {
	LineNo int
	Text   string
}

// Memory is the read-only instruction memory shared by all scheduling
// units, together with its label table.
type Memory struct {
	Lines  []Line
	Labels map[string]int
}

// Fetch returns the instruction text at pc, or "" outside the memory.
func (mem *Memory) Fetch(pc int) string {
	if pc < 0 || pc >= len(mem.Lines) {
		return ""
	}
	return mem.Lines[pc].Text
}

// Label returns the instruction index of a label.
func (mem *Memory) Label(name string) (pc int, ok bool) {
	pc, ok = mem.Labels[name]
	return
}

// Size returns the number of instructions.
func (mem *Memory) Size() int {
	return len(mem.Lines)
}

// LineNo returns the source line of the instruction at pc, or 0.
func (mem *Memory) LineNo(pc int) int {
	if pc < 0 || pc >= len(mem.Lines) {
		return 0
	}
	return mem.Lines[pc].LineNo
}

// AllLabels iterates the label table.
func (mem *Memory) AllLabels() iter.Seq2[string, int] {
	return maps.All(mem.Labels)
}
