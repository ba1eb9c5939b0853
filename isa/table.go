package isa

import (
	"regexp"
	"strings"
)

// Entry describes one table-driven instruction.
//
// Regex must capture the opcode as group 1 and each operand in the
// following groups, in order.
type Entry struct {
	Opcode string
	Regex  string
	NumOp  int
	OpIO   OpIO
}

// Operand grammar fragments.
const (
	reReg   = `R[0-9]+\.[A-Z]`
	reImm   = `0[xX][0-9a-fA-F]+|0[bB][01]+|0[oO][0-7]+|[0-9]+`
	reValue = reReg + `|` + reImm
	reOff   = `[-+]?[0-9]+`
	reLabel = `[A-Za-z_][A-Za-z0-9_]*`
	reSep   = `\s*,\s*`
)

// pattern builds an anchored instruction regex from an opcode and its
// operand fragments.
func pattern(opcode string, operands ...string) string {
	var sb strings.Builder
	sb.WriteString(`^\s*(`)
	sb.WriteString(regexp.QuoteMeta(opcode))
	sb.WriteString(`)`)
	for n, operand := range operands {
		if n == 0 {
			sb.WriteString(`\s+`)
		} else {
			sb.WriteString(reSep)
		}
		sb.WriteString(`(`)
		sb.WriteString(operand)
		sb.WriteString(`)`)
	}
	sb.WriteString(`\s*$`)
	return sb.String()
}

// Control instructions. Branch offsets are relative to the branch.
var ControlTable = []Entry{
	{"JMPLBL", pattern("JMPLBL", reLabel), 1, OP_IO_NONE},
	{"JMPPC", pattern("JMPPC", reOff), 1, OP_IO_NONE},
	{"BREQ", pattern("BREQ", reReg, reReg, reOff), 3, OP1_RD | OP2_RD},
	{"BGT", pattern("BGT", reReg, reReg, reOff), 3, OP1_RD | OP2_RD},
	{"BGET", pattern("BGET", reReg, reReg, reOff), 3, OP1_RD | OP2_RD},
	{"BLT", pattern("BLT", reReg, reReg, reOff), 3, OP1_RD | OP2_RD},
	{"BLET", pattern("BLET", reReg, reReg, reOff), 3, OP1_RD | OP2_RD},
}

// Arithmetic instructions, dest = src OP rhs.
var ArithTable = []Entry{
	{"ADD", pattern("ADD", reReg, reReg, reValue), 3, OP1_WR | OP2_RD | OP3_RD},
	{"SUB", pattern("SUB", reReg, reReg, reValue), 3, OP1_WR | OP2_RD | OP3_RD},
	{"SHFL", pattern("SHFL", reReg, reReg, reValue), 3, OP1_WR | OP2_RD | OP3_RD},
	{"SHFR", pattern("SHFR", reReg, reReg, reValue), 3, OP1_WR | OP2_RD | OP3_RD},
}

// Memory instructions, handled by the memory interface.
var MemoryTable = []Entry{
	{"LDADR", pattern("LDADR", reReg, reValue), 2, OP1_WR | OP2_RD},
	{"LDOFF", pattern("LDOFF", reReg, reValue, reValue), 3, OP1_WR | OP2_RD | OP3_RD},
	{"STADR", pattern("STADR", reReg, reValue), 2, OP1_RD | OP2_RD},
	{"STOFF", pattern("STOFF", reReg, reValue, reValue), 3, OP1_RD | OP2_RD | OP3_RD},
}

// Non-table grammars.
const (
	commitRegex  = `^\s*COMMIT\s*$`
	executeRegex = `^\s*([A-Za-z_][A-Za-z0-9_]*)\s*\(([^()]*)\)\s*$`
	labelRegex   = `^\s*(` + reLabel + `)\s*:\s*(.*)$`
	commentRegex = `^\s*//.*$`
)

// rule is a compiled table entry.
type rule struct {
	Entry
	re *regexp.Regexp
}

// compile validates and compiles a table.
func compile(table []Entry) (rules []rule, err error) {
	rules = make([]rule, 0, len(table))
	for _, entry := range table {
		if entry.NumOp < 0 || entry.NumOp > 3 {
			err = &ErrEntry{Opcode: entry.Opcode, Err: ErrTableEntry}
			return
		}
		re, rerr := regexp.Compile(entry.Regex)
		if rerr != nil {
			err = &ErrEntry{Opcode: entry.Opcode, Err: rerr}
			return
		}
		if re.NumSubexp() < entry.NumOp+1 {
			err = &ErrEntry{Opcode: entry.Opcode, Err: ErrTableEntry}
			return
		}
		rules = append(rules, rule{Entry: entry, re: re})
	}
	return
}
