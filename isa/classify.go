package isa

import (
	"regexp"
	"strings"
)

var (
	commitRe  = regexp.MustCompile(commitRegex)
	executeRe = regexp.MustCompile(executeRegex)
	labelRe   = regexp.MustCompile(labelRegex)
	commentRe = regexp.MustCompile(commentRegex)
)

// Classifier recognizes instruction text against a set of instruction
// tables.
type Classifier struct {
	control []rule
	arith   []rule
	memory  []rule
}

// NewClassifier compiles the control, arithmetic and memory tables.
// Entries with an operand count outside 0..3, or with fewer capture
// groups than operands, are rejected.
func NewClassifier(control, arith, memory []Entry) (c *Classifier, err error) {
	c = &Classifier{}

	c.control, err = compile(control)
	if err != nil {
		return nil, err
	}
	c.arith, err = compile(arith)
	if err != nil {
		return nil, err
	}
	c.memory, err = compile(memory)
	if err != nil {
		return nil, err
	}

	return
}

var defaultClassifier *Classifier

func init() {
	var err error
	defaultClassifier, err = NewClassifier(ControlTable, ArithTable, MemoryTable)
	if err != nil {
		panic(err)
	}
}

// Default returns the classifier for the built-in instruction tables.
func Default() *Classifier {
	return defaultClassifier
}

// Classify classifies text with the built-in instruction tables.
func Classify(text string) (inst *Instruction, err error) {
	return defaultClassifier.Classify(text)
}

// Classify recognizes a line of program text. It always returns an
// instruction; text that matches no grammar is KIND_UNKNOWN. An error is
// returned only for malformed execute operand lists, together with an
// instruction holding the operands that fit.
func (c *Classifier) Classify(text string) (inst *Instruction, err error) {
	if inst = c.isCommit(text); inst != nil {
		return
	}
	if inst = c.match(KIND_CONTROL, c.control, text); inst != nil {
		return
	}
	if inst = c.match(KIND_ARITH, c.arith, text); inst != nil {
		return
	}
	if inst, err = c.isExecute(text); inst != nil {
		return
	}
	if inst = c.match(KIND_MEMORY, c.memory, text); inst != nil {
		return
	}

	inst = &Instruction{Kind: KIND_UNKNOWN, Text: text}
	return
}

func (c *Classifier) isCommit(text string) *Instruction {
	if !commitRe.MatchString(text) {
		return nil
	}
	return &Instruction{Kind: KIND_COMMIT, Opcode: "COMMIT", Text: text}
}

// match tries each rule of a table in order.
func (c *Classifier) match(kind Kind, rules []rule, text string) *Instruction {
	for _, r := range rules {
		matches := r.re.FindStringSubmatch(text)
		if matches == nil {
			continue
		}
		inst := &Instruction{
			Kind:   kind,
			Opcode: matches[1],
			OpIO:   r.OpIO,
			Text:   text,
		}
		for n := range r.NumOp {
			inst.Op[n] = matches[n+2]
		}
		return inst
	}
	return nil
}

func (c *Classifier) isExecute(text string) (inst *Instruction, err error) {
	matches := executeRe.FindStringSubmatch(text)
	if matches == nil {
		return
	}

	inst = &Instruction{Kind: KIND_EXECUTE, Opcode: matches[1], Text: text}

	operands := strings.TrimSpace(matches[2])
	if len(operands) == 0 {
		return
	}

	for n, token := range strings.Split(operands, ",") {
		if n >= len(inst.Op) {
			err = ErrExecuteOperands
			return
		}
		token = strings.TrimSpace(token)
		if len(token) == 0 {
			// Empty tokens would shift the operand positions.
			inst.Op = [3]string{}
			err = ErrExecuteOperands
			return
		}
		inst.Op[n] = token
	}

	return
}

// IsComment returns true for comment lines.
func IsComment(text string) bool {
	return commentRe.MatchString(text)
}

// IsLabel returns true for label lines.
func IsLabel(text string) bool {
	label, rest, ok := SplitLabel(text)
	return ok && len(label) != 0 && len(rest) == 0
}

// GetLabel extracts the name of a label line, or returns "".
func GetLabel(text string) string {
	if !IsLabel(text) {
		return ""
	}
	label, _, _ := SplitLabel(text)
	return label
}

// SplitLabel splits a leading `name:` from text. rest is the remainder
// of the line, which may hold an instruction.
func SplitLabel(text string) (label string, rest string, ok bool) {
	matches := labelRe.FindStringSubmatch(text)
	if matches == nil {
		return
	}
	label = matches[1]
	rest = strings.TrimSpace(matches[2])
	ok = true
	return
}
