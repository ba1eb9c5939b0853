// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package program

import (
	"bufio"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/scmulate/isa"
)

var (
	exprRe        = regexp.MustCompile(`\$\(([^()$]|\([^()]*\))*\)`)
	tokenRe       = regexp.MustCompile(`[^\s,()]+`)
	charRe        = regexp.MustCompile(`'[^'\\]'`)
)

// Loader is a single pass loader for program text.
type Loader struct {
	Verbose    bool            // If set, verbosely logs the loader actions.
	Strict     bool            // If set, rejects unrecognized instructions and missing labels.
	Classifier *isa.Classifier // Classifier used in strict mode; nil for the default.

	predefine map[string]string
	Equate    map[string]string // Map of equates.
	Label     map[string]int    // Map of labels to instruction indexes.
	lines     []Line
}

// Predefine defines an equate that is visible to every parsed program.
func (ld *Loader) Predefine(equ string, value string) {
	if ld.predefine == nil {
		ld.predefine = map[string]string{equ: value}
	} else {
		ld.predefine[equ] = value
	}
}

// FromLines loads a program from a slice of lines.
func FromLines(lines ...string) (mem *Memory, err error) {
	ld := &Loader{}
	return ld.Parse(strings.NewReader(strings.Join(lines, "\n")))
}

// parenEval does compile-time $(...) evaluations.
func (ld *Loader) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range ld.Equate {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Ignore non-integer equates, such as registers.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine expands one line of text. Returns the instruction text, or
// "" if the line holds no instruction.
func (ld *Loader) parseLine(line string, lineno int) (text string, err error) {
	ld.Equate["LINENO"] = strconv.Itoa(lineno)

	// Strip comments
	if isa.IsComment(line) {
		return
	}
	if n := strings.Index(line, "//"); n >= 0 {
		line = line[:n]
	}
	line = strings.TrimSpace(line)
	if len(line) == 0 {
		return
	}

	// Do 'x' evaluations
	line = charRe.ReplaceAllStringFunc(line, func(word string) string {
		return strconv.Itoa(int(word[1]))
	})

	// Do $() evaluations
	line = exprRe.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := ld.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return strconv.FormatInt(value, 10)
	})
	if err != nil {
		return
	}

	// .equ NAME VALUE
	if strings.HasPrefix(line, ".equ") {
		words := strings.Fields(line)
		if len(words) != 3 || words[0] != ".equ" {
			err = ErrEquateSyntax
			return
		}
		if _, ok := ld.Equate[words[1]]; ok {
			err = ErrEquateDuplicate
			return
		}
		ld.Equate[words[1]] = words[2]
		return
	}

	// Labels, possibly followed by an instruction.
	for {
		label, rest, ok := isa.SplitLabel(line)
		if !ok {
			break
		}
		if _, ok := ld.Label[label]; ok {
			err = ErrLabelDuplicate
			return
		}
		ld.Label[label] = len(ld.lines)
		if ld.Verbose {
			log.Printf("load: label %v = %d", label, len(ld.lines))
		}
		line = rest
		if len(line) == 0 {
			return
		}
	}

	// Equate substitution of whole tokens.
	line = tokenRe.ReplaceAllStringFunc(line, func(word string) string {
		if equate, ok := ld.Equate[word]; ok {
			return equate
		}
		return word
	})

	text = line
	return
}

// Parse parses an input stream into instruction memory.
func (ld *Loader) Parse(input io.Reader) (mem *Memory, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	ld.Label = make(map[string]int, 16)
	ld.lines = nil
	ld.Equate = map[string]string{"LINENO": "0"}
	maps.Copy(ld.Equate, ld.predefine)

	classifier := ld.Classifier
	if classifier == nil {
		classifier = isa.Default()
	}

	var jumps []Line
	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		if ld.Verbose {
			log.Printf("load: %v: %v", lineno, line)
		}

		var text string
		text, err = ld.parseLine(line, lineno)
		if err != nil {
			return
		}
		if len(text) == 0 {
			continue
		}

		if ld.Strict {
			var inst *isa.Instruction
			inst, err = classifier.Classify(text)
			if err != nil {
				return
			}
			if inst.Kind == isa.KIND_UNKNOWN {
				err = ErrInstructionInvalid
				return
			}
			if inst.Kind == isa.KIND_CONTROL && inst.Opcode == "JMPLBL" {
				jumps = append(jumps, Line{LineNo: lineno, Text: inst.Op[0]})
			}
		}

		ld.lines = append(ld.lines, Line{LineNo: lineno, Text: text})
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	// Check jump labels once every label is known.
	for _, jump := range jumps {
		if _, ok := ld.Label[jump.Text]; !ok {
			lineno = jump.LineNo
			line = jump.Text
			err = ErrLabelMissing(jump.Text)
			return
		}
	}

	mem = &Memory{
		Lines:  ld.lines,
		Labels: maps.Clone(ld.Label),
	}

	return
}
