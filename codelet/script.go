package codelet

import (
	"errors"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// script is a Starlark codelet. The module globals are frozen, so one
// script may run on many threads at once.
type script struct {
	name string
	run  starlark.Callable
}

// LoadScript compiles a Starlark codelet. src may be anything
// starlark.ExecFileOptions accepts; with a nil src the file named
// filename is read.
func LoadScript(name string, filename string, src any) (factory Factory, err error) {
	thread := &starlark.Thread{Name: name}
	opts := syntax.FileOptions{}

	globals, err := starlark.ExecFileOptions(&opts, thread, filename, src, nil)
	if err != nil {
		return
	}
	globals.Freeze()

	run, ok := globals["run"].(*starlark.Function)
	if !ok || run.NumParams() != 3 {
		err = ErrScriptRun
		return
	}

	sc := &script{name: name, run: run}
	factory = func() Codelet { return sc }
	return
}

func (sc *script) Name() string {
	return sc.name
}

func (sc *script) Run(p *Params) (err error) {
	if p.Released() {
		return ErrCodeletReleased
	}

	var op [3][]byte
	args := make(starlark.Tuple, len(op))
	for n := range op {
		op[n] = p.Op(n)
		if op[n] == nil {
			args[n] = starlark.None
		} else {
			args[n] = starlark.Bytes(op[n])
		}
	}

	thread := &starlark.Thread{Name: sc.name}
	result, err := starlark.Call(thread, sc.run, args, nil)
	if err != nil {
		return
	}

	if result == starlark.None {
		return
	}

	list, ok := result.(starlark.Indexable)
	if !ok || list.Len() > len(op) {
		return ErrScriptResult
	}

	// Check every entry before any register changes.
	update := make([][]byte, list.Len())
	for n := range update {
		value := list.Index(n)
		if value == starlark.None {
			continue
		}
		data, ok := value.(starlark.Bytes)
		if !ok || op[n] == nil || len(data) != len(op[n]) {
			err = errors.Join(ErrScriptResult, ErrCodeletOperand)
			return
		}
		update[n] = []byte(data)
	}

	for n, data := range update {
		if data != nil {
			copy(op[n], data)
		}
	}

	return
}
