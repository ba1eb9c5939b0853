// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	"io"
	"iter"
	"log"
	"maps"
	"strconv"
	"sync"

	"github.com/ezrec/scmulate/codelet"
	"github.com/ezrec/scmulate/cpu"
	"github.com/ezrec/scmulate/internal"
	"github.com/ezrec/scmulate/memory"
	"github.com/ezrec/scmulate/program"
	"github.com/ezrec/scmulate/register"
	"github.com/ezrec/scmulate/translate"
)

var _register_defines = map[string]string{}

func init() {
	for _, class := range register.Classes() {
		_register_defines["WIDTH_"+class.String()] = strconv.Itoa(class.Width())
	}
}

// Stats of a finished run.
type Stats struct {
	Cycles   []uint64 // Cycles executed by each unit.
	Executed uint64   // Codelets executed.
	Requests uint64   // Memory requests serviced.
}

// Total returns the cycles of all units.
func (st Stats) Total() (total uint64) {
	for _, cycles := range st.Cycles {
		total += cycles
	}
	return
}

// Emulator state. Scheduling units plus their shared resources.
type Emulator struct {
	Verbose bool // If set, enables verbose logging.

	Config    *Config           // Machine configuration.
	Registers *register.File    // Register file shared by all units.
	Program   *program.Memory   // Currently loaded instruction memory.
	Executor  *codelet.Executor // Shared executor slot.
	Memory    *memory.Interface // Shared memory-interface slot.
	Codelets  *codelet.Registry // Codelets available to execute instructions.
	Alive     *cpu.Liveness     // Liveness flag shared by all units.
	Units     []*cpu.Unit       // Units of the last run.

	ran bool
}

// NewEmulator creates an emulator for a configuration; nil selects
// DefaultConfig.
func NewEmulator(cfg *Config) (emu *Emulator, err error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	err = cfg.Validate()
	if err != nil {
		return
	}

	rf := register.NewFile(cfg.Registers)

	emu = &Emulator{
		Verbose:   cfg.Verbose,
		Config:    cfg,
		Registers: rf,
		Executor:  codelet.NewExecutor(),
		Memory:    memory.NewInterface(cfg.MemorySize, rf),
		Codelets:  codelet.DefaultRegistry(),
		Alive:     cpu.NewLiveness(),
	}

	return
}

// Defines returns an iterator over the program loader predefines.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	machine := map[string]string{
		"MEM_SIZE": strconv.FormatUint(emu.Config.MemorySize, 10),
		"UNITS":    strconv.Itoa(emu.Config.Units),
	}
	for _, class := range register.Classes() {
		machine["COUNT_"+class.String()] = strconv.Itoa(emu.Registers.Count(class))
	}

	return internal.IterSeq2Concat(maps.All(_register_defines),
		maps.All(machine),
	)
}

// LoadProgram parses program text into the instruction memory, with the
// machine defines available as equates.
func (emu *Emulator) LoadProgram(input io.Reader, strict bool) (err error) {
	ld := &program.Loader{
		Verbose: emu.Verbose,
		Strict:  strict,
	}
	for name, value := range emu.Defines() {
		ld.Predefine(name, value)
	}

	prog, err := ld.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog
	return
}

// Run launches every scheduling unit behind a start barrier and waits
// until all of them stop. Cancelling ctx clears the liveness flag. The
// returned error joins the fatal errors of all units.
//
// An emulator runs once.
func (emu *Emulator) Run(ctx context.Context) (stats Stats, err error) {
	if emu.Program == nil {
		err = ErrProgramMissing
		return
	}
	if emu.ran {
		err = ErrEmulatorDone
		return
	}
	emu.ran = true

	emu.Executor.Verbose = emu.Verbose
	emu.Memory.Verbose = emu.Verbose

	stop := context.AfterFunc(ctx, emu.Alive.Kill)
	defer stop()

	// Resources outlive the units, so an in-flight dispatch completes.
	var resources sync.WaitGroup
	resources.Add(2)
	go func() {
		defer resources.Done()
		emu.Executor.Run(context.Background())
	}()
	go func() {
		defer resources.Done()
		emu.Memory.Run(context.Background())
	}()

	start := make(chan struct{})
	errs := make([]error, emu.Config.Units)
	emu.Units = make([]*cpu.Unit, emu.Config.Units)

	var units sync.WaitGroup
	for n := range emu.Units {
		su := &cpu.Unit{
			Verbose:   emu.Verbose,
			Id:        n,
			MaxCycles: emu.Config.MaxCycles,
			Program:   emu.Program,
			Registers: emu.Registers,
			Codelets:  emu.Codelets,
			Executor:  emu.Executor,
			Memory:    emu.Memory,
			Alive:     emu.Alive,
		}
		emu.Units[n] = su

		units.Add(1)
		go func() {
			defer units.Done()
			errs[n] = su.Run(start)
		}()
	}

	if emu.Verbose {
		log.Printf("emu: %d units launched", len(emu.Units))
	}
	close(start)

	units.Wait()

	emu.Executor.Close()
	emu.Memory.Close()
	resources.Wait()

	stats.Cycles = make([]uint64, len(emu.Units))
	for n, su := range emu.Units {
		stats.Cycles[n] = su.Cycles
	}
	stats.Executed = emu.Executor.Executed()
	stats.Requests = emu.Memory.Requests()

	err = errors.Join(errs...)
	if err == nil {
		err = ctx.Err()
	}

	return
}

// Dump writes every register that is not zero.
func (emu *Emulator) Dump(w io.Writer) (err error) {
	p := translate.Printer()
	for h, data := range emu.Registers.All() {
		zero := true
		for _, b := range data {
			if b != 0 {
				zero = false
				break
			}
		}
		if zero {
			continue
		}
		_, err = p.Fprintf(w, "%v = 0x%x\n", h, data)
		if err != nil {
			return
		}
	}
	return
}
