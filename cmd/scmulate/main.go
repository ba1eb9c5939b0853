// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/tebeka/atexit"

	"github.com/ezrec/scmulate/codelet"
	"github.com/ezrec/scmulate/emulator"
	"github.com/ezrec/scmulate/register"
)

// preset is a -r register assignment.
type preset struct {
	Handle register.Handle
	Value  uint64
}

func parsePreset(text string) (p preset, err error) {
	token, value, ok := strings.Cut(text, "=")
	if !ok {
		err = register.ErrRegisterToken(text)
		return
	}

	p.Handle, err = register.Decode(strings.TrimSpace(token))
	if err != nil {
		return
	}

	p.Value, err = strconv.ParseUint(strings.TrimSpace(value), 0, 64)
	return
}

func main() {
	var compile string
	var config string
	var units int
	var image string
	var at uint64
	var strict bool
	var verbose bool
	var dump bool
	var scripts []string
	var presets []preset

	flag.StringVar(&compile, "c", "", "program file to run")
	flag.StringVar(&config, "config", "", "JSON machine configuration")
	flag.IntVar(&units, "n", 0, "number of scheduling units (overrides -config)")
	flag.StringVar(&image, "m", "", "memory image to load")
	flag.Uint64Var(&at, "at", 0, "load address of the memory image")
	flag.BoolVar(&strict, "strict", false, "reject unknown instructions and labels at load")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&dump, "dump", false, "print non-zero registers after the run")
	flag.Func("codelet", "Starlark codelet file (repeatable)", func(path string) error {
		scripts = append(scripts, path)
		return nil
	})
	flag.Func("r", "register preset, as R1.W=10 (repeatable)", func(text string) (err error) {
		p, err := parsePreset(text)
		if err != nil {
			return
		}
		presets = append(presets, p)
		return
	})

	flag.Parse()

	if flag.NArg() != 0 {
		atexit.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) == 0 {
		atexit.Fatalf("%v: -c program required", os.Args[0])
	}

	cfg := emulator.DefaultConfig()
	if len(config) != 0 {
		var err error
		cfg, err = emulator.LoadConfig(config)
		if err != nil {
			atexit.Fatalf("%v: %v", config, err)
		}
	}
	if units > 0 {
		cfg.Units = units
	}
	if verbose {
		cfg.Verbose = true
	}

	emu, err := emulator.NewEmulator(cfg)
	if err != nil {
		atexit.Fatalf("%v: %v", os.Args[0], err)
	}

	for _, path := range scripts {
		name := strings.ToUpper(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		factory, err := codelet.LoadScript(name, path, nil)
		if err != nil {
			atexit.Fatalf("%v: %v", path, err)
		}
		emu.Codelets.Register(name, factory)
	}

	for _, p := range presets {
		err = emu.Registers.SetUint64(p.Handle, p.Value)
		if err != nil {
			atexit.Fatalf("%v: %v", p.Handle, err)
		}
	}

	if len(image) != 0 {
		data, err := os.ReadFile(image)
		if err != nil {
			atexit.Fatalf("%v: %v", image, err)
		}
		err = emu.Memory.Load(at, data)
		if err != nil {
			atexit.Fatalf("%v: %v", image, err)
		}
	}

	inf, err := os.Open(compile)
	if err != nil {
		atexit.Fatalf("%v: %v", compile, err)
	}
	atexit.Register(func() { inf.Close() })

	err = emu.LoadProgram(inf, strict)
	if err != nil {
		atexit.Fatalf("%v: %v", compile, err)
	}

	if verbose {
		pp.Fprintln(os.Stderr, emu.Program.Labels)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	atexit.Register(stop)

	stats, err := emu.Run(ctx)

	if verbose {
		pp.Fprintln(os.Stderr, stats)
	}

	if dump {
		emu.Dump(os.Stdout)
	}

	if err != nil {
		log.Printf("%v: %v", compile, err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
