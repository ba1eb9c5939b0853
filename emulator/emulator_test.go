package emulator

import (
	"bytes"
	"context"
	"errors"
	"maps"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/scmulate/codelet"
	"github.com/ezrec/scmulate/cpu"
	"github.com/ezrec/scmulate/register"
)

func doRun(t *testing.T, cfg *Config, lines ...string) (emu *Emulator, stats Stats, err error) {
	t.Helper()

	emu, err = NewEmulator(cfg)
	if err != nil {
		t.Fatal(err)
	}

	err = emu.LoadProgram(strings.NewReader(strings.Join(lines, "\n")), true)
	if err != nil {
		t.Fatal(err)
	}

	stats, err = emu.Run(context.Background())
	return
}

func regValue(emu *Emulator, token string) uint64 {
	h, err := register.Decode(token)
	if err != nil {
		panic(err)
	}
	value, err := emu.Registers.Uint64(h)
	if err != nil {
		panic(err)
	}
	return value
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(nil)
	assert.NoError(err)

	assert.False(emu.Verbose)
	assert.NotNil(emu.Registers)
	assert.NotNil(emu.Executor)
	assert.NotNil(emu.Memory)
	assert.True(emu.Alive.Alive())
	assert.Equal(uint64(DEFAULT_MEMORY_SIZE), emu.Memory.Size())

	_, err = emu.Run(context.Background())
	assert.ErrorIs(err, ErrProgramMissing)

	_, err = NewEmulator(&Config{})
	assert.ErrorIs(err, ErrConfigUnits)
}

func TestEmulatorDefines(t *testing.T) {
	assert := assert.New(t)

	cfg := DefaultConfig()
	cfg.Units = 3
	cfg.MemorySize = 4096
	emu, err := NewEmulator(cfg)
	assert.NoError(err)

	defines := maps.Collect(emu.Defines())
	assert.Equal("1", defines["WIDTH_B"])
	assert.Equal("4", defines["WIDTH_W"])
	assert.Equal("1024", defines["WIDTH_K"])
	assert.Equal("16", defines["COUNT_W"])
	assert.Equal("4", defines["COUNT_K"])
	assert.Equal("4096", defines["MEM_SIZE"])
	assert.Equal("3", defines["UNITS"])

	err = emu.LoadProgram(strings.NewReader("ADD R0.W, R0.W, $(WIDTH_W * UNITS)\nCOMMIT\n"), true)
	assert.NoError(err)
	assert.Equal("ADD R0.W, R0.W, 12", emu.Program.Fetch(0))
}

func TestEmulatorCommit(t *testing.T) {
	assert := assert.New(t)

	emu, stats, err := doRun(t, nil,
		"ADD R0.B, R0.B, 5",
		"COMMIT",
	)
	assert.NoError(err)
	assert.Equal([]uint64{2}, stats.Cycles)
	assert.Equal(uint64(2), stats.Total())
	assert.Equal(uint64(5), regValue(emu, "R0.B"))
	assert.False(emu.Alive.Alive())

	_, err = emu.Run(context.Background())
	assert.ErrorIs(err, ErrEmulatorDone)
}

func TestEmulatorLoop(t *testing.T) {
	assert := assert.New(t)

	emu, stats, err := doRun(t, nil,
		".equ COUNT R1.W",
		".equ LIMIT 10",
		"ADD R2.W, R2.W, LIMIT",
		"loop:",
		"ADD COUNT, COUNT, 1",
		"STOFF COUNT, 0x100, $(LIMIT * 0)",
		"INC(R3.W)",
		"BLT COUNT, R2.W, -3",
		"COMMIT",
	)
	assert.NoError(err)
	assert.Equal(uint64(10), regValue(emu, "R1.W"))
	assert.Equal(uint64(10), regValue(emu, "R3.W"))
	assert.Equal(uint64(10), stats.Executed)
	assert.Equal(uint64(10), stats.Requests)
	assert.Equal(uint64(1+4*10+1), stats.Total())

	data, err := emu.Memory.Dump(0x100, 4)
	assert.NoError(err)
	assert.Equal([]byte{0, 0, 0, 10}, data)
}

func TestEmulatorFatal(t *testing.T) {
	assert := assert.New(t)

	cfg := DefaultConfig()
	cfg.Units = 4
	emu, err := NewEmulator(cfg)
	assert.NoError(err)

	assert.NoError(emu.LoadProgram(strings.NewReader("loop:\nJMPLBL loop\n???\n"), false))

	// All units spin; cancelling the context stops them.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stats, err := emu.Run(ctx)
	assert.ErrorIs(err, context.Canceled)
	assert.Equal(4, len(stats.Cycles))
	assert.False(emu.Alive.Alive())

	// A fatal error in one unit stops all units.
	emu, _, err = doRun(t, nil,
		"ADD R0.B, R0.B, 255",
		"ADD R0.B, R0.B, 1",
		"COMMIT",
	)
	var fatal *cpu.ErrFatal
	assert.True(errors.As(err, &fatal))
	assert.ErrorIs(err, cpu.ErrArithOverflow)
	assert.Equal(1, fatal.Pc)
	assert.False(emu.Alive.Alive())
}

func TestEmulatorCycleLimit(t *testing.T) {
	assert := assert.New(t)

	cfg := DefaultConfig()
	cfg.MaxCycles = 50
	_, stats, err := doRun(t, cfg, "JMPPC 0")
	assert.ErrorIs(err, cpu.ErrCycleLimit)
	assert.Equal([]uint64{50}, stats.Cycles)
}

func TestEmulatorScript(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(nil)
	assert.NoError(err)

	factory, err := codelet.LoadScript("DOUBLE", "double.star", `
def run(dst, src, unused):
    out = []
    carry = 0
    for b in reversed(list(src.elems())):
        v = b * 2 + carry
        out.insert(0, v & 0xff)
        carry = v >> 8
    return (bytes(out), None, None)
`)
	assert.NoError(err)
	emu.Codelets.Register("DOUBLE", factory)

	assert.NoError(emu.Registers.SetUint64(register.Handle{Class: register.CLASS_H, Index: 1}, 0x1234))
	assert.NoError(emu.LoadProgram(strings.NewReader("DOUBLE(R0.H, R1.H)\nCOMMIT\n"), true))

	_, err = emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal(uint64(0x2468), regValue(emu, "R0.H"))
}

func TestEmulatorDump(t *testing.T) {
	assert := assert.New(t)

	emu, _, err := doRun(t, nil,
		"ADD R2.B, R2.B, 7",
		"ADD R1.H, R1.H, 0x102",
		"COMMIT",
	)
	assert.NoError(err)

	var buff bytes.Buffer
	assert.NoError(emu.Dump(&buff))
	assert.Equal("R2.B = 0x07\nR1.H = 0x0102\n", buff.String())
}

func TestConfig(t *testing.T) {
	assert := assert.New(t)

	cfg := DefaultConfig()
	assert.NoError(cfg.Validate())
	assert.Equal(DEFAULT_UNITS, cfg.Units)

	cfg.Units = 2
	cfg.MaxCycles = 1000
	cfg.Registers = register.Layout{register.CLASS_W: 4}

	path := filepath.Join(t.TempDir(), "machine.json")
	assert.NoError(cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	assert.NoError(err)
	assert.Equal(cfg, loaded)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(err, ErrConfigRead)

	table := [](struct {
		cfg *Config
		err error
	}){
		{&Config{Units: 0, MemorySize: 1}, ErrConfigUnits},
		{&Config{Units: 1, MemorySize: 0}, ErrConfigMemory},
		{&Config{Units: 1, MemorySize: 1, Registers: register.Layout{register.CLASS_W: -1}}, register.ErrRegisterRange},
	}
	for _, entry := range table {
		assert.ErrorIs(entry.cfg.Validate(), entry.err)
	}
}
