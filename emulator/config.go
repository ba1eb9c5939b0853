package emulator

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/ezrec/scmulate/register"
)

// Defaults of a machine configuration.
const (
	DEFAULT_UNITS       = 1
	DEFAULT_MEMORY_SIZE = 64 * 1024
)

// Config describes the simulated machine.
type Config struct {
	// Units is the number of scheduling units. Default: 1.
	Units int `json:"units"`

	// MemorySize is the memory-interface size in bytes. Default: 64KiB.
	MemorySize uint64 `json:"memory_size"`

	// MaxCycles limits the cycles of each unit; 0 is unlimited.
	MaxCycles uint64 `json:"max_cycles"`

	// Registers is the register count per size class.
	Registers register.Layout `json:"registers"`

	// Verbose enables logging of every cycle.
	Verbose bool `json:"verbose"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() *Config {
	return &Config{
		Units:      DEFAULT_UNITS,
		MemorySize: DEFAULT_MEMORY_SIZE,
		Registers:  register.DefaultLayout(),
	}
}

// LoadConfig loads a configuration from a JSON file. Fields missing from
// the file keep their defaults.
func LoadConfig(path string) (cfg *Config, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		err = errors.Join(ErrConfigRead, err)
		return
	}

	cfg = DefaultConfig()
	cfg.Registers = nil
	err = json.Unmarshal(data, cfg)
	if err != nil {
		cfg = nil
		err = errors.Join(ErrConfigRead, err)
		return
	}
	if cfg.Registers == nil {
		cfg.Registers = register.DefaultLayout()
	}

	return
}

// SaveConfig writes the configuration as JSON.
func (cfg *Config) SaveConfig(path string) (err error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		err = errors.Join(ErrConfigWrite, err)
		return
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		err = errors.Join(ErrConfigWrite, err)
		return
	}

	return
}

// Validate checks the configuration.
func (cfg *Config) Validate() (err error) {
	if cfg.Units < 1 {
		return ErrConfigUnits
	}
	if cfg.MemorySize == 0 {
		return ErrConfigMemory
	}
	return cfg.Registers.Validate()
}
