// Package config loads optional simulator settings from a JSON file,
// following the IniciarConfiguracion idiom from
// biandopa-tp-2025-1c-CPU-Warriors/utils/config/config.go — except this
// version returns an error instead of panicking, since a single-process
// simulator has no supervisor to restart it.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pedropsouza/scheduler/internal/proc"
)

// Config holds the settings an operator may override for a run.
type Config struct {
	// InitProgram is the path to the initial process's program,
	// defaulting to "init.txt" per spec §4.10.
	InitProgram string `json:"init_program"`

	// TimeSlices overrides the priority→time-slice table of spec §3,
	// indexed 0..9. A nil or empty slice leaves the default in place;
	// Load rejects a slice of any other length than 10.
	TimeSlices []int `json:"time_slices"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `json:"log_level"`
}

// Default returns the configuration a run uses when no config file is
// given.
func Default() Config {
	return Config{
		InitProgram: "init.txt",
		LogLevel:    "info",
	}
}

// Load reads and decodes path into cfg, starting from Default(). A
// missing file is not an error — the caller gets Default() back.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: opening %s: %w", path, err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config: decoding %s: %w", path, err)
	}

	if len(cfg.TimeSlices) > 0 && len(cfg.TimeSlices) != len(proc.TimeSlices) {
		return cfg, fmt.Errorf("config: time_slices must have exactly %d entries, got %d", len(proc.TimeSlices), len(cfg.TimeSlices))
	}

	return cfg, nil
}

// ApplyTimeSlices overwrites proc.TimeSlices with cfg's override, if any.
// Called once at startup, before the scheduler is constructed.
func ApplyTimeSlices(cfg Config) {
	for i, v := range cfg.TimeSlices {
		proc.TimeSlices[i] = v
	}
}
