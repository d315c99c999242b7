// Package config holds the settings of a hazard analysis run.
package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Bounds for the search windows.
const (
	MinWindow = 1
	MaxWindow = 8
)

// Config holds the settings of an analysis run.
type Config struct {
	// Input is the listing analysed when no file is named on the command
	// line. Default: input.hex.
	Input string `mapstructure:"input" json:"input"`

	// OutputDir receives the transformed listings and conflict reports.
	// Default: the current directory.
	OutputDir string `mapstructure:"output_dir" json:"output_dir"`

	// ReorderWindow is how many positions after a producer the scheduler
	// searches for an instruction to move up. Default: 3.
	ReorderWindow int `mapstructure:"reorder_window" json:"reorder_window"`

	// DelaySlotWindow is how many positions before a branch are searched
	// for a delay-slot candidate. Default: 3.
	DelaySlotWindow int `mapstructure:"delay_slot_window" json:"delay_slot_window"`

	// MetricsFile, when set, receives the run's gauges in Prometheus text
	// format. Default: disabled.
	MetricsFile string `mapstructure:"metrics_file" json:"metrics_file"`

	// Replay runs every output through the cycle replay core. Default: true.
	Replay bool `mapstructure:"replay" json:"replay"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Input:           "input.hex",
		OutputDir:       ".",
		ReorderWindow:   3,
		DelaySlotWindow: 3,
		MetricsFile:     "",
		Replay:          true,
	}
}

// Load reads a Config from a yaml, json or toml file. Keys missing from the
// file keep their default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that all values are in range.
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("input must not be empty")
	}
	if c.OutputDir == "" {
		return errors.New("output_dir must not be empty")
	}
	if c.ReorderWindow < MinWindow || c.ReorderWindow > MaxWindow {
		return errors.Errorf("reorder_window must be in [%d, %d], got %d",
			MinWindow, MaxWindow, c.ReorderWindow)
	}
	if c.DelaySlotWindow < MinWindow || c.DelaySlotWindow > MaxWindow {
		return errors.Errorf("delay_slot_window must be in [%d, %d], got %d",
			MinWindow, MaxWindow, c.DelaySlotWindow)
	}
	return nil
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}
