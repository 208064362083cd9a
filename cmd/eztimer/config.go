package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML benchmark definition accepted by --config. All
// option fields are pointers so that an absent key leaves the flag default
// (or an explicitly set flag) untouched.
type fileConfig struct {
	Commands      []string        `yaml:"commands"`
	Runs          *int            `yaml:"runs"`
	Warmup        *int            `yaml:"warmup"`
	Seed          *uint64         `yaml:"seed"`
	MaxPerCommand *configDuration `yaml:"max_time_per_command"`
	MaxTotal      *configDuration `yaml:"max_time_total"`
	Shell         *string         `yaml:"shell"`
	NoShell       *bool           `yaml:"no_shell"`
	Setup         *string         `yaml:"setup"`
}

// configDuration parses "30s" style duration strings.
type configDuration time.Duration

func (d *configDuration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = configDuration(parsed)
	return nil
}

func loadConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// apply copies file values into the settings. Flags changed on the command
// line win over the file; file values win over flag defaults.
func (c *fileConfig) apply(flags *pflag.FlagSet, s *benchSettings) {
	s.commands = append(s.commands, c.Commands...)

	if c.Runs != nil && !flags.Changed("runs") {
		s.runs = *c.Runs
	}
	if c.Warmup != nil && !flags.Changed("warmup") {
		s.warmup = *c.Warmup
	}
	if c.Seed != nil && !flags.Changed("seed") {
		s.seed = *c.Seed
	}
	if c.MaxPerCommand != nil && !flags.Changed("max-time-per-command") {
		s.perCommand = time.Duration(*c.MaxPerCommand)
	}
	if c.MaxTotal != nil && !flags.Changed("max-time-total") {
		s.total = time.Duration(*c.MaxTotal)
	}
	if c.Shell != nil && !flags.Changed("shell") {
		s.shell = *c.Shell
	}
	if c.NoShell != nil && !flags.Changed("no-shell") {
		s.noShell = *c.NoShell
	}
	if c.Setup != nil && !flags.Changed("setup") {
		s.setup = *c.Setup
	}
}
