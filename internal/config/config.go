// Package config loads tapevm command defaults from a TOML file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents a tapevm.toml file.
type Config struct {
	Tape   Tape   `toml:"tape"`
	Run    Run    `toml:"run"`
	Output Output `toml:"output"`
}

// Tape configures the interpreter's memory.
type Tape struct {
	Size int `toml:"size"`
}

// Run configures evaluation limits and scheduling.
type Run struct {
	StepLimit uint     `toml:"step-limit"`
	Timeout   Duration `toml:"timeout"`
	Jobs      int      `toml:"jobs"`
	Trace     bool     `toml:"trace"`
}

// Output configures how evaluation results are written.
type Output struct {
	Stream bool   `toml:"stream"`
	Quote  bool   `toml:"quote"`
	Tee    string `toml:"tee"`
}

// Duration is a time.Duration that decodes from strings like "5s".
type Duration struct{ time.Duration }

// UnmarshalText parses a time.ParseDuration string.
func (d *Duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a time.ParseDuration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Load parses the TOML file at path. Unknown keys are an error, so that
// misspelled settings do not silently fall back to defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var c Config
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if c.Tape.Size < 0 {
		return nil, fmt.Errorf("invalid tape size %v in %s", c.Tape.Size, path)
	}
	if c.Run.Jobs < 0 {
		return nil, fmt.Errorf("invalid jobs %v in %s", c.Run.Jobs, path)
	}

	return &c, nil
}
