package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type programFixture struct {
	Name      string  `yaml:"name"`
	Program   string  `yaml:"program"`
	File      string  `yaml:"file"`
	TapeSize  int     `yaml:"tape-size"`
	StepLimit uint    `yaml:"step-limit"`
	Output    *string `yaml:"output"`
	Bytes     []int   `yaml:"bytes"`
	Error     string  `yaml:"error"`

	dir string
}

func loadProgramFixtures(t *testing.T, path string) []programFixture {
	f, err := os.Open(path)
	require.NoError(t, err, "must open fixtures")
	defer f.Close()

	var fixtures []programFixture
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	require.NoError(t, dec.Decode(&fixtures), "must decode fixtures from %v", path)
	require.NotEmpty(t, fixtures, "expected some fixtures in %v", path)

	for i := range fixtures {
		fixtures[i].dir = filepath.Dir(path)
	}
	return fixtures
}

func (fx programFixture) source(t *testing.T) string {
	if fx.File == "" {
		return fx.Program
	}
	src, err := os.ReadFile(filepath.Join(fx.dir, fx.File))
	require.NoError(t, err, "must read fixture program file")
	return string(src)
}

func (fx programFixture) options() VMOption {
	var opts []VMOption
	if fx.TapeSize != 0 {
		opts = append(opts, WithTapeSize(fx.TapeSize))
	}
	if fx.StepLimit != 0 {
		opts = append(opts, WithStepLimit(fx.StepLimit))
	}
	return VMOptions(opts...)
}

func (fx programFixture) bytes() []byte {
	if fx.Output != nil {
		return []byte(*fx.Output)
	}
	out := make([]byte, len(fx.Bytes))
	for i, b := range fx.Bytes {
		out[i] = byte(b)
	}
	return out
}
