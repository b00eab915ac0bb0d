package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jcorbin/tapevm/internal/config"
	"github.com/jcorbin/tapevm/internal/flushio"
	"github.com/jcorbin/tapevm/internal/logio"
	"github.com/jcorbin/tapevm/internal/runeio"
)

func main() {
	var log logio.Logger
	log.SetOutput(os.Stderr)

	cmd := newCommand(os.Stdin, os.Stdout, &log)
	if err := cmd.parse(os.Args[1:]); errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	} else if err != nil {
		log.ErrorIf(err)
		os.Exit(2)
	}

	log.ErrorIf(cmd.run(context.Background()))
	os.Exit(log.ExitCode())
}

type command struct {
	flags *flag.FlagSet

	configPath string
	tapeSize   int
	stepLimit  uint
	timeout    time.Duration
	trace      bool
	jobs       int
	stream     bool
	quote      bool
	tee        string

	stdin  io.Reader
	stdout io.Writer
	log    *logio.Logger
}

func newCommand(stdin io.Reader, stdout io.Writer, log *logio.Logger) *command {
	cmd := &command{
		flags:  flag.NewFlagSet("tapevm", flag.ContinueOnError),
		stdin:  stdin,
		stdout: stdout,
		log:    log,
	}
	cmd.flags.StringVar(&cmd.configPath, "config", "", "load defaults from a TOML file")
	cmd.flags.IntVar(&cmd.tapeSize, "tape", DefaultTapeSize, "number of tape cells")
	cmd.flags.UintVar(&cmd.stepLimit, "steps", 0, "limit instructions executed per run")
	cmd.flags.DurationVar(&cmd.timeout, "timeout", 0, "specify a time limit")
	cmd.flags.BoolVar(&cmd.trace, "trace", false, "enable trace logging")
	cmd.flags.IntVar(&cmd.jobs, "j", 0, "evaluate up to this many files at once")
	cmd.flags.BoolVar(&cmd.stream, "stream", false, "run once, writing output as it is emitted")
	cmd.flags.BoolVar(&cmd.quote, "quote", false, "render non-printable output bytes in caret form")
	cmd.flags.StringVar(&cmd.tee, "tee", "", "also write output into this file")
	return cmd
}

func (cmd *command) parse(args []string) error {
	if err := cmd.flags.Parse(args); err != nil {
		return err
	}
	if cmd.configPath != "" {
		cfg, err := config.Load(cmd.configPath)
		if err != nil {
			return err
		}
		cmd.applyConfig(cfg)
	}
	if cmd.tapeSize <= 0 {
		return fmt.Errorf("invalid tape size %v", cmd.tapeSize)
	}
	return nil
}

// applyConfig fills in any setting not given by flag.
func (cmd *command) applyConfig(cfg *config.Config) {
	set := make(map[string]bool)
	cmd.flags.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["tape"] && cfg.Tape.Size != 0 {
		cmd.tapeSize = cfg.Tape.Size
	}
	if !set["steps"] && cfg.Run.StepLimit != 0 {
		cmd.stepLimit = cfg.Run.StepLimit
	}
	if !set["timeout"] && cfg.Run.Timeout.Duration != 0 {
		cmd.timeout = cfg.Run.Timeout.Duration
	}
	if !set["trace"] && cfg.Run.Trace {
		cmd.trace = true
	}
	if !set["j"] && cfg.Run.Jobs != 0 {
		cmd.jobs = cfg.Run.Jobs
	}
	if !set["stream"] && cfg.Output.Stream {
		cmd.stream = true
	}
	if !set["quote"] && cfg.Output.Quote {
		cmd.quote = true
	}
	if !set["tee"] && cfg.Output.Tee != "" {
		cmd.tee = cfg.Output.Tee
	}
}

func (cmd *command) vmOptions(prog Program) VMOption {
	opts := []VMOption{
		WithTapeSize(cmd.tapeSize),
		WithStepLimit(cmd.stepLimit),
	}
	if cmd.trace {
		trace := cmd.log.Leveledf("TRACE")
		name := prog.Name
		opts = append(opts, WithLogf(func(mess string, args ...interface{}) {
			trace(name+": "+mess, args...)
		}))
	}
	return VMOptions(opts...)
}

func (cmd *command) programs() ([]Program, error) {
	args := cmd.flags.Args()
	if len(args) == 0 {
		prog, err := ReadProgram(namedReader{cmd.stdin, "<stdin>"})
		if err != nil {
			return nil, err
		}
		return []Program{prog}, nil
	}

	progs := make([]Program, 0, len(args))
	for _, name := range args {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		prog, err := ReadProgram(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		progs = append(progs, prog)
	}
	return progs, nil
}

func (cmd *command) run(ctx context.Context) (rerr error) {
	progs, err := cmd.programs()
	if err != nil {
		return err
	}

	if cmd.timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.timeout)
		defer cancel()
	}

	out := flushio.NewWriteFlusher(cmd.stdout)
	if cmd.tee != "" {
		f, err := os.Create(cmd.tee)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); rerr == nil {
				rerr = cerr
			}
		}()
		out = flushio.Tee(out, flushio.NewWriteFlusher(f))
	}
	defer func() {
		if ferr := out.Flush(); rerr == nil {
			rerr = ferr
		}
	}()

	var w io.Writer = out
	if cmd.quote {
		w = quoteWriter{out}
	}

	if cmd.stream {
		for _, prog := range progs {
			if _, err := New(cmd.vmOptions(prog)).Run(ctx, prog, NewWriterSink(w)); err != nil {
				return fmt.Errorf("%v: %w", prog.Name, err)
			}
		}
		return nil
	}

	outs, err := evalAll(ctx, progs, cmd.jobs, cmd.vmOptions)
	for _, output := range outs {
		if output == nil {
			continue
		}
		if _, werr := w.Write(output); werr != nil && err == nil {
			err = werr
		}
	}
	return err
}

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

type quoteWriter struct{ io.Writer }

func (qw quoteWriter) Write(p []byte) (int, error) {
	if _, err := runeio.WriteQuoted(qw.Writer, p); err != nil {
		return 0, err
	}
	return len(p), nil
}
