// Package config handles command line options and logger setup.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// Options holds the emulator settings read from the command line.
type Options struct {
	ROM string

	InstructionRate int
	TimerRate       int
	Scale           int

	Terminal    bool
	SkipUnknown bool
	Trace       bool
	Debug       bool
	Quiet       bool
}

// Defaults for the instruction and timer clocks.
const (
	DefaultInstructionRate = 700
	DefaultTimerRate       = 60
	DefaultScale           = 10
)

// UsageError represents an error that should show usage information.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage text and the flag defaults.
func (e *UsageError) ShowUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: chipserve [options] [rom file]\n\n")
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
	fmt.Fprintln(w)
}

// ParseFlags parses the given command line arguments, without the program name.
func ParseFlags(name string, args []string) (Options, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts Options
	readOptionFlags(flags, &opts)

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	rest := flags.Args()
	switch {
	case len(rest) > 1:
		return opts, &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("unexpected argument %s after rom file, options have to be passed before it", rest[1]),
		}
	case len(rest) == 1:
		opts.ROM = rest[0]
	case opts.Terminal:
		return opts, &UsageError{flags: flags, msg: "no rom file given"}
	}

	if err := validate(opts); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	return opts, nil
}

// ClockPeriod returns the interval between two instructions.
func (o Options) ClockPeriod() time.Duration {
	return time.Second / time.Duration(o.InstructionRate)
}

// TimerPeriod returns the interval between two timer ticks.
func (o Options) TimerPeriod() time.Duration {
	return time.Second / time.Duration(o.TimerRate)
}

func validate(opts Options) error {
	if opts.InstructionRate <= 0 {
		return errors.New("instruction rate has to be positive")
	}
	if opts.TimerRate <= 0 {
		return errors.New("timer rate has to be positive")
	}
	if opts.Scale <= 0 {
		return errors.New("scale has to be positive")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *Options) {
	flags.IntVar(&opts.InstructionRate, "hz", DefaultInstructionRate, "instructions executed per second")
	flags.IntVar(&opts.TimerRate, "timer-hz", DefaultTimerRate, "delay and sound timer rate")
	flags.IntVar(&opts.Scale, "scale", DefaultScale, "window pixels per CHIP-8 pixel")
	flags.BoolVar(&opts.Terminal, "term", false, "render to the terminal instead of a window")
	flags.BoolVar(&opts.SkipUnknown, "skip-unknown", false, "skip unknown opcodes instead of halting")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.Quiet, "q", false, "only log errors")
}

// CreateLogger creates a logger with appropriate settings.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
