package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/mammad-J/ChipServe/chip8"
	"github.com/mammad-J/ChipServe/internal/config"
	"github.com/mammad-J/ChipServe/internal/rom"
	"github.com/mammad-J/ChipServe/internal/runner"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// frontend is a runner frontend that owns system resources.
type frontend interface {
	runner.Frontend
	Close() error
}

func init() {
	// SDL has to be driven from the main thread
	runtime.LockOSThread()
}

func main() {
	opts, err := config.ParseFlags(os.Args[0], os.Args[1:])
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		printBanner(logger)

		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage(os.Stderr)
		}
		logger.Error("Invalid arguments", log.Err(err))
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug || opts.Trace, opts.Quiet)
	printBanner(logger)

	if err := run(app.Context(), logger, opts); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Emulation cancelled")
			return
		}
		logger.Fatal(err.Error())
	}
}

func printBanner(logger *log.Logger) {
	logger.Info("chipserve - CHIP-8 virtual machine",
		log.String("version", buildinfo.Version(version, commit, date)))
}

func run(ctx context.Context, logger *log.Logger, opts config.Options) error {
	if opts.ROM == "" {
		file, err := chooseROM()
		if err != nil {
			return err
		}
		opts.ROM = file
	}

	program, err := rom.Read(opts.ROM)
	if err != nil {
		return err
	}

	vm := chip8.New()
	if err := vm.Load(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	logger.Info("Loaded ROM",
		log.String("file", opts.ROM),
		log.Int("size", len(program)))

	fe, err := newFrontend(opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := fe.Close(); err != nil {
			logger.Error("Closing frontend failed", log.Err(err))
		}
	}()

	loop := runner.New(logger, vm, fe, runner.Options{
		ClockPeriod: opts.ClockPeriod(),
		TimerPeriod: opts.TimerPeriod(),
		SkipUnknown: opts.SkipUnknown,
		Trace:       opts.Trace,
	})
	return loop.Run(ctx)
}

func newFrontend(opts config.Options) (frontend, error) {
	if opts.Terminal {
		return NewTerminal()
	}
	return NewWindow("CHIP-8 - "+rom.Name(opts.ROM), opts.Scale)
}
