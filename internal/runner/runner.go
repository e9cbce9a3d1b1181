// Package runner drives a CHIP-8 machine in real time: an instruction
// clock steps the machine, and an independent timer clock ticks the delay
// and sound timers, polls input and renders the display.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mammad-J/ChipServe/chip8"
	"github.com/retroenv/retrogolib/log"
)

// Command is a request from the frontend to the driving loop.
type Command int

const (
	// None keeps the loop running.
	None Command = iota
	// Quit stops the loop without error.
	Quit
	// TogglePause suspends or resumes instruction stepping.
	TogglePause
	// Reset restarts the loaded program.
	Reset
	// StepOnce executes a single instruction while paused.
	StepOnce
)

// Frontend acquires input and presents the display of a machine.
type Frontend interface {
	// Poll updates the key state of the machine and returns a command
	// for the loop.
	Poll(vm *chip8.Machine) Command

	// Render draws the current display of the machine.
	Render(vm *chip8.Machine)
}

// Options controls pacing and the step error policy.
type Options struct {
	ClockPeriod time.Duration
	TimerPeriod time.Duration

	// SkipUnknown continues past unknown opcodes instead of halting.
	SkipUnknown bool

	// Trace logs every executed instruction at debug level.
	Trace bool

	// Paused starts the loop paused.
	Paused bool
}

// Runner is the driving loop for one machine.
type Runner struct {
	logger   *log.Logger
	vm       *chip8.Machine
	frontend Frontend
	opts     Options

	paused bool
}

// New returns a new driving loop.
func New(logger *log.Logger, vm *chip8.Machine, frontend Frontend, opts Options) *Runner {
	return &Runner{
		logger:   logger,
		vm:       vm,
		frontend: frontend,
		opts:     opts,
		paused:   opts.Paused,
	}
}

// Paused returns whether instruction stepping is suspended.
func (r *Runner) Paused() bool {
	return r.paused
}

// Run executes the machine until the frontend quits, the context is
// cancelled or a step fails with a halting error.
func (r *Runner) Run(ctx context.Context) error {
	clock := time.NewTicker(r.opts.ClockPeriod)
	defer clock.Stop()

	video := time.NewTicker(r.opts.TimerPeriod)
	defer video.Stop()

	r.logger.Debug("Emulation started",
		log.String("clock", r.opts.ClockPeriod.String()),
		log.String("timer", r.opts.TimerPeriod.String()))

	// render the initial display
	r.frontend.Render(r.vm)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-video.C:
			r.vm.TickTimers()

			quit, err := r.handle(r.frontend.Poll(r.vm))
			if quit || err != nil {
				return err
			}

			if r.vm.Redraw() {
				r.frontend.Render(r.vm)
			}

		case <-clock.C:
			if r.paused {
				continue
			}
			if err := r.Step(); err != nil {
				return err
			}
		}
	}
}

// Step executes a single instruction and applies the error policy. A
// returned error halts the machine.
func (r *Runner) Step() error {
	pc := r.vm.PC

	if r.opts.Trace && !r.vm.AwaitingKey() {
		r.logger.Debug("Step", log.String("instruction", r.vm.Disassemble(pc)))
	}

	err := r.vm.Step()
	if err == nil {
		return nil
	}

	if Halt(err, r.opts.SkipUnknown) {
		return fmt.Errorf("executing instruction at %04X: %w", pc, err)
	}

	r.logger.Warn("Skipping instruction",
		log.Hex("address", pc),
		log.Err(err))
	return nil
}

// Halt returns whether a step error stops execution. Unknown opcodes can
// be skipped, all other errors halt.
func Halt(err error, skipUnknown bool) bool {
	var unknown *chip8.UnknownOpcodeError
	if errors.As(err, &unknown) {
		return !skipUnknown
	}
	return true
}

// handle applies a frontend command, it returns true if the loop should
// stop.
func (r *Runner) handle(cmd Command) (bool, error) {
	switch cmd {
	case Quit:
		r.logger.Debug("Emulation stopped")
		return true, nil

	case TogglePause:
		r.paused = !r.paused
		r.logger.Info("Emulation paused", log.Bool("paused", r.paused))

	case Reset:
		r.vm.Reset()
		r.logger.Info("Machine reset")

	case StepOnce:
		if r.paused {
			if err := r.Step(); err != nil {
				return true, err
			}
		}
	}
	return false, nil
}
