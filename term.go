//go:build linux || darwin || freebsd || netbsd || openbsd

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tm "github.com/buger/goterm"
	"github.com/mammad-J/ChipServe/chip8"
	"github.com/mammad-J/ChipServe/internal/keypad"
	"github.com/mammad-J/ChipServe/internal/runner"
	"golang.org/x/sys/unix"
)

// keyHoldFrames is how many timer ticks a typed key stays pressed.
const keyHoldFrames = 6

// Terminal renders the display with block characters and reads keys
// from a raw mode terminal.
type Terminal struct {
	in      *os.File
	restore unix.Termios
	latch   *keypad.Latch
	buf     [64]byte
}

// NewTerminal puts stdin in raw mode and clears the screen.
func NewTerminal() (*Terminal, error) {
	t := &Terminal{
		in:    os.Stdin,
		latch: keypad.NewLatch(keyHoldFrames),
	}
	if err := t.enterRawTerm(); err != nil {
		return nil, fmt.Errorf("entering raw terminal mode: %w", err)
	}

	tm.Clear()
	return t, nil
}

func (t *Terminal) enterRawTerm() error {
	fd := int(t.in.Fd())

	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return err
	}

	t.restore = *termios
	termstate := *termios

	termstate.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR
	termstate.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	termstate.Cflag &^= unix.CSIZE | unix.PARENB
	termstate.Cflag |= unix.CS8

	// reads return immediately with whatever is buffered
	termstate.Cc[unix.VMIN] = 0
	termstate.Cc[unix.VTIME] = 0

	return unix.IoctlSetTermios(fd, ioctlSetTermios, &termstate)
}

// Close restores the terminal state.
func (t *Terminal) Close() error {
	return unix.IoctlSetTermios(int(t.in.Fd()), ioctlSetTermios, &t.restore)
}

// Poll reads the typed characters and updates the key pad.
func (t *Terminal) Poll(vm *chip8.Machine) runner.Command {
	cmd := runner.None

	n, err := t.in.Read(t.buf[:])
	if err != nil && !errors.Is(err, io.EOF) {
		return runner.Quit
	}

	keys, ctl := keypad.Scan(t.buf[:n])
	for _, key := range keys {
		t.latch.Press(key)
	}

	switch ctl {
	case keypad.Quit:
		return runner.Quit
	case keypad.Reset:
		cmd = runner.Reset
	case keypad.Pause:
		cmd = runner.TogglePause
	case keypad.Step:
		cmd = runner.StepOnce
	}

	vm.SetKeys(t.latch.Tick())
	return cmd
}

// Render draws two pixel rows per text line using half block characters.
func (t *Terminal) Render(vm *chip8.Machine) {
	var sb strings.Builder

	for y := 0; y < chip8.Height; y += 2 {
		for x := 0; x < chip8.Width; x++ {
			top, bottom := vm.Pixel(x, y), vm.Pixel(x, y+1)

			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}

	tm.MoveCursor(1, 1)
	_, _ = tm.Print(sb.String())
	tm.Flush()
}
