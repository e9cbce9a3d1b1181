package main

import (
	"github.com/mammad-J/ChipServe/chip8"
	"github.com/mammad-J/ChipServe/internal/runner"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Mapping of modern keyboard to CHIP-8 keys.
	///
	KeyMap = map[sdl.Scancode]uint{
		sdl.SCANCODE_X: 0x0,
		sdl.SCANCODE_1: 0x1,
		sdl.SCANCODE_2: 0x2,
		sdl.SCANCODE_3: 0x3,
		sdl.SCANCODE_Q: 0x4,
		sdl.SCANCODE_W: 0x5,
		sdl.SCANCODE_E: 0x6,
		sdl.SCANCODE_A: 0x7,
		sdl.SCANCODE_S: 0x8,
		sdl.SCANCODE_D: 0x9,
		sdl.SCANCODE_Z: 0xA,
		sdl.SCANCODE_C: 0xB,
		sdl.SCANCODE_4: 0xC,
		sdl.SCANCODE_R: 0xD,
		sdl.SCANCODE_F: 0xE,
		sdl.SCANCODE_V: 0xF,
	}
)

/// Poll processes SDL events and maps keys to the CHIP-8 VM.
///
func (w *Window) Poll(vm *chip8.Machine) runner.Command {
	cmd := runner.None

	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			return runner.Quit
		case *sdl.KeyboardEvent:
			key, mapped := KeyMap[ev.Keysym.Scancode]

			if ev.Type == sdl.KEYUP {
				if mapped {
					vm.ReleaseKey(key)
				}
				continue
			}

			if mapped {
				vm.PressKey(key)
				continue
			}

			if ev.Repeat != 0 {
				continue
			}

			switch ev.Keysym.Scancode {
			case sdl.SCANCODE_ESCAPE:
				return runner.Quit
			case sdl.SCANCODE_BACKSPACE:
				cmd = runner.Reset
			case sdl.SCANCODE_F5, sdl.SCANCODE_SPACE:
				cmd = runner.TogglePause
			case sdl.SCANCODE_F6, sdl.SCANCODE_F10:
				cmd = runner.StepOnce
			}
		}
	}

	return cmd
}
