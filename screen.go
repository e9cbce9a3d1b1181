package main

import (
	"fmt"

	"github.com/mammad-J/ChipServe/chip8"
	"github.com/veandco/go-sdl2/sdl"
)

/// Window is an SDL frontend: it renders the CHIP-8 video memory to a
/// scaled window and maps the keyboard to the key pad.
///
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer

	/// Render target holding the 64x32 display.
	///
	screen *sdl.Texture
}

/// NewWindow initializes SDL and opens the main window.
///
func NewWindow(title string, scale int) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("initializing SDL: %w", err)
	}

	// create the main window and renderer
	flags := sdl.WINDOW_OPENGL | sdl.WINDOWPOS_CENTERED
	window, renderer, err := sdl.CreateWindowAndRenderer(int32(chip8.Width*scale), int32(chip8.Height*scale), uint32(flags))
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("creating window: %w", err)
	}

	window.SetTitle(title)

	// create a render target for the display
	screen, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGB888, sdl.TEXTUREACCESS_TARGET, chip8.Width, chip8.Height)
	if err != nil {
		_ = renderer.Destroy()
		_ = window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("creating screen texture: %w", err)
	}

	return &Window{
		window:   window,
		renderer: renderer,
		screen:   screen,
	}, nil
}

/// Render the CHIP-8 video memory and present it.
///
func (w *Window) Render(vm *chip8.Machine) {
	if err := w.renderer.SetRenderTarget(w.screen); err != nil {
		return
	}

	// the background color for the screen
	_ = w.renderer.SetDrawColor(143, 145, 133, 255)
	_ = w.renderer.Clear()

	// set the pixel color
	_ = w.renderer.SetDrawColor(17, 29, 43, 255)

	// draw all the pixels
	for y := 0; y < chip8.Height; y++ {
		for x := 0; x < chip8.Width; x++ {
			if vm.Pixel(x, y) {
				_ = w.renderer.DrawPoint(int32(x), int32(y))
			}
		}
	}

	// restore the render target and stretch the screen to fit
	_ = w.renderer.SetRenderTarget(nil)
	_ = w.renderer.Copy(w.screen, nil, nil)

	w.renderer.Present()
}

/// Close releases the window and shuts down SDL.
///
func (w *Window) Close() error {
	_ = w.screen.Destroy()
	_ = w.renderer.Destroy()
	err := w.window.Destroy()
	sdl.Quit()
	return err
}
