package chip8

/// Pixel returns true if the pixel at <x,y> is lit. Coordinates wrap
/// around both edges of the display.
///
func (vm *Machine) Pixel(x, y int) bool {
	p := uint(y&(Height-1))*Width + uint(x&(Width-1))

	return vm.video[p>>3]&(0x80>>(p&7)) != 0
}

/// Video returns the bit-packed video memory, 8 bytes per scan line,
/// MSB first. The slice must not be modified.
///
func (vm *Machine) Video() []byte {
	return vm.video[:]
}

/// flip toggles the pixel at <x,y> and returns true if it was lit.
///
func (vm *Machine) flip(x, y uint) bool {
	p := (y%Height)*Width + x%Width
	mask := byte(0x80 >> (p & 7))

	lit := vm.video[p>>3]&mask != 0
	vm.video[p>>3] ^= mask

	return lit
}

/// Clear the video display memory.
///
func (vm *Machine) cls() {
	vm.video = [Width * Height / 8]byte{}
	vm.redraw = true
}

/// draw a sprite at I to video memory at vx, vy.
///
func (vm *Machine) drw(x, y uint, n byte) {
	ox := uint(vm.V[x]) % Width
	oy := uint(vm.V[y]) % Height

	vm.V[0xF] = 0

	// draw each row of the sprite, stopping at the end of memory
	for row := uint(0); row < uint(n); row++ {
		addr := uint(vm.I) + row
		if addr >= MemorySize {
			break
		}

		s := vm.Memory[addr]

		for col := uint(0); col < 8; col++ {
			if s&(0x80>>col) == 0 {
				continue
			}

			// collision only ever sets the flag
			if vm.flip(ox+col, oy+row) {
				vm.V[0xF] = 1
			}
		}
	}

	vm.redraw = true
}
