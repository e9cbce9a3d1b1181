package chip8

/// PressKey emulates a CHIP-8 key being pressed.
///
func (vm *Machine) PressKey(key uint) {
	if key < 16 {
		vm.keys[key] = true
	}
}

/// ReleaseKey emulates a CHIP-8 key being released.
///
func (vm *Machine) ReleaseKey(key uint) {
	if key < 16 {
		vm.keys[key] = false
	}
}

/// SetKeys replaces the state of the whole key pad.
///
func (vm *Machine) SetKeys(keys [16]bool) {
	vm.keys = keys
}

/// Keys returns the current state of the key pad.
///
func (vm *Machine) Keys() [16]bool {
	return vm.keys
}

/// beginWait starts LD Vx, K. Keys already held don't count, they have
/// to be released and pressed again.
///
func (vm *Machine) beginWait(x uint) {
	vm.waiting = true
	vm.waitX = x
	vm.held = vm.keys
}

/// pollWait completes LD Vx, K if a new key went down.
///
func (vm *Machine) pollWait() {
	for k := range vm.held {
		if !vm.keys[k] {
			vm.held[k] = false
		}
	}

	for k, down := range vm.keys {
		if down && !vm.held[k] {
			vm.V[vm.waitX] = byte(k)
			vm.waiting = false
			return
		}
	}
}
