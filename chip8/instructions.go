package chip8

/// Step the CHIP-8 virtual machine a single instruction. While waiting
/// for a key, Step only checks the key pad.
///
func (vm *Machine) Step() error {
	if !vm.loaded {
		return ErrNotLoaded
	}

	if vm.waiting {
		vm.pollWait()
		return nil
	}

	// fetch the next instruction
	inst, err := vm.fetch()
	if err != nil {
		return err
	}

	if err := vm.execute(inst); err != nil {
		return err
	}

	// increment the cycle count
	vm.Cycles++

	return nil
}

/// Fetch the next 16-bit instruction to execute.
///
func (vm *Machine) fetch() (uint16, error) {
	i := uint(vm.PC)

	if i < ProgramStart || i+1 >= MemorySize {
		return 0, &OutOfBoundsError{Address: i}
	}

	// advance the program counter
	vm.PC += 2

	// return the 16-bit instruction
	return uint16(vm.Memory[i])<<8 | uint16(vm.Memory[i+1]), nil
}

/// Decode and execute a single instruction.
///
func (vm *Machine) execute(inst uint16) error {
	// 12-bit address operand
	a := inst & 0xFFF

	// byte and nibble operands
	b := byte(inst & 0xFF)
	n := byte(inst & 0xF)

	// x and y register operands
	x := uint(inst >> 8 & 0xF)
	y := uint(inst >> 4 & 0xF)

	switch inst >> 12 {
	case 0x0:
		switch inst {
		case 0x00E0:
			vm.cls()
			return nil
		case 0x00EE:
			return vm.ret()
		}
	case 0x1:
		vm.jump(a)
		return nil
	case 0x2:
		return vm.call(a)
	case 0x3:
		vm.skipIf(x, b)
		return nil
	case 0x4:
		vm.skipIfNot(x, b)
		return nil
	case 0x5:
		if n == 0 {
			vm.skipIfXY(x, y)
			return nil
		}
	case 0x6:
		vm.loadX(x, b)
		return nil
	case 0x7:
		vm.addX(x, b)
		return nil
	case 0x8:
		switch n {
		case 0x0:
			vm.loadXY(x, y)
			return nil
		case 0x1:
			vm.or(x, y)
			return nil
		case 0x2:
			vm.and(x, y)
			return nil
		case 0x3:
			vm.xor(x, y)
			return nil
		case 0x4:
			vm.addXY(x, y)
			return nil
		case 0x5:
			vm.subXY(x, y)
			return nil
		case 0x6:
			vm.shr(x)
			return nil
		case 0x7:
			vm.subYX(x, y)
			return nil
		case 0xE:
			vm.shl(x)
			return nil
		}
	case 0x9:
		if n == 0 {
			vm.skipIfNotXY(x, y)
			return nil
		}
	case 0xA:
		vm.loadI(a)
		return nil
	case 0xB:
		return vm.jumpV0(a)
	case 0xC:
		vm.rnd(x, b)
		return nil
	case 0xD:
		vm.drw(x, y, n)
		return nil
	case 0xE:
		switch b {
		case 0x9E:
			vm.skipIfPressed(x)
			return nil
		case 0xA1:
			vm.skipIfNotPressed(x)
			return nil
		}
	case 0xF:
		switch b {
		case 0x07:
			vm.loadXDT(x)
			return nil
		case 0x0A:
			vm.beginWait(x)
			return nil
		case 0x15:
			vm.loadDTX(x)
			return nil
		case 0x18:
			vm.loadSTX(x)
			return nil
		case 0x1E:
			return vm.addIX(x)
		case 0x29:
			vm.loadF(x)
			return nil
		case 0x33:
			return vm.loadB(x)
		case 0x55:
			return vm.saveRegs(x)
		case 0x65:
			return vm.loadRegs(x)
		}
	}

	return &UnknownOpcodeError{Opcode: inst}
}

/// call a subroutine at address.
///
func (vm *Machine) call(address uint16) error {
	if vm.SP >= StackDepth {
		return ErrStackOverflow
	}

	// push program counter onto stack
	vm.Stack[vm.SP] = vm.PC
	vm.SP++

	// jump to address
	vm.PC = address
	return nil
}

/// return from subroutine.
///
func (vm *Machine) ret() error {
	if vm.SP == 0 {
		return ErrStackUnderflow
	}

	// restore program counter
	vm.SP--
	vm.PC = vm.Stack[vm.SP]
	return nil
}

/// jump to address.
///
func (vm *Machine) jump(address uint16) {
	vm.PC = address
}

/// jump to address + v0.
///
func (vm *Machine) jumpV0(address uint16) error {
	target := uint(address) + uint(vm.V[0])
	if target >= MemorySize {
		return &OutOfBoundsError{Address: target}
	}

	vm.PC = uint16(target)
	return nil
}

/// skip next instruction if vx == n.
///
func (vm *Machine) skipIf(x uint, b byte) {
	if vm.V[x] == b {
		vm.PC += 2
	}
}

/// skip next instruction if vx != n.
///
func (vm *Machine) skipIfNot(x uint, b byte) {
	if vm.V[x] != b {
		vm.PC += 2
	}
}

/// skip next instruction if vx == vy.
///
func (vm *Machine) skipIfXY(x, y uint) {
	if vm.V[x] == vm.V[y] {
		vm.PC += 2
	}
}

/// skip next instruction if vx != vy.
///
func (vm *Machine) skipIfNotXY(x, y uint) {
	if vm.V[x] != vm.V[y] {
		vm.PC += 2
	}
}

/// skip next instruction if key(vx) is pressed.
///
func (vm *Machine) skipIfPressed(x uint) {
	if vm.keys[vm.V[x]&0xF] {
		vm.PC += 2
	}
}

/// skip next instruction if key(vx) is not pressed.
///
func (vm *Machine) skipIfNotPressed(x uint) {
	if !vm.keys[vm.V[x]&0xF] {
		vm.PC += 2
	}
}

/// load n into vx.
///
func (vm *Machine) loadX(x uint, b byte) {
	vm.V[x] = b
}

/// load y into vx.
///
func (vm *Machine) loadXY(x, y uint) {
	vm.V[x] = vm.V[y]
}

/// load delay timer into vx.
///
func (vm *Machine) loadXDT(x uint) {
	vm.V[x] = vm.DT
}

/// load vx into delay timer.
///
func (vm *Machine) loadDTX(x uint) {
	vm.DT = vm.V[x]
}

/// load vx into sound timer.
///
func (vm *Machine) loadSTX(x uint) {
	vm.ST = vm.V[x]
}

/// load address register.
///
func (vm *Machine) loadI(address uint16) {
	vm.I = address
}

/// load address with BCD of vx.
///
func (vm *Machine) loadB(x uint) error {
	if err := vm.checkRange(vm.I, 3); err != nil {
		return err
	}

	n := vm.V[x]

	vm.Memory[vm.I+0] = n / 100
	vm.Memory[vm.I+1] = n / 10 % 10
	vm.Memory[vm.I+2] = n % 10
	return nil
}

/// load font sprite for vx into I.
///
func (vm *Machine) loadF(x uint) {
	vm.I = FontStart + uint16(vm.V[x]&0xF)*GlyphSize
}

/// or vx with vy into vx.
///
func (vm *Machine) or(x, y uint) {
	vm.V[x] |= vm.V[y]
}

/// and vx with vy into vx.
///
func (vm *Machine) and(x, y uint) {
	vm.V[x] &= vm.V[y]
}

/// xor vx with vy into vx.
///
func (vm *Machine) xor(x, y uint) {
	vm.V[x] ^= vm.V[y]
}

/// shl vx 1 bit, set carry to MSB of vx before shift.
///
func (vm *Machine) shl(x uint) {
	c := vm.V[x] >> 7
	vm.V[x] <<= 1
	vm.V[0xF] = c
}

/// shr vx 1 bit, set carry to LSB of vx before shift.
///
func (vm *Machine) shr(x uint) {
	c := vm.V[x] & 1
	vm.V[x] >>= 1
	vm.V[0xF] = c
}

/// add n to vx.
///
func (vm *Machine) addX(x uint, b byte) {
	vm.V[x] += b
}

/// add vy to vx and set carry.
///
func (vm *Machine) addXY(x, y uint) {
	sum := uint(vm.V[x]) + uint(vm.V[y])
	vm.V[x] = byte(sum)

	if sum > 0xFF {
		vm.V[0xF] = 1
	} else {
		vm.V[0xF] = 0
	}
}

/// add vx to i.
///
func (vm *Machine) addIX(x uint) error {
	sum := uint(vm.I) + uint(vm.V[x])
	if sum >= MemorySize {
		return &OutOfBoundsError{Address: sum}
	}

	vm.I = uint16(sum)
	return nil
}

/// subtract vy from vx, set carry if no borrow.
///
func (vm *Machine) subXY(x, y uint) {
	c := flag(vm.V[x] > vm.V[y])
	vm.V[x] -= vm.V[y]
	vm.V[0xF] = c
}

/// subtract vx from vy and store in vx, set carry if no borrow.
///
func (vm *Machine) subYX(x, y uint) {
	c := flag(vm.V[y] > vm.V[x])
	vm.V[x] = vm.V[y] - vm.V[x]
	vm.V[0xF] = c
}

/// load a random number & n into vx.
///
func (vm *Machine) rnd(x uint, b byte) {
	vm.V[x] = vm.Random() & b
}

/// save registers v0..vx to I.
///
func (vm *Machine) saveRegs(x uint) error {
	if err := vm.checkRange(vm.I, x+1); err != nil {
		return err
	}

	for i := uint(0); i <= x; i++ {
		vm.Memory[uint(vm.I)+i] = vm.V[i]
	}
	return nil
}

/// load registers v0..vx from I.
///
func (vm *Machine) loadRegs(x uint) error {
	if err := vm.checkRange(vm.I, x+1); err != nil {
		return err
	}

	for i := uint(0); i <= x; i++ {
		vm.V[i] = vm.Memory[uint(vm.I)+i]
	}
	return nil
}

/// checkRange fails if any of the n bytes at address lie outside memory.
///
func (vm *Machine) checkRange(address uint16, n uint) error {
	if last := uint(address) + n - 1; last >= MemorySize {
		return &OutOfBoundsError{Address: last}
	}
	return nil
}

/// flag converts a condition to a VF value.
///
func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}
