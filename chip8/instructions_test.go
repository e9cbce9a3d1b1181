package chip8_test

import (
	"errors"
	"testing"

	"github.com/mammad-J/ChipServe/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoadAddWraps(t *testing.T) {
	tests := []struct {
		kk1, kk2 byte
	}{
		{0x00, 0x00},
		{0x10, 0x20},
		{0xFF, 0x01},
		{0x80, 0x80},
		{0xFE, 0xFF},
	}

	for _, tt := range tests {
		vm := load(t, 0x6300|uint16(tt.kk1), 0x7300|uint16(tt.kk2))
		vm.V[0xF] = 0xAA
		run(t, vm, 2)

		assert.Equal(t, tt.kk1+tt.kk2, vm.V[3])
		assert.Equal(t, byte(0xAA), vm.V[0xF])
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name   string
		inst   uint16
		vx, vy byte
		result byte
		flag   byte
	}{
		{"ld", 0x8120, 0x01, 0x77, 0x77, 0xAA},
		{"or", 0x8121, 0xF0, 0x0F, 0xFF, 0xAA},
		{"and", 0x8122, 0xF3, 0x3F, 0x33, 0xAA},
		{"xor", 0x8123, 0xFF, 0x0F, 0xF0, 0xAA},
		{"add carry", 0x8124, 0xFF, 0x01, 0x00, 1},
		{"add no carry", 0x8124, 0x01, 0x01, 0x02, 0},
		{"sub borrow", 0x8125, 0x01, 0x02, 0xFF, 0},
		{"sub no borrow", 0x8125, 0x02, 0x01, 0x01, 1},
		{"sub equal", 0x8125, 0x05, 0x05, 0x00, 0},
		{"shr odd", 0x8126, 0x03, 0x00, 0x01, 1},
		{"shr even", 0x8126, 0x04, 0x00, 0x02, 0},
		{"subn no borrow", 0x8127, 0x01, 0x03, 0x02, 1},
		{"subn borrow", 0x8127, 0x03, 0x01, 0xFE, 0},
		{"shl high bit", 0x812E, 0x80, 0x00, 0x00, 1},
		{"shl low bits", 0x812E, 0x41, 0x00, 0x82, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := load(t, tt.inst)
			vm.V[1] = tt.vx
			vm.V[2] = tt.vy
			vm.V[0xF] = 0xAA
			run(t, vm, 1)

			assert.Equal(t, tt.result, vm.V[1])
			assert.Equal(t, tt.flag, vm.V[0xF])
		})
	}
}

func TestFlagRegisterAsOperand(t *testing.T) {
	// the flag is written last, so it wins over the result
	vm := load(t, 0x8F14)
	vm.V[0xF] = 0xFF
	vm.V[1] = 0x01
	run(t, vm, 1)

	assert.Equal(t, byte(1), vm.V[0xF])
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name string
		inst uint16
		vx   byte
		vy   byte
		skip bool
	}{
		{"se equal", 0x3142, 0x42, 0, true},
		{"se not equal", 0x3142, 0x41, 0, false},
		{"sne equal", 0x4142, 0x42, 0, false},
		{"sne not equal", 0x4142, 0x41, 0, true},
		{"se xy equal", 0x5120, 0x10, 0x10, true},
		{"se xy not equal", 0x5120, 0x10, 0x11, false},
		{"sne xy equal", 0x9120, 0x10, 0x10, false},
		{"sne xy not equal", 0x9120, 0x10, 0x11, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := load(t, tt.inst)
			vm.V[1] = tt.vx
			vm.V[2] = tt.vy
			run(t, vm, 1)

			if tt.skip {
				assert.Equal(t, uint16(0x204), vm.PC)
			} else {
				assert.Equal(t, uint16(0x202), vm.PC)
			}
		})
	}
}

func TestKeySkips(t *testing.T) {
	vm := load(t, 0xE19E, 0x0000, 0xE1A1, 0x0000, 0xE1A1)
	vm.V[1] = 0x1A // only the low nibble selects the key
	vm.PressKey(0xA)

	run(t, vm, 1)
	assert.Equal(t, uint16(0x204), vm.PC)

	run(t, vm, 1)
	assert.Equal(t, uint16(0x206), vm.PC)

	vm.ReleaseKey(0xA)
	vm.PC = 0x208
	run(t, vm, 1)
	assert.Equal(t, uint16(0x20C), vm.PC)
}

func TestJumps(t *testing.T) {
	vm := load(t, 0x1300)
	run(t, vm, 1)
	assert.Equal(t, uint16(0x300), vm.PC)

	vm = load(t, 0xB300)
	vm.V[0] = 0x10
	run(t, vm, 1)
	assert.Equal(t, uint16(0x310), vm.PC)

	vm = load(t, 0xBFFF)
	vm.V[0] = 0x01
	var oob *chip8.OutOfBoundsError
	assert.True(t, errors.As(vm.Step(), &oob))
	assert.Equal(t, uint(0x1000), oob.Address)
}

func TestCallReturn(t *testing.T) {
	// 0x200: call 0x206; 0x202: ld v0, 1; 0x204: jp 0x204; 0x206: ret
	vm := load(t, 0x2206, 0x6001, 0x1204, 0x00EE)

	run(t, vm, 1)
	assert.Equal(t, uint16(0x206), vm.PC)
	assert.Equal(t, uint(1), vm.SP)

	run(t, vm, 1)
	assert.Equal(t, uint16(0x202), vm.PC)
	assert.Equal(t, uint(0), vm.SP)

	run(t, vm, 1)
	assert.Equal(t, byte(1), vm.V[0])
}

func TestStackOverflow(t *testing.T) {
	// recursive call to self
	vm := load(t, 0x2200)
	run(t, vm, chip8.StackDepth)
	assert.Equal(t, uint(chip8.StackDepth), vm.SP)

	assert.True(t, errors.Is(vm.Step(), chip8.ErrStackOverflow))
	assert.Equal(t, uint(chip8.StackDepth), vm.SP)
}

func TestStackUnderflow(t *testing.T) {
	vm := load(t, 0x00EE)
	assert.True(t, errors.Is(vm.Step(), chip8.ErrStackUnderflow))
}

func TestRandom(t *testing.T) {
	vm := load(t, 0xC10F)
	vm.Random = func() byte { return 0xAB }
	run(t, vm, 1)

	assert.Equal(t, byte(0x0B), vm.V[1])
}

func TestIndexRegister(t *testing.T) {
	vm := load(t, 0xA123, 0xF21E)
	vm.V[2] = 0x10
	run(t, vm, 2)
	assert.Equal(t, uint16(0x133), vm.I)

	vm = load(t, 0xAFFF, 0xF21E)
	vm.V[2] = 0x01
	run(t, vm, 1)

	var oob *chip8.OutOfBoundsError
	assert.True(t, errors.As(vm.Step(), &oob))
	assert.Equal(t, uint16(0xFFF), vm.I)
}

func TestFontLookup(t *testing.T) {
	vm := load(t, 0xF129)
	vm.V[1] = 0xA
	run(t, vm, 1)
	assert.Equal(t, uint16(chip8.FontStart+50), vm.I)

	// only the low nibble selects a glyph
	vm = load(t, 0xF129)
	vm.V[1] = 0x1F
	run(t, vm, 1)
	assert.Equal(t, uint16(chip8.FontStart+75), vm.I)
}

func TestBCD(t *testing.T) {
	tests := []struct {
		value  byte
		digits [3]byte
	}{
		{157, [3]byte{1, 5, 7}},
		{0, [3]byte{0, 0, 0}},
		{255, [3]byte{2, 5, 5}},
		{9, [3]byte{0, 0, 9}},
		{40, [3]byte{0, 4, 0}},
	}

	for _, tt := range tests {
		vm := load(t, 0xA300, 0xF133)
		vm.V[1] = tt.value
		run(t, vm, 2)

		assert.Equal(t, tt.digits[0], vm.Memory[0x300])
		assert.Equal(t, tt.digits[1], vm.Memory[0x301])
		assert.Equal(t, tt.digits[2], vm.Memory[0x302])
	}

	vm := load(t, 0xAFFE, 0xF133)
	vm.V[1] = 123
	run(t, vm, 1)

	var oob *chip8.OutOfBoundsError
	assert.True(t, errors.As(vm.Step(), &oob))
	assert.Equal(t, byte(0), vm.Memory[0xFFE])
}

func TestSaveLoadRegisters(t *testing.T) {
	vm := load(t, 0xA300, 0xF355, 0xA400, 0xF265)
	for i := range vm.V {
		vm.V[i] = byte(i + 1)
	}
	vm.Memory[0x400] = 0xA0
	vm.Memory[0x401] = 0xA1
	vm.Memory[0x402] = 0xA2
	vm.Memory[0x403] = 0xA3
	run(t, vm, 4)

	assert.Equal(t, byte(1), vm.Memory[0x300])
	assert.Equal(t, byte(4), vm.Memory[0x303])
	assert.Equal(t, byte(0), vm.Memory[0x304])

	assert.Equal(t, byte(0xA0), vm.V[0])
	assert.Equal(t, byte(0xA2), vm.V[2])
	assert.Equal(t, byte(4), vm.V[3])
	assert.Equal(t, uint16(0x400), vm.I)
}

func TestSaveRegistersOutOfBounds(t *testing.T) {
	vm := load(t, 0xAFFD, 0xF355)
	vm.V[0] = 0x11
	run(t, vm, 1)

	var oob *chip8.OutOfBoundsError
	assert.True(t, errors.As(vm.Step(), &oob))
	assert.Equal(t, uint(0x1000), oob.Address)
	assert.Equal(t, byte(0), vm.Memory[0xFFD])

	vm = load(t, 0xAFFF, 0xF165)
	run(t, vm, 1)
	assert.Error(t, vm.Step())
}

func TestTimerRegisters(t *testing.T) {
	vm := load(t, 0x6130, 0xF115, 0xF207)
	run(t, vm, 2)
	vm.TickTimers()
	run(t, vm, 1)

	assert.Equal(t, byte(0x2F), vm.V[2])
}

func TestWaitKey(t *testing.T) {
	vm := load(t, 0xF30A, 0x6101)

	run(t, vm, 1)
	assert.True(t, vm.AwaitingKey())

	// nothing executes while waiting
	run(t, vm, 5)
	assert.True(t, vm.AwaitingKey())
	assert.Equal(t, uint16(0x202), vm.PC)
	assert.Equal(t, byte(0), vm.V[1])

	vm.PressKey(0x7)
	run(t, vm, 1)
	assert.False(t, vm.AwaitingKey())
	assert.Equal(t, byte(0x7), vm.V[3])

	run(t, vm, 1)
	assert.Equal(t, byte(1), vm.V[1])
}

func TestWaitKeyNeedsFreshPress(t *testing.T) {
	vm := load(t, 0xF30A)
	vm.PressKey(0x2)

	run(t, vm, 2)
	assert.True(t, vm.AwaitingKey())

	// releasing and pressing again counts
	vm.ReleaseKey(0x2)
	run(t, vm, 1)
	assert.True(t, vm.AwaitingKey())

	vm.SetKeys([16]bool{0x2: true, 0x9: true})
	run(t, vm, 1)
	assert.False(t, vm.AwaitingKey())
	assert.Equal(t, byte(0x2), vm.V[3])
}
