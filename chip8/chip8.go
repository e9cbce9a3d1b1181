package chip8

import (
	"math/rand"
)

const (
	/// MemorySize is the number of addressable bytes.
	///
	MemorySize = 0x1000

	/// ProgramStart is where programs are loaded and execution begins.
	///
	ProgramStart = 0x200

	/// MaxProgramSize is the largest program that fits in memory.
	///
	MaxProgramSize = MemorySize - ProgramStart

	/// FontStart is the address of the first hex digit sprite.
	///
	FontStart = 0x50

	/// Width and Height of the display in pixels.
	///
	Width  = 64
	Height = 32

	/// StackDepth is the number of return addresses the stack can hold.
	///
	StackDepth = 16
)

/// Machine is a CHIP-8 virtual machine. It never sleeps, renders or polls
/// input on its own; a driving loop calls Step at the instruction rate and
/// TickTimers at 60 Hz.
///
type Machine struct {
	/// ROM is a pristine copy of the loaded program. Reset restores
	/// memory from it.
	///
	ROM []byte

	/// Memory addressable by CHIP-8. The first 512 bytes are reserved
	/// and only hold the font sprites.
	///
	Memory [MemorySize]byte

	/// PC is the program counter. All programs begin at 0x200.
	///
	PC uint16

	/// I is the address register.
	///
	I uint16

	/// V are the 16 virtual registers. VF doubles as the carry,
	/// borrow and collision flag.
	///
	V [16]byte

	/// Stack holds return addresses, SP is the number in use.
	///
	Stack [StackDepth]uint16
	SP    uint

	/// DT and ST are the delay and sound timer registers.
	///
	DT byte
	ST byte

	/// Cycles is how many instructions have been executed since load.
	///
	Cycles int64

	/// Random returns the next random byte for RND.
	///
	Random func() byte

	// video memory (64x32 bits), stored MSB first: pixel <0,0> is
	// bit 0x80 of byte 0
	video [Width * Height / 8]byte

	// current state of the 16-key pad
	keys [16]bool

	// key wait state for LD Vx, K
	waiting bool
	waitX   uint
	held    [16]bool

	redraw bool
	loaded bool
}

/// New returns an unloaded CHIP-8 virtual machine.
///
func New() *Machine {
	return &Machine{
		Random: func() byte {
			return byte(rand.Int31())
		},
	}
}

/// Load a program into memory and reset the virtual machine. If the
/// program is too large nothing is changed.
///
func (vm *Machine) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return &CapacityError{Size: len(program)}
	}

	vm.ROM = make([]byte, len(program))
	copy(vm.ROM, program)

	vm.loaded = true
	vm.Reset()
	return nil
}

/// Loaded returns true once a program has been loaded.
///
func (vm *Machine) Loaded() bool {
	return vm.loaded
}

/// Reset the virtual machine memory and registers from the loaded ROM.
///
func (vm *Machine) Reset() {
	if !vm.loaded {
		return
	}

	vm.Memory = [MemorySize]byte{}

	// copy the font and program into memory
	copy(vm.Memory[FontStart:], font[:])
	copy(vm.Memory[ProgramStart:], vm.ROM)

	// reset video memory and keys
	vm.video = [Width * Height / 8]byte{}
	vm.keys = [16]bool{}

	// reset program counter and stack pointer
	vm.PC = ProgramStart
	vm.SP = 0
	vm.Stack = [StackDepth]uint16{}

	// reset address and virtual registers
	vm.I = 0
	vm.V = [16]byte{}

	// reset timer registers
	vm.DT = 0
	vm.ST = 0

	vm.Cycles = 0

	// not waiting for a key
	vm.waiting = false
	vm.held = [16]bool{}

	vm.redraw = true
}

/// TickTimers decrements the delay and sound timers. Call it at 60 Hz,
/// independently of Step.
///
func (vm *Machine) TickTimers() {
	if vm.DT > 0 {
		vm.DT--
	}
	if vm.ST > 0 {
		vm.ST--
	}
}

/// SoundActive is true while the sound timer is running.
///
func (vm *Machine) SoundActive() bool {
	return vm.ST > 0
}

/// AwaitingKey is true while LD Vx, K is waiting for a key press.
///
func (vm *Machine) AwaitingKey() bool {
	return vm.waiting
}

/// Redraw returns true if the display changed since the last call, and
/// clears the flag.
///
func (vm *Machine) Redraw() bool {
	r := vm.redraw
	vm.redraw = false
	return r
}
