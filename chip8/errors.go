package chip8

import (
	"errors"
	"fmt"
)

var (
	/// ErrNotLoaded is returned by Step before a ROM has been loaded.
	///
	ErrNotLoaded = errors.New("no program loaded")

	/// ErrStackOverflow is returned by CALL when all 16 stack cells are used.
	///
	ErrStackOverflow = errors.New("stack overflow")

	/// ErrStackUnderflow is returned by RET with an empty stack.
	///
	ErrStackUnderflow = errors.New("stack underflow")
)

/// OutOfBoundsError is returned when an address falls outside of memory
/// or, for the program counter, outside of program space.
///
type OutOfBoundsError struct {
	Address uint
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("address #%04X out of bounds", e.Address)
}

/// UnknownOpcodeError is returned for a word that decodes to no instruction.
///
type UnknownOpcodeError struct {
	Opcode uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("invalid opcode: %04X", e.Opcode)
}

/// CapacityError is returned when a program doesn't fit in program space.
///
type CapacityError struct {
	Size int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("program too large to fit in memory: %d bytes, limit is %d", e.Size, MaxProgramSize)
}
