package chip8

import (
	"fmt"
	"strings"

	cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

/// Disassemble the CHIP-8 instruction at address i.
///
func (vm *Machine) Disassemble(i uint16) string {
	if uint(i)+1 >= MemorySize {
		return ""
	}

	// fetch the instruction at this location
	inst := uint16(vm.Memory[i])<<8 | uint16(vm.Memory[i+1])

	name, ok := mnemonic(inst)
	if !ok {
		return fmt.Sprintf("%04X - ??", i)
	}

	if operands := formatOperands(inst); operands != "" {
		return fmt.Sprintf("%04X - %-6s %s", i, name, operands)
	}
	return fmt.Sprintf("%04X - %s", i, name)
}

/// mnemonic looks up the instruction name by matching the opcode table
/// entries for the first nibble.
///
func mnemonic(inst uint16) (string, bool) {
	for _, op := range cpu.Opcodes[int(inst>>12)] {
		if op.Instruction != nil && op.Info.Mask&inst == op.Info.Value {
			return strings.ToUpper(op.Instruction.Name), true
		}
	}
	return "", false
}

func formatOperands(inst uint16) string {
	// 12-bit literal address
	a := inst & 0xFFF

	// byte and nibble literals
	b := byte(inst & 0xFF)
	n := byte(inst & 0xF)

	// vx and vy registers
	x := inst >> 8 & 0xF
	y := inst >> 4 & 0xF

	switch inst >> 12 {
	case 0x1, 0x2:
		return fmt.Sprintf("#%03X", a)
	case 0x3, 0x4, 0x6, 0x7, 0xC:
		return fmt.Sprintf("V%X, #%02X", x, b)
	case 0x5, 0x9:
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0x8:
		if n == 0x6 || n == 0xE {
			return fmt.Sprintf("V%X", x)
		}
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0xA:
		return fmt.Sprintf("I, #%03X", a)
	case 0xB:
		return fmt.Sprintf("V0, #%03X", a)
	case 0xD:
		return fmt.Sprintf("V%X, V%X, %d", x, y, n)
	case 0xE:
		return fmt.Sprintf("V%X", x)
	case 0xF:
		switch b {
		case 0x07:
			return fmt.Sprintf("V%X, DT", x)
		case 0x0A:
			return fmt.Sprintf("V%X, K", x)
		case 0x15:
			return fmt.Sprintf("DT, V%X", x)
		case 0x18:
			return fmt.Sprintf("ST, V%X", x)
		case 0x1E:
			return fmt.Sprintf("I, V%X", x)
		case 0x29:
			return fmt.Sprintf("F, V%X", x)
		case 0x33:
			return fmt.Sprintf("B, V%X", x)
		case 0x55:
			return fmt.Sprintf("[I], V%X", x)
		case 0x65:
			return fmt.Sprintf("V%X, [I]", x)
		}
	}
	return ""
}
