// Package keypad maps a modern keyboard onto the CHIP-8 hex key pad.
//
// The layout uses the left block of a QWERTY keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
package keypad

import (
	"unicode"
)

var layout = map[rune]uint{
	'x': 0x0,
	'1': 0x1,
	'2': 0x2,
	'3': 0x3,
	'q': 0x4,
	'w': 0x5,
	'e': 0x6,
	'a': 0x7,
	's': 0x8,
	'd': 0x9,
	'z': 0xA,
	'c': 0xB,
	'4': 0xC,
	'r': 0xD,
	'f': 0xE,
	'v': 0xF,
}

// Lookup returns the CHIP-8 key for a typed character.
func Lookup(r rune) (uint, bool) {
	key, ok := layout[unicode.ToLower(r)]
	return key, ok
}

// Control is a frontend control typed on the terminal.
type Control int

const (
	// NoControl means only key pad keys were typed.
	NoControl Control = iota
	// Quit is a lone ESC.
	Quit
	// Reset is DEL or backspace.
	Reset
	// Pause is space.
	Pause
	// Step is a period.
	Step
)

const esc = 0x1B

// Scan decodes the bytes read from a raw mode terminal into key pad
// presses and the last control typed. Escape sequences sent for arrow
// and function keys are skipped, only an ESC that ends the input quits.
func Scan(buf []byte) ([]uint, Control) {
	var keys []uint
	ctl := NoControl

	for i := 0; i < len(buf); i++ {
		c := buf[i]

		if key, ok := Lookup(rune(c)); ok {
			keys = append(keys, key)
			continue
		}

		switch c {
		case esc:
			if i == len(buf)-1 {
				return keys, Quit
			}
			i = skipEscape(buf, i)
		case 0x7F, 0x08:
			ctl = Reset
		case ' ':
			ctl = Pause
		case '.':
			ctl = Step
		}
	}
	return keys, ctl
}

// skipEscape returns the index of the last byte of the escape sequence
// starting at buf[i].
func skipEscape(buf []byte, i int) int {
	switch buf[i+1] {
	case '[':
		// CSI: parameters end with a byte in 0x40-0x7E
		for j := i + 2; j < len(buf); j++ {
			if buf[j] >= 0x40 && buf[j] <= 0x7E {
				return j
			}
		}
		return len(buf) - 1
	case 'O':
		// SS3: one final byte
		return min(i+2, len(buf)-1)
	default:
		// alt modified key
		return i + 1
	}
}

// Latch turns key press events into a held key state. Terminals only
// report presses, so a key counts as held for a number of frames after
// its last press.
type Latch struct {
	frames int
	hold   [16]int
}

// NewLatch returns a latch holding keys for the given number of frames.
func NewLatch(frames int) *Latch {
	return &Latch{frames: frames}
}

// Press marks a key as pressed.
func (l *Latch) Press(key uint) {
	if key < 16 {
		l.hold[key] = l.frames
	}
}

// Tick returns the held keys and advances one frame.
func (l *Latch) Tick() [16]bool {
	var keys [16]bool
	for k, n := range l.hold {
		if n > 0 {
			keys[k] = true
			l.hold[k]--
		}
	}
	return keys
}
