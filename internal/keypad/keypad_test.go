package keypad

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		r   rune
		key uint
		ok  bool
	}{
		{'1', 0x1, true},
		{'x', 0x0, true},
		{'X', 0x0, true},
		{'v', 0xF, true},
		{'4', 0xC, true},
		{'p', 0, false},
	}

	for _, tt := range tests {
		key, ok := Lookup(tt.r)
		assert.Equal(t, tt.ok, ok)
		assert.Equal(t, tt.key, key)
	}
}

func TestLayoutCoversAllKeys(t *testing.T) {
	var seen [16]bool
	for _, key := range layout {
		seen[key] = true
	}
	for _, s := range seen {
		assert.True(t, s)
	}
}

func TestLatch(t *testing.T) {
	l := NewLatch(2)
	l.Press(0x5)
	l.Press(0x20)

	keys := l.Tick()
	assert.True(t, keys[0x5])

	keys = l.Tick()
	assert.True(t, keys[0x5])

	keys = l.Tick()
	assert.False(t, keys[0x5])

	// pressing again restarts the hold
	l.Press(0x5)
	keys = l.Tick()
	assert.True(t, keys[0x5])
}

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		in   string
		keys []uint
		ctl  Control
	}{
		{"keys", "1qV", []uint{0x1, 0x4, 0xF}, NoControl},
		{"lone escape", "w\x1b", []uint{0x5}, Quit},
		{"arrow key", "\x1b[A", nil, NoControl},
		{"arrow key before keys", "\x1b[Bw", []uint{0x5}, NoControl},
		{"function key", "\x1b[15~", nil, NoControl},
		{"ss3 function key", "\x1bOP", nil, NoControl},
		{"alt key", "\x1bq", nil, NoControl},
		{"escape after sequence", "\x1b[A\x1b", nil, Quit},
		{"reset", "\x7f", nil, Reset},
		{"backspace", "\x08", nil, Reset},
		{"pause", "e ", []uint{0x6}, Pause},
		{"step", ".", nil, Step},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys, ctl := Scan([]byte(tt.in))
			assert.Equal(t, tt.ctl, ctl)
			assert.Equal(t, len(tt.keys), len(keys))
			for i, key := range tt.keys {
				assert.Equal(t, key, keys[i])
			}
		})
	}
}
