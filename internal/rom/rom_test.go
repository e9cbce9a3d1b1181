package rom

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mammad-J/ChipServe/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.ch8")
	assert.NoError(t, os.WriteFile(path, []byte{0x00, 0xE0, 0x12, 0x00}, 0o600))

	program, err := Read(path)
	assert.NoError(t, err)
	assert.Equal(t, 4, len(program))
	assert.Equal(t, byte(0xE0), program[1])
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.ch8"))
	assert.ErrorContains(t, err, "opening file")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadFromTooLarge(t *testing.T) {
	_, err := ReadFrom(bytes.NewReader(make([]byte, 5000)))

	var capErr *chip8.CapacityError
	assert.True(t, errors.As(err, &capErr))
	assert.Equal(t, 5000, capErr.Size)
	assert.ErrorContains(t, err, "5000 bytes")
}

func TestReadTooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huge.ch8")
	assert.NoError(t, os.WriteFile(path, make([]byte, 5000), 0o600))

	_, err := Read(path)

	var capErr *chip8.CapacityError
	assert.True(t, errors.As(err, &capErr))
	assert.Equal(t, 5000, capErr.Size)
	assert.ErrorContains(t, err, "5000 bytes")
}

func TestReadFromLimit(t *testing.T) {
	program, err := ReadFrom(bytes.NewReader(make([]byte, chip8.MaxProgramSize)))
	assert.NoError(t, err)
	assert.Equal(t, chip8.MaxProgramSize, len(program))
}

func TestName(t *testing.T) {
	assert.Equal(t, "BRIX", Name("games/BRIX"))
	assert.Equal(t, "Airplane", Name("ROMs/Airplane.ch8"))
}
