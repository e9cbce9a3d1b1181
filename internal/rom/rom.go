// Package rom reads CHIP-8 programs from storage.
package rom

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mammad-J/ChipServe/chip8"
)

// Extensions lists the file extensions offered when picking a ROM.
var Extensions = []string{"ch8", "c8"}

// Read loads the raw program bytes from a file.
func Read(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file '%s': %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if info, err := f.Stat(); err == nil && info.Mode().IsRegular() && info.Size() > chip8.MaxProgramSize {
		return nil, fmt.Errorf("reading file '%s': %w", path, &chip8.CapacityError{Size: int(info.Size())})
	}

	program, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("reading file '%s': %w", path, err)
	}
	return program, nil
}

// ReadFrom reads a program from r. A program that can't fit in CHIP-8
// program memory returns a *chip8.CapacityError carrying its full size,
// the excess is counted but not kept.
func ReadFrom(r io.Reader) ([]byte, error) {
	program, err := io.ReadAll(io.LimitReader(r, chip8.MaxProgramSize+1))
	if err != nil {
		return nil, err
	}
	if len(program) <= chip8.MaxProgramSize {
		return program, nil
	}

	rest, err := io.Copy(io.Discard, r)
	if err != nil {
		return nil, err
	}
	return nil, &chip8.CapacityError{Size: len(program) + int(rest)}
}

// Name returns the ROM title shown to the user, the file name without
// its extension.
func Name(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
