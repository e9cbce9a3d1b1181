package main

import (
	"errors"
	"fmt"

	"github.com/mammad-J/ChipServe/internal/rom"
	"github.com/sqweek/dialog"
)

// chooseROM asks for a ROM file with the native open file dialog.
func chooseROM() (string, error) {
	file, err := dialog.File().
		Title("Load CHIP-8 ROM").
		Filter("CHIP-8 ROM", rom.Extensions...).
		Filter("All files", "*").
		Load()
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			return "", errors.New("no rom file selected")
		}
		return "", fmt.Errorf("selecting rom file: %w", err)
	}
	return file, nil
}
