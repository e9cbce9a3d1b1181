//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package main

import (
	"errors"
	"runtime"
)

// NewTerminal fails on platforms without termios support.
func NewTerminal() (frontend, error) {
	return nil, errors.New("terminal mode is not supported on " + runtime.GOOS)
}
