//go:build !linux

package main

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// setRawIO switches stdin to raw mode and returns a function restoring
// the previous settings.
func setRawIO() (func(), error) {
	fd := int(os.Stdin.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, errors.Wrap(err, "MakeRaw failed")
	}
	return func() { term.Restore(fd, old) }, nil
}
