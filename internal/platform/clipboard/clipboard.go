// Package clipboard adapts the system clipboard to share.Clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"

	"pantrychef/internal/share"
)

// ErrUnsupported is returned when no clipboard utility is installed.
var ErrUnsupported = errors.New("clipboard is not supported on this system")

// Compile-time interface check.
var _ share.Clipboard = System{}

// System writes to the desktop clipboard (xclip, xsel, wl-copy, pbcopy or
// the Windows API, whichever the host has).
type System struct{}

// Available reports whether a clipboard utility was found.
func (System) Available() bool {
	return !clipboard.Unsupported
}

// WriteText copies text to the clipboard.
func (s System) WriteText(text string) error {
	if !s.Available() {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}
