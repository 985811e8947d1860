package organizer

import "smartsort/internal/fileutil"

// Mover relocates one file.
type Mover interface {
	Move(src, dst string) error
}

// MoveFunc adapts a function to the Mover interface.
type MoveFunc func(src, dst string) error

// Move calls f(src, dst).
func (f MoveFunc) Move(src, dst string) error {
	return f(src, dst)
}

// FileMover moves files on the local filesystem, falling back to a verified
// copy across devices.
var FileMover Mover = MoveFunc(fileutil.MoveFile)
