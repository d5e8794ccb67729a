package swatch

import (
	"fmt"
	"strings"
)

// FileNotFoundError is returned when a theme filename has no match anywhere
// under the source root.
type FileNotFoundError struct {
	Name string // Requested filename
	Root string // Source root that was searched
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("swatch: theme file %q not found under %s", e.Name, e.Root)
}

// AmbiguousFilenameError is returned when more than one file under the source
// root shares a requested filename. Live reload cannot tell which one to
// watch, so resolution refuses to guess.
type AmbiguousFilenameError struct {
	Name    string   // Requested filename
	Root    string   // Source root that was searched
	Matches []string // Every path that matched, in enumeration order
}

func (e *AmbiguousFilenameError) Error() string {
	return fmt.Sprintf("swatch: theme file %q is ambiguous under %s: %s",
		e.Name, e.Root, strings.Join(e.Matches, ", "))
}

// WatchCreationError is returned when a path cannot be opened for
// notifications or the OS watch cannot be registered.
type WatchCreationError struct {
	Path string // Path that could not be watched
	Err  error  // Underlying OS error
}

func (e *WatchCreationError) Error() string {
	return fmt.Sprintf("swatch: cannot watch %s: %v", e.Path, e.Err)
}

func (e *WatchCreationError) Unwrap() error { return e.Err }

// ComposeError is returned when the theme files cannot be decoded or merged
// into a single artifact. Panics raised by a compose collaborator are
// recovered and reported through this type as well.
type ComposeError struct {
	Path string // Offending file, if known
	Err  error  // Underlying decode/compose error
}

func (e *ComposeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("swatch: composing theme: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("swatch: composing theme: %v", e.Err)
}

func (e *ComposeError) Unwrap() error { return e.Err }
