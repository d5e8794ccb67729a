package swatch

import (
	"errors"
	"fmt"
)

// ComposeFunc turns an ordered list of resolved file paths into one Theme.
// Implementations may be arbitrary caller code and are allowed to panic on
// malformed input; LoadTheme contains the panic.
type ComposeFunc func(paths []string) (*Theme, error)

// LoadTheme invokes compose over paths and normalizes every failure mode into
// a *ComposeError. A panic inside compose is recovered here: reload runs on a
// background delivery goroutine with no caller frame to propagate to, so an
// escaped panic would take the process down.
func LoadTheme(paths []string, compose ComposeFunc) (theme *Theme, err error) {
	defer func() {
		if r := recover(); r != nil {
			theme = nil
			err = &ComposeError{Err: fmt.Errorf("compose panicked: %v", r)}
		}
	}()

	theme, err = compose(paths)
	if err != nil {
		var ce *ComposeError
		if !errors.As(err, &ce) {
			err = &ComposeError{Err: err}
		}
		return nil, err
	}
	if theme == nil {
		return nil, &ComposeError{Err: errors.New("compose returned no artifact")}
	}
	return theme, nil
}
