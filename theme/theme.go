package theme

import (
	internal "github.com/TFMV/swatch/internal/theme"
)

// Re-export the types from the internal package.
type (
	// Theme is the composed artifact: every theme file decoded and
	// deep-merged into one value tree, in source order.
	Theme = internal.Theme

	// Source describes a theme by the ordered list of filenames that
	// compose it.
	Source = internal.Source

	// FileList is a Source backed by a fixed, ordered list of filenames.
	FileList = internal.FileList

	// Observer watches every file of one theme and re-composes the
	// artifact on change.
	Observer = internal.Observer

	// ObserverOptions configures an Observer.
	ObserverOptions = internal.ObserverOptions

	// UpdateFunc receives the outcome of every reload attempt.
	UpdateFunc = internal.UpdateFunc

	// ComposeFunc turns an ordered list of resolved file paths into one
	// Theme.
	ComposeFunc = internal.ComposeFunc

	// LogLevel defines the verbosity of logging.
	LogLevel = internal.LogLevel

	// FileNotFoundError reports a theme filename with no match under the
	// source root.
	FileNotFoundError = internal.FileNotFoundError

	// AmbiguousFilenameError reports a theme filename matched by more than
	// one file under the source root.
	AmbiguousFilenameError = internal.AmbiguousFilenameError

	// WatchCreationError reports a path that could not be opened or
	// registered for notifications.
	WatchCreationError = internal.WatchCreationError

	// ComposeError reports theme files that could not be decoded or merged.
	ComposeError = internal.ComposeError
)

// Log levels for ObserverOptions.LogLevel.
const (
	LogLevelError = internal.LogLevelError
	LogLevelWarn  = internal.LogLevelWarn
	LogLevelInfo  = internal.LogLevelInfo
	LogLevelDebug = internal.LogLevelDebug
)

// Observe resolves source's filenames under root, composes the initial theme
// synchronously, and starts watching every resolved path. onUpdate fires on
// every subsequent reload attempt; the initial artifact is read from the
// returned observer's Theme method.
func Observe(root string, source Source, onUpdate UpdateFunc, opts ObserverOptions) (*Observer, error) {
	return internal.Observe(root, source, onUpdate, opts)
}

// ResolvePaths maps each theme filename to the unique file under root with
// that base name, in input order.
func ResolvePaths(root string, names []string) ([]string, error) {
	return internal.ResolvePaths(root, names)
}

// DefaultCompose decodes each path by extension (YAML or TOML) and
// deep-merges the results in input order.
func DefaultCompose(paths []string) (*Theme, error) {
	return internal.DefaultCompose(paths)
}

// NewTheme builds a Theme from an already-merged value tree.
func NewTheme(values map[string]any, sources []string) *Theme {
	return internal.NewTheme(values, sources)
}
