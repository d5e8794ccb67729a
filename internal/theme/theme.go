// Package swatch provides live reloading for themes composed from a set of
// on-disk source files.
//
// A theme is described by an ordered list of logical filenames. The package
// resolves each filename to a unique path under a source root, composes the
// files into a single Theme artifact, and keeps a per-file OS watch on every
// resolved path so that edits re-compose the theme and notify the caller.
package swatch

import "strings"

// Source describes a theme by the ordered list of filenames that compose it.
// Order matters: later files override values from earlier ones.
type Source interface {
	ThemeFiles() []string
}

// FileList is a Source backed by a fixed, ordered list of filenames.
type FileList []string

// ThemeFiles returns the list unchanged.
func (l FileList) ThemeFiles() []string { return []string(l) }

// Theme is the composed artifact: every theme file decoded and deep-merged
// into one value tree, in source order.
type Theme struct {
	values  map[string]any
	sources []string
}

// NewTheme builds a Theme from an already-merged value tree. The sources
// slice records which paths contributed, in merge order.
func NewTheme(values map[string]any, sources []string) *Theme {
	if values == nil {
		values = map[string]any{}
	}
	return &Theme{values: values, sources: sources}
}

// Sources returns the paths that were merged into this theme, in order.
func (t *Theme) Sources() []string { return t.sources }

// Len reports the number of top-level keys in the theme.
func (t *Theme) Len() int { return len(t.values) }

// Value looks up a possibly nested value by dotted key, e.g. "colors.accent".
func (t *Theme) Value(key string) (any, bool) {
	var cur any = t.values
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// String returns the string value at the dotted key, or "" when the key is
// absent or not a string.
func (t *Theme) String(key string) string {
	v, ok := t.Value(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Color returns the named entry from the theme's "colors" table.
func (t *Theme) Color(name string) string { return t.String("colors." + name) }

// Font returns the named entry from the theme's "fonts" table.
func (t *Theme) Font(name string) string { return t.String("fonts." + name) }
