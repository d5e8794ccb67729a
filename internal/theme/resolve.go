package swatch

import (
	"fmt"
	"path/filepath"

	"github.com/karrick/godirwalk"
	"golang.org/x/text/unicode/norm"
)

// ResolvePaths maps each requested theme filename to the unique file under
// root that carries that base name, returning absolute paths in the same
// order as the input.
//
// The tree is enumerated once per call, eagerly, with no caching across
// calls. Filenames are compared NFC-normalized so that differently normalized
// editor saves (common on macOS) still match.
//
// Resolution fails with *FileNotFoundError when a name has no match and with
// *AmbiguousFilenameError when more than one file shares the name; there is
// no way to pick one to watch on the caller's behalf.
func ResolvePaths(root string, names []string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("swatch: resolving root %s: %w", root, err)
	}

	byName := make(map[string][]string)
	err = godirwalk.Walk(absRoot, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				return nil
			}
			name := norm.NFC.String(filepath.Base(path))
			byName[name] = append(byName[name], path)
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("swatch: enumerating %s: %w", absRoot, err)
	}

	paths := make([]string, 0, len(names))
	for _, name := range names {
		matches := byName[norm.NFC.String(name)]
		switch len(matches) {
		case 0:
			return nil, &FileNotFoundError{Name: name, Root: absRoot}
		case 1:
			paths = append(paths, matches[0])
		default:
			return nil, &AmbiguousFilenameError{Name: name, Root: absRoot, Matches: matches}
		}
	}
	return paths, nil
}
