package swatch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultCompose decodes each path by extension and deep-merges the results
// in input order, later files overriding earlier ones. YAML (.yaml, .yml,
// and .json, which YAML subsumes) and TOML (.toml) layers may be mixed freely
// within one theme.
func DefaultCompose(paths []string) (*Theme, error) {
	merged := map[string]any{}
	for _, path := range paths {
		layer, err := decodeLayer(path)
		if err != nil {
			return nil, err
		}
		merged = mergeValues(merged, layer)
	}
	return NewTheme(merged, paths), nil
}

func decodeLayer(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ComposeError{Path: path, Err: err}
	}

	layer := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		if err := yaml.Unmarshal(data, &layer); err != nil {
			return nil, &ComposeError{Path: path, Err: err}
		}
	case ".toml":
		if err := toml.Unmarshal(data, &layer); err != nil {
			return nil, &ComposeError{Path: path, Err: err}
		}
	default:
		return nil, &ComposeError{Path: path, Err: fmt.Errorf("unsupported theme format %q", filepath.Ext(path))}
	}
	return layer, nil
}

// mergeValues overlays src onto dst. Tables merge recursively; any other
// value in src replaces the dst value wholesale, including lists.
func mergeValues(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}
	for k, v := range src {
		sv, svOK := v.(map[string]any)
		dv, dvOK := out[k].(map[string]any)
		if svOK && dvOK {
			out[k] = mergeValues(dv, sv)
			continue
		}
		out[k] = v
	}
	return out
}
