package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// LoadFile reads one archetype definition from a YAML file.
func LoadFile(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("registry: read %s: %w", path, err)
	}
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("registry: parse %s: %w", path, err)
	}
	if def.Archetype == "" {
		return Definition{}, fmt.Errorf("registry: %s: missing archetype name", path)
	}
	return def, nil
}

// LoadDir reads every .yaml/.yml file in dir, one archetype definition per
// file. Files are processed in lexical order so definition order (and with
// it the classifier tie-break order) is reproducible across platforms.
func LoadDir(dir string) ([]Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("registry: read dir %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("registry: no .yaml or .yml files in %s", dir)
	}

	defs := make([]Definition, 0, len(paths))
	for _, p := range paths {
		def, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}
