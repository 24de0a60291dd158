// Package config holds the compiler options of the match compiler and the
// loading of the optional matchc.yaml project file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the per-project options file, searched upward from the
// working directory.
const ConfigFileName = "matchc.yaml"

// GeneratedNamePrefix marks compiler-generated binders. Names with this
// prefix cannot collide with user identifiers.
const GeneratedNamePrefix = "$m"

// Options controls the match compiler for one compilation unit.
type Options struct {
	// PreserveOrder disables the column-reordering heuristic and restores
	// literal left-to-right evaluation order of scrutinees.
	PreserveOrder bool `yaml:"preserve_order,omitempty"`

	// TraceLevel enables debug trace output (0 = off). Trace output never
	// affects compiled code.
	TraceLevel int `yaml:"trace_level,omitempty"`
}

// Default returns the options used when no matchc.yaml is present:
// reordering enabled, trace off.
func Default() Options {
	return Options{}
}

// Load reads and parses a matchc.yaml file.
func Load(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses matchc.yaml content from bytes. The path argument is used
// only for error messages.
func Parse(data []byte, path string) (Options, error) {
	opts := Default()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Default(), fmt.Errorf("parsing %s: %w", path, err)
	}
	if opts.TraceLevel < 0 {
		return Default(), fmt.Errorf("parsing %s: trace_level must not be negative", path)
	}
	return opts, nil
}

// LoadProject searches for matchc.yaml starting from dir and walking up to
// parent directories. Returns defaults if no config file is found.
func LoadProject(dir string) (Options, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return Default(), fmt.Errorf("resolving directory: %w", err)
	}
	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}
