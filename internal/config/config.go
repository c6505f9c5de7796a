// Package config loads the optional .mslrc.yaml sitting next to an entry
// script, mirroring the teacher's unit-search-path configuration in
// cmd/dwscript/cmd/run.go. Absence of the file preserves spec defaults:
// load() resolves a path as given (relative to the current working
// directory) and all three optional namespaces (math, File, JSON) are
// installed.
package config

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Config controls the ambient surface an Evaluator is built with. The
// zero value matches spec defaults.
type Config struct {
	// LoadPaths are additional directories load() searches, in order,
	// when the requested path does not exist as given.
	LoadPaths []string `yaml:"loadPaths"`

	// Stdlib toggles which built-in namespaces Install wires in. A nil
	// field (the zero value) leaves that namespace enabled.
	Stdlib struct {
		Math *bool `yaml:"math"`
		File *bool `yaml:"file"`
		JSON *bool `yaml:"json"`
	} `yaml:"stdlib"`
}

// MathEnabled reports whether the `math` namespace should be installed.
func (c *Config) MathEnabled() bool { return enabledOr(c.Stdlib.Math, true) }

// FileEnabled reports whether the `File` namespace should be installed.
func (c *Config) FileEnabled() bool { return enabledOr(c.Stdlib.File, true) }

// JSONEnabled reports whether the `JSON` namespace should be installed.
func (c *Config) JSONEnabled() bool { return enabledOr(c.Stdlib.JSON, true) }

func enabledOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// Load reads ".mslrc.yaml" next to scriptPath. A missing file is not an
// error: it returns the zero Config (all defaults). A malformed file is
// reported as-is.
func Load(scriptPath string) (*Config, error) {
	dir := "."
	if scriptPath != "" {
		dir = filepath.Dir(scriptPath)
	}
	path := filepath.Join(dir, ".mslrc.yaml")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
