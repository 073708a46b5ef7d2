// Package config handles abcmeta.toml run configuration and class list
// files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const FileName = "abcmeta.toml"

// Config holds defaults for the command line. Flags override every value.
type Config struct {
	SWF     string  `toml:"swf"`
	Quiet   bool    `toml:"quiet"`
	Output  Output  `toml:"output"`
	Reflect Reflect `toml:"reflect"`

	// Dir is the directory containing the configuration file (set at load time).
	Dir string `toml:"-"`
}

// Output names the files results are written to. With neither set, JSON
// goes to standard output.
type Output struct {
	JSON string `toml:"json"`
	CBOR string `toml:"cbor"`
}

// Reflect selects the classes to reflect.
type Reflect struct {
	ClassList string   `toml:"class_list"`
	Classes   []string `toml:"classes"`
	Patterns  []string `toml:"patterns"`
}

// Load parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	return &c, nil
}

// FindAndLoad walks up from startDir to find an abcmeta.toml file and
// loads it. Returns nil if no file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// Path resolves a path from the configuration file relative to its
// directory.
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) || c.Dir == "" {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// ClassSelection returns the configured class names and patterns, reading
// the class list file when one is set.
func (c *Config) ClassSelection() (names, patterns []string, err error) {
	if c.Reflect.ClassList != "" {
		names, patterns, err = ReadClassList(c.Path(c.Reflect.ClassList))
		if err != nil {
			return nil, nil, err
		}
	}
	names = append(names, c.Reflect.Classes...)
	patterns = append(patterns, c.Reflect.Patterns...)
	return names, patterns, nil
}
