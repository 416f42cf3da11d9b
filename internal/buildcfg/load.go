package buildcfg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the serialization used by Parse and Marshal.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// FormatForPath picks the format from a file extension; anything that is not
// .json is treated as YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Load reads, parses, normalizes, and validates the record at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read build config: %w", err)
	}
	cfg, err := Parse(data, FormatForPath(path))
	if err != nil {
		return Config{}, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Parse decodes a record, normalizes it, and validates it. An absent plugins
// key normalizes to an empty list so the field is always present after a
// load, which keeps Marshal/Parse round-trips idempotent.
func Parse(data []byte, format Format) (Config, error) {
	var cfg Config
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse YAML: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse JSON: %w", err)
		}
	default:
		return Config{}, ErrUnsupportedFormat
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal serializes a record. Parse(Marshal(c)) yields a structure identical
// to c for any normalized record.
func Marshal(cfg Config, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(cfg)
	case FormatJSON:
		return json.MarshalIndent(cfg, "", "  ")
	default:
		return nil, ErrUnsupportedFormat
	}
}

func (c *Config) normalize() {
	if c.Plugins == nil {
		c.Plugins = []string{}
	}
}
