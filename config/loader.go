package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unsupported config extension %q", ErrInvalidConfig, filepath.Ext(path))
	}
}

// Load reads and validates a profile from a YAML, TOML or JSON file.
func Load(path string) (Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Config{}, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	c, err := Parse(b, format)
	if err != nil {
		return Config{}, fmt.Errorf("config.Load %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a profile. Fields left out take the first market's defaults;
// end_of_month defaults to true.
func Parse(data []byte, format Format) (Config, error) {
	c := Config{EndOfMonth: true}

	var err error
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(&c); errors.Is(err, io.EOF) {
			err = nil
		}
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.Decode(string(data), &c)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				err = fmt.Errorf("unknown keys %v", undecoded)
			}
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&c)
	default:
		return Config{}, fmt.Errorf("%w: unsupported format %q", ErrInvalidConfig, string(format))
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, format, err)
	}

	c = c.WithMarketDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
