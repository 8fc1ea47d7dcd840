// Package config loads game configurations from YAML files. Files are
// overlays: any field left out keeps its default value, so a config file only
// needs to name what it changes.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"koth/game"
)

// Load reads and validates a game configuration from a YAML file.
func Load(path string) (game.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return game.Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return game.Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML overlay on top of the default configuration and
// validates the result. Unknown fields are rejected to catch typos.
func Parse(data []byte) (game.Config, error) {
	cfg := game.DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return game.Config{}, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return game.Config{}, err
	}
	return cfg, nil
}
