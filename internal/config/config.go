// Package config loads model descriptions from YAML. A model file declares
// the input dimensions and the layer stack; layer entries carry the same
// loosely-typed args mapping the layer constructors accept, so legacy keys
// are rewritten at the construction boundary, not here.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// InputConfig declares the shape of the network input.
type InputConfig struct {
	Batch int `yaml:"batch"`
	Steps int `yaml:"steps"`
	Dim   int `yaml:"dim"`
}

// LayerConfig declares one layer of the model.
type LayerConfig struct {
	Kind string         `yaml:"kind"`
	Name string         `yaml:"name"`
	Args map[string]any `yaml:"args"`
}

// ModelConfig is the root of a model file.
type ModelConfig struct {
	Name   string        `yaml:"name"`
	Input  InputConfig   `yaml:"input"`
	Layers []LayerConfig `yaml:"layers"`
}

// Load reads and parses a model file.
func Load(path string) (*ModelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a model description. Unknown fields are rejected.
func Parse(data []byte) (*ModelConfig, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var cfg ModelConfig
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: empty model description")
		}
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *ModelConfig) validate() error {
	if c.Name == "" {
		return fmt.Errorf("config: model name is required")
	}
	if c.Input.Batch <= 0 || c.Input.Steps <= 0 || c.Input.Dim <= 0 {
		return fmt.Errorf("config: model %q: input batch/steps/dim must be positive, got %d/%d/%d",
			c.Name, c.Input.Batch, c.Input.Steps, c.Input.Dim)
	}
	if len(c.Layers) == 0 {
		return fmt.Errorf("config: model %q: no layers", c.Name)
	}
	for i, l := range c.Layers {
		switch l.Kind {
		case "time_distributed":
		default:
			return fmt.Errorf("config: model %q: layer %d: unknown kind %q", c.Name, i, l.Kind)
		}
		if l.Name == "" {
			return fmt.Errorf("config: model %q: layer %d: name is required", c.Name, i)
		}
		if len(l.Args) == 0 {
			return fmt.Errorf("config: model %q: layer %q: args are required", c.Name, l.Name)
		}
	}
	return nil
}
