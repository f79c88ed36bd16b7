package layer

import (
	"errors"
	"fmt"

	"github.com/seqnet/seqnet/internal/activations"
)

// ErrMissingName is returned when a configuration is missing the layer name
// that scoped parameter and sub-layer names are derived from.
var ErrMissingName = errors.New("layer: missing name in layer args")

// Args configures an inner layer constructor.
type Args struct {
	// Name is required: parameter scopes and per-timestep sub-layer names
	// are derived from it.
	Name string

	// Units is the output feature size.
	Units int

	// Act is the activation; nil means linear.
	Act activations.Activation
}

func (a Args) validate() error {
	if a.Name == "" {
		return ErrMissingName
	}
	if a.Units <= 0 {
		return fmt.Errorf("layer: args %q: units must be positive, got %d", a.Name, a.Units)
	}
	return nil
}

// activation returns the configured activation, defaulting to linear.
func (a Args) activation() activations.Activation {
	if a.Act == nil {
		return activations.Linear{}
	}
	return a.Act
}

// summary renders the args for layer descriptions.
func (a Args) summary() string {
	s := fmt.Sprintf("units: %d", a.Units)
	if name := activations.NameOf(a.activation()); name != "" && name != "linear" {
		s += ", act: " + name
	}
	return s
}

// ArgsFromMap decodes a loosely-typed configuration mapping, such as parsed
// YAML, into Args. The legacy key "n_units" is rewritten to "units" at this
// boundary; supplying both, or any unknown key, is an error.
func ArgsFromMap(m map[string]any) (Args, error) {
	var args Args
	for key, raw := range m {
		switch key {
		case "name":
			s, ok := raw.(string)
			if !ok {
				return Args{}, fmt.Errorf("layer: args key %q: want string, got %T", key, raw)
			}
			args.Name = s
		case "units", "n_units":
			if key == "n_units" {
				if _, both := m["units"]; both {
					return Args{}, fmt.Errorf(`layer: args contain both "units" and legacy "n_units"`)
				}
			}
			n, err := intValue(raw)
			if err != nil {
				return Args{}, fmt.Errorf("layer: args key %q: %w", key, err)
			}
			args.Units = n
		case "act":
			s, ok := raw.(string)
			if !ok {
				return Args{}, fmt.Errorf("layer: args key %q: want string, got %T", key, raw)
			}
			act, err := activations.ByName(s)
			if err != nil {
				return Args{}, err
			}
			args.Act = act
		default:
			return Args{}, fmt.Errorf("layer: unknown args key %q", key)
		}
	}
	if err := args.validate(); err != nil {
		return Args{}, err
	}
	return args, nil
}

func intValue(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("want integer, got %v", v)
		}
		return int(v), nil
	}
	return 0, fmt.Errorf("want integer, got %T", raw)
}
