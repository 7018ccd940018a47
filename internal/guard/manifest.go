package guard

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the top-level guards.yaml configuration: a declarative
// list of guard registrations to install into a registry.
type Manifest struct {
	Guards []GuardSpec `yaml:"guards"`
}

// GuardSpec declares one registration.
type GuardSpec struct {
	// Name the guard is registered under (e.g. "valid_amount").
	Name string `yaml:"name"`

	// Kind selects a builtin factory: not_nil, not_empty, positive,
	// non_negative, in_range, min_length, max_length, matches, one_of.
	Kind string `yaml:"kind"`

	// Namespace is optional; empty means the global namespace.
	Namespace string `yaml:"namespace,omitempty"`

	// Params configure the factory. Common keys: param (parameter
	// name), position (0-based positional fallback). Kind-specific
	// keys: min/max (in_range), length (min_length/max_length),
	// pattern (matches), values (one_of).
	Params map[string]any `yaml:"params,omitempty"`
}

// LoadManifest reads and parses a guards.yaml file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest for structural mistakes before any
// registration happens.
func (m *Manifest) Validate() error {
	for i, spec := range m.Guards {
		if spec.Name == "" {
			return fmt.Errorf("guards[%d]: missing name", i)
		}
		if _, ok := builtinKinds[spec.Kind]; !ok {
			return fmt.Errorf("guards[%d] (%s): unknown kind %q", i, spec.Name, spec.Kind)
		}
	}
	return nil
}

// Apply installs every declared guard into the registry. Registration
// stops at the first failure.
func (m *Manifest) Apply(reg *Registry) error {
	for _, spec := range m.Guards {
		kind := builtinKinds[spec.Kind]
		params := spec.Params
		if err := reg.Register(spec.Name, withParams(kind, params), spec.Namespace); err != nil {
			return fmt.Errorf("registering %q: %w", spec.Name, err)
		}
	}
	return nil
}

// withParams merges manifest-level params under factory invocation so a
// caller may still override per-use.
func withParams(f Factory, base map[string]any) Factory {
	return func(params map[string]any) (Func, error) {
		merged := make(map[string]any, len(base)+len(params))
		for k, v := range base {
			merged[k] = v
		}
		for k, v := range params {
			merged[k] = v
		}
		return f(merged)
	}
}

// builtinKinds maps manifest kind names to factories over the prebuilt
// guards.
var builtinKinds = map[string]Factory{
	"not_nil": func(p map[string]any) (Func, error) {
		return NotNil(paramString(p, "param", "parameter"), paramInt(p, "position", 0)), nil
	},
	"not_empty": func(p map[string]any) (Func, error) {
		return NotEmpty(paramString(p, "param", "parameter"), paramInt(p, "position", 0)), nil
	},
	"positive": func(p map[string]any) (Func, error) {
		return Positive(paramString(p, "param", "parameter"), paramInt(p, "position", 0)), nil
	},
	"non_negative": func(p map[string]any) (Func, error) {
		return NonNegative(paramString(p, "param", "parameter"), paramInt(p, "position", 0)), nil
	},
	"in_range": func(p map[string]any) (Func, error) {
		min, ok := paramFloat(p, "min")
		if !ok {
			return nil, fmt.Errorf("in_range requires 'min'")
		}
		max, ok := paramFloat(p, "max")
		if !ok {
			return nil, fmt.Errorf("in_range requires 'max'")
		}
		return InRange(min, max, paramString(p, "param", "parameter"), paramInt(p, "position", 0)), nil
	},
	"min_length": func(p map[string]any) (Func, error) {
		return MinLength(paramInt(p, "length", 1), paramString(p, "param", "parameter"), paramInt(p, "position", 0)), nil
	},
	"max_length": func(p map[string]any) (Func, error) {
		return MaxLength(paramInt(p, "length", 0), paramString(p, "param", "parameter"), paramInt(p, "position", 0)), nil
	},
	"matches": func(p map[string]any) (Func, error) {
		pattern := paramString(p, "pattern", "")
		if pattern == "" {
			return nil, fmt.Errorf("matches requires 'pattern'")
		}
		return Matches(pattern, paramString(p, "param", "parameter"), paramInt(p, "position", 0)), nil
	},
	"one_of": func(p map[string]any) (Func, error) {
		raw, ok := p["values"].([]any)
		if !ok || len(raw) == 0 {
			return nil, fmt.Errorf("one_of requires non-empty 'values'")
		}
		values := make([]string, 0, len(raw))
		for _, v := range raw {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("one_of values must be strings, got %T", v)
			}
			values = append(values, s)
		}
		return OneOf(values, paramString(p, "param", "parameter"), paramInt(p, "position", 0)), nil
	},
}

func paramString(p map[string]any, key, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}

func paramInt(p map[string]any, key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

func paramFloat(p map[string]any, key string) (float64, bool) {
	switch v := p[key].(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}
