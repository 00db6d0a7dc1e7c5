package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	Rules       map[string]RuleCfg `yaml:"rules" toml:"rules"`
	Ignore      []string           `yaml:"ignore" toml:"ignore"`
	Overrides   []Override         `yaml:"overrides" toml:"overrides"`
	FrontMatter *bool              `yaml:"front-matter" toml:"front-matter"`
}

// Override applies rule settings to files matching glob patterns.
type Override struct {
	Files []string           `yaml:"files" toml:"files"`
	Rules map[string]RuleCfg `yaml:"rules" toml:"rules"`
}

// RuleCfg is a config union: a bool (enable/disable) or a settings table
// (which implies enabled).
type RuleCfg struct {
	Enabled  bool
	Settings map[string]any
}

// UnmarshalYAML implements custom YAML unmarshalling for RuleCfg.
// It handles three forms:
//   - false -> Enabled=false, Settings=nil
//   - true  -> Enabled=true,  Settings=nil
//   - {key: val, ...} -> Enabled=true, Settings={key: val, ...}
func (r *RuleCfg) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var b bool
		if err := value.Decode(&b); err == nil {
			r.Enabled = b
			r.Settings = nil
			return nil
		}
	}

	if value.Kind == yaml.MappingNode {
		var m map[string]any
		if err := value.Decode(&m); err != nil {
			return fmt.Errorf("invalid rule config: %w", err)
		}
		r.Enabled = true
		r.Settings = m
		return nil
	}

	return fmt.Errorf("rule config must be a bool or a mapping, got %v", value.Kind)
}

// MarshalYAML emits the compact bool form when there are no settings.
// A disabled rule always marshals as false: the mapping form implies
// enabled, so settings on a disabled rule cannot round-trip.
func (r RuleCfg) MarshalYAML() (any, error) {
	if !r.Enabled || len(r.Settings) == 0 {
		return r.Enabled, nil
	}
	return r.Settings, nil
}

// UnmarshalTOML implements the same union for TOML configs.
func (r *RuleCfg) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case bool:
		r.Enabled = v
		r.Settings = nil
		return nil
	case map[string]any:
		r.Enabled = true
		r.Settings = v
		return nil
	}
	return fmt.Errorf("rule config must be a bool or a table, got %T", data)
}
