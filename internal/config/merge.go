package config

import (
	"github.com/gobwas/glob"
)

// Merge merges layers onto defaults, left to right, with later layers
// taking precedence. A nil layer is skipped. Rules not mentioned by any
// layer keep their default value; Ignore and Overrides come from the
// last layer that sets them; FrontMatter from the last layer with an
// explicit value.
func Merge(defaults *Config, layers ...*Config) *Config {
	out := &Config{
		Rules:       make(map[string]RuleCfg, len(defaults.Rules)),
		FrontMatter: defaults.FrontMatter,
		Ignore:      defaults.Ignore,
		Overrides:   defaults.Overrides,
	}
	for k, v := range defaults.Rules {
		out.Rules[k] = v
	}

	for _, layer := range layers {
		if layer == nil {
			continue
		}
		for k, v := range layer.Rules {
			out.Rules[k] = v
		}
		if layer.Ignore != nil {
			out.Ignore = layer.Ignore
		}
		if layer.Overrides != nil {
			out.Overrides = layer.Overrides
		}
		if layer.FrontMatter != nil {
			out.FrontMatter = layer.FrontMatter
		}
	}
	return out
}

// Effective returns the effective rule configuration for a given file
// path. It starts with the top-level rules and then applies each
// override whose file patterns match filePath, in order. Later overrides
// take precedence.
func Effective(cfg *Config, filePath string) map[string]RuleCfg {
	result := make(map[string]RuleCfg, len(cfg.Rules))
	for k, v := range cfg.Rules {
		result[k] = v
	}

	for _, o := range cfg.Overrides {
		if matchesAny(o.Files, filePath) {
			for k, v := range o.Rules {
				result[k] = v
			}
		}
	}

	return result
}

// matchesAny returns true if filePath matches any of the given glob
// patterns. Invalid patterns are skipped.
func matchesAny(patterns []string, filePath string) bool {
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			continue
		}
		if g.Match(filePath) {
			return true
		}
	}
	return false
}
