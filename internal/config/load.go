package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/mdlint/mdlint/internal/rule"
)

// Config file names probed by Discover, in order.
var configFileNames = []string{".mdlint.yml", ".mdlint.yaml", ".mdlint.toml"}

// Load reads and parses a config file. The syntax is chosen by
// extension: .toml is TOML, everything else YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %q: %w", path, err)
		}
		return &cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %q: %w", path, err)
	}
	return &cfg, nil
}

// Discover walks up the directory tree from startDir looking for a
// config file. It stops searching when it encounters a .git directory
// (the repository root) or reaches the filesystem root. Returns the path
// to the config file, or "" if none was found.
func Discover(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}

	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		// A .git directory marks the repository root; do not search
		// above it.
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Defaults returns a Config with every registered rule present, enabled
// according to its default state.
func Defaults() *Config {
	all := rule.All()
	rules := make(map[string]RuleCfg, len(all))
	for _, r := range all {
		rules[r.Name()] = RuleCfg{Enabled: rule.Enabled(r)}
	}
	return &Config{Rules: rules}
}

// DumpDefaults extends Defaults with each configurable rule's default
// settings. Consumed by `mdlint init`.
func DumpDefaults() *Config {
	cfg := Defaults()
	for _, r := range rule.All() {
		if c, ok := r.(rule.Configurable); ok {
			rc := cfg.Rules[r.Name()]
			rc.Settings = c.DefaultSettings()
			cfg.Rules[r.Name()] = rc
		}
	}
	return cfg
}

// Fingerprint returns a stable hash of cfg, used to key cached lint
// results so a config change invalidates the cache.
func Fingerprint(cfg *Config) string {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
