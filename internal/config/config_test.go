package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/mdlint/mdlint/internal/lint"
	"github.com/mdlint/mdlint/internal/rule"
)

func TestRuleCfgUnmarshalYAMLUnion(t *testing.T) {
	src := `
rules:
  line-length:
    max: 100
  no-hard-tabs: true
  no-bare-urls: false
`
	var cfg Config
	if err := yaml.Unmarshal([]byte(src), &cfg); err != nil {
		t.Fatal(err)
	}

	ll := cfg.Rules["line-length"]
	if !ll.Enabled {
		t.Error("settings form should imply enabled")
	}
	if ll.Settings["max"] != 100 {
		t.Errorf("max = %v", ll.Settings["max"])
	}

	if !cfg.Rules["no-hard-tabs"].Enabled {
		t.Error("true should enable")
	}
	if cfg.Rules["no-bare-urls"].Enabled {
		t.Error("false should disable")
	}
}

func TestRuleCfgUnmarshalYAMLRejectsSequence(t *testing.T) {
	var cfg Config
	err := yaml.Unmarshal([]byte("rules:\n  line-length:\n    - 1\n    - 2\n"), &cfg)
	if err == nil {
		t.Fatal("expected error for sequence rule config")
	}
}

func TestRuleCfgMarshalRoundTrip(t *testing.T) {
	cfg := &Config{Rules: map[string]RuleCfg{
		"no-hard-tabs": {Enabled: true},
		"line-length":  {Enabled: true, Settings: map[string]any{"max": 100}},
	}}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}

	var back Config
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Rules["no-hard-tabs"].Enabled {
		t.Error("bool form lost on round trip")
	}
	if back.Rules["line-length"].Settings["max"] != 100 {
		t.Error("settings lost on round trip")
	}
}

func TestRuleCfgMarshalDisabledWithSettings(t *testing.T) {
	cfg := &Config{Rules: map[string]RuleCfg{
		"max-line-length": {Enabled: false, Settings: map[string]any{"max": 80}},
	}}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}

	var back Config
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Rules["max-line-length"].Enabled {
		t.Error("disabled rule came back enabled after round trip")
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".mdlint.toml")
	src := `
front-matter = true
ignore = ["CHANGELOG.md"]

[rules]
no-hard-tabs = true
no-bare-urls = false

[rules.line-length]
max = 120
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.FrontMatter == nil || !*cfg.FrontMatter {
		t.Error("front-matter not loaded")
	}
	if len(cfg.Ignore) != 1 || cfg.Ignore[0] != "CHANGELOG.md" {
		t.Errorf("ignore = %v", cfg.Ignore)
	}
	if cfg.Rules["no-bare-urls"].Enabled {
		t.Error("no-bare-urls should be disabled")
	}
	ll := cfg.Rules["line-length"]
	if !ll.Enabled || ll.Settings["max"] != int64(120) {
		t.Errorf("line-length = %+v", ll)
	}
}

func TestDiscoverWalksUpAndStopsAtGitRoot(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "docs", "guides")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(root, ".mdlint.yml")
	if err := os.WriteFile(cfgPath, []byte("rules: {}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	found, err := Discover(sub)
	if err != nil {
		t.Fatal(err)
	}
	if found != cfgPath {
		t.Errorf("Discover = %q, want %q", found, cfgPath)
	}

	// A .git boundary below the config file hides it.
	repo := filepath.Join(root, "repo")
	inner := filepath.Join(repo, "docs")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(inner, 0755); err != nil {
		t.Fatal(err)
	}
	found, err = Discover(inner)
	if err != nil {
		t.Fatal(err)
	}
	if found != "" {
		t.Errorf("Discover crossed the repository root: %q", found)
	}
}

// plainRule is a minimal registrable rule for default-config tests.
type plainRule struct{}

func (r *plainRule) ID() string                           { return "T001" }
func (r *plainRule) Name() string                         { return "plain" }
func (r *plainRule) Category() string                     { return "test" }
func (r *plainRule) Check(_ *lint.File) []lint.Diagnostic { return nil }

// tunableRule carries default settings.
type tunableRule struct{ plainRule }

func (r *tunableRule) ID() string                           { return "T002" }
func (r *tunableRule) Name() string                         { return "tunable" }
func (r *tunableRule) ApplySettings(_ map[string]any) error { return nil }
func (r *tunableRule) DefaultSettings() map[string]any      { return map[string]any{"max": 80} }

// retiredRule is configurable but disabled by default.
type retiredRule struct{ tunableRule }

func (r *retiredRule) ID() string             { return "T003" }
func (r *retiredRule) Name() string           { return "retired" }
func (r *retiredRule) EnabledByDefault() bool { return false }

func TestDumpDefaults(t *testing.T) {
	rule.Reset()
	t.Cleanup(rule.Reset)
	rule.Register(&plainRule{})
	rule.Register(&tunableRule{})
	rule.Register(&retiredRule{})

	cfg := DumpDefaults()

	if p := cfg.Rules["plain"]; !p.Enabled || p.Settings != nil {
		t.Errorf("plain = %+v", p)
	}
	if tun := cfg.Rules["tunable"]; !tun.Enabled || tun.Settings["max"] != 80 {
		t.Errorf("tunable = %+v", tun)
	}
	if cfg.Rules["retired"].Enabled {
		t.Error("disabled-by-default rule dumped as enabled")
	}

	// The generated config must reload with the same enablement: a
	// disabled rule's default settings must not flip it on.
	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	var back Config
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Rules["retired"].Enabled {
		t.Error("generated config re-enabled a disabled rule on reload")
	}
	if !back.Rules["tunable"].Enabled || back.Rules["tunable"].Settings["max"] != 80 {
		t.Errorf("tunable lost settings on reload: %+v", back.Rules["tunable"])
	}
}

func TestFingerprintChangesWithConfig(t *testing.T) {
	a := &Config{Rules: map[string]RuleCfg{"line-length": {Enabled: true}}}
	b := &Config{Rules: map[string]RuleCfg{"line-length": {Enabled: false}}}

	if Fingerprint(a) == Fingerprint(b) {
		t.Error("different configs should fingerprint differently")
	}
	if Fingerprint(a) != Fingerprint(a) {
		t.Error("fingerprint should be stable")
	}
}
