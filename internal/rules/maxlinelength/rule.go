// Package maxlinelength is the deprecated predecessor of line-length.
// It is registered but disabled by default; enabling it still works and
// is reported through Result.UsedDeprecatedRules.
package maxlinelength

import (
	"github.com/mdlint/mdlint/internal/lint"
	"github.com/mdlint/mdlint/internal/rule"
	"github.com/mdlint/mdlint/internal/rules/linelength"
)

func init() {
	rule.Register(&Rule{inner: linelength.Rule{
		Max:     80,
		Exclude: []string{"code-blocks", "tables", "urls"},
	}})
}

// Rule delegates to line-length under its old identity.
type Rule struct {
	inner linelength.Rule
}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "ML006" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "max-line-length" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "style" }

// Doc implements rule.Documented.
func (r *Rule) Doc() string {
	return `Limit line length. Deprecated alias of line-length.`
}

// EnabledByDefault implements rule.Defaultable.
func (r *Rule) EnabledByDefault() bool { return false }

// ReplacedBy implements rule.Deprecated.
func (r *Rule) ReplacedBy() []string { return []string{"line-length"} }

// ApplySettings implements rule.Configurable.
func (r *Rule) ApplySettings(settings map[string]any) error {
	return r.inner.ApplySettings(settings)
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return r.inner.DefaultSettings()
}

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	diags := r.inner.Check(f)
	for i := range diags {
		diags[i].RuleID = r.ID()
		diags[i].RuleName = r.Name()
	}
	return diags
}

var (
	_ rule.Configurable = (*Rule)(nil)
	_ rule.Defaultable  = (*Rule)(nil)
	_ rule.Deprecated   = (*Rule)(nil)
)
