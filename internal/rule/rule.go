package rule

import "github.com/mdlint/mdlint/internal/lint"

// Rule is a single lint rule that checks a Markdown file. Fixable rules
// attach a TextEdit to each diagnostic they can correct; there is no
// whole-file fix entry point.
type Rule interface {
	ID() string
	Name() string
	Category() string
	Check(f *lint.File) []lint.Diagnostic
}

// Configurable is implemented by rules that have user-tunable settings.
type Configurable interface {
	ApplySettings(settings map[string]any) error
	DefaultSettings() map[string]any
}

// Defaultable is implemented by rules that override the default enabled
// state in generated/runtime configs.
type Defaultable interface {
	EnabledByDefault() bool
}

// Deprecated is implemented by rules that are kept for compatibility.
// The engine records their use in Result.UsedDeprecatedRules.
type Deprecated interface {
	ReplacedBy() []string
}

// Documented is implemented by rules that carry long-form documentation
// consumed by `mdlint help rule`.
type Documented interface {
	Doc() string
}

// Enabled returns whether r is enabled when a config does not mention it.
func Enabled(r Rule) bool {
	if d, ok := r.(Defaultable); ok {
		return d.EnabledByDefault()
	}
	return true
}
