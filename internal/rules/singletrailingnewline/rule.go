package singletrailingnewline

import (
	"github.com/mdlint/mdlint/internal/lint"
	"github.com/mdlint/mdlint/internal/rule"
)

func init() {
	rule.Register(&Rule{})
}

// Rule checks that files end with exactly one newline.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "ML009" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "single-trailing-newline" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "whitespace" }

// Doc implements rule.Documented.
func (r *Rule) Doc() string {
	return `Require files to end with exactly one newline character.`
}

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	src := f.Source
	if len(src) == 0 {
		return nil
	}

	if src[len(src)-1] != '\n' {
		line, col := f.PositionOfOffset(len(src))
		return []lint.Diagnostic{{
			File:      f.Path,
			Line:      line,
			Column:    col,
			RuleID:    r.ID(),
			RuleName:  r.Name(),
			MessageID: "missingNewline",
			Severity:  lint.SeverityWarning,
			Message:   "no newline at end of file",
			Fix: &lint.TextEdit{
				Start: len(src),
				End:   len(src),
				Text:  "\n",
			},
		}}
	}

	keep := len(src)
	for keep > 1 && src[keep-1] == '\n' && src[keep-2] == '\n' {
		keep--
	}
	if keep == len(src) {
		return nil
	}

	line, col := f.PositionOfOffset(keep)
	return []lint.Diagnostic{{
		File:      f.Path,
		Line:      line,
		Column:    col,
		RuleID:    r.ID(),
		RuleName:  r.Name(),
		MessageID: "extraNewlines",
		Severity:  lint.SeverityWarning,
		Message:   "multiple trailing newlines at end of file",
		Fix: &lint.TextEdit{
			Start: keep,
			End:   len(src),
		},
	}}
}
