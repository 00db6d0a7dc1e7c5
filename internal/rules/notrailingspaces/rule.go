package notrailingspaces

import (
	"bytes"

	"github.com/mdlint/mdlint/internal/lint"
	"github.com/mdlint/mdlint/internal/rule"
)

func init() {
	rule.Register(&Rule{})
}

// Rule checks that lines do not end with spaces or tabs.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "ML010" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "no-trailing-spaces" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "whitespace" }

// Doc implements rule.Documented.
func (r *Rule) Doc() string {
	return `Disallow trailing whitespace at the end of lines.
The auto-fix removes the trailing run.`
}

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	codeLines := lint.CodeBlockLines(f)

	var diags []lint.Diagnostic
	for i, line := range f.Lines {
		lineNum := i + 1
		if codeLines[lineNum] {
			continue
		}
		trimmed := bytes.TrimRight(line, " \t")
		if len(trimmed) == len(line) {
			continue
		}
		lineStart := f.OffsetOfLine(lineNum)
		diags = append(diags, lint.Diagnostic{
			File:      f.Path,
			Line:      lineNum,
			Column:    len(trimmed) + 1,
			EndLine:   lineNum,
			EndColumn: len(line) + 1,
			RuleID:    r.ID(),
			RuleName:  r.Name(),
			MessageID: "trailingSpace",
			Severity:  lint.SeverityWarning,
			Message:   "trailing whitespace",
			Fix: &lint.TextEdit{
				Start: lineStart + len(trimmed),
				End:   lineStart + len(line),
			},
		})
	}
	return diags
}
