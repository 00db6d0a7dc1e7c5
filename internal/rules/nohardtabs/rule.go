package nohardtabs

import (
	"github.com/mdlint/mdlint/internal/lint"
	"github.com/mdlint/mdlint/internal/rule"
)

func init() {
	rule.Register(&Rule{})
}

// Rule checks that no line contains hard tab characters.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "ML007" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "no-hard-tabs" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "whitespace" }

// Doc implements rule.Documented.
func (r *Rule) Doc() string {
	return `Disallow hard tab characters outside code blocks.
Each tab is replaced with four spaces by the auto-fix.`
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
		lineStart := f.OffsetOfLine(lineNum)
		for col, b := range line {
			if b != '\t' {
				continue
			}
			offset := lineStart + col
			diags = append(diags, lint.Diagnostic{
				File:      f.Path,
				Line:      lineNum,
				Column:    col + 1,
				EndLine:   lineNum,
				EndColumn: col + 2,
				RuleID:    r.ID(),
				RuleName:  r.Name(),
				MessageID: "hardTab",
				Severity:  lint.SeverityWarning,
				Message:   "hard tab character",
				Fix: &lint.TextEdit{
					Start: offset,
					End:   offset + 1,
					Text:  "    ",
				},
			})
		}
	}
	return diags
}
