package headingincrement

import (
	"fmt"
	"strconv"

	"github.com/mdlint/mdlint/internal/lint"
	"github.com/mdlint/mdlint/internal/rule"
	"github.com/yuin/goldmark/ast"
)

func init() {
	rule.Register(&Rule{})
}

// Rule checks that heading levels increment by at most one.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "ML002" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "heading-increment" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "headings" }

// Doc implements rule.Documented.
func (r *Rule) Doc() string {
	return `Heading levels should only increment by one level at a time.
A jump from h1 straight to h3 skips a level.`
}

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	prev := 0

	_ = ast.Walk(f.AST, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		if prev > 0 && h.Level > prev+1 {
			line := headingLine(f, h)
			diags = append(diags, lint.Diagnostic{
				File:      f.Path,
				Line:      line,
				Column:    1,
				RuleID:    r.ID(),
				RuleName:  r.Name(),
				MessageID: "skippedLevel",
				Severity:  lint.SeverityError,
				Message:   fmt.Sprintf("heading level jumps from h%d to h%d", prev, h.Level),
				Data: map[string]string{
					"from": strconv.Itoa(prev),
					"to":   strconv.Itoa(h.Level),
				},
				Node: "Heading",
			})
		}
		prev = h.Level
		return ast.WalkContinue, nil
	})

	return diags
}

// headingLine returns the 1-based line of a heading node.
func headingLine(f *lint.File, h *ast.Heading) int {
	if h.Lines().Len() == 0 {
		return 1
	}
	return f.LineOfOffset(h.Lines().At(0).Start)
}
