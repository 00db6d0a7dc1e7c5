package noduplicateheadings

import (
	"fmt"
	"strings"

	"github.com/mdlint/mdlint/internal/lint"
	"github.com/mdlint/mdlint/internal/rule"
	"github.com/yuin/goldmark/ast"
)

func init() {
	rule.Register(&Rule{})
}

// Rule checks that no two headings share the same text.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "ML005" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "no-duplicate-headings" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "headings" }

// Doc implements rule.Documented.
func (r *Rule) Doc() string {
	return `Disallow multiple headings with the same text. Duplicate
headings produce ambiguous anchors and confuse navigation.`
}

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	seen := map[string]int{} // text -> first line

	_ = ast.Walk(f.AST, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || h.Lines().Len() == 0 {
			return ast.WalkContinue, nil
		}

		text := headingText(h, f.Source)
		line := f.LineOfOffset(h.Lines().At(0).Start)

		if first, dup := seen[text]; dup {
			diags = append(diags, lint.Diagnostic{
				File:      f.Path,
				Line:      line,
				Column:    1,
				RuleID:    r.ID(),
				RuleName:  r.Name(),
				MessageID: "duplicateHeading",
				Severity:  lint.SeverityError,
				Message:   fmt.Sprintf("duplicate heading %q (first used on line %d)", text, first),
				Data:      map[string]string{"text": text},
				Node:      "Heading",
			})
		} else {
			seen[text] = line
		}
		return ast.WalkContinue, nil
	})

	return diags
}

// headingText extracts the plain text content of a heading node.
func headingText(h *ast.Heading, source []byte) string {
	var buf strings.Builder
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		writeNodeText(c, source, &buf)
	}
	return buf.String()
}

// writeNodeText recursively writes the text content of an AST node.
func writeNodeText(n ast.Node, source []byte, buf *strings.Builder) {
	if t, ok := n.(*ast.Text); ok {
		buf.Write(t.Segment.Value(source))
		return
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		writeNodeText(c, source, buf)
	}
}
