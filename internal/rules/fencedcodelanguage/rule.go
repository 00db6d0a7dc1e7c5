package fencedcodelanguage

import (
	"github.com/mdlint/mdlint/internal/lint"
	"github.com/mdlint/mdlint/internal/rule"
	"github.com/yuin/goldmark/ast"
)

func init() {
	rule.Register(&Rule{})
}

// Rule checks that fenced code blocks declare a language.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "ML004" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "fenced-code-language" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "code" }

// Doc implements rule.Documented.
func (r *Rule) Doc() string {
	return `Require a language tag on fenced code blocks.
A suggestion offers tagging the block as plain text.`
}

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	var diags []lint.Diagnostic

	_ = ast.Walk(f.AST, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		if fcb.Info != nil && fcb.Info.Segment.Stop > fcb.Info.Segment.Start {
			return ast.WalkContinue, nil
		}

		line := fenceOpenLine(f, fcb)
		if line == 0 {
			return ast.WalkContinue, nil
		}

		d := lint.Diagnostic{
			File:      f.Path,
			Line:      line,
			Column:    1,
			RuleID:    r.ID(),
			RuleName:  r.Name(),
			MessageID: "missingLanguage",
			Severity:  lint.SeverityWarning,
			Message:   "fenced code block has no language tag",
			Node:      "FencedCodeBlock",
		}

		if at, ok := fenceInsertOffset(f, line); ok {
			d.Suggestions = []lint.Suggestion{{
				MessageID: "addTextLanguage",
				Message:   `tag the block as plain "text"`,
				Data:      map[string]string{"language": "text"},
				Fix:       lint.TextEdit{Start: at, End: at, Text: "text"},
			}}
		}

		diags = append(diags, d)
		return ast.WalkContinue, nil
	})

	return diags
}

// fenceOpenLine returns the 1-based line of a block's opening fence.
func fenceOpenLine(f *lint.File, b *ast.FencedCodeBlock) int {
	if b.Info != nil {
		return f.LineOfOffset(b.Info.Segment.Start)
	}
	if b.Lines().Len() > 0 {
		first := f.LineOfOffset(b.Lines().At(0).Start)
		if first > 1 {
			return first - 1
		}
		return 1
	}
	// An empty, untagged block: find its fence by scanning.
	for i, line := range f.Lines {
		if isFence(line) {
			return i + 1
		}
	}
	return 0
}

// fenceInsertOffset returns the byte offset directly after the fence
// markers on the given line.
func fenceInsertOffset(f *lint.File, line int) (int, bool) {
	if line < 1 || line > len(f.Lines) {
		return 0, false
	}
	content := f.Lines[line-1]
	i := 0
	for i < len(content) && (content[i] == ' ' || content[i] == '\t') {
		i++
	}
	if i >= len(content) || (content[i] != '`' && content[i] != '~') {
		return 0, false
	}
	marker := content[i]
	for i < len(content) && content[i] == marker {
		i++
	}
	return f.OffsetOfLine(line) + i, true
}

func isFence(line []byte) bool {
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	run := 0
	for n < len(line) && (line[n] == '`' || line[n] == '~') {
		n++
		run++
	}
	return run >= 3
}
