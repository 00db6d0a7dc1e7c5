package nobareurls

import (
	"fmt"
	"regexp"

	"github.com/mdlint/mdlint/internal/lint"
	"github.com/mdlint/mdlint/internal/rule"
)

func init() {
	rule.Register(&Rule{})
}

// Rule checks that URLs are wrapped in angle brackets or links rather
// than pasted bare into prose.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "ML011" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "no-bare-urls" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "links" }

// Doc implements rule.Documented.
func (r *Rule) Doc() string {
	return `Disallow bare URLs in prose. The auto-fix wraps the URL in
angle brackets so it renders as a link.`
}

// urlRe matches an http(s) URL. Trailing sentence punctuation is not
// part of the match.
var urlRe = regexp.MustCompile(`https?://[^\s<>()]+[^\s<>().,;:!?]`)

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	codeLines := lint.CodeBlockLines(f)

	var diags []lint.Diagnostic
	for i, line := range f.Lines {
		lineNum := i + 1
		if codeLines[lineNum] {
			continue
		}
		if inlineCode(line) {
			continue
		}
		lineStart := f.OffsetOfLine(lineNum)
		for _, loc := range urlRe.FindAllIndex(line, -1) {
			start, end := loc[0], loc[1]
			if start > 0 {
				switch line[start-1] {
				case '<', '(', '"', '\'':
					continue // already delimited
				}
			}
			url := string(line[start:end])
			diags = append(diags, lint.Diagnostic{
				File:      f.Path,
				Line:      lineNum,
				Column:    start + 1,
				EndLine:   lineNum,
				EndColumn: end + 1,
				RuleID:    r.ID(),
				RuleName:  r.Name(),
				MessageID: "bareURL",
				Severity:  lint.SeverityWarning,
				Message:   fmt.Sprintf("bare URL %s", url),
				Data:      map[string]string{"url": url},
				Fix: &lint.TextEdit{
					Start: lineStart + start,
					End:   lineStart + end,
					Text:  "<" + url + ">",
				},
			})
		}
	}
	return diags
}

// inlineCode reports whether the line contains inline code spans. Lines
// with backticks are skipped entirely rather than risking a fix inside a
// span.
func inlineCode(line []byte) bool {
	for _, b := range line {
		if b == '`' {
			return true
		}
	}
	return false
}
