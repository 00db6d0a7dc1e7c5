package firstlineheading

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/mdlint/mdlint/internal/lint"
	"github.com/mdlint/mdlint/internal/rule"
	"github.com/yuin/goldmark/ast"
)

func init() {
	rule.Register(&Rule{Level: 1})
}

// Rule checks that the first content line of a document is a heading of
// the configured level.
type Rule struct {
	Level int
}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "ML003" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "first-line-heading" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "headings" }

// Doc implements rule.Documented.
func (r *Rule) Doc() string {
	return `Require the first content line of a document to be a top-level
heading. The expected level is configurable.`
}

// ApplySettings implements rule.Configurable.
func (r *Rule) ApplySettings(settings map[string]any) error {
	for k, v := range settings {
		switch k {
		case "level":
			n, ok := toInt(v)
			if !ok || n < 1 || n > 6 {
				return fmt.Errorf("first-line-heading: level must be an integer between 1 and 6, got %v", v)
			}
			r.Level = n
		default:
			return fmt.Errorf("first-line-heading: unknown setting %q", k)
		}
	}
	return nil
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return map[string]any{"level": 1}
}

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	level := r.Level
	if level < 1 {
		level = 1
	}

	firstLine := 0
	for i, line := range f.Lines {
		if len(bytes.TrimSpace(line)) > 0 {
			firstLine = i + 1
			break
		}
	}
	if firstLine == 0 {
		return nil // empty document
	}

	first := firstChild(f)
	h, ok := first.(*ast.Heading)
	if !ok {
		return []lint.Diagnostic{{
			File:      f.Path,
			Line:      firstLine,
			Column:    1,
			RuleID:    r.ID(),
			RuleName:  r.Name(),
			MessageID: "missingHeading",
			Severity:  lint.SeverityError,
			Message:   fmt.Sprintf("first line should be a level %d heading", level),
			Data:      map[string]string{"level": strconv.Itoa(level)},
		}}
	}

	if h.Level != level {
		return []lint.Diagnostic{{
			File:      f.Path,
			Line:      firstLine,
			Column:    1,
			RuleID:    r.ID(),
			RuleName:  r.Name(),
			MessageID: "wrongLevel",
			Severity:  lint.SeverityError,
			Message:   fmt.Sprintf("first heading is level %d, expected level %d", h.Level, level),
			Data: map[string]string{
				"level": strconv.Itoa(h.Level),
				"want":  strconv.Itoa(level),
			},
			Node: "Heading",
		}}
	}

	return nil
}

func firstChild(f *lint.File) ast.Node {
	if doc := f.AST; doc != nil {
		return doc.FirstChild()
	}
	return nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

var _ rule.Configurable = (*Rule)(nil)
