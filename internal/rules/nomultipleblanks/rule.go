package nomultipleblanks

import (
	"fmt"
	"strconv"

	"github.com/mdlint/mdlint/internal/lint"
	"github.com/mdlint/mdlint/internal/rule"
)

func init() {
	rule.Register(&Rule{Max: 1})
}

// Rule checks that consecutive blank lines do not exceed the configured
// maximum.
type Rule struct {
	Max int
}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "ML012" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "no-multiple-blanks" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "whitespace" }

// Doc implements rule.Documented.
func (r *Rule) Doc() string {
	return `Disallow runs of consecutive blank lines longer than the maximum.
The auto-fix deletes the extra lines.`
}

// ApplySettings implements rule.Configurable.
func (r *Rule) ApplySettings(settings map[string]any) error {
	for k, v := range settings {
		switch k {
		case "max":
			n, ok := toInt(v)
			if !ok || n < 1 {
				return fmt.Errorf("no-multiple-blanks: max must be a positive integer, got %v", v)
			}
			r.Max = n
		default:
			return fmt.Errorf("no-multiple-blanks: unknown setting %q", k)
		}
	}
	return nil
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return map[string]any{"max": 1}
}

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	max := r.Max
	if max < 1 {
		max = 1
	}

	codeLines := lint.CodeBlockLines(f)

	// The element after the final newline is not a real line.
	lines := f.Lines
	if len(f.Source) > 0 && f.Source[len(f.Source)-1] == '\n' {
		lines = lines[:len(lines)-1]
	}

	var diags []lint.Diagnostic
	run := 0
	for i := 0; i <= len(lines); i++ {
		blank := i < len(lines) && len(lines[i]) == 0 && !codeLines[i+1]
		if blank {
			run++
			continue
		}
		if run > max {
			firstExtra := i - run + max + 1 // 1-based line of the first extra blank
			diags = append(diags, lint.Diagnostic{
				File:      f.Path,
				Line:      firstExtra,
				Column:    1,
				RuleID:    r.ID(),
				RuleName:  r.Name(),
				MessageID: "multipleBlanks",
				Severity:  lint.SeverityWarning,
				Message:   fmt.Sprintf("%d consecutive blank lines (max %d)", run, max),
				Data: map[string]string{
					"count": strconv.Itoa(run),
					"max":   strconv.Itoa(max),
				},
				Fix: &lint.TextEdit{
					Start: f.OffsetOfLine(firstExtra),
					End:   f.OffsetOfLine(i + 1),
				},
			})
		}
		run = 0
	}
	return diags
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
