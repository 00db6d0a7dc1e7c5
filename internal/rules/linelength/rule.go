package linelength

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mdlint/mdlint/internal/lint"
	"github.com/mdlint/mdlint/internal/rule"
)

func init() {
	rule.Register(&Rule{
		Max:     80,
		Exclude: []string{"code-blocks", "tables", "urls"},
	})
}

// Rule checks that no line exceeds the configured maximum length.
// Lines matching categories in Exclude are skipped. Valid exclude
// values: "code-blocks", "tables", "urls".
type Rule struct {
	Max     int
	Exclude []string
}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "ML001" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "line-length" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "style" }

// Doc implements rule.Documented.
func (r *Rule) Doc() string {
	return `Limit line length.
Code blocks, table rows and URL-only lines can be excluded.`
}

// urlOnlyRe matches a line whose trimmed content is a single URL.
var urlOnlyRe = regexp.MustCompile(`^https?://\S+$`)

// tableLineRe matches a line whose trimmed content starts with a pipe.
var tableLineRe = regexp.MustCompile(`^\s*\|`)

// isExcluded returns true if the given category is in the Exclude list.
func (r *Rule) isExcluded(category string) bool {
	for _, e := range r.Exclude {
		if e == category {
			return true
		}
	}
	return false
}

// ApplySettings implements rule.Configurable.
func (r *Rule) ApplySettings(settings map[string]any) error {
	for k, v := range settings {
		switch k {
		case "max":
			n, ok := toInt(v)
			if !ok || n < 1 {
				return fmt.Errorf("line-length: max must be a positive integer, got %v", v)
			}
			r.Max = n
		case "exclude":
			list, ok := toStringSlice(v)
			if !ok {
				return fmt.Errorf("line-length: exclude must be a list of strings, got %T", v)
			}
			for _, item := range list {
				if !isValidExclude(item) {
					return fmt.Errorf("line-length: invalid exclude value %q (valid: code-blocks, tables, urls)", item)
				}
			}
			r.Exclude = list
		default:
			return fmt.Errorf("line-length: unknown setting %q", k)
		}
	}
	return nil
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return map[string]any{
		"max":     80,
		"exclude": []string{"code-blocks", "tables", "urls"},
	}
}

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	max := r.Max
	if max <= 0 {
		max = 80
	}

	codeLines := map[int]bool{}
	if r.isExcluded("code-blocks") {
		codeLines = lint.CodeBlockLines(f)
	}

	var diags []lint.Diagnostic
	for i, line := range f.Lines {
		lineNum := i + 1

		if len(line) <= max {
			continue
		}
		if codeLines[lineNum] {
			continue
		}
		if r.isExcluded("tables") && tableLineRe.Match(line) {
			continue
		}
		if r.isExcluded("urls") && urlOnlyRe.MatchString(strings.TrimSpace(string(line))) {
			continue
		}

		diags = append(diags, lint.Diagnostic{
			File:      f.Path,
			Line:      lineNum,
			Column:    max + 1,
			EndLine:   lineNum,
			EndColumn: len(line) + 1,
			RuleID:    r.ID(),
			RuleName:  r.Name(),
			MessageID: "lineTooLong",
			Severity:  lint.SeverityWarning,
			Message:   fmt.Sprintf("line too long (%d > %d)", len(line), max),
			Data: map[string]string{
				"length": strconv.Itoa(len(line)),
				"max":    strconv.Itoa(max),
			},
		})
	}

	return diags
}

// toInt converts a value to int. Supports int and float64 (YAML decodes
// numbers as int or float64 depending on context).
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

// toStringSlice converts a value to []string. YAML decodes sequences as
// []any with string elements.
func toStringSlice(v any) ([]string, bool) {
	switch s := v.(type) {
	case []string:
		return s, true
	case []any:
		result := make([]string, 0, len(s))
		for _, item := range s {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			result = append(result, str)
		}
		return result, true
	}
	return nil, false
}

func isValidExclude(s string) bool {
	return s == "code-blocks" || s == "tables" || s == "urls"
}

var _ rule.Configurable = (*Rule)(nil)
