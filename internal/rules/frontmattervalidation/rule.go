package frontmattervalidation

import (
	"fmt"
	"sort"

	"github.com/mdlint/mdlint/internal/lint"
	"github.com/mdlint/mdlint/internal/rule"
)

func init() {
	rule.Register(&Rule{})
}

// Rule validates a document's YAML front matter: required fields must be
// present, and typed fields must hold a value of the declared type.
// Valid type names: "string", "int", "bool", "list", "map".
type Rule struct {
	Required []string
	Types    map[string]string
}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "ML027" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "front-matter-validation" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "meta" }

// Doc implements rule.Documented.
func (r *Rule) Doc() string {
	return `Validate YAML front matter fields: required fields must be
present and typed fields must hold the declared type.`
}

// ApplySettings implements rule.Configurable.
func (r *Rule) ApplySettings(settings map[string]any) error {
	for k, v := range settings {
		switch k {
		case "required":
			list, ok := toStringSlice(v)
			if !ok {
				return fmt.Errorf("front-matter-validation: required must be a list of strings, got %T", v)
			}
			r.Required = list
		case "types":
			m, ok := toStringMap(v)
			if !ok {
				return fmt.Errorf("front-matter-validation: types must map field names to type names, got %T", v)
			}
			for field, typ := range m {
				if !validType(typ) {
					return fmt.Errorf("front-matter-validation: field %q has invalid type %q (valid: string, int, bool, list, map)", field, typ)
				}
			}
			r.Types = m
		default:
			return fmt.Errorf("front-matter-validation: unknown setting %q", k)
		}
	}
	return nil
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return map[string]any{
		"required": []string{},
		"types":    map[string]string{},
	}
}

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	if len(r.Required) == 0 && len(r.Types) == 0 {
		return nil
	}

	fm, err := lint.ParseFrontMatter(f.FrontMatter)
	if err != nil {
		return []lint.Diagnostic{{
			File:      f.Path,
			Line:      1,
			Column:    1,
			RuleID:    r.ID(),
			RuleName:  r.Name(),
			MessageID: "invalidYAML",
			Severity:  lint.SeverityError,
			Message:   fmt.Sprintf("front matter is not valid YAML: %v", err),
		}}
	}

	var diags []lint.Diagnostic
	for _, field := range r.Required {
		if _, ok := fm[field]; ok {
			continue
		}
		diags = append(diags, lint.Diagnostic{
			File:      f.Path,
			Line:      1,
			Column:    1,
			RuleID:    r.ID(),
			RuleName:  r.Name(),
			MessageID: "missingField",
			Severity:  lint.SeverityError,
			Message:   fmt.Sprintf("front matter is missing required field %q", field),
			Data:      map[string]string{"field": field},
		})
	}

	fields := make([]string, 0, len(r.Types))
	for field := range r.Types {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		v, ok := fm[field]
		if !ok {
			continue // missing is the required list's concern
		}
		want := r.Types[field]
		got := typeName(v)
		if got == want {
			continue
		}
		diags = append(diags, lint.Diagnostic{
			File:      f.Path,
			Line:      1,
			Column:    1,
			RuleID:    r.ID(),
			RuleName:  r.Name(),
			MessageID: "wrongType",
			Severity:  lint.SeverityWarning,
			Message:   fmt.Sprintf("front matter field %q should be %s, got %s", field, want, got),
			Data: map[string]string{
				"field": field,
				"want":  want,
				"got":   got,
			},
		})
	}

	return diags
}

func typeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case int, int64, uint64, float64:
		return "int"
	case bool:
		return "bool"
	case []any:
		return "list"
	case map[string]any:
		return "map"
	case nil:
		return "null"
	}
	return fmt.Sprintf("%T", v)
}

func validType(s string) bool {
	switch s {
	case "string", "int", "bool", "list", "map":
		return true
	}
	return false
}

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

func toStringMap(v any) (map[string]string, bool) {
	switch m := v.(type) {
	case map[string]string:
		return m, true
	case map[string]any:
		result := make(map[string]string, len(m))
		for k, item := range m {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			result[k] = s
		}
		return result, true
	}
	return nil, false
}

var _ rule.Configurable = (*Rule)(nil)
