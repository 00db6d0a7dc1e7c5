package mdlint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mdlint/mdlint/internal/rule"
)

// RuleInfo is one row of the rule catalog.
type RuleInfo struct {
	ID          string
	Name        string
	Category    string
	Description string
}

// ListRules returns the registered rules sorted by ID.
func ListRules() ([]RuleInfo, error) {
	all := rule.All()
	infos := make([]RuleInfo, 0, len(all))
	for _, r := range all {
		infos = append(infos, RuleInfo{
			ID:          r.ID(),
			Name:        r.Name(),
			Category:    r.Category(),
			Description: ruleDescription(r),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos, nil
}

// LookupRule returns the documentation for a rule, found by ID or name.
func LookupRule(query string) (string, error) {
	r := rule.ByID(query)
	if r == nil {
		r = rule.ByName(query)
	}
	if r == nil {
		return "", fmt.Errorf("unknown rule %q", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s (%s)\n", r.ID(), r.Name(), r.Category())
	if d, ok := r.(rule.Documented); ok {
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(d.Doc()))
		b.WriteString("\n")
	}
	if dep, ok := r.(rule.Deprecated); ok {
		if replaced := dep.ReplacedBy(); len(replaced) > 0 {
			fmt.Fprintf(&b, "\nDeprecated; use %s instead.\n", strings.Join(replaced, ", "))
		} else {
			b.WriteString("\nDeprecated.\n")
		}
	}
	if c, ok := r.(rule.Configurable); ok {
		b.WriteString("\nSettings:\n")
		settings := c.DefaultSettings()
		keys := make([]string, 0, len(settings))
		for k := range settings {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s: %v\n", k, settings[k])
		}
	}
	return b.String(), nil
}

// ruleDescription is the first line of a rule's documentation.
func ruleDescription(r rule.Rule) string {
	d, ok := r.(rule.Documented)
	if !ok {
		return ""
	}
	doc := strings.TrimSpace(d.Doc())
	if i := strings.IndexByte(doc, '\n'); i >= 0 {
		doc = doc[:i]
	}
	return doc
}

// ruleMeta converts a rule to the metadata shape formatters receive.
func ruleMeta(r rule.Rule) RuleMeta {
	return RuleMeta{
		ID:          r.ID(),
		Name:        r.Name(),
		Category:    r.Category(),
		Description: ruleDescription(r),
	}
}
