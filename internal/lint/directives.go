package lint

import (
	"regexp"
	"strings"
)

// Inline config comments understood by the engine:
//
//	<!-- mdlint-disable -->
//	<!-- mdlint-disable rule-name ... -->
//	<!-- mdlint-enable [rule-name ...] -->
//	<!-- mdlint-disable-line [rule-name ...] -->
//	<!-- mdlint-disable-next-line [rule-name ...] -->
//
// Rules may be referenced by name or by ID. A directive without rule
// names applies to all rules.
var directiveRe = regexp.MustCompile(`<!--\s*mdlint-(disable-next-line|disable-line|disable|enable)\b([^>]*?)-->`)

type directiveKind int

const (
	directiveDisable directiveKind = iota
	directiveEnable
	directiveDisableLine
	directiveDisableNextLine
)

type directive struct {
	kind  directiveKind
	line  int // 1-based
	rules []string
	used  bool
}

func (d *directive) applies(ruleID, ruleName string) bool {
	if len(d.rules) == 0 {
		return true
	}
	for _, r := range d.rules {
		if r == ruleID || r == ruleName {
			return true
		}
	}
	return false
}

// parseDirectives scans the file for inline config comments. Comments
// inside code blocks are verbatim content and do not count.
func parseDirectives(f *File) []*directive {
	codeLines := CodeBlockLines(f)
	var out []*directive

	for i, line := range f.Lines {
		lineNum := i + 1
		if codeLines[lineNum] {
			continue
		}
		for _, m := range directiveRe.FindAllSubmatch(line, -1) {
			d := &directive{line: lineNum, rules: strings.Fields(string(m[2]))}
			switch string(m[1]) {
			case "disable":
				d.kind = directiveDisable
			case "enable":
				d.kind = directiveEnable
			case "disable-line":
				d.kind = directiveDisableLine
			case "disable-next-line":
				d.kind = directiveDisableNextLine
			}
			out = append(out, d)
		}
	}
	return out
}

// FilterDirectives removes diagnostics suppressed by inline config
// comments in f. When reportUnused is nonzero, a diagnostic of that
// severity is appended for every disable directive that suppressed
// nothing. The returned slice preserves the order of diags.
func FilterDirectives(f *File, diags []Diagnostic, reportUnused Severity) []Diagnostic {
	directives := parseDirectives(f)
	if len(directives) == 0 {
		return diags
	}

	kept := diags[:0:0]
	for _, d := range diags {
		if suppressed(directives, &d) {
			continue
		}
		kept = append(kept, d)
	}

	if reportUnused != 0 {
		for _, dir := range directives {
			if dir.kind == directiveEnable || dir.used {
				continue
			}
			kept = append(kept, Diagnostic{
				File:      f.Path,
				Line:      dir.line,
				Column:    1,
				MessageID: "unusedDisableDirective",
				Severity:  reportUnused,
				Message:   "unused mdlint-disable directive (no matching diagnostics were reported)",
			})
		}
	}
	return kept
}

// suppressed reports whether any directive silences d, marking the
// winning directive as used.
func suppressed(directives []*directive, d *Diagnostic) bool {
	// Line-scoped directives take precedence.
	for _, dir := range directives {
		switch dir.kind {
		case directiveDisableLine:
			if dir.line == d.Line && dir.applies(d.RuleID, d.RuleName) {
				dir.used = true
				return true
			}
		case directiveDisableNextLine:
			if dir.line == d.Line-1 && dir.applies(d.RuleID, d.RuleName) {
				dir.used = true
				return true
			}
		}
	}

	// Block directives: replay disable/enable pairs up to the
	// diagnostic's line; the last matching one wins.
	var active *directive
	for _, dir := range directives {
		if dir.line > d.Line {
			break
		}
		switch dir.kind {
		case directiveDisable:
			if dir.applies(d.RuleID, d.RuleName) {
				active = dir
			}
		case directiveEnable:
			if dir.applies(d.RuleID, d.RuleName) {
				active = nil
			}
		}
	}
	if active != nil {
		active.used = true
		return true
	}
	return false
}
