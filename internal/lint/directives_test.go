package lint

import "testing"

func mustFile(t *testing.T, source string) *File {
	t.Helper()
	f, err := NewFile("test.md", []byte(source))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func diag(line int, ruleID, ruleName string) Diagnostic {
	return Diagnostic{
		File:     "test.md",
		Line:     line,
		Column:   1,
		RuleID:   ruleID,
		RuleName: ruleName,
		Severity: SeverityWarning,
	}
}

func TestFilterDirectivesBlockDisable(t *testing.T) {
	f := mustFile(t, "line one\n<!-- mdlint-disable -->\nline three\nline four\n")

	diags := []Diagnostic{
		diag(1, "ML001", "line-length"),
		diag(3, "ML001", "line-length"),
		diag(4, "ML010", "no-trailing-spaces"),
	}

	kept := FilterDirectives(f, diags, 0)
	if len(kept) != 1 || kept[0].Line != 1 {
		t.Fatalf("expected only the line-1 diagnostic, got %v", kept)
	}
}

func TestFilterDirectivesEnableReactivates(t *testing.T) {
	f := mustFile(t, "<!-- mdlint-disable -->\nx\n<!-- mdlint-enable -->\ny\n")

	diags := []Diagnostic{
		diag(2, "ML001", "line-length"),
		diag(4, "ML001", "line-length"),
	}

	kept := FilterDirectives(f, diags, 0)
	if len(kept) != 1 || kept[0].Line != 4 {
		t.Fatalf("expected only the line-4 diagnostic, got %v", kept)
	}
}

func TestFilterDirectivesRuleScoped(t *testing.T) {
	f := mustFile(t, "<!-- mdlint-disable line-length -->\nx\n")

	diags := []Diagnostic{
		diag(2, "ML001", "line-length"),
		diag(2, "ML010", "no-trailing-spaces"),
	}

	kept := FilterDirectives(f, diags, 0)
	if len(kept) != 1 || kept[0].RuleID != "ML010" {
		t.Fatalf("expected only the ML010 diagnostic, got %v", kept)
	}
}

func TestFilterDirectivesByRuleID(t *testing.T) {
	f := mustFile(t, "<!-- mdlint-disable ML001 -->\nx\n")

	kept := FilterDirectives(f, []Diagnostic{diag(2, "ML001", "line-length")}, 0)
	if len(kept) != 0 {
		t.Fatalf("ID-scoped disable should suppress, got %v", kept)
	}
}

func TestFilterDirectivesLineScoped(t *testing.T) {
	f := mustFile(t, "x <!-- mdlint-disable-line -->\ny\n")

	diags := []Diagnostic{
		diag(1, "ML001", "line-length"),
		diag(2, "ML001", "line-length"),
	}

	kept := FilterDirectives(f, diags, 0)
	if len(kept) != 1 || kept[0].Line != 2 {
		t.Fatalf("expected only the line-2 diagnostic, got %v", kept)
	}
}

func TestFilterDirectivesNextLine(t *testing.T) {
	f := mustFile(t, "<!-- mdlint-disable-next-line -->\nx\ny\n")

	diags := []Diagnostic{
		diag(2, "ML001", "line-length"),
		diag(3, "ML001", "line-length"),
	}

	kept := FilterDirectives(f, diags, 0)
	if len(kept) != 1 || kept[0].Line != 3 {
		t.Fatalf("expected only the line-3 diagnostic, got %v", kept)
	}
}

func TestFilterDirectivesInsideCodeBlockIgnored(t *testing.T) {
	f := mustFile(t, "```\n<!-- mdlint-disable -->\n```\nx\n")

	kept := FilterDirectives(f, []Diagnostic{diag(4, "ML001", "line-length")}, 0)
	if len(kept) != 1 {
		t.Fatalf("directive in code block should not suppress, got %v", kept)
	}
}

func TestFilterDirectivesReportsUnused(t *testing.T) {
	f := mustFile(t, "<!-- mdlint-disable no-trailing-spaces -->\nclean\n")

	kept := FilterDirectives(f, nil, SeverityWarning)
	if len(kept) != 1 {
		t.Fatalf("expected one unused-directive diagnostic, got %v", kept)
	}
	if kept[0].MessageID != "unusedDisableDirective" || kept[0].Line != 1 {
		t.Fatalf("unexpected diagnostic: %+v", kept[0])
	}
}

func TestFilterDirectivesUsedDirectiveNotReported(t *testing.T) {
	f := mustFile(t, "<!-- mdlint-disable -->\nx\n")

	kept := FilterDirectives(f, []Diagnostic{diag(2, "ML001", "line-length")}, SeverityWarning)
	if len(kept) != 0 {
		t.Fatalf("used directive should not be reported, got %v", kept)
	}
}
