package fix

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mdlint/mdlint/internal/config"
	"github.com/mdlint/mdlint/internal/engine"
	"github.com/mdlint/mdlint/internal/lint"
	"github.com/mdlint/mdlint/internal/rule"
)

// replaceRule rewrites every occurrence of From to To, one diagnostic
// per line.
type replaceRule struct {
	id       string
	name     string
	category string
	From     string
	To       string
	severity lint.Severity
}

func (r *replaceRule) ID() string       { return r.id }
func (r *replaceRule) Name() string     { return r.name }
func (r *replaceRule) Category() string { return r.category }

func (r *replaceRule) Check(f *lint.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for i, line := range f.Lines {
		idx := strings.Index(string(line), r.From)
		if idx < 0 {
			continue
		}
		start := f.OffsetOfLine(i+1) + idx
		diags = append(diags, lint.Diagnostic{
			File: f.Path, Line: i + 1, Column: idx + 1,
			RuleID: r.id, RuleName: r.name,
			MessageID: "replace", Severity: r.severity,
			Message: "replace " + r.From,
			Fix:     &lint.TextEdit{Start: start, End: start + len(r.From), Text: r.To},
		})
	}
	return diags
}

func fixer(rules ...rule.Rule) *Fixer {
	cfgRules := map[string]config.RuleCfg{}
	for _, r := range rules {
		cfgRules[r.Name()] = config.RuleCfg{Enabled: true}
	}
	return &Fixer{Runner: &engine.Runner{
		Config:           &config.Config{Rules: cfgRules},
		Rules:            rules,
		StripFrontMatter: true,
	}}
}

func TestFixSource(t *testing.T) {
	x := fixer(&replaceRule{
		id: "ML980", name: "a-to-b", category: "test",
		From: "aaa", To: "bbb", severity: lint.SeverityWarning,
	})

	res, err := x.FixSource("doc.md", []byte("aaa\nclean\n"))
	if err != nil {
		t.Fatal(err)
	}
	if string(res.Output) != "bbb\nclean\n" {
		t.Errorf("Output = %q", res.Output)
	}
	if string(res.Source) != "aaa\nclean\n" {
		t.Errorf("Source = %q", res.Source)
	}
	if len(res.Messages) != 0 {
		t.Errorf("remaining diagnostics: %v", res.Messages)
	}
}

func TestFixSourceMultiPass(t *testing.T) {
	// The first rule's output is the second rule's input.
	x := fixer(
		&replaceRule{id: "ML980", name: "a-to-b", category: "test",
			From: "aaa", To: "bbb", severity: lint.SeverityWarning},
		&replaceRule{id: "ML981", name: "b-to-c", category: "test",
			From: "bbb", To: "ccc", severity: lint.SeverityWarning},
	)

	res, err := x.FixSource("doc.md", []byte("aaa\n"))
	if err != nil {
		t.Fatal(err)
	}
	if string(res.Output) != "ccc\n" {
		t.Errorf("Output = %q, want %q", res.Output, "ccc\n")
	}
}

func TestFixSourceNoChangesLeavesOutputNil(t *testing.T) {
	x := fixer(&replaceRule{
		id: "ML980", name: "a-to-b", category: "test",
		From: "aaa", To: "bbb", severity: lint.SeverityWarning,
	})

	res, err := x.FixSource("doc.md", []byte("already clean\n"))
	if err != nil {
		t.Fatal(err)
	}
	if res.Output != nil || res.Source != nil {
		t.Errorf("clean source should leave Output/Source nil, got %q / %q", res.Output, res.Source)
	}
}

func TestFixSourcePreservesFrontMatter(t *testing.T) {
	x := fixer(&replaceRule{
		id: "ML980", name: "a-to-b", category: "test",
		From: "aaa", To: "bbb", severity: lint.SeverityWarning,
	})

	res, err := x.FixSource("doc.md", []byte("---\ntitle: aaa\n---\naaa\n"))
	if err != nil {
		t.Fatal(err)
	}
	// Front matter is not lintable content; only the body changes.
	if string(res.Output) != "---\ntitle: aaa\n---\nbbb\n" {
		t.Errorf("Output = %q", res.Output)
	}
}

func TestFixSourceFilter(t *testing.T) {
	x := fixer(&replaceRule{
		id: "ML980", name: "a-to-b", category: "test",
		From: "aaa", To: "bbb", severity: lint.SeverityWarning,
	})
	x.Filter = func(d lint.Diagnostic) bool { return d.Line != 1 }

	res, err := x.FixSource("doc.md", []byte("aaa\naaa\n"))
	if err != nil {
		t.Fatal(err)
	}
	if string(res.Output) != "aaa\nbbb\n" {
		t.Errorf("Output = %q, want line 1 untouched", res.Output)
	}
	if len(res.Messages) != 1 {
		t.Errorf("expected 1 remaining diagnostic, got %v", res.Messages)
	}
}

func TestFixSourceCategories(t *testing.T) {
	x := fixer(
		&replaceRule{id: "ML980", name: "a-to-b", category: "whitespace",
			From: "aaa", To: "bbb", severity: lint.SeverityWarning},
		&replaceRule{id: "ML981", name: "x-to-y", category: "style",
			From: "xxx", To: "yyy", severity: lint.SeverityWarning},
	)
	x.Categories = []string{"whitespace"}

	res, err := x.FixSource("doc.md", []byte("aaa xxx\n"))
	if err != nil {
		t.Fatal(err)
	}
	if string(res.Output) != "bbb xxx\n" {
		t.Errorf("Output = %q, want only the whitespace-category fix", res.Output)
	}
}

func TestOutputFixes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("aaa\n"), 0644); err != nil {
		t.Fatal(err)
	}

	x := fixer(&replaceRule{
		id: "ML980", name: "a-to-b", category: "test",
		From: "aaa", To: "bbb", severity: lint.SeverityWarning,
	})
	res, err := x.FixFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := OutputFixes([]lint.Result{res}); err != nil {
		t.Fatal(err)
	}
	disk, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(disk) != "bbb\n" {
		t.Errorf("disk = %q", disk)
	}

	// Second application is a no-op.
	before, _ := os.Stat(path)
	if err := OutputFixes([]lint.Result{res}); err != nil {
		t.Fatal(err)
	}
	after, _ := os.Stat(path)
	if !after.ModTime().Equal(before.ModTime()) {
		t.Error("idempotent OutputFixes rewrote an unchanged file")
	}
}

func TestOutputFixesSkipsResultsWithoutOutput(t *testing.T) {
	res := lint.NewResult(filepath.Join(t.TempDir(), "absent.md"), nil)
	if err := OutputFixes([]lint.Result{res}); err != nil {
		t.Fatalf("result without Output should be skipped, got %v", err)
	}
}
