// Package ruletest exercises a single lint rule against a table of
// valid and invalid code samples. Each case runs in its own subtest, so
// one failing case does not stop the rest; every mismatch is reported
// as a descriptive assertion failure naming the field, the position,
// and the got/want values.
package ruletest

import (
	"fmt"
	"io/fs"
	"testing"

	"github.com/mdlint/mdlint/internal/config"
	"github.com/mdlint/mdlint/internal/engine"
	"github.com/mdlint/mdlint/internal/fix"
	"github.com/mdlint/mdlint/internal/lint"
	"github.com/mdlint/mdlint/internal/rule"
)

// Config configures a Tester. The zero value is usable.
type Config struct {
	// Settings are default rule settings applied to every case unless
	// the case sets its own.
	Settings map[string]any

	// FrontMatter controls front matter stripping. Default true.
	FrontMatter *bool

	// Workspace gives cross-file rules a filesystem to resolve against
	// (testing/fstest.MapFS works well).
	Workspace fs.FS

	// Watch requests filesystem watching for runners that re-execute
	// cases on workspace changes. New forces it off whenever a
	// Workspace is configured: harness cases run exactly once, and
	// watching a workspace would only waste resources.
	Watch bool
}

// Tester runs rule test cases.
type Tester struct {
	cfg Config
}

// New returns a Tester after normalizing cfg.
func New(cfg Config) *Tester {
	if cfg.Workspace != nil {
		cfg.Watch = false
	}
	return &Tester{cfg: cfg}
}

// Cases is the table handed to Run.
type Cases struct {
	Valid   []Case
	Invalid []InvalidCase
}

// Case is a code sample expected to lint clean. Code is the only
// required field.
type Case struct {
	// Name labels the subtest; defaults to the case index.
	Name string

	// Code is the Markdown source to lint.
	Code string

	// Settings override the Tester-level rule settings for this case.
	Settings map[string]any

	// FrontMatter overrides the Tester-level front matter toggle.
	FrontMatter *bool

	// FileName is the nominal path of the source. Default "test.md".
	FileName string
}

// InvalidCase is a code sample expected to produce exactly the listed
// diagnostics, in order.
type InvalidCase struct {
	Case

	// Errors are matched positionally against the produced
	// diagnostics: same count, and for each position the MessageID and
	// every explicitly-set field must match. Must be non-empty.
	Errors []ExpectedError

	// Output, when non-nil, is the exact source after auto-fixing.
	// Nil leaves fix output unchecked.
	Output *string

	// ExpectNoFix asserts that no produced diagnostic carries a fix.
	// Mutually exclusive with Output.
	ExpectNoFix bool
}

// ExpectedError describes one expected diagnostic. MessageID is
// required; zero-valued fields are not checked.
type ExpectedError struct {
	MessageID string
	Data      map[string]string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
	Node      string

	// Suggestions, when non-nil, are matched positionally against the
	// diagnostic's suggestions.
	Suggestions []ExpectedSuggestion
}

// ExpectedSuggestion describes one expected suggestion. Output is
// required: it is the full source after applying the suggestion's fix
// in isolation, independent of any other diagnostic's fix.
type ExpectedSuggestion struct {
	MessageID string
	Data      map[string]string
	Output    string
}

// Output wraps a string literal for InvalidCase.Output.
func Output(s string) *string { return &s }

// Run exercises r against the cases. ruleName must be r's rule name; it
// keys the configuration handed to the engine.
func (tt *Tester) Run(t *testing.T, ruleName string, r rule.Rule, tc Cases) {
	t.Helper()

	if r.Name() != ruleName {
		t.Fatalf("ruletest: rule name mismatch: Run given %q but rule reports %q", ruleName, r.Name())
	}

	for i, c := range tc.Valid {
		t.Run(subtestName("valid", i, c.Name), func(t *testing.T) {
			tt.runValid(t, ruleName, r, c)
		})
	}
	for i, c := range tc.Invalid {
		t.Run(subtestName("invalid", i, c.Name), func(t *testing.T) {
			tt.runInvalid(t, ruleName, r, c)
		})
	}
}

func subtestName(kind string, i int, name string) string {
	if name != "" {
		return fmt.Sprintf("%s/%s", kind, name)
	}
	return fmt.Sprintf("%s/%02d", kind, i)
}

// runner builds the single-rule engine for one case.
func (tt *Tester) runner(ruleName string, r rule.Rule, c Case) *engine.Runner {
	settings := c.Settings
	if settings == nil {
		settings = tt.cfg.Settings
	}

	fm := tt.cfg.FrontMatter
	if c.FrontMatter != nil {
		fm = c.FrontMatter
	}

	return &engine.Runner{
		Config: &config.Config{
			Rules: map[string]config.RuleCfg{
				ruleName: {Enabled: true, Settings: settings},
			},
		},
		Rules:             []rule.Rule{r},
		StripFrontMatter:  fm == nil || *fm,
		AllowInlineConfig: true,
		FS:                tt.cfg.Workspace,
	}
}

func fileName(c Case) string {
	if c.FileName != "" {
		return c.FileName
	}
	return "test.md"
}

func (tt *Tester) runValid(t *testing.T, ruleName string, r rule.Rule, c Case) {
	t.Helper()

	run := tt.runner(ruleName, r, c)
	res, err := run.LintSource(fileName(c), []byte(c.Code))
	if err != nil {
		t.Fatalf("lint failed: %v", err)
	}

	if len(res.Messages) != 0 {
		for _, d := range res.Messages {
			t.Errorf("valid case produced diagnostic %s at %d:%d: %s",
				d.MessageID, d.Line, d.Column, d.Message)
		}
	}
}

func (tt *Tester) runInvalid(t *testing.T, ruleName string, r rule.Rule, c InvalidCase) {
	t.Helper()

	if len(c.Errors) == 0 {
		t.Fatalf("invalid case must declare at least one expected error")
	}
	if c.Output != nil && c.ExpectNoFix {
		t.Fatalf("Output and ExpectNoFix are mutually exclusive")
	}
	for i, want := range c.Errors {
		if want.MessageID == "" {
			t.Fatalf("expected error %d is missing MessageID", i)
		}
	}

	run := tt.runner(ruleName, r, c.Case)
	res, err := run.LintSource(fileName(c.Case), []byte(c.Code))
	if err != nil {
		t.Fatalf("lint failed: %v", err)
	}

	if len(res.Messages) != len(c.Errors) {
		t.Fatalf("expected %d diagnostics, got %d: %s",
			len(c.Errors), len(res.Messages), describe(res.Messages))
	}

	for i, want := range c.Errors {
		checkError(t, i, want, res.Messages[i], tt, c.Case, run)
	}

	if c.ExpectNoFix {
		for _, d := range res.Messages {
			if d.HasFix() {
				t.Errorf("expected no fix, but diagnostic %s at %d:%d carries one",
					d.MessageID, d.Line, d.Column)
			}
		}
	}

	if c.Output != nil {
		fixer := &fix.Fixer{Runner: run}
		fres, err := fixer.FixSource(fileName(c.Case), []byte(c.Code))
		if err != nil {
			t.Fatalf("fix failed: %v", err)
		}
		got := c.Code
		if fres.Output != nil {
			got = string(fres.Output)
		}
		if got != *c.Output {
			t.Errorf("fix output mismatch:\ngot:  %q\nwant: %q", got, *c.Output)
		}
	}
}

// checkError compares one produced diagnostic against its expectation.
func checkError(t *testing.T, i int, want ExpectedError, got lint.Diagnostic, tt *Tester, c Case, run *engine.Runner) {
	t.Helper()

	if got.MessageID != want.MessageID {
		t.Errorf("error %d: messageId = %q, want %q", i, got.MessageID, want.MessageID)
	}
	if want.Line > 0 && got.Line != want.Line {
		t.Errorf("error %d: line = %d, want %d", i, got.Line, want.Line)
	}
	if want.Column > 0 && got.Column != want.Column {
		t.Errorf("error %d: column = %d, want %d", i, got.Column, want.Column)
	}
	if want.EndLine > 0 && got.EndLine != want.EndLine {
		t.Errorf("error %d: endLine = %d, want %d", i, got.EndLine, want.EndLine)
	}
	if want.EndColumn > 0 && got.EndColumn != want.EndColumn {
		t.Errorf("error %d: endColumn = %d, want %d", i, got.EndColumn, want.EndColumn)
	}
	if want.Node != "" && got.Node != want.Node {
		t.Errorf("error %d: node = %q, want %q", i, got.Node, want.Node)
	}
	if want.Data != nil && !mapsEqual(got.Data, want.Data) {
		t.Errorf("error %d: data = %v, want %v", i, got.Data, want.Data)
	}

	if want.Suggestions == nil {
		return
	}
	if len(got.Suggestions) != len(want.Suggestions) {
		t.Errorf("error %d: expected %d suggestions, got %d",
			i, len(want.Suggestions), len(got.Suggestions))
		return
	}
	for j, ws := range want.Suggestions {
		if ws.Output == "" {
			t.Fatalf("error %d suggestion %d is missing Output", i, j)
		}
		gs := got.Suggestions[j]
		if gs.MessageID != ws.MessageID {
			t.Errorf("error %d suggestion %d: messageId = %q, want %q",
				i, j, gs.MessageID, ws.MessageID)
		}
		if ws.Data != nil && !mapsEqual(gs.Data, ws.Data) {
			t.Errorf("error %d suggestion %d: data = %v, want %v",
				i, j, gs.Data, ws.Data)
		}

		if out := applyInIsolation(run, []byte(c.Code), gs.Fix); out != ws.Output {
			t.Errorf("error %d suggestion %d: output mismatch:\ngot:  %q\nwant: %q",
				i, j, out, ws.Output)
		}
	}
}

// applyInIsolation applies a single suggestion fix to the original case
// source, independent of every other diagnostic's fix. Edits live in
// content space; any stripped front matter is re-prepended.
func applyInIsolation(run *engine.Runner, source []byte, edit lint.TextEdit) string {
	var prefix, content []byte = nil, source
	if run.StripFrontMatter {
		prefix, content = lint.StripFrontMatter(source)
	}
	fixed := edit.Apply(content)
	return string(append(append([]byte{}, prefix...), fixed...))
}

func mapsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range b {
		if a[k] != v {
			return false
		}
	}
	return true
}

func describe(diags []lint.Diagnostic) string {
	if len(diags) == 0 {
		return "(none)"
	}
	s := ""
	for _, d := range diags {
		s += fmt.Sprintf("\n  %s at %d:%d: %s", d.MessageID, d.Line, d.Column, d.Message)
	}
	return s
}
