package fix

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/mdlint/mdlint/internal/engine"
	"github.com/mdlint/mdlint/internal/lint"
)

// Filter decides whether a fixable diagnostic's edit is applied.
type Filter func(d lint.Diagnostic) bool

// Fixer applies per-diagnostic text edits and re-lints until the content
// is stable. It never writes to disk; see OutputFixes.
type Fixer struct {
	Runner *engine.Runner

	// Filter, when non-nil, restricts which diagnostics are fixed.
	Filter Filter

	// Categories, when non-empty, restricts fixing to rules in the
	// listed categories.
	Categories []string
}

// A later rule's fix may introduce violations caught by an earlier rule,
// so fixing loops until no pass produces changes, bounded by maxPasses.
const maxPasses = 10

// FixSource lints and fixes in-memory source. The returned Result holds
// the remaining diagnostics; when fixing changed the content, Output is
// the fixed text and Source the original.
func (x *Fixer) FixSource(path string, source []byte) (lint.Result, error) {
	categories := x.categoryByID()

	current := source
	for pass := 0; pass < maxPasses; pass++ {
		res, err := x.Runner.LintSource(path, current)
		if err != nil {
			return lint.Result{}, err
		}

		var edits []lint.TextEdit
		for _, d := range res.Messages {
			if x.fixable(d, categories) {
				edits = append(edits, *d.Fix)
			}
		}
		if len(edits) == 0 {
			break
		}

		prefix, content := x.split(current)
		fixed := lint.ApplyEdits(content, edits)
		next := append(append([]byte{}, prefix...), fixed...)
		if bytes.Equal(next, current) {
			break
		}
		current = next
	}

	res, err := x.Runner.LintSource(path, current)
	if err != nil {
		return lint.Result{}, err
	}
	if !bytes.Equal(current, source) {
		res.Output = current
		res.Source = source
	}
	return res, nil
}

// FixFile reads and fixes the file at path without writing it back.
func (x *Fixer) FixFile(path string) (lint.Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return lint.Result{}, fmt.Errorf("reading %q: %w", path, err)
	}
	return x.FixSource(path, source)
}

// split separates the front matter block from the fixable content,
// mirroring what the runner strips before parsing. Edits are in content
// space.
func (x *Fixer) split(source []byte) (prefix, content []byte) {
	if x.Runner.StripFrontMatter {
		return lint.StripFrontMatter(source)
	}
	return nil, source
}

// fixable reports whether d's edit should be applied.
func (x *Fixer) fixable(d lint.Diagnostic, categories map[string]string) bool {
	if d.Fix == nil {
		return false
	}
	if x.Filter != nil && !x.Filter(d) {
		return false
	}
	if len(x.Categories) == 0 {
		return true
	}
	cat := categories[d.RuleID]
	for _, c := range x.Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// categoryByID maps rule IDs to their categories for FixCategories
// filtering.
func (x *Fixer) categoryByID() map[string]string {
	m := make(map[string]string, len(x.Runner.Rules))
	for _, r := range x.Runner.Rules {
		m[r.ID()] = r.Category()
	}
	return m
}

// OutputFixes writes each result's fixed content back to its file. It is
// an explicit, separate step from linting: nothing is persisted unless
// it is called. Applying it twice is a no-op the second time because the
// on-disk content already equals the fix output.
func OutputFixes(results []lint.Result) error {
	var errs []error
	for _, res := range results {
		if res.Output == nil {
			continue
		}

		mode := os.FileMode(0o644)
		if info, err := os.Stat(res.FilePath); err == nil {
			mode = info.Mode()
			if disk, err := os.ReadFile(res.FilePath); err == nil && bytes.Equal(disk, res.Output) {
				continue // already applied
			}
		}

		if err := os.WriteFile(res.FilePath, res.Output, mode); err != nil {
			errs = append(errs, fmt.Errorf("writing %q: %w", res.FilePath, err))
		}
	}
	return errors.Join(errs...)
}
