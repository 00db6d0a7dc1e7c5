package engine

import (
	"bytes"
	"fmt"
	"io/fs"
	"sort"

	"github.com/mdlint/mdlint/internal/config"
	"github.com/mdlint/mdlint/internal/lint"
	"github.com/mdlint/mdlint/internal/rule"
)

// Runner drives the linting pipeline for one file at a time: read the
// content, strip front matter, build a File (parsing the AST once),
// determine the effective rule configuration, run enabled rules, filter
// by inline config comments, and assemble a per-file Result.
type Runner struct {
	Config           *config.Config
	Rules            []rule.Rule
	StripFrontMatter bool

	// AllowInlineConfig honors <!-- mdlint-disable --> style comments.
	AllowInlineConfig bool

	// ReportUnusedDisableDirectives, when nonzero, reports disable
	// directives that suppressed nothing, at that severity.
	ReportUnusedDisableDirectives lint.Severity

	// FS, when non-nil, is handed to cross-file rules via File.FS.
	FS fs.FS
}

// LintSource lints in-memory source as if it were the file at path.
// Callers read files themselves; the session needs the raw bytes anyway
// to key its cache.
func (r *Runner) LintSource(path string, source []byte) (lint.Result, error) {
	var fmPrefix []byte
	content := source
	if r.StripFrontMatter {
		fmPrefix, content = lint.StripFrontMatter(source)
	}

	f, err := lint.NewFile(path, content)
	if err != nil {
		return lint.Result{}, fmt.Errorf("parsing %q: %w", path, err)
	}
	f.FrontMatter = fmPrefix
	f.FS = r.FS

	effective := config.Effective(r.Config, path)

	diags, errs := CheckRules(f, r.Rules, effective)
	if len(errs) > 0 {
		return lint.Result{}, errs[0]
	}

	if r.AllowInlineConfig {
		diags = lint.FilterDirectives(f, diags, r.ReportUnusedDisableDirectives)
	}

	// Report positions relative to the original file, not the stripped
	// content. Fix edits stay in content space; the fixer re-prepends
	// the front matter block.
	if n := bytes.Count(fmPrefix, []byte("\n")); n > 0 {
		for i := range diags {
			diags[i].Line += n
			if diags[i].EndLine > 0 {
				diags[i].EndLine += n
			}
		}
	}

	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Line != diags[j].Line {
			return diags[i].Line < diags[j].Line
		}
		return diags[i].Column < diags[j].Column
	})

	res := lint.NewResult(path, diags)
	res.UsedDeprecatedRules = deprecatedUses(r.Rules, effective)
	return res, nil
}

// deprecatedUses records every enabled rule that is marked deprecated.
func deprecatedUses(rules []rule.Rule, effective map[string]config.RuleCfg) []lint.DeprecatedRuleUse {
	uses := []lint.DeprecatedRuleUse{}
	for _, rl := range rules {
		cfg, ok := effective[rl.Name()]
		if !ok || !cfg.Enabled {
			continue
		}
		if d, ok := rl.(rule.Deprecated); ok {
			uses = append(uses, lint.DeprecatedRuleUse{
				RuleID:     rl.ID(),
				ReplacedBy: d.ReplacedBy(),
			})
		}
	}
	return uses
}
