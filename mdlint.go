// Package mdlint lints Markdown. The Linter type is a configured lint
// session: it resolves configuration, applies ignore rules, lints files
// or in-memory text, and loads output formatters. Auto-fixes are
// computed during linting but only persisted by the explicit OutputFixes
// step.
package mdlint

import (
	"github.com/mdlint/mdlint/internal/config"
	"github.com/mdlint/mdlint/internal/lint"
	"github.com/mdlint/mdlint/internal/output"
	"github.com/mdlint/mdlint/internal/rule"

	// Register the built-in rules.
	_ "github.com/mdlint/mdlint/internal/rules/fencedcodelanguage"
	_ "github.com/mdlint/mdlint/internal/rules/firstlineheading"
	_ "github.com/mdlint/mdlint/internal/rules/frontmattervalidation"
	_ "github.com/mdlint/mdlint/internal/rules/headingincrement"
	_ "github.com/mdlint/mdlint/internal/rules/linelength"
	_ "github.com/mdlint/mdlint/internal/rules/maxlinelength"
	_ "github.com/mdlint/mdlint/internal/rules/nobareurls"
	_ "github.com/mdlint/mdlint/internal/rules/noduplicateheadings"
	_ "github.com/mdlint/mdlint/internal/rules/nohardtabs"
	_ "github.com/mdlint/mdlint/internal/rules/nomultipleblanks"
	_ "github.com/mdlint/mdlint/internal/rules/notrailingspaces"
	_ "github.com/mdlint/mdlint/internal/rules/requiredstructure"
	_ "github.com/mdlint/mdlint/internal/rules/singletrailingnewline"
)

// Core types, re-exported from the engine packages.
type (
	// Diagnostic is a single lint finding.
	Diagnostic = lint.Diagnostic
	// Suggestion is a manual correction attached to a diagnostic.
	Suggestion = lint.Suggestion
	// TextEdit is a byte-range source replacement.
	TextEdit = lint.TextEdit
	// Severity is a diagnostic severity: 1 = warning, 2 = error.
	Severity = lint.Severity
	// Result is the outcome of linting one file.
	Result = lint.Result
	// DeprecatedRuleUse records an enabled deprecated rule.
	DeprecatedRuleUse = lint.DeprecatedRuleUse
	// Config is the rule configuration tree.
	Config = config.Config
	// Rule is the contract implemented by lint rules.
	Rule = rule.Rule
	// Formatter renders a batch of results.
	Formatter = output.Formatter
	// RuleMeta describes a rule to formatters.
	RuleMeta = output.RuleMeta
)

// Severity levels.
const (
	SeverityWarning = lint.SeverityWarning
	SeverityError   = lint.SeverityError
)
