package mdlint

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mdlint/mdlint/internal/output"
)

// ErrFormatterNotFound is wrapped by LoadFormatter when a name cannot be
// resolved through any lookup tier.
var ErrFormatterNotFound = errors.New("formatter not found")

// RegisterFormatter makes a custom formatter loadable by name.
// Third-party packages conventionally register as
// "mdlint-formatter-<name>" and are then loadable by the bare name too.
func RegisterFormatter(name string, f Formatter) {
	output.Register(name, f)
}

// LoadFormatter resolves a formatter through three tiers: built-in name
// ("text", "json", "compact"; "" means "text"), registered formatter
// name, or a filesystem path to a JavaScript formatter file exporting a
// function. It fails when the name resolves to nothing callable.
func (l *Linter) LoadFormatter(name string) (Formatter, error) {
	switch name {
	case "", "text":
		return &output.TextFormatter{}, nil
	case "json":
		return &output.JSONFormatter{}, nil
	case "compact":
		return &output.CompactFormatter{}, nil
	}

	if f, ok := output.Lookup(name); ok {
		return f, nil
	}

	if isFormatterPath(name) {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(l.cwd, path)
		}
		return output.LoadJSFormatter(path)
	}

	known := append([]string{"compact", "json", "text"}, output.Names()...)
	sort.Strings(known)
	return nil, fmt.Errorf("%w: %q (known: %s)", ErrFormatterNotFound, name, strings.Join(known, ", "))
}

// isFormatterPath reports whether name looks like a file path rather
// than a formatter name.
func isFormatterPath(name string) bool {
	return strings.ContainsAny(name, `/\`) ||
		strings.EqualFold(filepath.Ext(name), ".js")
}

// RulesMeta describes the session's rules, keyed by rule ID, in the
// shape formatters receive.
func (l *Linter) RulesMeta() map[string]RuleMeta {
	meta := make(map[string]RuleMeta, len(l.rules))
	for _, r := range l.rules {
		meta[r.ID()] = ruleMeta(r)
	}
	return meta
}
