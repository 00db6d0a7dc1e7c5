package lint

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNoFilesMatched is wrapped by ResolveFiles when a pattern matches
// nothing and unmatched patterns are treated as errors.
var ErrNoFilesMatched = errors.New("no files matched pattern")

// ResolveOpts controls how file resolution behaves. Pointer fields
// default to true when nil (see the field comments).
type ResolveOpts struct {
	// UseGitignore filters walked directories by .gitignore rules.
	// Explicitly named file paths are never filtered. Default true.
	UseGitignore *bool

	// Glob expands patterns containing glob meta-characters. When false
	// every argument is treated as a literal path. Default true.
	Glob *bool

	// ErrorOnUnmatched makes resolution fail when a glob pattern matches
	// no files. When false such patterns are silently skipped.
	// Default true.
	ErrorOnUnmatched *bool

	// Extensions lists the file extensions considered lintable when
	// walking directories. Defaults to .md and .markdown.
	Extensions []string
}

func boolOrTrue(p *bool) bool { return p == nil || *p }

func (o ResolveOpts) extensions() []string {
	if len(o.Extensions) > 0 {
		return o.Extensions
	}
	return []string{".md", ".markdown"}
}

// matchesExt returns true if path carries one of the lintable extensions.
func (o ResolveOpts) matchesExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range o.extensions() {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// hasGlobChars returns true if the string contains glob meta-characters.
func hasGlobChars(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// ResolveFiles takes positional arguments and returns deduplicated,
// sorted lintable file paths. It supports individual files, directories
// (walked recursively), and glob patterns (doublestar syntax, unless
// globbing is disabled). Nonexistent literal paths and, by default,
// unmatched glob patterns are errors.
func ResolveFiles(args []string, opts ResolveOpts) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	addFile := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if !seen[abs] {
			seen[abs] = true
			result = append(result, path)
		}
	}

	for _, arg := range args {
		if err := resolveArg(arg, opts, addFile); err != nil {
			return nil, err
		}
	}

	sort.Strings(result)
	return result, nil
}

// resolveArg resolves a single argument (glob, directory, or file) and
// calls addFile for each lintable file found.
func resolveArg(arg string, opts ResolveOpts, addFile func(string)) error {
	if boolOrTrue(opts.Glob) && hasGlobChars(arg) {
		return resolveGlob(arg, opts, addFile)
	}

	info, err := os.Stat(arg)
	if err != nil {
		return fmt.Errorf("cannot access %q: %w", arg, err)
	}

	if info.IsDir() {
		return addDirFiles(arg, opts, addFile)
	}

	// Explicitly named files are never filtered by gitignore or
	// extension checks.
	addFile(arg)
	return nil
}

// resolveGlob expands a glob pattern and adds matching lintable files.
func resolveGlob(pattern string, opts ResolveOpts, addFile func(string)) error {
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return fmt.Errorf("invalid glob pattern %q", pattern)
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	added := 0
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if info.IsDir() {
			if err := addDirFiles(m, opts, addFile); err != nil {
				return err
			}
			added++
		} else if opts.matchesExt(m) {
			addFile(m)
			added++
		}
	}

	if added == 0 && boolOrTrue(opts.ErrorOnUnmatched) {
		return fmt.Errorf("%w: %q", ErrNoFilesMatched, pattern)
	}
	return nil
}

// addDirFiles walks a directory and adds all lintable files found.
func addDirFiles(dir string, opts ResolveOpts, addFile func(string)) error {
	var matcher *GitignoreMatcher
	if boolOrTrue(opts.UseGitignore) {
		matcher = NewGitignoreMatcher(dir)
	}

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if matcher != nil {
			abs, aerr := filepath.Abs(path)
			if aerr == nil && matcher.IsIgnored(abs, info.IsDir()) {
				if info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}
		if !info.IsDir() && opts.matchesExt(path) {
			addFile(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking directory %q: %w", dir, err)
	}
	return nil
}
