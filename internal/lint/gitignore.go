package lint

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// GitignoreMatcher checks whether a path is ignored according to
// .gitignore rules. It collects .gitignore files from the root's
// ancestors and from the whole tree below the root; later rules
// override earlier ones, and negation patterns re-include paths.
type GitignoreMatcher struct {
	rules []gitRule
}

// gitRule is a single pattern from a .gitignore file.
type gitRule struct {
	base     string // directory containing the .gitignore
	pattern  string
	negate   bool
	dirOnly  bool
	anchored bool // pattern contains a slash; match the full relative path
}

// NewGitignoreMatcher creates a matcher for the tree rooted at root.
func NewGitignoreMatcher(root string) *GitignoreMatcher {
	m := &GitignoreMatcher{}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return m
	}

	// Ancestor .gitignore files apply first, from the filesystem root
	// down to the parent of absRoot.
	var ancestors []string
	for dir := filepath.Dir(absRoot); ; dir = filepath.Dir(dir) {
		gi := filepath.Join(dir, ".gitignore")
		if _, err := os.Stat(gi); err == nil {
			ancestors = append([]string{gi}, ancestors...)
		}
		if filepath.Dir(dir) == dir {
			break
		}
	}
	for _, gi := range ancestors {
		m.rules = append(m.rules, readGitignore(gi)...)
	}

	_ = filepath.Walk(absRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() && info.Name() == ".gitignore" {
			m.rules = append(m.rules, readGitignore(path)...)
		}
		return nil
	})

	return m
}

// readGitignore parses a .gitignore file, returning no rules on error.
func readGitignore(path string) []gitRule {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()

	base := filepath.Dir(path)
	var rules []gitRule

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		r := gitRule{base: base}
		if strings.HasPrefix(line, "!") {
			r.negate = true
			line = line[1:]
		}
		if strings.HasSuffix(line, "/") {
			r.dirOnly = true
			line = strings.TrimSuffix(line, "/")
		}
		if strings.HasPrefix(line, "/") {
			line = line[1:]
			r.anchored = true
		} else {
			r.anchored = strings.Contains(line, "/")
		}
		r.pattern = line
		rules = append(rules, r)
	}
	return rules
}

// IsIgnored returns true if the given absolute path should be ignored.
// isDir indicates whether the path is a directory.
func (m *GitignoreMatcher) IsIgnored(absPath string, isDir bool) bool {
	ignored := false
	for _, r := range m.rules {
		if r.dirOnly && !isDir {
			continue
		}
		if r.matches(absPath) {
			ignored = !r.negate
		}
	}
	return ignored
}

// matches checks a single rule against an absolute path.
func (r gitRule) matches(absPath string) bool {
	rel, err := filepath.Rel(r.base, absPath)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if strings.HasPrefix(rel, "..") {
		return false
	}

	if r.anchored {
		return matchIgnorePattern(r.pattern, rel)
	}

	// Per git semantics a slash-free pattern matches the basename of a
	// file at any depth, or any whole path component.
	if matchIgnorePattern(r.pattern, filepath.Base(absPath)) {
		return true
	}
	return matchIgnorePattern(r.pattern, rel)
}

// matchIgnorePattern matches a gitignore pattern against a slash-separated
// path. doublestar implements the *, ?, [...] and ** semantics gitignore
// patterns use.
func matchIgnorePattern(pattern, path string) bool {
	ok, err := doublestar.Match(pattern, path)
	return err == nil && ok
}
