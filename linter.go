package mdlint

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/gobwas/glob"

	"github.com/mdlint/mdlint/internal/cache"
	"github.com/mdlint/mdlint/internal/config"
	"github.com/mdlint/mdlint/internal/engine"
	"github.com/mdlint/mdlint/internal/fix"
	"github.com/mdlint/mdlint/internal/lint"
	"github.com/mdlint/mdlint/internal/log"
	"github.com/mdlint/mdlint/internal/rule"
)

// ErrNoFilesMatched is wrapped by LintFiles when a pattern matches
// nothing and ErrorOnUnmatchedPattern is enabled.
var ErrNoFilesMatched = lint.ErrNoFilesMatched

// Linter is a configured lint session. Construct it with New; the zero
// value is not usable. Methods do not mutate session state, but
// concurrent use of one session is only as safe as the underlying
// filesystem operations; callers wanting parallelism should create one
// session per goroutine.
type Linter struct {
	opts           Options
	cwd            string
	rules          []rule.Rule
	ignorePatterns []string
	logger         *log.Logger
}

// New validates opts and returns a session.
func New(opts Options) (*Linter, error) {
	cwd := opts.Cwd
	if cwd == "" {
		var err error
		if cwd, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
	}

	if !opts.Fix && (opts.FixFilter != nil || len(opts.FixCategories) > 0) {
		return nil, errors.New("FixFilter and FixCategories require Fix")
	}

	rules := append(rule.All(), opts.ExtraRules...)

	if len(opts.FixCategories) > 0 {
		known := map[string]bool{}
		for _, r := range rules {
			known[r.Category()] = true
		}
		for _, c := range opts.FixCategories {
			if !known[c] {
				return nil, fmt.Errorf("unknown fix category %q", c)
			}
		}
	}

	l := &Linter{
		opts:  opts,
		cwd:   cwd,
		rules: rules,
		logger: &log.Logger{
			Enabled: opts.Debug,
			Prefix:  "mdlint:",
			W:       os.Stderr,
		},
	}

	patterns, err := l.loadIgnoreFile()
	if err != nil {
		return nil, err
	}
	l.ignorePatterns = patterns

	return l, nil
}

// loadIgnoreFile reads the ignore file. A missing default file is fine;
// a missing explicitly-configured file is an error.
func (l *Linter) loadIgnoreFile() ([]string, error) {
	path := l.opts.IgnorePath
	explicit := path != ""
	if !explicit {
		path = ".mdlintignore"
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.cwd, path)
	}

	f, err := os.Open(path)
	if err != nil {
		if explicit {
			return nil, fmt.Errorf("reading ignore file: %w", err)
		}
		return nil, nil
	}
	defer func() { _ = f.Close() }()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ignore file: %w", err)
	}
	return patterns, nil
}

// CalculateConfigForFile resolves the effective configuration for a
// single existing file: defaults, then BaseConfig, then any discovered
// project config (unless UseConfigFiles is false), then the override
// config file and OverrideConfig. A malformed config anywhere in the
// chain fails the call.
func (l *Linter) CalculateConfigForFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("cannot access %q: %w", path, err)
	}
	return l.resolveConfig(filepath.Dir(path))
}

// resolveConfig builds the merged config for files under dir.
func (l *Linter) resolveConfig(dir string) (*Config, error) {
	defaults := l.defaultConfig()

	var layers []*config.Config
	layers = append(layers, l.opts.BaseConfig)

	if orTrue(l.opts.UseConfigFiles) {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(l.cwd, dir)
		}
		found, err := config.Discover(dir)
		if err != nil {
			return nil, err
		}
		if found != "" {
			l.logger.Printf("using config file %s", found)
			loaded, err := config.Load(found)
			if err != nil {
				return nil, err
			}
			layers = append(layers, loaded)
		}
	}

	if l.opts.OverrideConfigFile != "" {
		loaded, err := config.Load(l.opts.OverrideConfigFile)
		if err != nil {
			return nil, err
		}
		layers = append(layers, loaded)
	}
	layers = append(layers, l.opts.OverrideConfig)

	return config.Merge(defaults, layers...), nil
}

// defaultConfig enables every session rule according to its default
// state. Unlike config.Defaults it covers ExtraRules too.
func (l *Linter) defaultConfig() *Config {
	rules := make(map[string]config.RuleCfg, len(l.rules))
	for _, r := range l.rules {
		rules[r.Name()] = config.RuleCfg{Enabled: rule.Enabled(r)}
	}
	return &Config{Rules: rules}
}

// IsPathIgnored reports whether path is excluded from linting by the
// default ignore set (dot-directories, vendor trees), the ignore file,
// config ignore patterns, or gitignore rules.
func (l *Linter) IsPathIgnored(path string) (bool, error) {
	rel := path
	if abs, err := filepath.Abs(path); err == nil {
		if r, err := filepath.Rel(l.cwd, abs); err == nil && !strings.HasPrefix(r, "..") {
			rel = r
		}
	}

	if defaultIgnored(rel) {
		return true, nil
	}

	if orTrue(l.opts.Ignore) {
		if matchesIgnorePattern(l.ignorePatterns, path) {
			return true, nil
		}
		cfg, err := l.resolveConfig(filepath.Dir(path))
		if err != nil {
			return false, err
		}
		if matchesIgnorePattern(cfg.Ignore, path) {
			return true, nil
		}
	}

	if orTrue(l.opts.UseGitignore) {
		abs, err := filepath.Abs(path)
		if err == nil {
			m := lint.NewGitignoreMatcher(l.cwd)
			if m.IsIgnored(abs, false) {
				return true, nil
			}
		}
	}

	return false, nil
}

// defaultIgnored applies the conventional ignore set: dotfiles,
// dot-directories, and vendored dependency trees.
func defaultIgnored(rel string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(rel), "/") {
		if seg == "node_modules" || seg == "vendor" {
			return true
		}
		if len(seg) > 1 && strings.HasPrefix(seg, ".") && seg != ".." {
			return true
		}
	}
	return false
}

// matchesIgnorePattern returns true if path matches any glob pattern,
// testing the raw path, the cleaned path, and the base name.
func matchesIgnorePattern(patterns []string, path string) bool {
	cleanPath := filepath.Clean(path)
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			continue
		}
		if g.Match(path) || g.Match(cleanPath) || g.Match(filepath.Base(path)) {
			return true
		}
	}
	return false
}

// runner builds the per-file pipeline for a resolved config.
func (l *Linter) runner(cfg *Config) *engine.Runner {
	return &engine.Runner{
		Config:                        cfg,
		Rules:                         l.rules,
		StripFrontMatter:              cfg.FrontMatter == nil || *cfg.FrontMatter,
		AllowInlineConfig:             orTrue(l.opts.AllowInlineConfig),
		ReportUnusedDisableDirectives: l.opts.ReportUnusedDisableDirectives,
		FS:                            os.DirFS(l.cwd),
	}
}

// fixer wraps a runner with the session's fix filters.
func (l *Linter) fixer(r *engine.Runner) *fix.Fixer {
	return &fix.Fixer{
		Runner:     r,
		Filter:     fix.Filter(l.opts.FixFilter),
		Categories: l.opts.FixCategories,
	}
}

// LintFiles resolves patterns to files and lints each one, returning
// one Result per file in path order. With ErrorOnUnmatchedPattern
// (default) a pattern matching nothing fails the call; ignored files
// are skipped silently. A file that cannot be read or parsed fails the
// whole call.
func (l *Linter) LintFiles(patterns []string) ([]Result, error) {
	files, err := lint.ResolveFiles(patterns, lint.ResolveOpts{
		UseGitignore:     l.opts.UseGitignore,
		Glob:             l.opts.GlobInputPaths,
		ErrorOnUnmatched: l.opts.ErrorOnUnmatchedPattern,
		Extensions:       l.opts.Extensions,
	})
	if err != nil {
		return nil, err
	}
	l.logger.Printf("linting %d files", len(files))

	var store *cache.Cache
	if l.opts.Cache {
		loc := l.opts.CacheLocation
		if loc == "" {
			loc = cache.DefaultLocation
		}
		if !filepath.IsAbs(loc) {
			loc = filepath.Join(l.cwd, loc)
		}
		store = cache.Open(loc)
	}

	results := make([]Result, 0, len(files))
	for _, file := range files {
		ignored, err := l.IsPathIgnored(file)
		if err != nil {
			return nil, err
		}
		if ignored {
			l.logger.Printf("skipping ignored file %s", file)
			continue
		}

		cfg, err := l.resolveConfig(filepath.Dir(file))
		if err != nil {
			return nil, err
		}

		source, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", file, err)
		}

		var key string
		if store != nil {
			key = cache.Key(source, config.Fingerprint(cfg))
			if res, ok := store.Get(file, key); ok {
				l.logger.Printf("cache hit for %s", file)
				results = append(results, res)
				continue
			}
		}

		run := l.runner(cfg)
		var res Result
		if l.opts.Fix {
			res, err = l.fixer(run).FixSource(file, source)
		} else {
			res, err = run.LintSource(file, source)
		}
		if err != nil {
			return nil, err
		}

		// Results carrying fix output are not cached: the cache maps
		// on-disk content to its diagnostics, and fix output refers to
		// content that is not on disk.
		if store != nil && res.Output == nil {
			store.Put(file, key, res)
		}
		results = append(results, res)
	}

	if store != nil {
		if err := store.Save(); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// LintText lints in-memory source as if it were located at
// opts.FilePath. It returns exactly one result, except when the path is
// ignored: then WarnIgnored selects between a single warning result and
// an empty slice (see TextOptions).
func (l *Linter) LintText(code string, opts TextOptions) ([]Result, error) {
	path := opts.FilePath
	if path == "" {
		path = "<text>"
	}

	if opts.FilePath != "" {
		ignored, err := l.IsPathIgnored(opts.FilePath)
		if err != nil {
			return nil, err
		}
		if ignored {
			if !opts.WarnIgnored {
				return []Result{}, nil
			}
			res := lint.NewResult(path, []Diagnostic{{
				File:      path,
				Line:      1,
				Column:    1,
				MessageID: "fileIgnored",
				Severity:  SeverityWarning,
				Message:   fmt.Sprintf("%s is ignored; pass WarnIgnored: false to suppress this warning", path),
			}})
			return []Result{res}, nil
		}
	}

	cfg, err := l.resolveConfig(filepath.Dir(path))
	if err != nil {
		return nil, err
	}

	run := l.runner(cfg)
	var res Result
	if l.opts.Fix {
		res, err = l.fixer(run).FixSource(path, []byte(code))
	} else {
		res, err = run.LintSource(path, []byte(code))
	}
	if err != nil {
		return nil, err
	}
	return []Result{res}, nil
}

// GetErrorResults filters results down to error-severity messages,
// dropping warning-only results entirely and recomputing counts for the
// rest.
func GetErrorResults(results []Result) []Result {
	var out []Result
	for _, res := range results {
		if res.ErrorCount == 0 {
			continue
		}
		filtered := res
		filtered.Messages = nil
		for _, m := range res.Messages {
			if m.Severity == SeverityError {
				filtered.Messages = append(filtered.Messages, m)
			}
		}
		filtered.Recount()
		out = append(out, filtered)
	}
	return out
}

// OutputFixes writes each result's fix output back to its file. This is
// the only operation that persists fixes; calling it again after the
// files are written is a no-op.
func OutputFixes(results []Result) error {
	return fix.OutputFixes(results)
}

// Version reports the module version embedded in the build, or
// "(devel)" for source builds.
func Version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}
