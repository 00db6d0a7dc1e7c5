package mdlint

// Options configures a Linter session. Every field is independent;
// pointer booleans default to true when nil, plain booleans to false.
// The only cross-field constraint is that FixFilter and FixCategories
// require Fix.
type Options struct {
	// AllowInlineConfig honors <!-- mdlint-disable --> style comments in
	// linted documents. Default true.
	AllowInlineConfig *bool

	// BaseConfig sits below any discovered project configuration.
	// Default nil.
	BaseConfig *Config

	// Cache skips re-linting files whose content and configuration are
	// unchanged since the last run. Default false.
	Cache bool

	// CacheLocation is the cache file path, relative to Cwd unless
	// absolute. Default ".mdlintcache".
	CacheLocation string

	// Cwd anchors config discovery, ignore files and relative paths.
	// Default: the process working directory.
	Cwd string

	// Debug logs session activity to stderr. Default false.
	Debug bool

	// ErrorOnUnmatchedPattern fails LintFiles when a glob pattern
	// matches nothing. Default true.
	ErrorOnUnmatchedPattern *bool

	// Extensions lists lintable file extensions for directory walks and
	// glob expansion. Default [".md", ".markdown"].
	Extensions []string

	// ExtraRules adds programmatic rules on top of the built-in set.
	// Default none.
	ExtraRules []Rule

	// Fix computes auto-fixes while linting; Result.Output carries the
	// fixed text. Nothing is written to disk. Default false.
	Fix bool

	// FixCategories restricts auto-fixing to rules in the listed
	// categories. Requires Fix. Default: all categories.
	FixCategories []string

	// FixFilter, when non-nil, decides per diagnostic whether its fix
	// is applied. Requires Fix. Default: fix everything fixable.
	FixFilter func(Diagnostic) bool

	// GlobInputPaths expands glob meta-characters in LintFiles
	// patterns. When false, patterns are literal paths. Default true.
	GlobInputPaths *bool

	// Ignore enables ignore-file and config ignore patterns.
	// Default true.
	Ignore *bool

	// IgnorePath is the ignore file. When set explicitly, the file must
	// exist. Default ".mdlintignore" (missing file tolerated).
	IgnorePath string

	// OverrideConfig sits above any discovered project configuration.
	// Default nil.
	OverrideConfig *Config

	// OverrideConfigFile loads an override config from a file. Applied
	// below OverrideConfig. Default none.
	OverrideConfigFile string

	// ReportUnusedDisableDirectives reports disable comments that
	// suppressed nothing, at the given severity. Zero disables the
	// check. Default off.
	ReportUnusedDisableDirectives Severity

	// UseConfigFiles discovers project config files (.mdlint.yml,
	// .mdlint.yaml, .mdlint.toml) by walking up from each linted file.
	// When false only BaseConfig and overrides apply. Default true.
	UseConfigFiles *bool

	// UseGitignore filters directory walks by .gitignore rules.
	// Default true.
	UseGitignore *bool
}

// TextOptions configures a single LintText call.
type TextOptions struct {
	// FilePath is the nominal path of the text, used for config
	// resolution and ignore checks. Default "<text>".
	FilePath string

	// WarnIgnored controls what happens when FilePath is ignored: true
	// yields one result containing only a warning about the file being
	// ignored; false (the default) yields an empty result set. Neither
	// is an error.
	WarnIgnored bool
}

func orTrue(p *bool) bool { return p == nil || *p }
