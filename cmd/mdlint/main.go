package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	mdlint "github.com/mdlint/mdlint"
	"github.com/mdlint/mdlint/internal/config"
	"github.com/mdlint/mdlint/internal/lint"
	"github.com/mdlint/mdlint/internal/output"
	"github.com/mdlint/mdlint/internal/watch"
)

func main() {
	os.Exit(run())
}

const usageText = `Usage: mdlint <command> [flags] [files...]

Commands:
  check     Lint Markdown files
  fix       Auto-fix lint issues in place
  watch     Lint, then re-lint whenever a file changes
  help      Show help for rules and topics
  init      Generate a default .mdlint.yml config file
  version   Print version and exit

Global flags:
  -h, --help      Show this help

Run 'mdlint <command> --help' for more information on a command.
`

func run() int {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		return 0
	}

	first := os.Args[1]

	switch first {
	case "--help", "-h":
		fmt.Fprint(os.Stderr, usageText)
		return 0
	}

	switch first {
	case "check":
		return runCheck(os.Args[2:])
	case "fix":
		return runFix(os.Args[2:])
	case "watch":
		return runWatch(os.Args[2:])
	case "help":
		return runHelp(os.Args[2:])
	case "init":
		return runInit(os.Args[2:])
	case "version":
		fmt.Printf("mdlint %s\n", mdlint.Version())
		return 0
	default:
		fmt.Fprintf(os.Stderr, "mdlint: unknown command %q\n\n%s", first, usageText)
		return 2
	}
}

// checkFlags are shared by check, fix and watch.
type checkFlags struct {
	configPath    string
	format        string
	noColor       bool
	quiet         bool
	noGitignore   bool
	noIgnore      bool
	noInline      bool
	cache         bool
	cacheLocation string
	reportUnused  bool
	debug         bool
}

func (cf *checkFlags) register(fs *flag.FlagSet) {
	fs.StringVarP(&cf.configPath, "config", "c", "", "Override config file path")
	fs.StringVarP(&cf.format, "format", "f", "text", "Output format: text, json, compact, or a path to a JS formatter")
	fs.BoolVar(&cf.noColor, "no-color", false, "Disable ANSI colors")
	fs.BoolVarP(&cf.quiet, "quiet", "q", false, "Suppress non-error output")
	fs.BoolVar(&cf.noGitignore, "no-gitignore", false, "Disable .gitignore filtering when walking directories")
	fs.BoolVar(&cf.noIgnore, "no-ignore", false, "Disable .mdlintignore and config ignore patterns")
	fs.BoolVar(&cf.noInline, "no-inline-config", false, "Ignore <!-- mdlint-disable --> comments")
	fs.BoolVar(&cf.cache, "cache", false, "Only re-lint files whose content or config changed")
	fs.StringVar(&cf.cacheLocation, "cache-location", "", "Cache file path (default .mdlintcache)")
	fs.BoolVar(&cf.reportUnused, "report-unused-disable-directives", false, "Warn about disable comments that suppress nothing")
	fs.BoolVar(&cf.debug, "debug", false, "Log session activity to stderr")
}

func (cf *checkFlags) options(fix bool) mdlint.Options {
	useGitignore := !cf.noGitignore
	useIgnore := !cf.noIgnore
	allowInline := !cf.noInline

	opts := mdlint.Options{
		Cache:              cf.cache,
		CacheLocation:      cf.cacheLocation,
		Debug:              cf.debug,
		Fix:                fix,
		Ignore:             &useIgnore,
		UseGitignore:       &useGitignore,
		AllowInlineConfig:  &allowInline,
		OverrideConfigFile: cf.configPath,
	}
	if cf.reportUnused {
		opts.ReportUnusedDisableDirectives = mdlint.SeverityWarning
	}
	return opts
}

// newSession builds a Linter and a formatter from the shared flags.
func newSession(cf *checkFlags, fix bool) (*mdlint.Linter, mdlint.Formatter, error) {
	linter, err := mdlint.New(cf.options(fix))
	if err != nil {
		return nil, nil, err
	}

	if cf.format == "" || cf.format == "text" {
		return linter, &output.TextFormatter{Color: !cf.noColor}, nil
	}
	formatter, err := linter.LoadFormatter(cf.format)
	if err != nil {
		return nil, nil, err
	}
	return linter, formatter, nil
}

// report prints results and returns the exit code they imply.
func report(linter *mdlint.Linter, formatter mdlint.Formatter, results []mdlint.Result, quiet bool) int {
	problems := 0
	for _, res := range results {
		problems += len(res.Messages)
	}

	if !quiet && problems > 0 {
		if err := formatter.Format(os.Stderr, results, linter.RulesMeta()); err != nil {
			fmt.Fprintf(os.Stderr, "mdlint: error writing output: %v\n", err)
			return 2
		}
	}
	if problems > 0 {
		return 1
	}
	return 0
}

// runCheck implements the "check" subcommand.
func runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	var cf checkFlags
	cf.register(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mdlint check [flags] [files...]\n\n"+
			"Lint Markdown files for style issues.\n\n"+
			"Files can be paths, directories (walked recursively), or glob patterns.\n"+
			"With no file arguments, reads from stdin if piped.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	files := fs.Args()
	if len(files) == 0 {
		if !isStdinPipe() {
			return 0
		}
		return checkStdin(&cf)
	}

	linter, formatter, err := newSession(&cf, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mdlint: %v\n", err)
		return 2
	}

	results, err := linter.LintFiles(files)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mdlint: %v\n", err)
		return 2
	}
	return report(linter, formatter, results, cf.quiet)
}

// runFix implements the "fix" subcommand: lint with fixes and write the
// fixed files back to disk. Remaining unfixable problems are reported.
func runFix(args []string) int {
	fs := flag.NewFlagSet("fix", flag.ContinueOnError)
	var cf checkFlags
	cf.register(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mdlint fix [flags] [files...]\n\n"+
			"Auto-fix lint issues in Markdown files.\n\n"+
			"Stdin is not supported (files must be writable).\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	files := fs.Args()
	if len(files) == 0 {
		if isStdinPipe() {
			fmt.Fprintf(os.Stderr, "mdlint: cannot fix stdin in place\n")
			return 2
		}
		return 0
	}

	linter, formatter, err := newSession(&cf, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mdlint: %v\n", err)
		return 2
	}

	results, err := linter.LintFiles(files)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mdlint: %v\n", err)
		return 2
	}

	if err := mdlint.OutputFixes(results); err != nil {
		fmt.Fprintf(os.Stderr, "mdlint: %v\n", err)
		return 2
	}
	return report(linter, formatter, results, cf.quiet)
}

// runWatch implements the "watch" subcommand: lint once, then re-lint on
// every change until interrupted.
func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	var cf checkFlags
	cf.register(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mdlint watch [flags] [files...]\n\n"+
			"Lint the given files, then re-lint whenever one changes.\n"+
			"Interrupt (Ctrl-C) to stop.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	files := fs.Args()
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "mdlint: watch needs file arguments\n")
		return 2
	}

	linter, formatter, err := newSession(&cf, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mdlint: %v\n", err)
		return 2
	}

	// The watcher matches events against concrete files, so directory
	// and glob arguments must be expanded before watching starts.
	targets, err := resolveWatchTargets(&cf, files)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mdlint: %v\n", err)
		return 2
	}

	lintOnce := func() {
		results, err := linter.LintFiles(files)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mdlint: %v\n", err)
			return
		}
		code := report(linter, formatter, results, cf.quiet)
		if code == 0 && !cf.quiet {
			fmt.Fprintln(os.Stderr, "mdlint: clean")
		}
	}

	lintOnce()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = watch.Watch(ctx, targets, func([]string) { lintOnce() })
	if err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "mdlint: %v\n", err)
		return 2
	}
	return 0
}

// resolveWatchTargets expands directory and glob arguments to the file
// set the watcher matches events against.
func resolveWatchTargets(cf *checkFlags, args []string) ([]string, error) {
	useGitignore := !cf.noGitignore
	return lint.ResolveFiles(args, lint.ResolveOpts{UseGitignore: &useGitignore})
}

// checkStdin lints piped stdin as a single in-memory document.
func checkStdin(cf *checkFlags) int {
	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mdlint: reading stdin: %v\n", err)
		return 2
	}

	linter, formatter, err := newSession(cf, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mdlint: %v\n", err)
		return 2
	}

	results, err := linter.LintText(string(source), mdlint.TextOptions{FilePath: "<stdin>"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "mdlint: %v\n", err)
		return 2
	}
	return report(linter, formatter, results, cf.quiet)
}

// runInit implements the "init" subcommand: generate .mdlint.yml.
func runInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mdlint init\n\n"+
			"Generate a default .mdlint.yml config file in the current directory.\n")
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "mdlint: init takes no arguments\n")
		return 2
	}

	const configFile = ".mdlint.yml"

	if _, err := os.Stat(configFile); err == nil {
		fmt.Fprintf(os.Stderr, "mdlint: %s already exists\n", configFile)
		return 2
	}

	cfg := config.DumpDefaults()
	fm := true
	cfg.FrontMatter = &fm

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mdlint: marshalling config: %v\n", err)
		return 2
	}
	if err := os.WriteFile(configFile, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "mdlint: writing %s: %v\n", configFile, err)
		return 2
	}

	fmt.Fprintf(os.Stderr, "mdlint: created %s\n", configFile)
	return 0
}

// isStdinPipe returns true if stdin is a pipe (not a terminal).
func isStdinPipe() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

const helpUsageText = `Usage: mdlint help <topic>

Topics:
  rule [id|name]   Show rule documentation
`

// runHelp implements the "help" subcommand.
func runHelp(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, helpUsageText)
		return 0
	}

	switch args[0] {
	case "rule":
		return runHelpRule(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "mdlint: help: unknown topic %q\n", args[0])
		return 2
	}
}

// runHelpRule implements "help rule [id|name]".
func runHelpRule(args []string) int {
	if len(args) == 0 {
		rules, err := mdlint.ListRules()
		if err != nil {
			fmt.Fprintf(os.Stderr, "mdlint: %v\n", err)
			return 2
		}
		for _, r := range rules {
			fmt.Printf("%-6s %-28s %s\n", r.ID, r.Name, r.Description)
		}
		return 0
	}

	content, err := mdlint.LookupRule(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "mdlint: %v\n", err)
		return 2
	}
	fmt.Print(content)
	return 0
}
