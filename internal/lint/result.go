package lint

// Result holds the outcome of linting a single file.
//
// The counters are derived from Messages and are recomputed by NewResult
// and Recount; they are never set independently.
type Result struct {
	FilePath string       `json:"filePath"`
	Messages []Diagnostic `json:"messages"`

	ErrorCount          int `json:"errorCount"`
	WarningCount        int `json:"warningCount"`
	FixableErrorCount   int `json:"fixableErrorCount"`
	FixableWarningCount int `json:"fixableWarningCount"`

	// Output is the source after auto-fixing, set only when a fix run
	// changed the content. Source is the original text, set whenever
	// Output is.
	Output []byte `json:"output,omitempty"`
	Source []byte `json:"source,omitempty"`

	UsedDeprecatedRules []DeprecatedRuleUse `json:"usedDeprecatedRules"`
}

// NewResult builds a Result for path from the given messages, computing
// all counters.
func NewResult(path string, messages []Diagnostic) Result {
	r := Result{FilePath: path, Messages: messages}
	r.Recount()
	return r
}

// Recount recomputes the four counters from Messages.
func (r *Result) Recount() {
	r.ErrorCount = 0
	r.WarningCount = 0
	r.FixableErrorCount = 0
	r.FixableWarningCount = 0
	for i := range r.Messages {
		m := &r.Messages[i]
		switch m.Severity {
		case SeverityError:
			r.ErrorCount++
			if m.HasFix() {
				r.FixableErrorCount++
			}
		case SeverityWarning:
			r.WarningCount++
			if m.HasFix() {
				r.FixableWarningCount++
			}
		}
	}
}
