package lint

// Severity indicates the severity level of a diagnostic. The numeric
// values are part of the JSON output contract: 1 = warning, 2 = error.
type Severity int

// Severity levels.
const (
	SeverityWarning Severity = 1
	SeverityError   Severity = 2
)

// String returns "warning" or "error".
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	}
	return "unknown"
}

// Diagnostic represents a single lint finding.
//
// Line and Column are 1-based. EndLine and EndColumn are optional; zero
// means the end of the finding is not tracked. Fix is nil for findings
// that cannot be auto-corrected.
type Diagnostic struct {
	File      string            `json:"file"`
	Line      int               `json:"line"`
	Column    int               `json:"column"`
	EndLine   int               `json:"endLine,omitempty"`
	EndColumn int               `json:"endColumn,omitempty"`
	RuleID    string            `json:"ruleId"`
	RuleName  string            `json:"ruleName"`
	MessageID string            `json:"messageId"`
	Severity  Severity          `json:"severity"`
	Message   string            `json:"message"`
	Data      map[string]string `json:"data,omitempty"`
	Node      string            `json:"node,omitempty"`
	Fix       *TextEdit         `json:"fix,omitempty"`

	// Suggestions are alternative, non-automatic corrections. Each one
	// must produce a valid document when applied on its own.
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// HasFix reports whether the diagnostic carries an auto-fix.
func (d *Diagnostic) HasFix() bool { return d.Fix != nil }

// Suggestion is a manual correction attached to a diagnostic.
type Suggestion struct {
	MessageID string            `json:"messageId"`
	Message   string            `json:"message"`
	Data      map[string]string `json:"data,omitempty"`
	Fix       TextEdit          `json:"fix"`
}

// DeprecatedRuleUse records that a deprecated rule was enabled during a
// lint run, together with its replacement rule names (possibly empty).
type DeprecatedRuleUse struct {
	RuleID     string   `json:"ruleId"`
	ReplacedBy []string `json:"replacedBy"`
}
